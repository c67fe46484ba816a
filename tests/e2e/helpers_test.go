package e2e

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// 起動済みAPIに対するHTTPテスト。E2E_BASE_URL未設定ならスキップ。
//
//	E2E_BASE_URL=http://localhost:8080 \
//	E2E_JWT_SECRET=<JWT_SECRETと同じ値> \
//	E2E_WEBHOOK_SECRET=<PAYMENT_WEBHOOK_SECRETと同じ値> go test ./tests/e2e/...

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func newTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("E2E_BASE_URL")
	if baseURL == "" {
		t.Skip("E2E_BASE_URL not set")
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductDTO struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

type CartItemDTO struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CartDTO struct {
	ID     int64         `json:"id"`
	UserID int64         `json:"user_id"`
	Items  []CartItemDTO `json:"items"`
	Total  json.Number   `json:"total"`
}

type OrderDTO struct {
	ID     int64       `json:"id"`
	UserID int64       `json:"user_id"`
	CartID *int64      `json:"cart_id"`
	Status string      `json:"status"`
	Total  json.Number `json:"total"`
}

// do はgoroutineからも呼べるエラー返却版
func (c *TestClient) do(
	ctx context.Context,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, nil, err
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, err
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	return resp, data, nil
}

// doWebhook は署名ヘッダ付きで/payments/webhookへPOSTする
func (c *TestClient) doWebhook(ctx context.Context, payload []byte, signature string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/payments/webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Webhook-Signature", signature)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, err
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	return resp, data, nil
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	resp, data, err := c.do(ctx, method, path, bearer, bodyBytes)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func decode(body []byte, v any) error {
	return json.Unmarshal(body, v)
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json.Unmarshal failed: %v body=%s", err, string(body))
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	return b
}

func jwtSecret(t *testing.T) string {
	t.Helper()
	s := os.Getenv("E2E_JWT_SECRET")
	if s == "" {
		t.Skip("E2E_JWT_SECRET not set")
	}
	return s
}

func webhookSecret(t *testing.T) string {
	t.Helper()
	s := os.Getenv("E2E_WEBHOOK_SECRET")
	if s == "" {
		t.Skip("E2E_WEBHOOK_SECRET not set")
	}
	return s
}

// サーバーと共有するシークレットでアクセストークンを作る（ログイン機能は無い）
func issueToken(t *testing.T, userID int64, role string) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(30 * time.Minute).Unix(),
	})

	signed, err := token.SignedString([]byte(jwtSecret(t)))
	if err != nil {
		t.Fatalf("token.SignedString failed: %v", err)
	}
	return signed
}

// 新規ユーザーを登録してそのIDのトークンを返す
func registerUser(t *testing.T, c *TestClient, ctx context.Context) (int64, string) {
	t.Helper()

	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	body := mustMarshal(t, map[string]string{
		"email":    email,
		"name":     "e2e user",
		"password": "password123",
	})

	resp, data := c.doJSON(ctx, t, http.MethodPost, "/users", "", body)
	requireStatus(t, resp, http.StatusCreated, data)

	var u UserDTO
	mustDecode(t, data, &u)
	if u.ID <= 0 {
		t.Fatalf("registered user has no id: body=%s", string(data))
	}

	return u.ID, issueToken(t, u.ID, "USER")
}

// webhookの署名ヘッダ「t=<unix>,v1=<hex>」を作る
func signWebhook(secret string, payload []byte, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)

	return "t=" + ts + ",v1=" + hex.EncodeToString(mac.Sum(nil))
}
