package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// 決済プロセッサ側の失敗（5xxで返す。注文はPENDINGのまま残す）
var ErrExternalService = errors.New("payment service error")

// ホスト型決済セッションを作る外部APIのクライアント。
type Client struct {
	apiURL   string
	apiKey   string
	currency string
	http     *http.Client
}

func NewClient(apiURL string, apiKey string, currency string) *Client {
	return &Client{
		apiURL:   apiURL,
		apiKey:   apiKey,
		currency: currency,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type SessionInput struct {
	//最小通貨単位の整数額（セント/センタボ）
	AmountMinor int64

	//opaqueメタデータとして載せる注文ID
	OrderID int64

	SuccessURL string
	CancelURL  string
}

type Session struct {
	ID  string
	URL string
}

// プロセッサへのリクエストbody
type sessionRequest struct {
	Amount     int64             `json:"amount"`
	Currency   string            `json:"currency"`
	Metadata   map[string]string `json:"metadata"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
}

type sessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CreateSession はホスト型決済セッションを作成してIDを返す。
func (c *Client) CreateSession(ctx context.Context, in SessionInput) (Session, error) {
	if in.AmountMinor <= 0 {
		return Session{}, errors.New("invalid amount")
	}

	payload := sessionRequest{
		Amount:   in.AmountMinor,
		Currency: c.currency,
		Metadata: map[string]string{
			"orderId": fmt.Sprintf("%d", in.OrderID),
		},
		SuccessURL: in.SuccessURL,
		CancelURL:  in.CancelURL,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return Session{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	//同じ注文の再送で二重セッションを作らないよう、注文IDから決定的に導出する
	key := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("checkout-session:%d", in.OrderID)))
	req.Header.Set("Idempotency-Key", key.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Session{}, fmt.Errorf("%w: status %d: %s", ErrExternalService, resp.StatusCode, string(body))
	}

	var out sessionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	if out.Error != nil {
		return Session{}, fmt.Errorf("%w: %s", ErrExternalService, out.Error.Message)
	}
	if out.ID == "" {
		return Session{}, fmt.Errorf("%w: empty session id", ErrExternalService)
	}

	return Session{ID: out.ID, URL: out.URL}, nil
}
