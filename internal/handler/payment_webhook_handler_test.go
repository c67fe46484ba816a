package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/metrics"
	"app/internal/payment"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const webhookSecret = "whsec_handler_test"

// prometheusのデフォルトレジストリは二重登録でpanicするので1回だけ作る
var testMetrics = metrics.NewServerMetrics()

func signBody(body string, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, body)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(t *testing.T, body string, sig string) *httptest.ResponseRecorder {
	t.Helper()
	cfg := config.Config{PaymentWebhookSecret: webhookSecret}
	h := NewPaymentWebhookHandler(cfg, usecase.NewPaymentEventUsecase(nil), testMetrics)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	if sig != "" {
		req.Header.Set(payment.SignatureHeader, sig)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.receive(c)
	return rec
}

func TestWebhook_MissingSignature(t *testing.T) {
	rec := postWebhook(t, `{"id":"evt_1","type":"session.completed"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid signature")
}

func TestWebhook_BadSignature(t *testing.T) {
	body := `{"id":"evt_1","type":"session.completed"}`
	sig := signBody(body, "whsec_wrong", time.Now())

	rec := postWebhook(t, body, sig)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// 対象外のイベント種別は受領だけして200
func TestWebhook_UnhandledTypeIsAccepted(t *testing.T) {
	body := `{"id":"evt_1","type":"session.created"}`
	sig := signBody(body, webhookSecret, time.Now())

	rec := postWebhook(t, body, sig)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhook_MissingOrderID(t *testing.T) {
	body := `{"id":"evt_1","type":"session.completed","data":{"object":{"id":"sess_1"}}}`
	sig := signBody(body, webhookSecret, time.Now())

	rec := postWebhook(t, body, sig)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhook_InvalidJSONAfterValidSignature(t *testing.T) {
	body := `not json`
	sig := signBody(body, webhookSecret, time.Now())

	rec := postWebhook(t, body, sig)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid payload")
}
