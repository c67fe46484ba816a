package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateSession_Success(t *testing.T) {
	var got sessionRequest
	var gotAuth, gotIdem string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotIdem = r.Header.Get("Idempotency-Key")
		_ = json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"sess_123","url":"https://pay.example.com/s/123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test", "usd")
	s, err := c.CreateSession(context.Background(), SessionInput{
		AmountMinor: 3502,
		OrderID:     77,
		SuccessURL:  "https://shop.example.com/pago/exito",
		CancelURL:   "https://shop.example.com/pago/cancelado",
	})

	assert.NoError(t, err)
	assert.Equal(t, "sess_123", s.ID)
	assert.Equal(t, "https://pay.example.com/s/123", s.URL)

	assert.Equal(t, "Bearer sk_test", gotAuth)
	assert.NotEmpty(t, gotIdem)
	assert.Equal(t, int64(3502), got.Amount)
	assert.Equal(t, "usd", got.Currency)
	assert.Equal(t, "77", got.Metadata["orderId"])
}

// 同じ注文の再送では同一のIdempotency-Keyになる（プロセッサ側で重複排除できる）
func TestCreateSession_IdempotencyKeyStablePerOrder(t *testing.T) {
	var keys []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"sess_123","url":"https://pay.example.com/s/123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test", "usd")
	in := SessionInput{AmountMinor: 100, OrderID: 77}

	_, err := c.CreateSession(context.Background(), in)
	assert.NoError(t, err)
	_, err = c.CreateSession(context.Background(), in)
	assert.NoError(t, err)
	_, err = c.CreateSession(context.Background(), SessionInput{AmountMinor: 100, OrderID: 78})
	assert.NoError(t, err)

	assert.Len(t, keys, 3)
	assert.Equal(t, keys[0], keys[1])
	assert.NotEqual(t, keys[0], keys[2])
}

func TestCreateSession_ProcessorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"internal","message":"boom"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test", "usd")
	_, err := c.CreateSession(context.Background(), SessionInput{AmountMinor: 100, OrderID: 1})

	assert.ErrorIs(t, err, ErrExternalService)
}

func TestCreateSession_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":"invalid_request","message":"bad currency"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test", "usd")
	_, err := c.CreateSession(context.Background(), SessionInput{AmountMinor: 100, OrderID: 1})

	assert.ErrorIs(t, err, ErrExternalService)
}

func TestCreateSession_InvalidAmount(t *testing.T) {
	c := NewClient("http://localhost:0", "sk_test", "usd")
	_, err := c.CreateSession(context.Background(), SessionInput{AmountMinor: 0, OrderID: 1})
	assert.Error(t, err)
}
