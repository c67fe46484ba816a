package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test"

func signPayload(t *testing.T, payload []byte, secret string, at time.Time) string {
	t.Helper()
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignature_Valid(t *testing.T) {
	now := time.Now()
	payload := []byte(`{"id":"evt_1","type":"session.completed"}`)
	header := signPayload(t, payload, testSecret, now)

	err := VerifySignature(payload, header, testSecret, now, DefaultTolerance)
	assert.NoError(t, err)
}

func TestVerifySignature_MissingHeader(t *testing.T) {
	err := VerifySignature([]byte("{}"), "", testSecret, time.Now(), DefaultTolerance)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	now := time.Now()
	payload := []byte(`{}`)
	header := signPayload(t, payload, "whsec_other", now)

	err := VerifySignature(payload, header, testSecret, now, DefaultTolerance)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

// bodyを1バイトでも書き換えたら署名は通らない
func TestVerifySignature_TamperedBody(t *testing.T) {
	now := time.Now()
	payload := []byte(`{"id":"evt_1"}`)
	header := signPayload(t, payload, testSecret, now)

	tampered := []byte(`{"id":"evt_2"}`)
	err := VerifySignature(tampered, header, testSecret, now, DefaultTolerance)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

// 古いタイムスタンプは再生攻撃として弾く
func TestVerifySignature_StaleTimestamp(t *testing.T) {
	now := time.Now()
	payload := []byte(`{}`)
	header := signPayload(t, payload, testSecret, now.Add(-10*time.Minute))

	err := VerifySignature(payload, header, testSecret, now, DefaultTolerance)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignature_MalformedHeader(t *testing.T) {
	err := VerifySignature([]byte("{}"), "v1=deadbeef", testSecret, time.Now(), DefaultTolerance)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseEvent_OrderID(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "session.completed",
		"data": {"object": {"id": "sess_1", "metadata": {"orderId": "42"}}}
	}`)

	evt, err := ParseEvent(payload)
	assert.NoError(t, err)
	assert.Equal(t, EventSessionCompleted, evt.Type)

	id, ok := evt.OrderID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestParseEvent_MissingOrderID(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"session.expired","data":{"object":{"id":"sess_1"}}}`)

	evt, err := ParseEvent(payload)
	assert.NoError(t, err)

	_, ok := evt.OrderID()
	assert.False(t, ok)
}

func TestParseEvent_BadJSON(t *testing.T) {
	_, err := ParseEvent([]byte("not json"))
	assert.Error(t, err)
}
