package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// webhookの署名ヘッダ名
const SignatureHeader = "Webhook-Signature"

// 処理対象のイベント種別。それ以外は受領だけして無視する。
const (
	EventSessionCompleted = "session.completed"
	EventSessionExpired   = "session.expired"
)

// 署名の検証失敗（400で返す。検証前にbodyを処理してはならない）
var ErrInvalidSignature = errors.New("invalid webhook signature")

// 古すぎるタイムスタンプは再生攻撃として拒否
const DefaultTolerance = 5 * time.Minute

// VerifySignature は「t=<unix>,v1=<hex>」形式のヘッダを共有シークレットで検証する。
// 署名対象は "{t}.{rawBody}"。
func VerifySignature(payload []byte, header string, secret string, now time.Time, tolerance time.Duration) error {
	if strings.TrimSpace(header) == "" {
		return ErrInvalidSignature
	}

	var ts int64
	var sigs []string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			v, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return ErrInvalidSignature
			}
			ts = v
		case "v1":
			sigs = append(sigs, kv[1])
		}
	}

	if ts == 0 || len(sigs) == 0 {
		return ErrInvalidSignature
	}

	if tolerance > 0 {
		at := time.Unix(ts, 0)
		if now.Sub(at) > tolerance || at.Sub(now) > tolerance {
			return ErrInvalidSignature
		}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, s := range sigs {
		got, err := hex.DecodeString(s)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, got) {
			return nil
		}
	}

	return ErrInvalidSignature
}

// プロセッサから届くイベント封筒。
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

func ParseEvent(payload []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return Event{}, fmt.Errorf("invalid event payload: %w", err)
	}
	return e, nil
}

// OrderID はmetadataから注文IDを取り出す。無ければ0とfalse。
func (e Event) OrderID() (int64, bool) {
	raw, ok := e.Data.Object.Metadata["orderId"]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
