package handler

import (
	"io"
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/metrics"
	"app/internal/payment"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 決済プロセッサからのコールバック受け口。認証は署名のみ。
type PaymentWebhookHandler struct {
	cfg config.Config
	uc  *usecase.PaymentEventUsecase
	m   *metrics.ServerMetrics
}

// DI
func NewPaymentWebhookHandler(cfg config.Config, uc *usecase.PaymentEventUsecase, m *metrics.ServerMetrics) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{cfg: cfg, uc: uc, m: m}
}

func (h *PaymentWebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/payments/webhook", h.receive)
}

func (h *PaymentWebhookHandler) receive(c echo.Context) error {
	//署名は生ボディに対して検証するので先に読み切る
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	sig := c.Request().Header.Get(payment.SignatureHeader)
	if err := payment.VerifySignature(body, sig, h.cfg.PaymentWebhookSecret, time.Now(), payment.DefaultTolerance); err != nil {
		h.m.WebhookEvents.WithLabelValues("unknown", "bad_signature").Inc()
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid signature"})
	}

	evt, err := payment.ParseEvent(body)
	if err != nil {
		h.m.WebhookEvents.WithLabelValues("unknown", "bad_payload").Inc()
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
	}

	if err := h.uc.HandleEvent(c.Request().Context(), evt); err != nil {
		h.m.WebhookEvents.WithLabelValues(evt.Type, "error").Inc()
		return writeError(c, err)
	}

	h.m.WebhookEvents.WithLabelValues(evt.Type, "ok").Inc()
	return c.JSON(http.StatusOK, SuccessResponse{Message: "received"})
}
