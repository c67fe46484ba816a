package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/metrics"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkoutのHTTP
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
	m  *metrics.ServerMetrics
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase, m *metrics.ServerMetrics) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, m: m}
}

type CheckoutRequest struct {
	CartID          int64    `json:"cart_id"`
	DeliveryAddress string   `json:"delivery_address"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	FrontendBaseURL string   `json:"frontend_base_url"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/checkout")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.checkout)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.InitiateCheckout(c.Request().Context(), userID, usecase.CheckoutInput{
		CartID:          req.CartID,
		DeliveryAddress: req.DeliveryAddress,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		FrontendBaseURL: req.FrontendBaseURL,
	})
	if err != nil {
		h.m.CheckoutAttempts.WithLabelValues("error").Inc()
		return writeError(c, err)
	}

	h.m.CheckoutAttempts.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, out)
}
