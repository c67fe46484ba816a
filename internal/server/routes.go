package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

// Handlersはルート登録に必要な一式。
type Handlers struct {
	Category       *handler.CategoryHandler
	Product        *handler.ProductHandler
	Branch         *handler.BranchHandler
	Inventory      *handler.InventoryHandler
	User           *handler.UserHandler
	Cart           *handler.CartHandler
	Checkout       *handler.CheckoutHandler
	Order          *handler.OrderHandler
	AdminOrder     *handler.AdminOrderHandler
	PaymentWebhook *handler.PaymentWebhookHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Category.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Branch.RegisterRoutes(e, cfg)
	h.Inventory.RegisterRoutes(e, cfg)
	h.User.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.PaymentWebhook.RegisterRoutes(e)
}
