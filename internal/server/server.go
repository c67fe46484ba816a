package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/metrics"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// Newはechoエンジンを組み立ててルートを登録して返す。
func New(cfg config.Config, gormDB *gorm.DB, m *metrics.ServerMetrics, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestMetrics(m))

	//死活監視（DB ping込み）
	e.GET("/health", func(c echo.Context) error {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "ng"})
		}
		if err := sqlDB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "ng"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	RegisterRoutes(e, cfg, h)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
