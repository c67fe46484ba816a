package middleware

import (
	"strconv"

	"app/internal/metrics"

	"github.com/labstack/echo/v4"
)

// リクエスト数をmethod/path/statusで数える。
func RequestMetrics(m *metrics.ServerMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			//:idのままのルートパターンで集計（カーディナリティ対策）
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := c.Response().Status
			m.Requests.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()

			return err
		}
	}
}
