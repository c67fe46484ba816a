package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// アプリ全体のコレクタ。
type ServerMetrics struct {
	Requests         *prometheus.CounterVec
	CheckoutAttempts *prometheus.CounterVec
	WebhookEvents    *prometheus.CounterVec
}

func NewServerMetrics() *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Name:      "checkout_attempts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})

	webhooks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Name:      "webhook_events_total",
		Help:      "Payment webhook events by type and outcome.",
	}, []string{"type", "outcome"})

	prometheus.MustRegister(requests, checkouts, webhooks)
	return &ServerMetrics{
		Requests:         requests,
		CheckoutAttempts: checkouts,
		WebhookEvents:    webhooks,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
