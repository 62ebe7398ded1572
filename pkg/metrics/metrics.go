package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests      *prometheus.CounterVec
	WebhookEvents *prometheus.CounterVec
}

func NewServerMetrics(service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "launchmybiz",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	webhookEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "launchmybiz",
		Subsystem: service,
		Name:      "webhook_events_total",
		Help:      "Webhook deliveries by outcome.",
	}, []string{"outcome"})

	prometheus.MustRegister(requests, webhookEvents)
	return &ServerMetrics{Requests: requests, WebhookEvents: webhookEvents}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
