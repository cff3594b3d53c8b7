// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests processed",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	ReservationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservations_created_total",
		Help: "Reservations persisted, by service kind",
	}, []string{"kind"})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sms_notifications_total",
		Help: "SMS dispatch attempts by driver and outcome",
	}, []string{"driver", "outcome"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
