// Package metrics exposes Prometheus metrics of the development server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Path = "/__metrics"

type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	reloads  *prometheus.CounterVec
}

// New registers the server metrics on a fresh registry. clients reports the number
// of connected live reload browsers.
func New(clients func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chaininsights_blog_http_requests_total",
				Help: "Total number of HTTP requests served by status code.",
			},
			[]string{"code"},
		),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chaininsights_blog_reloads_total",
				Help: "Total number of site reloads by status.",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.reloads,
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "chaininsights_blog_livereload_clients",
				Help: "Number of browsers connected for live reload.",
			},
			func() float64 { return float64(clients()) },
		),
	)
	return m
}

// ObserveReload counts a finished reload as "success" or "error".
func (m *Metrics) ObserveReload(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.reloads.WithLabelValues(status).Inc()
}

// Instrument counts every response of h by status code.
func (m *Metrics) Instrument(h http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.requests, h)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
