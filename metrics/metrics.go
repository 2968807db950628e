// Package metrics provides Prometheus metrics for HTTP requests and catalogue
// fetches.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes recorded by RecordFetch.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Registry owns the storefront collectors. Each server gets its own so tests
// can build several without duplicate registration panics.
type Registry struct {
	reg *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	inFlight        prometheus.Gauge
	storeFetches    *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		}),
		storeFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_store_fetches_total",
			Help: "Document store fetches by kind and outcome",
		}, []string{"kind", "outcome"}),
	}
	r.reg.MustRegister(
		r.requestDuration,
		r.requestsTotal,
		r.inFlight,
		r.storeFetches,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// RecordHTTP records one completed request.
func (r *Registry) RecordHTTP(method, route string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	r.requestDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
	r.requestsTotal.WithLabelValues(method, route, code).Inc()
}

func (r *Registry) IncInFlight() { r.inFlight.Inc() }
func (r *Registry) DecInFlight() { r.inFlight.Dec() }

// RecordFetch counts a store fetch; kind is "collection" or "record".
func (r *Registry) RecordFetch(kind, outcome string) {
	r.storeFetches.WithLabelValues(kind, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
