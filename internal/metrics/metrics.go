package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Collector holds the Prometheus instruments for the proxy.
type Collector struct {
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
}

func NewCollector(namespace string) *Collector {
	return &Collector{
		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Requests forwarded to the banking API by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		upstreamLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Latency of forwarded requests to the banking API",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests served by route pattern and status",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency of served HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Register registers all metrics with the given Prometheus registry.
func (c *Collector) Register(registry prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{
		c.upstreamRequests,
		c.upstreamLatency,
		c.httpRequests,
		c.httpLatency,
	} {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) RecordUpstream(operation string, err error, duration time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	c.upstreamRequests.WithLabelValues(operation, outcome).Inc()
	c.upstreamLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// Middleware records one observation per request, labelled with the chi route
// pattern so account ids never become label values.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.httpLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
