// Package metrics provides Prometheus instrumentation for the bistro service.
//
// Wire it up once when building the router:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bistro",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bistro",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bistro",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// StoreOpDuration tracks document-store operation latency per operation.
	StoreOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bistro",
			Subsystem: "store",
			Name:      "op_duration_seconds",
			Help:      "Duration of document store operations in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"operation"}, // e.g. "carts.delete_many"
	)

	// GatewayRequestDuration tracks payment gateway call latency by outcome.
	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bistro",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Duration of payment gateway calls in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"}, // "ok" | "error"
	)

	// PaymentsFinalized counts finalize outcomes. "partial" means the payment
	// was recorded but the cart cleanup failed.
	PaymentsFinalized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bistro",
			Subsystem: "payments",
			Name:      "finalized_total",
			Help:      "Total payment finalizations by outcome.",
		},
		[]string{"outcome"}, // "ok" | "partial" | "failed"
	)

	// OrderFeedClients tracks connected live-feed websocket clients.
	OrderFeedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bistro",
		Subsystem: "feed",
		Name:      "clients",
		Help:      "Connected order-feed websocket clients.",
	})

	// CacheHits / CacheMisses track menu cache effectiveness.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bistro",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
		[]string{"key"},
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bistro",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
		[]string{"key"},
	)
)

// DefaultRegistry is the Prometheus registry used by the service.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		StoreOpDuration,
		GatewayRequestDuration,
		PaymentsFinalized,
		OrderFeedClients,
		CacheHits,
		CacheMisses,
	)
}

// responseRecorder wraps http.ResponseWriter to capture status code.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware returns an http.Handler middleware that records request
// duration, total count and in-flight gauge for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path // raw path; route cardinality is low here

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			status := strconv.Itoa(rr.status)
			RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler returns the /metrics endpoint handler.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ObserveStoreOp records a store operation duration:
//
//	defer metrics.ObserveStoreOp("payments.insert_one", time.Now())
func ObserveStoreOp(operation string, start time.Time) {
	StoreOpDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveGateway records a gateway call duration with its outcome.
func ObserveGateway(outcome string, start time.Time) {
	GatewayRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
