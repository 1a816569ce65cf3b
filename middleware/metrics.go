package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/raptor/core/handler"
)

// MetricsConfig configures the Prometheus instrumentation middleware.
type MetricsConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *handler.Context) bool
	// Registerer receives the collectors (default: prometheus.DefaultRegisterer)
	Registerer prometheus.Registerer
	// Namespace prefixes metric names
	Namespace string
	// Subsystem is placed between namespace and metric name (default: "http")
	Subsystem string
	// Buckets for the latency histogram (default: prometheus.DefBuckets)
	Buckets []float64
}

// Metrics instruments requests using the default Prometheus registerer.
func Metrics() handler.Middleware {
	return MetricsWithConfig(MetricsConfig{})
}

// MetricsWithConfig counts requests and observes their latency, labelled by
// method and final status code. It panics if the collectors cannot be
// registered; collectors already registered with identical descriptors are reused.
func MetricsWithConfig(cfg MetricsConfig) handler.Middleware {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "http"
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = prometheus.DefBuckets
	}

	labels := []string{"method", "status"}
	requests := register(cfg.Registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "requests_total",
		Help:      "Total number of HTTP requests processed.",
	}, labels))
	duration := register(cfg.Registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   cfg.Buckets,
	}, labels))
	inFlight := register(cfg.Registerer, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being processed.",
	}))

	return func(ctx *handler.Context, next handler.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return skip(next)
		}

		inFlight.Inc()
		defer inFlight.Dec()

		start := time.Now()
		resp := next()

		lv := []string{ctx.Request().Method, strconv.Itoa(resp.Status)}
		requests.WithLabelValues(lv...).Inc()
		duration.WithLabelValues(lv...).Observe(time.Since(start).Seconds())
		return nil, nil
	}
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
