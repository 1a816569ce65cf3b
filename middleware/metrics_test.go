package middleware_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/response"
	"github.com/dmitrymomot/raptor/middleware"
)

func TestMetricsCountsByStatus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	k := newKernel(
		middleware.MetricsWithConfig(middleware.MetricsConfig{Registerer: reg, Namespace: "test"}),
		func(ctx *handler.Context, _ handler.Next) (any, error) {
			if ctx.Request().URL.Path == "/missing" {
				return nil, response.ErrNotFound
			}
			return "ok", nil
		},
	)

	serve(k, get("/"))
	serve(k, get("/"))
	serve(k, get("/missing"))

	expected := `
# HELP test_http_requests_total Total number of HTTP requests processed.
# TYPE test_http_requests_total counter
test_http_requests_total{method="GET",status="200"} 2
test_http_requests_total{method="GET",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_http_requests_total"))

	count, err := testutil.GatherAndCount(reg, "test_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetricsInFlightReturnsToZero(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	var during float64
	k := newKernel(
		middleware.MetricsWithConfig(middleware.MetricsConfig{Registerer: reg, Namespace: "flight"}),
		func(*handler.Context, handler.Next) (any, error) {
			mfs, err := reg.Gather()
			if err == nil {
				for _, mf := range mfs {
					if mf.GetName() == "flight_http_requests_in_flight" {
						during = mf.GetMetric()[0].GetGauge().GetValue()
					}
				}
			}
			return "ok", nil
		},
	)

	serve(k, get("/"))

	assert.Equal(t, 1.0, during)
	expected := `
# HELP flight_http_requests_in_flight Number of HTTP requests currently being processed.
# TYPE flight_http_requests_in_flight gauge
flight_http_requests_in_flight 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "flight_http_requests_in_flight"))
}

func TestMetricsReusesRegisteredCollectors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	cfg := middleware.MetricsConfig{Registerer: reg, Namespace: "dup"}

	assert.NotPanics(t, func() {
		middleware.MetricsWithConfig(cfg)
		middleware.MetricsWithConfig(cfg)
	})
}

func TestMetricsSkip(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	k := newKernel(middleware.MetricsWithConfig(middleware.MetricsConfig{
		Registerer: reg,
		Namespace:  "skip",
		Skip:       func(*handler.Context) bool { return true },
	}), text("ok"))

	w := serve(k, get("/"))

	assert.Equal(t, http.StatusOK, w.Code)
	count, err := testutil.GatherAndCount(reg, "skip_http_requests_total")
	require.NoError(t, err)
	assert.Zero(t, count)
}
