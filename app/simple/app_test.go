package simple_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/raptor/app/simple"
	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/logger"
	"github.com/dmitrymomot/raptor/core/server"
)

// captureAdapter hands the served handler to the test and blocks until cancelled.
type captureAdapter struct {
	handlers chan server.Handler
}

func (a *captureAdapter) Serve(ctx context.Context, h server.Handler) error {
	a.handlers <- h
	<-ctx.Done()
	return nil
}

func testConfig() simple.Config {
	return simple.Config{
		AppName:  "test",
		Env:      "production",
		LogLevel: "info",
	}
}

func TestAppServesThroughDefaultMiddleware(t *testing.T) {
	t.Parallel()

	adapter := &captureAdapter{handlers: make(chan server.Handler, 1)}
	app, err := simple.New(testConfig(),
		simple.WithLogger(logger.Discard()),
		simple.WithAdapter(adapter),
	)
	require.NoError(t, err)

	app.Kernel().Add(func(*handler.Context, handler.Next) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	var h server.Handler
	select {
	case h = <-adapter.handlers:
	case <-time.After(time.Second):
		t.Fatal("adapter was not started")
	}

	resp := h.Respond(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "SAMEORIGIN", resp.Header.Get("X-Frame-Options"))

	w := httptest.NewRecorder()
	app.MetricsHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `raptor_http_requests_total{method="GET",status="200"} 1`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("app did not stop")
	}
}

func TestAppOptionalMiddleware(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	cfg.CORSOrigins = []string{"https://app.example.com"}

	app, err := simple.New(cfg, simple.WithLogger(logger.Discard()), simple.WithAdapter(&captureAdapter{}))
	require.NoError(t, err)
	app.Kernel().Add(func(*handler.Context, handler.Next) (any, error) {
		return "ok", nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	resp := app.Kernel().Respond(req)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = app.Kernel().Respond(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)
}

func TestAppOptionsValidation(t *testing.T) {
	t.Parallel()

	_, err := simple.New(testConfig(), simple.WithLogger(nil))
	assert.Error(t, err)

	_, err = simple.New(testConfig(), simple.WithAdapter(nil))
	assert.Error(t, err)
}

func TestAppInvalidLogLevel(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.LogLevel = "loud"

	_, err := simple.New(cfg, simple.WithAdapter(&captureAdapter{}))
	assert.Error(t, err)
}

func TestAppUnknownAdapter(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Server = server.DefaultConfig()
	cfg.Server.Adapter = "gopher"

	_, err := simple.New(cfg, simple.WithLogger(logger.Discard()))
	assert.True(t, errors.Is(err, server.ErrUnknownAdapter))
}
