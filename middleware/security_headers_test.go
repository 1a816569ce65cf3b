package middleware_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/response"
	"github.com/dmitrymomot/raptor/middleware"
)

func TestSecurityHeadersPresets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mw     handler.Middleware
		header string
		want   string
	}{
		{name: "balanced frame options", mw: middleware.SecurityHeaders(), header: "X-Frame-Options", want: "SAMEORIGIN"},
		{name: "balanced hsts", mw: middleware.SecurityHeaders(), header: "Strict-Transport-Security", want: middleware.BalancedSecurity.StrictTransportSecurity},
		{name: "strict frame options", mw: middleware.SecurityHeadersStrict(), header: "X-Frame-Options", want: "DENY"},
		{name: "strict coep", mw: middleware.SecurityHeadersStrict(), header: "Cross-Origin-Embedder-Policy", want: "require-corp"},
		{name: "relaxed has no frame options", mw: middleware.SecurityHeadersRelaxed(), header: "X-Frame-Options", want: ""},
		{name: "relaxed nosniff", mw: middleware.SecurityHeadersRelaxed(), header: "X-Content-Type-Options", want: "nosniff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(newKernel(tt.mw, text("ok")), get("/"))

			assert.Equal(t, tt.want, w.Header().Get(tt.header))
		})
	}
}

func TestSecurityHeadersDevelopmentDisablesHSTS(t *testing.T) {
	t.Parallel()

	cfg := middleware.StrictSecurity
	cfg.IsDevelopment = true

	w := serve(newKernel(middleware.SecurityHeadersWithConfig(cfg), text("ok")), get("/"))

	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestSecurityHeadersCustomHeaders(t *testing.T) {
	t.Parallel()

	cfg := middleware.RelaxedSecurity
	cfg.CustomHeaders = map[string]string{"X-Powered-By": "raptor"}

	w := serve(newKernel(middleware.SecurityHeadersWithConfig(cfg), text("ok")), get("/"))

	assert.Equal(t, "raptor", w.Header().Get("X-Powered-By"))
}

func TestSecurityHeadersOnErrorAndPassthrough(t *testing.T) {
	t.Parallel()

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		w := serve(newKernel(middleware.SecurityHeaders(), fails(response.ErrBadRequest)), get("/"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("passthrough response", func(t *testing.T) {
		t.Parallel()

		k := newKernel(middleware.SecurityHeaders(), func(*handler.Context, handler.Next) (any, error) {
			return response.Redirect("/login"), nil
		})
		w := serve(k, get("/"))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("handler header wins", func(t *testing.T) {
		t.Parallel()

		k := newKernel(middleware.SecurityHeaders(), func(*handler.Context, handler.Next) (any, error) {
			return response.WithHeaders(response.String("ok"), map[string]string{"X-Frame-Options": "DENY"}), nil
		})
		w := serve(k, get("/"))

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	})
}

func TestSecurityHeadersSkip(t *testing.T) {
	t.Parallel()

	cfg := middleware.BalancedSecurity
	cfg.Skip = func(*handler.Context) bool { return true }

	w := serve(newKernel(middleware.SecurityHeadersWithConfig(cfg), text("ok")), get("/"))

	assert.Empty(t, w.Header().Get("X-Content-Type-Options"))
}

func TestHeaderMiddlewareLeavesSharedResponseUntouched(t *testing.T) {
	t.Parallel()

	shared := response.String("cached")
	k := newKernel(
		middleware.RequestID(),
		middleware.SecurityHeaders(),
		middleware.CORS(),
		func(*handler.Context, handler.Next) (any, error) {
			return shared, nil
		},
	)

	ids := make(map[string]bool)
	for range 3 {
		req := get("/")
		req.Header.Set("Origin", "https://example.com")
		w := serve(k, req)

		assert.Equal(t, "cached", w.Body.String())
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		ids[w.Header().Get("X-Request-ID")] = true
	}

	assert.Len(t, ids, 3)
	assert.Empty(t, shared.Header.Get("X-Request-ID"))
	assert.Empty(t, shared.Header.Get("X-Content-Type-Options"))
	assert.Empty(t, shared.Header.Get("Access-Control-Allow-Origin"))
}
