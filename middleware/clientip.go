package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/response"
)

// clientIPContextKey is used as a key for storing client IP in request context.
type clientIPContextKey struct{}

// ClientIPConfig configures the client IP extraction middleware.
type ClientIPConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *handler.Context) bool
	// HeaderName is the response header carrying the IP when StoreInHeader is set (default: "X-Client-IP")
	HeaderName string
	// StoreInHeader includes the IP in response headers
	StoreInHeader bool
	// ValidateFunc rejects requests with 403 Forbidden when it returns an error
	ValidateFunc func(ctx *handler.Context, ip string) error
}

// ClientIP stores the real client IP in the request context.
func ClientIP() handler.Middleware {
	return ClientIPWithConfig(ClientIPConfig{})
}

// ClientIPWithConfig extracts the client IP from proxy headers, stores it in
// the context and optionally validates it or echoes it as a response header.
func ClientIPWithConfig(cfg ClientIPConfig) handler.Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Client-IP"
	}

	return func(ctx *handler.Context, next handler.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return skip(next)
		}

		ip := RealIP(ctx.Request())
		ctx.SetValue(clientIPContextKey{}, ip)

		if cfg.ValidateFunc != nil {
			if err := cfg.ValidateFunc(ctx, ip); err != nil {
				return nil, response.ErrForbidden.WithCause(err)
			}
		}

		if !cfg.StoreInHeader {
			return skip(next)
		}

		headers := map[string]string{cfg.HeaderName: ip}
		ensureHeaders(ctx, headers)
		next()
		ensureHeaders(ctx, headers)
		return nil, nil
	}
}

// GetClientIP retrieves the client IP address from the request context.
func GetClientIP(ctx *handler.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}

// proxyHeaders are checked in order before falling back to RemoteAddr.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// RealIP returns the client IP from well-known proxy headers, falling back to
// RemoteAddr. Only the leftmost X-Forwarded-For entry is considered.
func RealIP(r *http.Request) string {
	for _, h := range proxyHeaders {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		if h == "X-Forwarded-For" {
			v, _, _ = strings.Cut(v, ",")
		}
		if ip := normalizeIP(v); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalizeIP(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func normalizeIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
