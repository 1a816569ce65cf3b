package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/response"
)

// CORSConfig configures Cross-Origin Resource Sharing.
type CORSConfig struct {
	// Skip allows bypassing CORS handling for specific requests
	Skip func(ctx *handler.Context) bool

	// AllowOrigins specifies allowed origins. Use "*" for all origins.
	// If empty, defaults to allowing all origins ("*")
	AllowOrigins []string

	// AllowMethods specifies allowed HTTP methods.
	// If empty, defaults to GET, HEAD, PUT, PATCH, POST, DELETE
	AllowMethods []string

	// AllowHeaders specifies allowed request headers.
	// If empty, defaults to common headers including Authorization and Content-Type
	AllowHeaders []string

	// ExposeHeaders specifies which headers are exposed to the client
	ExposeHeaders []string

	// AllowCredentials indicates whether credentials are allowed.
	// Never sent together with a wildcard origin.
	AllowCredentials bool

	// MaxAge specifies how long preflight requests can be cached (in seconds)
	MaxAge int

	// AllowOriginFunc provides custom origin validation logic.
	// Takes precedence over AllowOrigins when set.
	AllowOriginFunc func(origin string) (string, bool)
}

// CORS creates a CORS middleware allowing all origins.
func CORS() handler.Middleware {
	return CORSWithConfig(CORSConfig{})
}

// CORSWithConfig answers preflight requests directly with 204 No Content, or
// 403 Forbidden for disallowed origins and methods. Other requests continue
// down the chain with the CORS headers applied to whatever response results.
func CORSWithConfig(cfg CORSConfig) handler.Middleware {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			"X-Request-ID",
		}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")

	allowOriginsMap := make(map[string]bool, len(cfg.AllowOrigins))
	for _, origin := range cfg.AllowOrigins {
		allowOriginsMap[origin] = true
	}

	return func(ctx *handler.Context, next handler.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return skip(next)
		}

		req := ctx.Request()
		origin := req.Header.Get("Origin")

		var allowedOrigin string
		allowed := false

		// custom function > wildcard/empty > explicit list
		switch {
		case cfg.AllowOriginFunc != nil:
			allowedOrigin, allowed = cfg.AllowOriginFunc(origin)
		case len(cfg.AllowOrigins) == 0 || allowOriginsMap["*"]:
			allowedOrigin, allowed = "*", true
		case allowOriginsMap[origin]:
			allowedOrigin, allowed = origin, true
		}

		requestMethod := req.Header.Get("Access-Control-Request-Method")
		if req.Method == http.MethodOptions && requestMethod != "" {
			if !allowed || !slices.Contains(cfg.AllowMethods, requestMethod) {
				return nil, response.ErrForbidden.WithMessage("CORS request not allowed")
			}

			resp := response.NoContent()
			resp.Header.Set("Access-Control-Allow-Origin", allowedOrigin)
			resp.Header.Set("Access-Control-Allow-Methods", allowMethods)
			if req.Header.Get("Access-Control-Request-Headers") != "" {
				resp.Header.Set("Access-Control-Allow-Headers", allowHeaders)
			}
			if cfg.AllowCredentials && allowedOrigin != "*" {
				resp.Header.Set("Access-Control-Allow-Credentials", "true")
			}
			if cfg.MaxAge > 0 {
				resp.Header.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}
			resp.Header.Add("Vary", "Origin")
			resp.Header.Add("Vary", "Access-Control-Request-Method")
			resp.Header.Add("Vary", "Access-Control-Request-Headers")
			return resp, nil
		}

		if !allowed {
			return skip(next)
		}

		headers := map[string]string{
			"Access-Control-Allow-Origin": allowedOrigin,
			"Vary":                        "Origin",
		}
		if cfg.AllowCredentials && allowedOrigin != "*" {
			headers["Access-Control-Allow-Credentials"] = "true"
		}
		if exposeHeaders != "" {
			headers["Access-Control-Expose-Headers"] = exposeHeaders
		}

		ensureHeaders(ctx, headers)
		next()
		ensureHeaders(ctx, headers)
		return nil, nil
	}
}

// AllowOriginWildcard reflects any non-empty origin. Unlike "*" it can be
// combined with AllowCredentials.
func AllowOriginWildcard() func(origin string) (string, bool) {
	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}
		return origin, true
	}
}

// AllowOriginSubdomain allows domain and any of its subdomains, on any port.
func AllowOriginSubdomain(domain string) func(origin string) (string, bool) {
	domain = strings.TrimPrefix(domain, "*.")
	domain = strings.TrimPrefix(domain, ".")
	domain = strings.ToLower(domain)
	domainWithDot := "." + domain

	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}

		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return "", false
		}

		host := strings.ToLower(u.Hostname())
		if host == domain || strings.HasSuffix(host, domainWithDot) {
			return origin, true
		}
		return "", false
	}
}
