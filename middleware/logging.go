package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// LogHeaders enables logging of request and response headers (default: false for security)
	LogHeaders bool

	// SensitiveHeaders is a list of header names to redact (default: common auth headers)
	SensitiveHeaders []string

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging
	Component string
}

// Logging creates a request logging middleware with default configuration.
func Logging() handler.Middleware {
	return LoggingWithConfig(LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger(log *slog.Logger) handler.Middleware {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig logs one record per request after the rest of the chain
// has produced the final response. Server errors are logged at error level,
// client errors and slow requests at warning level.
func LoggingWithConfig(cfg LoggingConfig) handler.Middleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"Set-Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(ctx *handler.Context, next handler.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return skip(next)
		}

		start := time.Now()
		resp := next()
		latency := time.Since(start)

		// Read the request after next: downstream middleware may have stored values on it.
		req := ctx.Request()
		attrs := []slog.Attr{
			logger.Component(cfg.Component),
			logger.Event("request"),
			logger.Method(req.Method),
			logger.Path(req.URL.Path),
			logger.StatusCode(resp.Status),
			logger.Latency(latency),
			slog.Int("bytes_out", len(resp.Body)),
		}
		if req.URL.RawQuery != "" {
			attrs = append(attrs, slog.String("query", req.URL.RawQuery))
		}
		if id, ok := GetRequestID(ctx); ok {
			attrs = append(attrs, logger.RequestID(id))
		}
		if ip, ok := GetClientIP(ctx); ok {
			attrs = append(attrs, logger.ClientIP(ip))
		}
		if err := ctx.Error(); err != nil {
			attrs = append(attrs, logger.Error(err))
		}
		if cfg.LogHeaders {
			attrs = append(attrs,
				logger.Group("request_headers", headerAttrs(req.Header, cfg.SensitiveHeaders)...),
				logger.Group("response_headers", headerAttrs(resp.Header, cfg.SensitiveHeaders)...),
			)
		}

		level := cfg.LogLevel
		msg := "request completed"
		switch {
		case resp.Status >= http.StatusInternalServerError:
			level = slog.LevelError
			msg = "request failed"
		case resp.Status >= http.StatusBadRequest:
			level = max(level, slog.LevelWarn)
		case latency > cfg.SlowRequestThreshold:
			level = max(level, slog.LevelWarn)
			msg = "slow request"
		}

		cfg.Logger.LogAttrs(context.WithoutCancel(ctx), level, msg, attrs...)
		return nil, nil
	}
}

func headerAttrs(h http.Header, sensitive []string) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(h))
	for name, values := range h {
		if slices.ContainsFunc(sensitive, func(s string) bool {
			return http.CanonicalHeaderKey(s) == name
		}) {
			attrs = append(attrs, slog.String(name, "[REDACTED]"))
			continue
		}
		attrs = append(attrs, slog.Any(name, values))
	}
	return attrs
}
