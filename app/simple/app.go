package simple

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/raptor/core/config"
	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/kernel"
	"github.com/dmitrymomot/raptor/core/logger"
	"github.com/dmitrymomot/raptor/core/server"
	"github.com/dmitrymomot/raptor/middleware"
)

// App wires configuration, logging, the kernel with its default middleware
// stack, the request adapter and a Prometheus metrics endpoint.
type App struct {
	config   Config
	kernel   *kernel.Kernel
	adapter  server.Adapter
	registry *prometheus.Registry
	logger   *slog.Logger
}

type AppOption func(*App) error

// NewApp loads Config from the environment and builds the application.
func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// New builds the application from cfg. Handlers are registered on Kernel()
// after the default middleware.
func New(cfg Config, opts ...AppOption) (*App, error) {
	app := &App{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		l, err := newLogger(cfg)
		if err != nil {
			return nil, err
		}
		app.logger = l
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app.kernel = kernel.NewFromConfig(cfg.Kernel,
		kernel.WithLogger(app.logger),
		kernel.WithMiddleware(app.defaultMiddleware()...),
	)

	if app.adapter == nil {
		a, err := server.NewAdapter(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.adapter = a
	}

	return app, nil
}

func newLogger(cfg Config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, err
	}

	env := logger.WithProduction(cfg.AppName)
	if cfg.isDevelopment() {
		env = logger.WithDevelopment(cfg.AppName)
	}
	return logger.New(env, logger.WithLevel(level)), nil
}

func (app *App) defaultMiddleware() []handler.Middleware {
	mw := []handler.Middleware{
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.LoggingWithLogger(app.logger),
		middleware.MetricsWithConfig(middleware.MetricsConfig{
			Registerer: app.registry,
			Namespace:  "raptor",
		}),
	}

	if app.config.RateLimit > 0 {
		mw = append(mw, middleware.RateLimit(rate.Limit(app.config.RateLimit), app.config.RateBurst))
	}
	if len(app.config.CORSOrigins) > 0 {
		mw = append(mw, middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: app.config.CORSOrigins,
		}))
	}

	security := middleware.BalancedSecurity
	if app.config.isDevelopment() {
		security = middleware.DevelopmentSecurity
	}
	return append(mw, middleware.SecurityHeadersWithConfig(security))
}

// Kernel returns the application kernel for handler registration.
func (app *App) Kernel() *kernel.Kernel {
	return app.kernel
}

// Logger returns the application logger.
func (app *App) Logger() *slog.Logger {
	return app.logger
}

// MetricsHandler exposes the application registry in the Prometheus text format.
func (app *App) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{Registry: app.registry})
}

// Run serves requests, and metrics when MetricsAddr is set, until ctx is
// cancelled or either listener fails.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.kernel.Serve(ctx, app.adapter)
	})

	if app.config.MetricsAddr != "" {
		metrics := server.New(app.config.MetricsAddr, server.WithLogger(app.logger))
		g.Go(metrics.Run(ctx, app.MetricsHandler()))
	}

	app.logger.InfoContext(ctx, "application started",
		logger.Component("app"),
		slog.String("name", app.config.AppName),
		slog.String("env", app.config.Env),
	)

	return g.Wait()
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithAdapter(adapter server.Adapter) AppOption {
	return func(app *App) error {
		if adapter == nil {
			return errors.New("adapter cannot be nil")
		}
		app.adapter = adapter
		return nil
	}
}
