// Command raptor runs a demo service on top of the kernel.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/raptor/app/simple"
	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/health"
	"github.com/dmitrymomot/raptor/core/logger"
	"github.com/dmitrymomot/raptor/core/response"
	"github.com/dmitrymomot/raptor/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := simple.NewApp()
	if err != nil {
		slog.Error("failed to initialize application", logger.Error(err))
		os.Exit(1)
	}

	app.Kernel().Add(routes(health.Readiness(app.Logger())))

	if err := app.Run(ctx); err != nil {
		app.Logger().Error("application stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

type greeting struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// routes returns a terminal middleware dispatching on the request path.
func routes(ready handler.Middleware) handler.Middleware {
	return func(ctx *handler.Context, next handler.Next) (any, error) {
		switch ctx.Request().URL.Path {
		case "/health/live":
			return health.Liveness(ctx, next)
		case "/health/ready":
			return ready(ctx, next)
		}
		return demo(ctx)
	}
}

func demo(ctx *handler.Context) (any, error) {
	r := ctx.Request()

	switch r.URL.Path {
	case "/":
		id, _ := middleware.GetRequestID(ctx)
		return greeting{Message: "Hello from raptor", RequestID: id}, nil
	case "/text":
		return "plain text body", nil
	case "/html":
		return "<h1>Hello</h1>", nil
	case "/redirect":
		return response.Redirect("/"), nil
	case "/panic":
		panic("demo panic")
	case "/teapot":
		return nil, response.ErrTeapot
	case "/signup":
		return nil, response.ErrUnprocessableEntity.WithErrors(map[string][]string{
			"email": {"is required"},
		})
	case "/whoami":
		ip, _ := middleware.GetClientIP(ctx)
		return fmt.Sprintf("you are %s", ip), nil
	}

	return nil, response.ErrNotFound.WithCause(errors.New(r.URL.Path))
}
