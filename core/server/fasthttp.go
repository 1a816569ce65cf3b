package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/logger"
)

// ErrShutdownTimeout is returned when in-flight requests outlive the shutdown timeout.
var ErrShutdownTimeout = errors.New("server shutdown timed out")

// FastHTTP serves a Handler with valyala/fasthttp.
type FastHTTP struct {
	addr     string
	settings settings
}

// NewFastHTTP creates a fasthttp adapter for addr.
func NewFastHTTP(addr string, opts ...Option) *FastHTTP {
	return &FastHTTP{
		addr:     addr,
		settings: newSettings(opts),
	}
}

// Serve implements Adapter.
func (f *FastHTTP) Serve(ctx context.Context, h Handler) error {
	log := f.settings.logger

	srv := &fasthttp.Server{
		Handler:               fastHTTPHandler(ctx, h),
		Name:                  "raptor",
		ReadTimeout:           f.settings.readTimeout,
		WriteTimeout:          f.settings.writeTimeout,
		IdleTimeout:           f.settings.idleTimeout,
		ReadBufferSize:        f.settings.maxHeaderBytes,
		NoDefaultServerHeader: true,
		Logger:                fastHTTPLogger{log},
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "starting server", logger.Component("fasthttp"), slogAddr(f.addr))
		errCh <- srv.ListenAndServe(f.addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server gracefully", logger.Component("fasthttp"), "timeout", f.settings.shutdown)

	done := make(chan error, 1)
	go func() { done <- srv.Shutdown() }()

	select {
	case err := <-done:
		if err != nil {
			log.Error("server shutdown error", logger.Component("fasthttp"), logger.Error(err))
			return err
		}
		log.Info("server shutdown complete", logger.Component("fasthttp"))
		return nil
	case <-time.After(f.settings.shutdown):
		return ErrShutdownTimeout
	}
}

// FastHTTPHandler converts h into a fasthttp.RequestHandler.
func FastHTTPHandler(h Handler) fasthttp.RequestHandler {
	return fastHTTPHandler(context.Background(), h)
}

func fastHTTPHandler(base context.Context, h Handler) fasthttp.RequestHandler {
	return func(fc *fasthttp.RequestCtx) {
		req, err := convertRequest(base, fc)
		if err != nil {
			fc.Error(http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		resp := h.Respond(req)
		if resp == nil {
			fc.Error(http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		writeResponse(fc, resp)
	}
}

func convertRequest(ctx context.Context, fc *fasthttp.RequestCtx) (*http.Request, error) {
	uri := fc.URI()
	target := fmt.Sprintf("%s://%s%s", uri.Scheme(), fc.Host(), fc.RequestURI())

	body := bytes.Clone(fc.PostBody())
	req, err := http.NewRequestWithContext(ctx, string(fc.Method()), target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	fc.Request.Header.VisitAll(func(k, v []byte) {
		req.Header.Add(string(k), string(v))
	})
	req.Host = string(fc.Host())
	req.RemoteAddr = fc.RemoteAddr().String()
	req.RequestURI = string(fc.RequestURI())
	req.ContentLength = int64(len(body))

	return req, nil
}

func writeResponse(fc *fasthttp.RequestCtx, resp *handler.Response) {
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	fc.SetStatusCode(status)

	// fasthttp tracks these outside its generic header list.
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		fc.SetContentType(ct)
	}
	for k, vals := range resp.Header {
		switch http.CanonicalHeaderKey(k) {
		case "Content-Type", "Content-Length":
			continue
		}
		for _, v := range vals {
			fc.Response.Header.Add(k, v)
		}
	}
	fc.SetBody(resp.Body)
}

// fastHTTPLogger routes fasthttp's internal messages to slog.
type fastHTTPLogger struct {
	log *slog.Logger
}

func (l fastHTTPLogger) Printf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...), logger.Component("fasthttp"))
}

func slogAddr(addr string) slog.Attr {
	return slog.String("addr", addr)
}
