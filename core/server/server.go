package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/raptor/core/logger"
)

// ErrServerAlreadyRunning is returned by Start when the server is already serving.
var ErrServerAlreadyRunning = errors.New("server is already running")

// Server wraps http.Server with graceful shutdown and configuration options.
// Safe for concurrent use.
type Server struct {
	mu       sync.RWMutex
	addr     string
	settings settings
	server   *http.Server
	listener net.Listener
	running  bool
}

// New creates a net/http server for addr.
// Defaults to a 30-second graceful shutdown timeout and a no-op logger.
func New(addr string, opts ...Option) *Server {
	return &Server{
		addr:     addr,
		settings: newSettings(opts),
	}
}

// Addr returns the bound address once the server is listening, or the
// configured address before that.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Serve implements Adapter. It blocks until ctx is cancelled and the server
// has shut down.
func (s *Server) Serve(ctx context.Context, h Handler) error {
	return s.Run(ctx, HTTPHandler(h))()
}

// Start starts the server and blocks until the context is canceled or an error occurs.
// Returns ctx.Err() when the context is canceled; use Stop for graceful shutdown.
func (s *Server) Start(ctx context.Context, h http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.running = true
	s.listener = ln
	s.server = &http.Server{
		Handler:        h,
		ReadTimeout:    s.settings.readTimeout,
		WriteTimeout:   s.settings.writeTimeout,
		IdleTimeout:    s.settings.idleTimeout,
		MaxHeaderBytes: s.settings.maxHeaderBytes,
	}
	srv := s.server
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.settings.logger.InfoContext(ctx, "starting server",
			logger.Component("server"),
			slogAddr(ln.Addr().String()),
		)

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop gracefully shuts down the server using the configured timeout.
// Returns immediately if the server is not running.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.server == nil {
		return nil
	}

	log := s.settings.logger
	log.Info("shutting down server gracefully", logger.Component("server"), "timeout", s.settings.shutdown)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.settings.shutdown)
	defer cancel()

	err := s.server.Shutdown(shutdownCtx)
	s.running = false

	if err != nil {
		log.Error("server shutdown error", logger.Component("server"), logger.Error(err))
		return err
	}

	log.Info("server shutdown complete", logger.Component("server"))
	return nil
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// The returned function starts the server, waits for ctx cancellation and
// shuts down gracefully.
func (s *Server) Run(ctx context.Context, h http.Handler) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx, h)
		}()

		select {
		case <-ctx.Done():
			if err := s.Stop(); err != nil {
				s.settings.logger.Error("failed to stop server during context cancellation",
					logger.Component("server"),
					logger.Error(err),
				)
			}
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}
