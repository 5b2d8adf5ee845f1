package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// Server serves HTTP until its context is cancelled and then drains in-flight
// requests, so uploads being validated are finished and their temp files
// removed before the process exits.
type Server struct {
	addr     string
	timeouts Timeouts
	log      *slog.Logger

	mu      sync.Mutex
	running bool
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	s := &Server{
		addr: ":8080",
		timeouts: Timeouts{
			ReadHeader: defaultReadHeaderTimeout,
			Shutdown:   defaultShutdownTimeout,
		},
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run listens on the configured address and blocks until ctx is done or the
// server fails.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	return s.Serve(ctx, ln, handler)
}

// Serve is Run over an existing listener. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		_ = ln.Close()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if handler == nil {
		handler = http.NotFoundHandler()
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: s.timeouts.ReadHeader,
		ReadTimeout:       s.timeouts.Read,
		WriteTimeout:      s.timeouts.Write,
		IdleTimeout:       s.timeouts.Idle,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	s.log.InfoContext(ctx, "http server started", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Join(ErrStart, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeouts.Shutdown)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(ErrShutdown, err)
	}
	<-errCh

	s.log.InfoContext(ctx, "http server stopped")
	return nil
}
