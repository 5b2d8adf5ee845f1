package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the HTTP server.
type Option func(*Server)

// Timeouts groups the server timeouts. Zero values are left unchanged.
type Timeouts struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
	Shutdown   time.Duration
}

// WithAddr sets the address the server listens on.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(s *Server) { s.addr = addr }
}

// WithTimeouts overrides the non-zero timeouts of t.
func WithTimeouts(t Timeouts) Option {
	return func(s *Server) {
		if t.ReadHeader > 0 {
			s.timeouts.ReadHeader = t.ReadHeader
		}
		if t.Read > 0 {
			s.timeouts.Read = t.Read
		}
		if t.Write > 0 {
			s.timeouts.Write = t.Write
		}
		if t.Idle > 0 {
			s.timeouts.Idle = t.Idle
		}
		if t.Shutdown > 0 {
			s.timeouts.Shutdown = t.Shutdown
		}
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}
