package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Liveness answers 200 "ALIVE" as long as the process serves requests.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// Readiness runs every check with the request context and answers 200 "READY"
// when all pass, 503 "NOT_READY" otherwise.
func Readiness(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
