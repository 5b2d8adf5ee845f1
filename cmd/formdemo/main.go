// Command formdemo serves a profile form validated with formkit.
//
//	POST /profile  multipart, urlencoded or JSON; fields: name, nickname, bio, tags, avatar, documents
//	GET  /healthz  liveness
//	GET  /readyz   readiness, checks the upload temp dir
package main

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

//go:embed locales/*.yaml
var locales embed.FS

// Config is read from the environment.
type Config struct {
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string `env:"LOG_FORMAT" envDefault:"json"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	HTTP            httpserver.Config
	Binder          binder.Config
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithAttr(slog.String("service", "formdemo")),
		logger.WithContextExtractors(requestIDExtractor),
	)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"),
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log),
	)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(cfg, tr, log))
}

func newRouter(cfg Config, tr *i18n.Translator, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(i18n.Middleware(tr.SupportedLanguages(), cfg.DefaultLanguage))

	parser := binder.New(binder.WithConfig(cfg.Binder), binder.WithLogger(log))
	h := &profileHandler{parser: parser, tr: tr, log: log}

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(log, parser.CheckTempDir))
	r.Post("/profile", h.ServeHTTP)
	return r
}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}
