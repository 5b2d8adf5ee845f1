// Package httpserver runs an http.Handler with configured timeouts and a
// graceful shutdown tied to a context.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Liveness and Readiness build probe handlers; readiness checks receive the
// request context.
package httpserver
