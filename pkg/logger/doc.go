// Package logger builds *slog.Logger instances from functional options and
// provides attribute helpers used across formkit.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result in ContextHandler, which pulls request scoped values such as a
// request id out of the context of every record.
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithContextValue("request_id", requestIDKey),
//	)
//	log.DebugContext(ctx, "form field rejected",
//		logger.Field("email"),
//		logger.Messages([]string{"This field is missing."}),
//	)
package logger
