// Package logger builds slog loggers and provides attribute helpers for
// consistent structured logging across the pipeline.
//
//	log := logger.New(
//		logger.WithProduction("raptor"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//
//	log.InfoContext(ctx, "request handled",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(resp.Status),
//		logger.Latency(time.Since(start)),
//	)
//
// Attribute helpers return an empty slog.Attr for zero values, so
// logger.Error(nil) or logger.RequestID("") add nothing to the record.
//
// Components accept a *slog.Logger through options and fall back to Discard
// when none is supplied.
package logger
