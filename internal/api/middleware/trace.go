package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that adds a trace ID to the request
// context along with a request-scoped logger carrying it.
// Apply it before any handler that logs or writes error responses.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			if reqID := chimw.GetReqID(ctx); reqID != "" {
				w.Header().Set(chimw.RequestIDHeader, reqID)
				log = log.With(slog.String("request_id", reqID))
			}
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started", slog.String("remote_addr", r.RemoteAddr))

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			log.Info("request completed",
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
