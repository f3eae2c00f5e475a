// Package accesslog provides an HTTP middleware that logs one line per
// request and tags the request context with a correlation id.
package accesslog

import (
	"net/http"
	"time"

	"github.com/DrWallflower/minibank/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Handler returns a middleware that records the method, path, status,
// byte count and duration of every request. Each request gets a uuid
// carried in the context so downstream log entries correlate.
func Handler(l logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := logger.WithRequestID(r.Context(), uuid.NewString())
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(ctx))

			l.With(ctx,
				"duration_ms", time.Since(start).Milliseconds(),
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
			).Infof("%s %s %s %d", r.Method, r.URL.Path, r.Proto, ww.Status())
		}
		return http.HandlerFunc(f)
	}
}
