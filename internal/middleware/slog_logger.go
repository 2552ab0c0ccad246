package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// requestAttrs collects attributes discovered by inner middleware (such as
// the authenticated user) so the access log line can include them.
type requestAttrs struct {
	attrs []any
}

type requestAttrsKey struct{}

// annotate adds key/value to the access log line of the current request.
// It is a no-op when the request is not wrapped by NewSlogLogger.
func annotate(ctx context.Context, key string, value any) {
	if ra, ok := ctx.Value(requestAttrsKey{}).(*requestAttrs); ok {
		ra.attrs = append(ra.attrs, key, value)
	}
}

// NewSlogLogger returns a middleware that logs each request as a structured
// JSON line via the provided slog.Logger. It captures method, path, HTTP
// status, duration, the request ID set by chi's RequestID middleware and,
// for authenticated requests, the user ID.
//
// Wire it after chimiddleware.RequestID so the request ID is available.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// WrapResponseWriter intercepts WriteHeader so we can read the
			// status code after the downstream handler has run.
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ra := &requestAttrs{}
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestAttrsKey{}, ra)))

			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			}
			log.InfoContext(r.Context(), "request", append(args, ra.attrs...)...)
		})
	}
}
