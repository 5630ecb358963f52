package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-kratos/kratos/v2/log"
)

// requestInfo is filled in by inner middleware and read back once the
// request completes.
type requestInfo struct {
	subject string
}

const requestInfoKey contextKey = "request.info"

func setLoggedSubject(ctx context.Context, sub string) {
	if info, ok := ctx.Value(requestInfoKey).(*requestInfo); ok {
		info.subject = sub
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger log.Logger) func(http.Handler) http.Handler {
	l := log.With(logger, "module", "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			info := &requestInfo{}

			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestInfoKey, info)))

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			level := log.LevelInfo
			if status >= http.StatusInternalServerError {
				level = log.LevelError
			}

			keyvals := []interface{}{
				"msg", "request completed",
				"method", r.Method,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			}
			if info.subject != "" {
				keyvals = append(keyvals, "subject", info.subject)
			}
			_ = l.Log(level, keyvals...)
		})
	}
}
