// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"
	"time"

	"namematch/internal/platform/logger"
	pnet "namematch/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests at or above this duration at warn; 0 disables it
	Slow time.Duration
	// SkipPaths are served but not logged (metrics scrapes, probes)
	SkipPaths []string
}

// AccessLogZerolog logs one line per request with status, timing, sizes and the
// run id a reconcile handler stamped on the response. The request id is put on
// ctx first so handler logs through logger.C carry it too
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(opt.SkipPaths))
	for _, p := range opt.SkipPaths {
		skip[p] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()))
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			l := logger.C(ctx)
			ev := l.Info()
			switch {
			case status >= http.StatusInternalServerError:
				ev = l.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				ev = l.Warn().Bool("slow", true)
			}
			if run := ww.Header().Get(pnet.HeaderRunID); run != "" {
				ev = ev.Str("run_id", run)
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Dur("elapsed", elapsed).
				Int64("content_length", r.ContentLength).
				Int("bytes", ww.BytesWritten()).
				Msg("request done")
		})
	}
}
