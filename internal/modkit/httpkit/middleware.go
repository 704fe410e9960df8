package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"namematch/internal/platform/net/middleware"
)

// Defaults applied by CommonStack
const (
	DefaultTimeout = 60 * time.Second
	SlowRequest    = 5 * time.Second
	HealthPath     = "/health"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// MaxBodyBytes caps request bodies, 0 disables the cap
	MaxBodyBytes int64
	// Timeout bounds each request, 0 means DefaultTimeout
	Timeout time.Duration
	CORS    middleware.CORSOptions
}

// CommonStack is the middleware every API scope runs, outermost first.
// Recovery sits inside the id middleware so panics still carry a request id
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	access := middleware.AccessLogOptions{Slow: SlowRequest, SkipPaths: []string{HealthPath}}

	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.RecoverJSON,
		middleware.MaxBody(o.MaxBodyBytes),
		middleware.NoCache,
		middleware.AccessLogZerolog(access),
		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat(HealthPath),
		middleware.Timeout(o.Timeout),
	}
}
