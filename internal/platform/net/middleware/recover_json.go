package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	perr "namematch/internal/platform/errors"
	"namematch/internal/platform/logger"
	pnet "namematch/internal/platform/net"
	phttp "namematch/internal/platform/net/http"
)

// RecoverJSON turns a handler panic into the 500 envelope. http.ErrAbortHandler
// is re-raised so net/http still drops the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(v)
			}
			onPanic(w, r, v)
		}()
		next.ServeHTTP(w, r)
	})
}

func onPanic(w http.ResponseWriter, r *http.Request, v any) {
	ctx := r.Context()
	reqID := pnet.RequestID(ctx)
	logger.C(ctx).Error().
		Interface("panic", v).
		Bytes("stack", debug.Stack()).
		Msg("handler panicked")

	if reqID != "" {
		w.Header().Set(pnet.HeaderRequestID, reqID)
	}
	phttp.RespondError(w, r, perr.PanicErrf("internal error"))
}
