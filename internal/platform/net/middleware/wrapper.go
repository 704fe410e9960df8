// Package middleware holds the HTTP middleware the API mounts. Modules import
// this package instead of chi so the router stays swappable
package middleware

import (
	"net/http"

	perr "namematch/internal/platform/errors"
	pnet "namematch/internal/platform/net"
	phttp "namematch/internal/platform/net/http"
	pstrings "namematch/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Chi middleware used as is
var (
	RequestID        = chimw.RequestID
	RealIP           = chimw.RealIP
	NoCache          = chimw.NoCache
	Timeout          = chimw.Timeout
	Heartbeat        = chimw.Heartbeat
	AllowContentType = chimw.AllowContentType
	// Throttle caps in-flight requests; every run holds a whole statement in memory
	Throttle = chimw.Throttle
)

// compressible lists what the API writes: envelopes, match CSVs and previews
var compressible = []string{"application/json", "text/csv", "text/plain"}

// Compress gzips or deflates compressible responses at level
func Compress(level int) func(http.Handler) http.Handler {
	return chimw.NewCompressor(level, compressible...).Handler
}

// MaxBody answers 413 when the declared length is over limit and caps the
// reader for chunked uploads. limit <= 0 disables it
func MaxBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				phttp.RespondError(w, r, perr.TooLargef("request body over %d bytes", limit))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// CORSOptions is the part of go-chi/cors the API configures. Empty lists take
// the defaults below
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	defaultMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	defaultAllowed = []string{"Accept", "Content-Type", pnet.HeaderRequestID, pnet.HeaderRunID}
	// Content-Disposition names CSV downloads; the ids let clients quote a run
	defaultExposed = []string{"Content-Disposition", pnet.HeaderRequestID, pnet.HeaderRunID}
)

// CORS builds the go-chi/cors handler
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, defaultMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, defaultAllowed),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, defaultExposed),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
