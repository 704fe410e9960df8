package modkit

import (
	"net/http"

	"namematch/internal/modkit/httpkit"
	str "namematch/internal/platform/strings"
)

// Option overrides one field of a module's build
type Option func(*Built)

// Built is the resolved wiring for one module
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Ports are ports the module consumes, owned and typed by that module
	Ports     any
	Subrouter func(httpkit.Router) httpkit.Router
}

// WithName overrides the module name used in logs and the registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix overrides the mount prefix
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends module scoped middleware; repeated calls accumulate
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports another module provides
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithSubrouter wraps the module router before its routes are registered
func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option {
	return func(b *Built) { b.Subrouter = fn }
}

// Build starts from defaults and applies opts. Middleware is copied so the
// result never aliases a caller slice
func Build(defaults Built, opts ...Option) Built {
	b := defaults
	b.Mw = append([]func(http.Handler) http.Handler(nil), defaults.Mw...)
	for _, o := range opts {
		o(&b)
	}
	if b.Subrouter == nil {
		b.Subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	return b
}

// Mount registers routes under b.Prefix with b.Mw applied. An empty prefix panics
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	httpkit.MountUnder(r, str.MustPrefix(b.Prefix), b.Mw, func(sub httpkit.Router) {
		register(b.Subrouter(sub))
	})
}
