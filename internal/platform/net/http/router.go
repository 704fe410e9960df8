package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the function shape every route registers
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount against. The API only reads uploads and
// answers, so GET and POST are the verbs on offer
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(pattern string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	With(mw ...func(http.Handler) http.Handler) Router
	Route(prefix string, fn func(Router))
	Mux() http.Handler
}

// AdaptChi wraps m as a Router
func AdaptChi(m *chi.Mux) Router { return chiRouter{m} }

// chiRouter serves the root mux and every sub-router chi hands back
type chiRouter struct{ chi.Router }

func (c chiRouter) Get(path string, h Handler)  { c.Router.Get(path, h) }
func (c chiRouter) Post(path string, h Handler) { c.Router.Post(path, h) }

func (c chiRouter) With(mw ...func(http.Handler) http.Handler) Router {
	return chiRouter{c.Router.With(mw...)}
}

func (c chiRouter) Route(prefix string, fn func(Router)) {
	c.Router.Route(prefix, func(sub chi.Router) { fn(chiRouter{sub}) })
}

func (c chiRouter) Mux() http.Handler { return c.Router }
