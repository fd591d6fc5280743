package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the handler shape modules register
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount against; chi stays behind AdaptChi
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)
	Head(path string, h Handler)
	Options(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Mux is the handler for this subtree
	Mux() http.Handler
}

type chiRouter struct{ r chi.Router }

// AdaptChi wraps a chi mux or any chi sub router
func AdaptChi(r chi.Router) Router { return chiRouter{r: r} }

func (c chiRouter) Get(p string, h Handler)     { c.r.Method(http.MethodGet, p, http.HandlerFunc(h)) }
func (c chiRouter) Post(p string, h Handler)    { c.r.Method(http.MethodPost, p, http.HandlerFunc(h)) }
func (c chiRouter) Put(p string, h Handler)     { c.r.Method(http.MethodPut, p, http.HandlerFunc(h)) }
func (c chiRouter) Patch(p string, h Handler)   { c.r.Method(http.MethodPatch, p, http.HandlerFunc(h)) }
func (c chiRouter) Delete(p string, h Handler)  { c.r.Method(http.MethodDelete, p, http.HandlerFunc(h)) }
func (c chiRouter) Head(p string, h Handler)    { c.r.Method(http.MethodHead, p, http.HandlerFunc(h)) }
func (c chiRouter) Options(p string, h Handler) { c.r.Method(http.MethodOptions, p, http.HandlerFunc(h)) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }
func (c chiRouter) Mux() http.Handler                         { return c.r }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}
