package modkit

import (
	"net/http"

	"postpilot/internal/modkit/httpkit"
	str "postpilot/internal/platform/strings"
)

// Base is the option driven half of a module
// embed it and implement MountRoutes with Mount plus Ports
type Base struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	needs  any
	extra  []func(httpkit.Router)
}

// Build applies defaults first so callers can override them
func Build(defaults []Option, opts ...Option) *Base {
	b := &Base{}
	for _, o := range defaults {
		o(b)
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Base) Name() string   { return str.MustString(b.name, "module name") }
func (b *Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Mount opens the prefix, applies module middleware, then runs register and any WithRoutes extras
func (b *Base) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(b.Prefix(), func(rr httpkit.Router) {
		for _, mw := range b.mw {
			rr.Use(mw)
		}
		register(rr)
		for _, fn := range b.extra {
			fn(rr)
		}
	})
}

// Needs returns the ports injected with WithPorts when they are a T
func Needs[T any](b *Base) (T, bool) {
	v, ok := b.needs.(T)
	return v, ok
}
