package modkit

import (
	"net/http"

	"postpilot/internal/modkit/httpkit"
)

// Option configures a module Base
type Option func(*Base)

// WithName sets the name used in logs and the port registry
func WithName(name string) Option {
	return func(b *Base) { b.name = name }
}

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option {
	return func(b *Base) { b.prefix = prefix }
}

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mw = append(b.mw, mw...) }
}

// WithPorts injects ports a module needs from another module
// the concrete type is owned by the receiving module
func WithPorts[T any](p T) Option {
	return func(b *Base) { b.needs = p }
}

// WithRoutes registers extra endpoints after the module's own
func WithRoutes(fn func(httpkit.Router)) Option {
	return func(b *Base) { b.extra = append(b.extra, fn) }
}
