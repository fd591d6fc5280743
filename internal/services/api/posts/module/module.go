// Package module wires direct publishing into the API using modkit
package module

import (
	"postpilot/internal/adapters/linkedin"
	modkit "postpilot/internal/modkit"
	"postpilot/internal/modkit/httpkit"
	"postpilot/internal/platform/net/middleware"

	postshttp "postpilot/internal/services/api/posts/http"
	postssvc "postpilot/internal/services/api/posts/service"
)

// Module implements the posts module
type Module struct {
	*modkit.Base
	auth middleware.AuthPort
	svc  postssvc.Service
}

// Ports declares what the posts module needs injected from the auth module
type Ports struct {
	Auth     middleware.AuthPort
	LinkedIn *linkedin.Client
}

// New constructs the posts module
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("posts"), modkit.WithPrefix("/linkedin")}, opts...)

	injected, _ := modkit.Needs[Ports](b)
	if injected.Auth == nil || injected.LinkedIn == nil {
		panic("posts API module requires Auth and LinkedIn ports (from services/api/auth)")
	}
	return &Module{Base: b, auth: injected.Auth, svc: postssvc.New(injected.LinkedIn)}
}

// MountRoutes mounts the direct publishing routes under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { postshttp.Register(rr, m.svc, m.auth) })
}

// Ports returns nil; nothing depends on posts
func (m *Module) Ports() any { return nil }
