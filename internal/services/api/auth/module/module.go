// Package module wires LinkedIn sign in into the API using modkit
package module

import (
	"postpilot/internal/adapters/linkedin"
	sessredis "postpilot/internal/adapters/sessions/redis"
	"postpilot/internal/core/credentials"
	modkit "postpilot/internal/modkit"
	"postpilot/internal/modkit/httpkit"

	authhttp "postpilot/internal/services/api/auth/http"
	authsvc "postpilot/internal/services/api/auth/service"
)

// Module implements the auth module
type Module struct {
	*modkit.Base
	ports Ports
	svc   authsvc.Service
}

// New constructs the auth module from LINKEDIN_* and SESSION_* config
// sessions go to redis when deps.RDS is set, process memory otherwise
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("auth"), modkit.WithPrefix("/auth")}, opts...)

	cfg := FromConfig(deps.Cfg)

	li := linkedin.NewClient(linkedin.Options{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		AuthBaseURL:  cfg.AuthBaseURL,
		APIBaseURL:   cfg.APIBaseURL,
		UserAgent:    cfg.UserAgent,
		Timeout:      cfg.Timeout,
		Metrics:      deps.Metrics,
		MediaRoot:    cfg.MediaRoot,
	})

	var sessions credentials.Keyed
	if deps.RDS != nil {
		sessions = sessredis.New(deps.RDS, cfg.SessionPrefix)
	} else {
		sessions = credentials.NewMemory()
	}

	svc := authsvc.New(li, credentials.NewSlot(), authsvc.Options{
		Sessions:   sessions,
		SessionTTL: cfg.SessionTTL,
		Scopes:     cfg.Scopes,
	})

	return &Module{
		Base: b,
		svc:  svc,
		ports: Ports{
			Auth:     authenticator(svc),
			LinkedIn: li,
			Sessions: sessions,
		},
	}
}

// MountRoutes mounts the sign in routes under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { authhttp.Register(rr, m.svc) })
}
