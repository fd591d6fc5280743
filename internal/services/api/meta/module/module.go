// Package module mounts the meta endpoints
package module

import (
	"context"
	"time"

	"postpilot/internal/core/version"
	modkit "postpilot/internal/modkit"
	"postpilot/internal/modkit/httpkit"
	"postpilot/internal/modkit/module"

	metahttp "postpilot/internal/services/api/meta/http"

	goredis "github.com/redis/go-redis/v9"
)

// Module serves /meta; it exports no ports
type Module struct {
	*modkit.Base
	deps metahttp.Deps
}

// New captures the start time for the uptime report
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	d := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   time.Now(),
		Modules:     module.Names,
	}
	// assign only when set so the interface stays nil for skipped backends
	if p, ok := deps.PG.(metahttp.Pinger); ok {
		d.PG = p
	}
	if deps.RDS != nil {
		d.Redis = redisPing{deps.RDS}
	}
	return &Module{
		Base: modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...),
		deps: d,
	}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

func (m *Module) Ports() any { return nil }

type redisPing struct{ c goredis.UniversalClient }

func (p redisPing) Ping(ctx context.Context) error { return p.c.Ping(ctx).Err() }
