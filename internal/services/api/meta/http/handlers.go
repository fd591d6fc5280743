// Package http serves the meta endpoints: liveness, readiness, build and service info
package http

import (
	"context"
	"net/http"
	"time"

	"postpilot/internal/core/version"
	"postpilot/internal/modkit/httpkit"
)

const readyTimeout = 2 * time.Second

// Pinger is a backend the ready probe can check
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// PG and Redis are nil when the backend is not configured
	PG    Pinger
	Redis Pinger
	// Modules lists the mounted API modules
	Modules func() []string
}

type handlers struct{ Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"postpilot-api"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck is one backend probe; status is ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok unless a configured backend failed
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name    string   `json:"name"    example:"postpilot-api"`
	Started string   `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules" example:"agent,auth,meta,posts"`
}

func rfc3339(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Now: rfc3339(time.Now())}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok"}
	for _, b := range []struct {
		name string
		p    Pinger
	}{{"pg", h.PG}, {"redis", h.Redis}} {
		c := ReadyCheck{Name: b.name, Status: "skipped"}
		if b.p != nil {
			c.Status = "ok"
			if err := b.p.Ping(ctx); err != nil {
				c.Status, c.Error = "fail", err.Error()
				out.Status = "fail"
			}
		}
		out.Checks = append(out.Checks, c)
	}
	return out, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(_ *http.Request) (any, error) {
	out := ServiceResponse{
		Name:    h.ServiceName,
		Started: rfc3339(h.StartedAt),
		Uptime:  int64(time.Since(h.StartedAt) / time.Second),
		Modules: []string{},
	}
	if h.Modules != nil {
		out.Modules = h.Modules()
	}
	return out, nil
}
