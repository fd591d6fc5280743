// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"postpilot/internal/platform/config"
	"postpilot/internal/platform/logger"
	"postpilot/internal/platform/metrics"
	phttp "postpilot/internal/platform/net/http"
	"postpilot/internal/platform/net/middleware"
	"postpilot/internal/platform/store"

	"postpilot/internal/modkit"
	"postpilot/internal/modkit/httpkit"
	"postpilot/internal/modkit/module"
	"postpilot/internal/modkit/swaggerkit"

	agentmod "postpilot/internal/services/api/agent/module"
	authmod "postpilot/internal/services/api/auth/module"
	metamod "postpilot/internal/services/api/meta/module"
	postsmod "postpilot/internal/services/api/posts/module"
)

// Options are the API options
type Options struct {
	// Config is the root config; modules read their own LINKEDIN_, LLM_, WORKFLOW_ keys from it
	Config config.Conf
	// APIConfig is the CORE_API_ view
	APIConfig      config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
}

// credentialHeaders must survive CORS preflight for browser clients
var credentialHeaders = []string{
	"Accept",
	"Authorization",
	"Content-Type",
	"X-Request-ID",
	"access-token",
	"person-urn",
	"X-Session-ID",
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	st := opt.Store
	if st == nil {
		st = &store.Store{}
	}

	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		PG:      st.PG,
		RDS:     st.RDS,
		Metrics: opt.Metrics,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// auth owns the LinkedIn client and the credential resolver; the publishing modules borrow both
	auth := authmod.New(deps)
	ap := module.MustPortsOf[authmod.Ports](auth)

	mods := []module.Module{
		metamod.New(deps),
		auth,
		agentmod.New(deps, modkit.WithPorts(agentmod.Ports{Auth: ap.Auth, LinkedIn: ap.LinkedIn})),
		postsmod.New(deps, modkit.WithPorts(postsmod.Ports{Auth: ap.Auth, LinkedIn: ap.LinkedIn})),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORS: middleware.CORSOptions{
			AllowedOrigins:   opt.APIConfig.MayCSV("CORS_ORIGINS", []string{"*"}),
			AllowedHeaders:   credentialHeaders,
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: opt.APIConfig.MayBool("CORS_CREDENTIALS", false),
			MaxAge:           300,
		},
		RequestTimeout: opt.APIConfig.MayDuration("REQUEST_TIMEOUT", 10*time.Minute),
		SlowRequest:    opt.APIConfig.MayDuration("SLOW_REQUEST", 30*time.Second),
		Heartbeat:      "/api/v1/health",
	})
	if opt.Metrics != nil {
		stack = append([]func(http.Handler) http.Handler{opt.Metrics.Middleware}, stack...)
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	// Swagger + profiler
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
