// Package module wires the posting agent into the API using modkit
package module

import (
	"postpilot/internal/adapters/llm"
	"postpilot/internal/core/workflow"
	modkit "postpilot/internal/modkit"
	"postpilot/internal/modkit/httpkit"
	"postpilot/internal/platform/net/middleware"

	agenthttp "postpilot/internal/services/api/agent/http"
	agentrepo "postpilot/internal/services/api/agent/repo"
	agentsvc "postpilot/internal/services/api/agent/service"
)

// Module implements the agent module
type Module struct {
	*modkit.Base
	auth  middleware.AuthPort
	ports adaptAgentPort
	svc   agentsvc.Service
}

// New constructs the agent module; Ports from the auth module must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("agent"), modkit.WithPrefix("/agent")}, opts...)

	cfg := FromConfig(deps.Cfg)

	injected, _ := modkit.Needs[Ports](b)
	if injected.Auth == nil || injected.LinkedIn == nil {
		panic("agent API module requires Auth and LinkedIn ports (from services/api/auth)")
	}

	gen := llm.NewOpenAIProvider(llm.Config{
		APIURL:  cfg.LLMURL,
		APIKey:  cfg.LLMKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})
	runner := workflow.NewRunner(gen, injected.LinkedIn, publisher{c: injected.LinkedIn}, workflow.Options{
		MaxIterations: cfg.MaxIterations,
		StepTimeout:   cfg.StepTimeout,
		Metrics:       deps.Metrics,
	})

	svc := agentsvc.New(injected.LinkedIn, runner, agentsvc.Options{
		DB:               deps.PG,
		Binder:           agentrepo.NewPG(),
		StatementTimeout: cfg.SummaryStatementTimeout,
	})

	return &Module{Base: b, auth: injected.Auth, ports: adaptAgentPort{svc: svc}, svc: svc}
}

// MountRoutes mounts the run and summary routes under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { agenthttp.Register(rr, m.svc, m.auth) })
}
