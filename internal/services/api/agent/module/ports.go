package module

import (
	"context"

	"postpilot/internal/adapters/linkedin"
	"postpilot/internal/core/credentials"
	"postpilot/internal/core/workflow"
	"postpilot/internal/platform/net/middleware"
	"postpilot/internal/services/api/agent/domain"
	agentsvc "postpilot/internal/services/api/agent/service"
)

// Ports declares what the agent module needs injected from the auth module
type Ports struct {
	Auth     middleware.AuthPort
	LinkedIn *linkedin.Client
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptAgentPort struct{ svc agentsvc.Service }

// Summary returns the completed and failed run counts
func (a adaptAgentPort) Summary(ctx context.Context) (domain.JobSummary, error) {
	return a.svc.Summary(ctx)
}

// publisher narrows the LinkedIn publish result to what a run records
type publisher struct{ c *linkedin.Client }

func (p publisher) Publish(ctx context.Context, text string, creds credentials.Credentials, imageAssetURN string) (workflow.Receipt, error) {
	res, err := p.c.Publish(ctx, text, creds, imageAssetURN)
	if err != nil {
		return workflow.Receipt{}, err
	}
	return workflow.Receipt{PostURN: res.PostURN, Message: res.Message}, nil
}
