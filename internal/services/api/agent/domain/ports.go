package domain

import (
	"context"

	"postpilot/internal/adapters/linkedin"
	"postpilot/internal/core/credentials"
	"postpilot/internal/core/workflow"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Start(ctx context.Context, creds credentials.Credentials, in StartQuery) (StartOutput, error)
	Summary(ctx context.Context) (JobSummary, error)
}

// ProfilePort checks a token before any generation work is spent
type ProfilePort interface {
	FetchProfile(ctx context.Context, accessToken string) (linkedin.Profile, error)
}

// WorkflowPort runs one seed to completion
type WorkflowPort interface {
	Run(ctx context.Context, seed workflow.State, onEvent func(workflow.Event)) (workflow.State, error)
}
