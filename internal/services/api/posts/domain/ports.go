package domain

import (
	"context"

	"postpilot/internal/adapters/linkedin"
	"postpilot/internal/core/credentials"
)

// ServicePort is consumed by handlers
type ServicePort interface {
	Publish(ctx context.Context, creds credentials.Credentials, in PublishInput) (linkedin.PublishResult, error)
	Upload(ctx context.Context, creds credentials.Credentials, in UploadInput) (UploadOutput, error)
}

// LinkedInPort is the slice of the LinkedIn client posts needs
type LinkedInPort interface {
	Publish(ctx context.Context, text string, creds credentials.Credentials, imageAssetURN string) (linkedin.PublishResult, error)
	Upload(ctx context.Context, filePath string, creds credentials.Credentials) (string, error)
}
