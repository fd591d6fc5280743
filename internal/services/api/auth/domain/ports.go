package domain

import (
	"context"

	"postpilot/internal/adapters/linkedin"
	"postpilot/internal/core/credentials"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Token(ctx context.Context, in TokenInput) (linkedin.TokenPayload, error)
	Me(ctx context.Context, accessToken string) (MeOutput, error)
	AuthorizeURL(in AuthorizeURLQuery) (AuthorizeURLOutput, error)
	Resolve(ctx context.Context, h Hints) (credentials.Credentials, error)
	Logout(ctx context.Context, sessionID string) error
}

// LinkedInPort is the part of the LinkedIn client the auth flow needs
type LinkedInPort interface {
	AuthorizeURL(redirectURI, state string, scopes []string) (string, error)
	ExchangeCode(ctx context.Context, code, redirectURI string) (linkedin.TokenPayload, error)
	FetchIdentity(ctx context.Context, accessToken string) (linkedin.Identity, error)
}
