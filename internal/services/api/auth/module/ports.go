package module

import (
	"context"
	"net/http"
	"strings"

	"postpilot/internal/adapters/linkedin"
	"postpilot/internal/core/credentials"
	"postpilot/internal/modkit/httpkit"
	pnet "postpilot/internal/platform/net"
	"postpilot/internal/platform/net/middleware"
	"postpilot/internal/services/api/auth/domain"
	authsvc "postpilot/internal/services/api/auth/service"
)

// Ports is what the auth module hands to the modules that publish
type Ports struct {
	// Auth resolves request credentials and parks them on the context
	Auth     middleware.AuthPort
	LinkedIn *linkedin.Client
	Sessions credentials.Keyed
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// authenticator reads the credential headers and resolves them through the service
func authenticator(s authsvc.Service) httpkit.AuthFunc {
	return func(r *http.Request) (context.Context, error) {
		h := domain.Hints{
			AccessToken: strings.TrimSpace(r.Header.Get(domain.HeaderAccessToken)),
			PersonURN:   strings.TrimSpace(r.Header.Get(domain.HeaderPersonURN)),
			SessionID:   strings.TrimSpace(r.Header.Get(domain.HeaderSessionID)),
		}
		c, err := s.Resolve(r.Context(), h)
		if err != nil {
			return nil, err
		}
		ctx := credentials.WithContext(r.Context(), c)
		ctx = pnet.WithActor(ctx, c.ActorID)
		return pnet.WithRequest(ctx, pnet.RequestID(ctx), h.SessionID), nil
	}
}
