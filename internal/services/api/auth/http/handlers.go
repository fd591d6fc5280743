// Package http provides http transport for LinkedIn sign in
package http

import (
	stdhttp "net/http"
	"strings"

	"postpilot/internal/modkit/httpkit"
	"postpilot/internal/platform/net/http/bind"
	"postpilot/internal/services/api/auth/domain"
	svc "postpilot/internal/services/api/auth/service"
)

// Register mounts the auth routes
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// authorization code for token
	httpkit.PostJSON[domain.TokenInput](r, "/linkedin/token", h.token)

	// bearer token for member identity, parks the pair for publishing
	httpkit.Get(r, "/linkedin/me", h.me)

	// consent url for the browser redirect
	httpkit.Get(r, "/linkedin/authorize-url", h.authorizeURL)

	// drop a parked session
	httpkit.Delete(r, "/linkedin/session", h.logout)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /auth/linkedin/token Auth authToken
// @Summary Exchange an authorization code for an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.TokenInput true "Code"
// @Success 200 {object} map[string]any "raw LinkedIn token payload"
// @Failure 400 {object} httpkit.Envelope "missing code or redirect_uri"
// @Failure 502 {object} httpkit.Envelope "LinkedIn refused the exchange"
// @Router /auth/linkedin/token [post]
func (h *handlers) token(r *stdhttp.Request, in domain.TokenInput) (any, error) {
	return h.svc.Token(r.Context(), in)
}

// swagger:route GET /auth/linkedin/me Auth authMe
// @Summary Current LinkedIn member
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.MeOutput "ok"
// @Failure 401 {object} httpkit.Envelope "missing bearer token"
// @Failure 502 {object} httpkit.Envelope "LinkedIn refused the token"
// @Router /auth/linkedin/me [get]
func (h *handlers) me(r *stdhttp.Request) (any, error) {
	tok, err := httpkit.JWT(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Me(r.Context(), tok)
}

// swagger:route GET /auth/linkedin/authorize-url Auth authAuthorizeURL
// @Summary LinkedIn consent url
// @Tags Auth
// @Produce json
// @Param redirect_uri query string true "Where LinkedIn sends the code"
// @Param state query string false "Opaque csrf value echoed back"
// @Param scope query string false "Comma separated scopes"
// @Success 200 {object} domain.AuthorizeURLOutput "ok"
// @Router /auth/linkedin/authorize-url [get]
func (h *handlers) authorizeURL(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	in := domain.AuthorizeURLQuery{
		RedirectURI: strings.TrimSpace(q.Get("redirect_uri")),
		State:       q.Get("state"),
	}
	for _, s := range strings.Split(q.Get("scope"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			in.Scopes = append(in.Scopes, s)
		}
	}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.AuthorizeURL(in)
}

// swagger:route DELETE /auth/linkedin/session Auth authLogout
// @Summary Forget a parked session
// @Tags Auth
// @Param X-Session-ID header string true "Session id returned by /auth/linkedin/me"
// @Success 204 "gone"
// @Router /auth/linkedin/session [delete]
func (h *handlers) logout(r *stdhttp.Request) (any, error) {
	sid := strings.TrimSpace(r.Header.Get(domain.HeaderSessionID))
	if err := h.svc.Logout(r.Context(), sid); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
