// Package http provides http transport for the posting agent
package http

import (
	stdhttp "net/http"
	"strings"

	"postpilot/internal/core/credentials"
	"postpilot/internal/modkit/httpkit"
	perr "postpilot/internal/platform/errors"
	"postpilot/internal/platform/net/http/bind"
	"postpilot/internal/platform/net/middleware"
	"postpilot/internal/services/api/agent/domain"
	svc "postpilot/internal/services/api/agent/service"
)

// Register mounts the agent routes; start needs resolved credentials, summary is public
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort) {
	h := &handlers{svc: s}

	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.Post(pr, "/start", h.start)
	})

	httpkit.Get(r, "/summary", h.summary)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /agent/start Agent agentStart
// @Summary Run the posting workflow for a niche
// @Tags Agent
// @Produce json
// @Param niche query string true "Subject area the post is for"
// @Param topic query string false "Skip topic selection"
// @Param image_path query string false "Image path relative to the media root"
// @Param access-token header string false "LinkedIn access token, sent with person-urn"
// @Param person-urn header string false "LinkedIn member urn"
// @Param X-Session-ID header string false "Session id from /auth/linkedin/me"
// @Success 200 {object} domain.StartOutput "ok"
// @Failure 400 {object} httpkit.Envelope "missing niche"
// @Failure 401 {object} httpkit.Envelope "missing, invalid or expired credentials"
// @Failure 502 {object} httpkit.Envelope "LinkedIn or the model refused a step"
// @Router /agent/start [post]
func (h *handlers) start(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	in := domain.StartQuery{
		Niche:     strings.TrimSpace(q.Get("niche")),
		Topic:     strings.TrimSpace(q.Get("topic")),
		ImagePath: strings.TrimSpace(q.Get("image_path")),
	}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}

	creds, ok := credentials.FromContext(r.Context())
	if !ok {
		return nil, perr.Unauthorizedf("missing linkedin credentials")
	}
	return h.svc.Start(r.Context(), creds, in)
}

// swagger:route GET /agent/summary Agent agentSummary
// @Summary Completed and failed run counts
// @Tags Agent
// @Produce json
// @Success 200 {object} domain.JobSummary "ok"
// @Router /agent/summary [get]
func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	return h.svc.Summary(r.Context())
}
