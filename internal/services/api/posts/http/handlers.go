// Package http provides http transport for direct posts
package http

import (
	stdhttp "net/http"

	"postpilot/internal/core/credentials"
	"postpilot/internal/modkit/httpkit"
	perr "postpilot/internal/platform/errors"
	"postpilot/internal/platform/net/middleware"
	"postpilot/internal/services/api/posts/domain"
	svc "postpilot/internal/services/api/posts/service"
)

// Register mounts the posts routes behind the auth port
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort) {
	h := &handlers{svc: s}

	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.PublishInput](pr, "/posts", h.publish)
		httpkit.PostJSON[domain.UploadInput](pr, "/assets", h.upload)
	})
}

type handlers struct{ svc svc.Service }

func creds(r *stdhttp.Request) (credentials.Credentials, error) {
	c, ok := credentials.FromContext(r.Context())
	if !ok {
		return credentials.Credentials{}, perr.Unauthorizedf("missing linkedin credentials")
	}
	return c, nil
}

// swagger:route POST /linkedin/posts Posts postsPublish
// @Summary Publish a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param payload body domain.PublishInput true "Post"
// @Success 201 {object} linkedin.PublishResult "created"
// @Failure 401 {object} httpkit.Envelope "missing credentials"
// @Failure 502 {object} httpkit.Envelope "LinkedIn did not answer 201"
// @Router /linkedin/posts [post]
func (h *handlers) publish(r *stdhttp.Request, in domain.PublishInput) (any, error) {
	c, err := creds(r)
	if err != nil {
		return nil, err
	}
	res, err := h.svc.Publish(r.Context(), c, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(res), nil
}

// swagger:route POST /linkedin/assets Posts postsUpload
// @Summary Upload an image from the media root
// @Tags Posts
// @Accept json
// @Produce json
// @Param payload body domain.UploadInput true "File"
// @Success 200 {object} domain.UploadOutput "ok"
// @Failure 400 {object} httpkit.Envelope "missing file_path"
// @Failure 502 {object} httpkit.Envelope "unreadable file, register or upload refused"
// @Router /linkedin/assets [post]
func (h *handlers) upload(r *stdhttp.Request, in domain.UploadInput) (any, error) {
	c, err := creds(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Upload(r.Context(), c, in)
}
