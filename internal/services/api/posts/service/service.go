// Package service publishes caller written posts and uploads images
package service

import (
	"context"

	"postpilot/internal/adapters/linkedin"
	"postpilot/internal/core/credentials"
	"postpilot/internal/platform/logger"
	"postpilot/internal/services/api/posts/domain"
)

// Service defines the posts service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the posts service
type Svc struct {
	li domain.LinkedInPort
}

// New constructs a posts service
func New(li domain.LinkedInPort) *Svc {
	if li == nil {
		panic("posts.Service requires a non nil LinkedInPort")
	}
	return &Svc{li: li}
}

// Publish creates one post; a non 201 from LinkedIn is an error carrying the upstream body
func (s *Svc) Publish(ctx context.Context, creds credentials.Credentials, in domain.PublishInput) (linkedin.PublishResult, error) {
	res, err := s.li.Publish(ctx, in.Text, creds, in.ImageAssetURN)
	if err != nil {
		logger.C(ctx).Error().Err(err).Bool("image", in.ImageAssetURN != "").Msg("publish failed")
		return linkedin.PublishResult{}, err
	}
	return res, nil
}

// Upload registers and pushes a local image
func (s *Svc) Upload(ctx context.Context, creds credentials.Credentials, in domain.UploadInput) (domain.UploadOutput, error) {
	urn, err := s.li.Upload(ctx, in.FilePath, creds)
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("file", in.FilePath).Msg("image upload failed")
		return domain.UploadOutput{}, err
	}
	return domain.UploadOutput{AssetURN: urn}, nil
}
