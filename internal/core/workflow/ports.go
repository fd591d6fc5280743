package workflow

import (
	"context"

	"postpilot/internal/core/credentials"
)

// Verdict is a review outcome for one draft
type Verdict struct {
	Approved bool
	Feedback string
}

// Generator produces the text of a run
type Generator interface {
	Topic(ctx context.Context, niche string) (string, error)
	// Draft writes or rewrites a post; feedback is empty on the first pass
	Draft(ctx context.Context, niche, topic, feedback string) (string, error)
	Review(ctx context.Context, niche, draft string) (Verdict, error)
}

// Uploader resolves a local image into an asset urn
type Uploader interface {
	Upload(ctx context.Context, filePath string, creds credentials.Credentials) (string, error)
}

// Receipt is what a successful publish reports back
type Receipt struct {
	PostURN string
	Message string
}

// Publisher creates the post; it is called at most once per run
type Publisher interface {
	Publish(ctx context.Context, text string, creds credentials.Credentials, imageAssetURN string) (Receipt, error)
}
