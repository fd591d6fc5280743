// Package workflow drives a niche through topic selection, drafting, review,
// optional image attachment and publish, one observable step at a time
package workflow

import (
	"strings"

	"postpilot/internal/core/credentials"
)

// Node names a step of the run
type Node string

const (
	NodeSelectTopic Node = "select_topic"
	NodeWriteDraft  Node = "write_draft"
	NodeReviewDraft Node = "review_draft"
	NodeAttachImage Node = "attach_image"
	NodeFinalize    Node = "finalize"
	NodePublish     Node = "publish"
)

// State is the record threaded through every step
// optional fields are empty until the step that owns them runs
type State struct {
	Niche          string `json:"niche"`
	Topic          string `json:"topic,omitempty"`
	PostDraft      string `json:"post_draft,omitempty"`
	ReviewFeedback string `json:"review_feedback,omitempty"`
	FinalPost      string `json:"final_post,omitempty"`
	ImagePath      string `json:"image_path,omitempty"`
	ImageAssetURN  string `json:"image_asset_urn,omitempty"`
	IsApproved     bool   `json:"is_approved"`
	IterationCount int    `json:"iteration_count"`

	LinkedInAccessToken string `json:"linkedin_access_token"`
	LinkedInPersonURN   string `json:"linkedin_person_urn"`

	Published      bool   `json:"published"`
	PostURN        string `json:"post_urn,omitempty"`
	PublishMessage string `json:"publish_message,omitempty"`
}

// Seed builds the initial state for a run
func Seed(niche string, creds credentials.Credentials) State {
	return State{
		Niche:               strings.TrimSpace(niche),
		LinkedInAccessToken: creds.AccessToken,
		LinkedInPersonURN:   creds.ActorID,
	}
}

// Credentials returns the pair the run publishes under
func (s State) Credentials() credentials.Credentials {
	return credentials.New(s.LinkedInAccessToken, s.LinkedInPersonURN)
}

// Redacted masks the access token for responses and logs
func (s State) Redacted() State {
	s.LinkedInAccessToken = s.Credentials().Redacted().AccessToken
	return s
}

// Finalized reports whether a publishable post is in place
func (s State) Finalized() bool { return s.FinalPost != "" }

// Event is emitted once per executed step with the state after that step
type Event struct {
	Node  Node  `json:"node"`
	State State `json:"state"`
}
