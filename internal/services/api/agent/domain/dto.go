// Package domain holds DTOs for the agent http and service contracts
package domain

import "postpilot/internal/core/workflow"

// StartQuery is read from the query string of POST /agent/start
type StartQuery struct {
	Niche string `json:"niche" validate:"required,max=200" example:"developer tooling"`
	// Topic skips topic selection when set
	Topic string `json:"topic,omitempty" validate:"omitempty,max=300" example:"Why Go 1.23 iterators matter"`
	// ImagePath names an image under LINKEDIN_MEDIA_ROOT to attach to the post
	ImagePath string `json:"image_path,omitempty" validate:"omitempty,max=1024" example:"cover.png"`
}

// StartOutput is the completed run
type StartOutput struct {
	Status     string         `json:"status"      example:"success"`
	Message    string         `json:"message"     example:"Workflow completed"`
	RunID      string         `json:"run_id"      example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
	FinalState workflow.State `json:"final_state"`
}

// JobSummary counts finished runs
type JobSummary struct {
	TotalCompleted int64 `json:"total_completed" example:"12"`
	TotalFailed    int64 `json:"total_failed"    example:"1"`
}
