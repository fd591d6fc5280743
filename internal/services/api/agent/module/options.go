package module

import (
	"time"

	"postpilot/internal/core/workflow"
	"postpilot/internal/platform/config"
)

// Options controls the workflow runner, the model endpoint and the summary store
type Options struct {
	MaxIterations int
	StepTimeout   time.Duration

	LLMURL     string
	LLMKey     string
	LLMModel   string
	LLMTimeout time.Duration

	SummaryStatementTimeout time.Duration
}

// FromConfig reads WORKFLOW_*, LLM_* and SUMMARY_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	wc := cfg.Prefix("WORKFLOW_")
	lc := cfg.Prefix("LLM_")
	sc := cfg.Prefix("SUMMARY_")
	return Options{
		MaxIterations:           wc.MayInt("MAX_ITERATIONS", workflow.DefaultMaxIterations),
		StepTimeout:             wc.MayDuration("STEP_TIMEOUT", 2*time.Minute),
		LLMURL:                  lc.MayString("API_URL", ""),
		LLMKey:                  lc.MayString("API_KEY", ""),
		LLMModel:                lc.MayString("MODEL", ""),
		LLMTimeout:              lc.MayDuration("TIMEOUT", 60*time.Second),
		SummaryStatementTimeout: sc.MayDuration("STATEMENT_TIMEOUT", 2*time.Second),
	}
}
