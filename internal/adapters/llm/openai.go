// Package llm generates topics, drafts and reviews through an OpenAI compatible chat completions API
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	stderrs "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"postpilot/internal/core/workflow"
	perr "postpilot/internal/platform/errors"
	"postpilot/internal/platform/logger"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"
)

const (
	defaultAPIURL  = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second
)

// Config is the provider endpoint and model
type Config struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration

	HTTPClient *http.Client
}

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIProvider implements workflow.Generator
type OpenAIProvider struct {
	client *http.Client
	apiKey string
	apiURL string
	model  string
	exec   failsafe.Executor[string]
	log    *logger.Logger
}

var _ workflow.Generator = (*OpenAIProvider)(nil)

// NewOpenAIProvider fills defaults; an empty key is allowed for local gateways
func NewOpenAIProvider(cfg Config) *OpenAIProvider {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	to := cfg.Timeout
	if to <= 0 {
		to = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &OpenAIProvider{
		client: hc,
		apiKey: cfg.APIKey,
		apiURL: apiURL,
		model:  model,
		exec:   failsafe.With[string](timeout.New[string](to)),
		log:    logger.Named("llm"),
	}
}

// Topic picks one concrete post topic for the niche
func (p *OpenAIProvider) Topic(ctx context.Context, niche string) (string, error) {
	out, err := p.Complete(ctx, []Message{
		{Role: "system", Content: "You pick timely, specific LinkedIn post topics. Reply with the topic only, one line, no quotes."},
		{Role: "user", Content: "Niche: " + niche},
	})
	if err != nil {
		return "", err
	}
	return firstLine(out), nil
}

// Draft writes a post for topic, revising against feedback when given
func (p *OpenAIProvider) Draft(ctx context.Context, niche, topic, feedback string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Niche: %s\nTopic: %s\n", niche, topic)
	if feedback != "" {
		fmt.Fprintf(&b, "Reviewer feedback on the previous draft: %s\n", feedback)
	}
	b.WriteString("Write the post.")

	return p.Complete(ctx, []Message{
		{Role: "system", Content: "You write LinkedIn posts: a hook line, three short paragraphs, at most five hashtags, under 1300 characters. Reply with the post text only."},
		{Role: "user", Content: b.String()},
	})
}

// Review asks for a verdict; the reply must start with APPROVED or REVISE
func (p *OpenAIProvider) Review(ctx context.Context, niche, draft string) (workflow.Verdict, error) {
	out, err := p.Complete(ctx, []Message{
		{Role: "system", Content: "You review LinkedIn posts for clarity, accuracy and tone. Reply APPROVED if it is ready. Otherwise reply REVISE: followed by one sentence of concrete feedback."},
		{Role: "user", Content: "Niche: " + niche + "\n\n" + draft},
	})
	if err != nil {
		return workflow.Verdict{}, err
	}
	return ParseVerdict(out), nil
}

// ParseVerdict reads a reviewer reply; anything that is not an approval is revise
func ParseVerdict(reply string) workflow.Verdict {
	s := strings.TrimSpace(reply)
	up := strings.ToUpper(s)
	if strings.HasPrefix(up, "APPROVED") {
		return workflow.Verdict{Approved: true}
	}
	if strings.HasPrefix(up, "REVISE") {
		s = strings.TrimSpace(strings.TrimLeft(s[len("REVISE"):], ":- "))
	}
	return workflow.Verdict{Feedback: s}
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete runs one non streaming chat completion under the timeout policy
func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	payload, err := json.Marshal(chatRequest{Model: p.model, Messages: messages})
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeJSON, "llm: marshal request")
	}

	start := time.Now()
	out, err := p.exec.WithContext(ctx).GetWithExecution(func(exec failsafe.Execution[string]) (string, error) {
		req, err := http.NewRequestWithContext(exec.Context(), http.MethodPost, p.apiURL+"/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		if p.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+p.apiKey)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return "", err
		}
		defer func() { _ = resp.Body.Close() }()
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return "", err
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return "", perr.Newf(perr.ErrorCodeBadGateway, "llm: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		var cr chatResponse
		if err := json.Unmarshal(body, &cr); err != nil {
			return "", perr.Wrap(err, perr.ErrorCodeBadGateway, "llm: decode response")
		}
		if cr.Error != nil {
			return "", perr.Newf(perr.ErrorCodeBadGateway, "llm: %s", cr.Error.Message)
		}
		if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
			return "", perr.BadGatewayf("llm: empty completion")
		}
		return strings.TrimSpace(cr.Choices[0].Message.Content), nil
	})
	lat := time.Since(start)

	if err != nil {
		switch {
		case stderrs.Is(err, timeout.ErrExceeded), stderrs.Is(err, context.DeadlineExceeded):
			err = perr.Wrap(err, perr.ErrorCodeTimeout, "llm: completion timed out")
		case perr.CodeOf(err) == perr.ErrorCodeUnknown:
			err = perr.Wrap(err, perr.ErrorCodeUnavailable, "llm: request failed")
		}
		p.log.Error().Err(err).Str("model", p.model).Dur("latency", lat).Msg("llm completion failed")
		return "", err
	}
	p.log.Debug().Str("model", p.model).Dur("latency", lat).Int("chars", len(out)).Msg("llm completion")
	return out, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(strings.TrimSpace(s), `"`)
}
