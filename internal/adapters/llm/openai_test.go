package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"postpilot/internal/core/workflow"
	perr "postpilot/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, reply func(req chatRequest) (int, string)) (*httptest.Server, *[]chatRequest) {
	t.Helper()
	var seen []chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seen = append(seen, req)
		status, body := reply(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}}})
	return string(b)
}

func provider(srv *httptest.Server, to time.Duration) *OpenAIProvider {
	return NewOpenAIProvider(Config{APIURL: srv.URL + "/", APIKey: "sk-test", Model: "m1", Timeout: to, HTTPClient: srv.Client()})
}

func TestTopicTakesFirstLine(t *testing.T) {
	srv, seen := chatServer(t, func(chatRequest) (int, string) {
		return http.StatusOK, completion("\"Rust in the kernel\"\nextra chatter")
	})
	got, err := provider(srv, time.Second).Topic(context.Background(), "systems")
	require.NoError(t, err)
	assert.Equal(t, "Rust in the kernel", got)

	require.Len(t, *seen, 1)
	assert.Equal(t, "m1", (*seen)[0].Model)
	assert.Equal(t, "Niche: systems", (*seen)[0].Messages[1].Content)
}

func TestDraftIncludesFeedback(t *testing.T) {
	srv, seen := chatServer(t, func(chatRequest) (int, string) { return http.StatusOK, completion("  the post  ") })
	p := provider(srv, time.Second)

	got, err := p.Draft(context.Background(), "go", "generics", "")
	require.NoError(t, err)
	assert.Equal(t, "the post", got)
	assert.NotContains(t, (*seen)[0].Messages[1].Content, "feedback")

	_, err = p.Draft(context.Background(), "go", "generics", "shorter hook")
	require.NoError(t, err)
	assert.Contains(t, (*seen)[1].Messages[1].Content, "shorter hook")
}

func TestParseVerdict(t *testing.T) {
	cases := []struct {
		in   string
		want workflow.Verdict
	}{
		{"APPROVED", workflow.Verdict{Approved: true}},
		{"  approved. ship it", workflow.Verdict{Approved: true}},
		{"REVISE: cut the jargon", workflow.Verdict{Feedback: "cut the jargon"}},
		{"Revise - too long", workflow.Verdict{Feedback: "too long"}},
		{"needs work", workflow.Verdict{Feedback: "needs work"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseVerdict(tc.in), tc.in)
	}
}

func TestReviewUsesVerdict(t *testing.T) {
	srv, _ := chatServer(t, func(chatRequest) (int, string) { return http.StatusOK, completion("REVISE: add a number") })
	v, err := provider(srv, time.Second).Review(context.Background(), "go", "draft")
	require.NoError(t, err)
	assert.False(t, v.Approved)
	assert.Equal(t, "add a number", v.Feedback)
}

func TestCompleteFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		code   perr.ErrorCode
	}{
		{"upstream 500", http.StatusInternalServerError, `{"error":{"message":"overloaded"}}`, perr.ErrorCodeBadGateway},
		{"error object", http.StatusOK, `{"error":{"message":"bad model"}}`, perr.ErrorCodeBadGateway},
		{"no choices", http.StatusOK, `{"choices":[]}`, perr.ErrorCodeBadGateway},
		{"not json", http.StatusOK, `<html>`, perr.ErrorCodeBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := chatServer(t, func(chatRequest) (int, string) { return tc.status, tc.body })
			_, err := provider(srv, time.Second).Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
			require.Error(t, err)
			assert.Equal(t, tc.code, perr.CodeOf(err), "err=%v", err)
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	p := NewOpenAIProvider(Config{APIURL: srv.URL, Timeout: 50 * time.Millisecond, HTTPClient: srv.Client()})
	_, err := p.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeTimeout, perr.CodeOf(err))
}

func TestCompleteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewOpenAIProvider(Config{APIURL: url, Timeout: time.Second}).Complete(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeUnavailable, perr.CodeOf(err))
}
