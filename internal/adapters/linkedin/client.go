// Package linkedin is the outbound client for LinkedIn oauth, identity, asset upload and ugc publish
package linkedin

import (
	"context"
	stderrs "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"postpilot/internal/platform/logger"
	"postpilot/internal/platform/metrics"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"
)

const (
	authBaseDefault = "https://www.linkedin.com"
	apiBaseDefault  = "https://api.linkedin.com"
	defaultTimeout  = 15 * time.Second
	defaultUA       = "postpilot"

	// upstream bodies are kept for error messages, cap what we hold
	maxBodyBytes = 1 << 20

	restliHeader  = "X-Restli-Protocol-Version"
	restliVersion = "2.0.0"
)

// Options configures the Client
type Options struct {
	ClientID     string
	ClientSecret string

	// AuthBaseURL hosts /oauth/v2/*, APIBaseURL hosts /v2/*
	AuthBaseURL string
	APIBaseURL  string

	UserAgent string

	// Timeout bounds each outbound call, 0 means defaultTimeout
	Timeout time.Duration

	// HTTPClient is optional, tests inject httptest clients here
	HTTPClient *http.Client

	// Metrics is optional
	Metrics *metrics.Metrics

	// MediaRoot is the only directory Upload reads images from
	// empty disables uploads
	MediaRoot string
}

// Client talks to LinkedIn. It never retries; every call is attempted once
type Client struct {
	http *http.Client
	opts Options
	exec failsafe.Executor[*reply]
	log  logger.Logger
	now  func() time.Time
}

// reply is a fully read response so nothing outlives the deadline context
type reply struct {
	Status int
	Header http.Header
	Body   []byte
}

func (r *reply) ok() bool { return r.Status >= 200 && r.Status < 300 }

func (r *reply) text() string { return strings.TrimSpace(string(r.Body)) }

// NewClient creates a new Client with defaults filled in
func NewClient(o Options) *Client {
	if o.AuthBaseURL == "" {
		o.AuthBaseURL = authBaseDefault
	}
	if o.APIBaseURL == "" {
		o.APIBaseURL = apiBaseDefault
	}
	o.AuthBaseURL = strings.TrimRight(o.AuthBaseURL, "/")
	o.APIBaseURL = strings.TrimRight(o.APIBaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		http: hc,
		opts: o,
		exec: failsafe.With[*reply](timeout.New[*reply](o.Timeout)),
		log:  *logger.Named("linkedin"),
		now:  time.Now,
	}
}

// newRequest builds a request with the common headers; token may be empty
func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do runs one attempt under the timeout policy and reads the body in full
// transport failures come back as *Error with KindNetwork or KindTimeout
func (c *Client) do(op string, req *http.Request) (*reply, error) {
	endpoint := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path
	start := c.now()

	rep, err := c.exec.WithContext(req.Context()).GetWithExecution(func(exec failsafe.Execution[*reply]) (*reply, error) {
		resp, err := c.http.Do(req.WithContext(exec.Context()))
		if err != nil {
			return nil, err
		}
		defer func() { _ = drainAndClose(resp.Body) }()
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		return &reply{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
	})
	lat := c.now().Sub(start)

	if err != nil {
		kind := KindNetwork
		if stderrs.Is(err, timeout.ErrExceeded) || stderrs.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		c.opts.Metrics.ObserveCall(op, metrics.OutcomeError, lat)
		c.log.Error().
			Err(err).
			Str("op", op).
			Str("method", req.Method).
			Str("endpoint", endpoint).
			Dur("latency", lat).
			Str("kind", kind.String()).
			Msg("linkedin transport failure")
		return nil, &Error{Kind: kind, Op: op, Endpoint: endpoint, Err: err}
	}

	outcome := metrics.OutcomeOK
	if !rep.ok() {
		outcome = metrics.OutcomeError
	}
	c.opts.Metrics.ObserveCall(op, outcome, lat)

	// lightweight response metadata on every call
	c.log.Debug().
		Str("op", op).
		Str("method", req.Method).
		Str("endpoint", endpoint).
		Int("status", rep.Status).
		Dur("latency", lat).
		Int("bytes", len(rep.Body)).
		Msg("linkedin http response")

	return rep, nil
}

// fail logs an upstream rejection with enough context to reproduce it and returns the typed error
func (c *Client) fail(kind Kind, op string, req *http.Request, rep *reply, msg string) error {
	e := &Error{Kind: kind, Op: op, Msg: msg}
	if req != nil {
		e.Endpoint = req.URL.Scheme + "://" + req.URL.Host + req.URL.Path
	}
	if rep != nil {
		e.Status = rep.Status
		e.Body = rep.text()
	}
	c.log.Error().
		Str("op", op).
		Str("endpoint", e.Endpoint).
		Int("status", e.Status).
		Str("body", e.Body).
		Str("kind", kind.String()).
		Msg("linkedin call failed")
	return e
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 64<<10))
	return rc.Close()
}
