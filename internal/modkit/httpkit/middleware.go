package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "postpilot/internal/platform/net/http"
	"postpilot/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORS middleware.CORSOptions
	// RequestTimeout bounds a whole request; agent runs need minutes
	RequestTimeout time.Duration
	// SlowRequest promotes access log lines to warn
	SlowRequest time.Duration
	// Heartbeat is the full path a bare 200 answers on; empty disables it
	Heartbeat string
}

// CommonStack returns the middleware slice for the versioned api
// auth is composed per route group with Protected, not here
func CommonStack(opt StackOptions) []func(http.Handler) http.Handler {
	if opt.RequestTimeout <= 0 {
		opt.RequestTimeout = 5 * time.Minute
	}
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: opt.SlowRequest}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(opt.CORS),
		middleware.Compress(flate.BestSpeed),
	}
	if opt.Heartbeat != "" {
		stack = append(stack, middleware.Heartbeat(opt.Heartbeat))
	}
	return append(stack, middleware.StripSlashes(), middleware.Timeout(opt.RequestTimeout))
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
