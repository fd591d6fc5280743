package middleware

import (
	"context"
	"net/http"

	"postpilot/internal/platform/logger"
	pnet "postpilot/internal/platform/net"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	// Authenticate returns the context downstream handlers should run with, or an error
	Authenticate(r *http.Request) (context.Context, error)
}

// Auth runs the port before next. A nil port passes everything through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx, err := p.Authenticate(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			if ctx == nil {
				ctx = r.Context()
			}
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), pnet.SessionID(ctx))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
