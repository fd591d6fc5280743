package httpkit

import (
	"net/http"
	"strings"

	perr "postpilot/internal/platform/errors"
	pnet "postpilot/internal/platform/net"
)

// Actor returns the LinkedIn actor urn resolved by the auth middleware
func Actor(r *http.Request) (string, error) {
	if actor := pnet.ActorID(r.Context()); actor != "" {
		return actor, nil
	}
	return "", perr.Unauthorizedf("missing linkedin credentials")
}

// MustActor is Actor for routes mounted under Protected
func MustActor(r *http.Request) string {
	actor, err := Actor(r)
	if err != nil {
		panic(err)
	}
	return actor
}

// Session returns the session id the caller presented, empty when it sent none
func Session(r *http.Request) string { return pnet.SessionID(r.Context()) }

// JWT returns the bearer token from Authorization; the scheme is case insensitive
func JWT(r *http.Request) (string, error) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	tok = strings.TrimSpace(tok)
	if !ok || !strings.EqualFold(scheme, "bearer") || tok == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return tok, nil
}
