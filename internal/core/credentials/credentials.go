// Package credentials holds the access token and actor pair a publish runs under,
// plus the two places a host can park them between requests
package credentials

import (
	"context"
	"strings"
	"time"

	perr "postpilot/internal/platform/errors"
)

// Credentials is the access token and actor urn needed for any authenticated call
// both present or both absent; a half pair is treated as absent
type Credentials struct {
	AccessToken string `json:"access_token"`
	ActorID     string `json:"actor_id"`
}

// New builds a pair with surrounding whitespace removed
func New(accessToken, actorID string) Credentials {
	return Credentials{
		AccessToken: strings.TrimSpace(accessToken),
		ActorID:     strings.TrimSpace(actorID),
	}
}

// Complete reports whether both halves are usable
func (c Credentials) Complete() bool {
	return c.AccessToken != "" && c.ActorID != ""
}

// Redacted returns a copy safe for logs
func (c Credentials) Redacted() Credentials {
	out := c
	if n := len(out.AccessToken); n > 0 {
		keep := 4
		if n <= keep {
			keep = 0
		}
		out.AccessToken = strings.Repeat("*", n-keep) + out.AccessToken[n-keep:]
	}
	return out
}

// ErrSessionNotFound is returned by keyed stores when no pair is parked under a key
var ErrSessionNotFound = perr.New(perr.ErrorCodeUnauthorized, "session not found or expired")

// Keyed parks credentials under a caller chosen key such as a session id
// this is the multi user replacement for the single Slot
type Keyed interface {
	Put(ctx context.Context, key string, c Credentials, ttl time.Duration) error
	Get(ctx context.Context, key string) (Credentials, error)
	Delete(ctx context.Context, key string) error
}
