// Package redis parks session credentials in redis so any api replica can resolve a session id
package redis

import (
	"context"
	"encoding/json"
	stderrs "errors"
	"strings"
	"time"

	"postpilot/internal/core/credentials"
	perr "postpilot/internal/platform/errors"

	goredis "github.com/redis/go-redis/v9"
)

const defaultPrefix = "postpilot:session:"

// Store implements credentials.Keyed on a redis string per session
type Store struct {
	rdb    goredis.UniversalClient
	prefix string
}

var _ credentials.Keyed = (*Store)(nil)

// New wraps a client; prefix namespaces the keys and defaults to postpilot:session:
func New(rdb goredis.UniversalClient, prefix string) *Store {
	if rdb == nil {
		panic("sessions/redis.New: nil client")
	}
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) key(k string) string { return s.prefix + k }

// Put stores c under key; ttl <= 0 keeps it until deleted
func (s *Store) Put(ctx context.Context, key string, c credentials.Credentials, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "session key is required"), "session_id")
	}
	if ttl < 0 {
		ttl = 0
	}
	b, err := json.Marshal(c)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode session")
	}
	if err := s.rdb.Set(ctx, s.key(key), b, ttl).Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "redis set session")
	}
	return nil
}

// Get returns credentials.ErrSessionNotFound when the key is missing or expired
func (s *Store) Get(ctx context.Context, key string) (credentials.Credentials, error) {
	if strings.TrimSpace(key) == "" {
		return credentials.Credentials{}, credentials.ErrSessionNotFound
	}
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if stderrs.Is(err, goredis.Nil) {
			return credentials.Credentials{}, credentials.ErrSessionNotFound
		}
		return credentials.Credentials{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "redis get session")
	}
	var c credentials.Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return credentials.Credentials{}, perr.Wrap(err, perr.ErrorCodeJSON, "decode session")
	}
	return c, nil
}

// Delete is a no op for unknown keys
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "redis delete session")
	}
	return nil
}

// Ping reports redis reachability for readiness checks
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
