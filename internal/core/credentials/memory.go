package credentials

import (
	"context"
	"strings"
	"sync"
	"time"

	perr "postpilot/internal/platform/errors"
)

type memEntry struct {
	creds   Credentials
	expires time.Time
}

// expired entries are dropped on Get, and by a full sweep on Put at most this often
const memSweepEvery = time.Minute

// Memory is an in process Keyed store, used when no redis is configured and in tests
type Memory struct {
	mu    sync.Mutex
	m     map[string]memEntry
	now   func() time.Time
	swept time.Time
}

// NewMemory returns an empty in process keyed store
func NewMemory() *Memory {
	return &Memory{m: map[string]memEntry{}, now: time.Now}
}

// Put stores c under key; ttl <= 0 means no expiry
func (s *Memory) Put(_ context.Context, key string, c Credentials, ttl time.Duration) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return perr.New(perr.ErrorCodeValidation, "session key is required")
	}
	now := s.now()
	e := memEntry{creds: c}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Sub(s.swept) >= memSweepEvery {
		s.sweep(now)
	}
	s.m[key] = e
	return nil
}

// sweep drops every expired entry; callers hold mu
func (s *Memory) sweep(now time.Time) {
	for k, e := range s.m {
		if e.expired(now) {
			delete(s.m, k)
		}
	}
	s.swept = now
}

func (e memEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// Get returns the pair under key or ErrSessionNotFound
func (s *Memory) Get(_ context.Context, key string) (Credentials, error) {
	key = strings.TrimSpace(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[key]
	if !ok {
		return Credentials{}, ErrSessionNotFound
	}
	if e.expired(s.now()) {
		delete(s.m, key)
		return Credentials{}, ErrSessionNotFound
	}
	return e.creds, nil
}

// Delete drops key; missing keys are not an error
func (s *Memory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, strings.TrimSpace(key))
	s.mu.Unlock()
	return nil
}
