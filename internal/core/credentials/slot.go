package credentials

import "sync"

// Slot is the legacy process wide credential holder
// it keeps at most one identity; a second Set from another user clobbers the first
// the mutex only keeps reads and writes whole, it does not make the slot multi user
type Slot struct {
	mu  sync.RWMutex
	cur Credentials
}

// NewSlot returns an empty slot
func NewSlot() *Slot { return &Slot{} }

// Set overwrites the slot unconditionally
func (s *Slot) Set(accessToken, actorID string) {
	s.mu.Lock()
	s.cur = Credentials{AccessToken: accessToken, ActorID: actorID}
	s.mu.Unlock()
}

// Get returns the slot verbatim, empty strings when unset
func (s *Slot) Get() (accessToken, actorID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.AccessToken, s.cur.ActorID
}

// Credentials returns the slot as a pair
func (s *Slot) Credentials() Credentials {
	at, actor := s.Get()
	return Credentials{AccessToken: at, ActorID: actor}
}
