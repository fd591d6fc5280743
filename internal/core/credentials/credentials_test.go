package credentials

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	perr "postpilot/internal/platform/errors"
)

func TestSlotRoundTrip(t *testing.T) {
	s := NewSlot()

	if at, actor := s.Get(); at != "" || actor != "" {
		t.Fatalf("fresh slot = (%q,%q), want empty", at, actor)
	}

	s.Set("tok-1", "urn:li:person:1")
	at, actor := s.Get()
	if at != "tok-1" || actor != "urn:li:person:1" {
		t.Fatalf("Get after Set = (%q,%q)", at, actor)
	}

	// repeated reads do not change anything
	for i := 0; i < 3; i++ {
		a2, b2 := s.Get()
		if a2 != at || b2 != actor {
			t.Fatalf("Get #%d = (%q,%q), want (%q,%q)", i, a2, b2, at, actor)
		}
	}
}

func TestSlotLastWriterWins(t *testing.T) {
	s := NewSlot()
	s.Set("alice", "urn:li:person:a")
	s.Set("bob", "urn:li:person:b")

	c := s.Credentials()
	if c.AccessToken != "bob" || c.ActorID != "urn:li:person:b" {
		t.Fatalf("slot = %+v, want bob's pair", c)
	}
}

func TestSlotSetIsVerbatim(t *testing.T) {
	s := NewSlot()
	s.Set("  tok  ", "")
	at, actor := s.Get()
	if at != "  tok  " || actor != "" {
		t.Fatalf("Get = (%q,%q), slot must not normalize", at, actor)
	}
	if s.Credentials().Complete() {
		t.Fatalf("half pair must not be complete")
	}
}

func TestSlotConcurrentAccessKeepsPairsWhole(t *testing.T) {
	s := NewSlot()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); s.Set("a", "urn:a") }()
		go func() { defer wg.Done(); s.Set("b", "urn:b") }()
	}
	wg.Wait()
	at, actor := s.Get()
	if (at == "a") != (actor == "urn:a") {
		t.Fatalf("torn pair (%q,%q)", at, actor)
	}
}

func TestCredentialsHelpers(t *testing.T) {
	c := New("  abcdefgh ", " urn:li:person:9 ")
	if !c.Complete() {
		t.Fatalf("trimmed pair should be complete: %+v", c)
	}
	if got := c.Redacted().AccessToken; got != "****efgh" {
		t.Fatalf("Redacted = %q", got)
	}
	if got := New("abc", "x").Redacted().AccessToken; got != "***" {
		t.Fatalf("short Redacted = %q", got)
	}
	if (Credentials{AccessToken: "t"}).Complete() {
		t.Fatalf("missing actor must not be complete")
	}
}

func TestMemoryKeyed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	if err := m.Put(ctx, " ", Credentials{}, 0); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("blank key err = %v", err)
	}

	want := New("tok", "urn:li:person:1")
	if err := m.Put(ctx, "s1", want, time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := m.Put(ctx, "s2", New("other", "urn:li:person:2"), 0); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := m.Get(ctx, "s1")
	if err != nil || got != want {
		t.Fatalf("Get s1 = %+v, %v", got, err)
	}

	// keys are isolated from each other
	got2, _ := m.Get(ctx, "s2")
	if got2.AccessToken != "other" {
		t.Fatalf("Get s2 = %+v", got2)
	}

	now = now.Add(2 * time.Minute)
	if _, err := m.Get(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expired Get err = %v", err)
	}
	if _, err := m.Get(ctx, "s2"); err != nil {
		t.Fatalf("no ttl entry should survive: %v", err)
	}

	if err := m.Delete(ctx, "s2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, "s2"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("deleted Get err = %v", err)
	}
	if perr.HTTPStatus(ErrSessionNotFound) != 401 {
		t.Fatalf("session miss must map to 401")
	}
}

func TestMemoryPutSweepsExpiredSessions(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		if err := m.Put(ctx, k, New("tok-"+k, "urn:li:person:"+k), time.Second); err != nil {
			t.Fatalf("Put %s: %v", k, err)
		}
	}
	if err := m.Put(ctx, "forever", New("tok", "urn:li:person:f"), 0); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// expired but within the sweep interval: still held until Get or the next sweep
	now = now.Add(2 * time.Second)
	if err := m.Put(ctx, "d", New("tok-d", "urn:li:person:d"), time.Hour); err != nil {
		t.Fatalf("Put d: %v", err)
	}
	if n := len(m.m); n != 5 {
		t.Fatalf("entries before sweep = %d, want 5", n)
	}

	now = now.Add(memSweepEvery)
	if err := m.Put(ctx, "e", New("tok-e", "urn:li:person:e"), time.Hour); err != nil {
		t.Fatalf("Put e: %v", err)
	}
	if n := len(m.m); n != 3 {
		t.Fatalf("entries after sweep = %d, want 3", n)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, ok := m.m[k]; ok {
			t.Fatalf("expired %s still held", k)
		}
	}
	for _, k := range []string{"forever", "d", "e"} {
		if _, err := m.Get(ctx, k); err != nil {
			t.Fatalf("Get %s: %v", k, err)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("bare ctx should carry nothing")
	}
	ctx := WithContext(context.Background(), New("tok", "urn:li:person:1"))
	c, ok := FromContext(ctx)
	if !ok || c.AccessToken != "tok" || c.ActorID != "urn:li:person:1" {
		t.Fatalf("FromContext = %+v ok=%v", c, ok)
	}
	if _, ok := FromContext(WithContext(context.Background(), Credentials{AccessToken: "t"})); ok {
		t.Fatalf("half pair must not resolve")
	}
}
