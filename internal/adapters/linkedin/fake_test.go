package linkedin

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"postpilot/internal/core/credentials"
)

// fakeLinkedIn is an httptest stand in for the token, identity, asset and ugc endpoints
// each route can be overridden per test; every request is recorded
type fakeLinkedIn struct {
	t    *testing.T
	srv  *httptest.Server
	root string

	mu    sync.Mutex
	calls []recorded

	token    http.HandlerFunc
	me       http.HandlerFunc
	email    http.HandlerFunc
	register http.HandlerFunc
	upload   http.HandlerFunc
	ugc      http.HandlerFunc
}

type recorded struct {
	Method string
	Path   string
	Header http.Header
	Form   url.Values
	Body   []byte
}

func newFake(t *testing.T) *fakeLinkedIn {
	t.Helper()
	f := &fakeLinkedIn{t: t, root: t.TempDir()}
	f.token = func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "tok-123", "expires_in": 5184000, "scope": "w_member_social"})
	}
	f.me = func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "123", "localizedFirstName": "Ada", "localizedLastName": "Lovelace"})
	}
	f.email = func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"elements": []any{map[string]any{"handle~": map[string]any{"emailAddress": "a@b.com"}}}})
	}
	f.register = func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"value": map[string]any{
			"asset": "urn:li:digitalmediaAsset:C5522AQ",
			"uploadMechanism": map[string]any{
				uploadMechanismKey: map[string]any{"uploadUrl": f.srv.URL + "/upload/C5522AQ"},
			},
		}})
	}
	f.upload = func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) }
	f.ugc = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RestLi-Id", "urn:li:share:777")
		w.WriteHeader(http.StatusCreated)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/accessToken", func(w http.ResponseWriter, r *http.Request) { f.record(r); f.token(w, r) })
	mux.HandleFunc("/v2/me", func(w http.ResponseWriter, r *http.Request) { f.record(r); f.me(w, r) })
	mux.HandleFunc("/v2/emailAddress", func(w http.ResponseWriter, r *http.Request) { f.record(r); f.email(w, r) })
	mux.HandleFunc("/v2/assets", func(w http.ResponseWriter, r *http.Request) { f.record(r); f.register(w, r) })
	mux.HandleFunc("/upload/", func(w http.ResponseWriter, r *http.Request) { f.record(r); f.upload(w, r) })
	mux.HandleFunc("/v2/ugcPosts", func(w http.ResponseWriter, r *http.Request) { f.record(r); f.ugc(w, r) })

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeLinkedIn) client(opts ...func(*Options)) *Client {
	o := Options{
		ClientID:     "cid",
		ClientSecret: "secret",
		AuthBaseURL:  f.srv.URL,
		APIBaseURL:   f.srv.URL,
		Timeout:      2 * time.Second,
		HTTPClient:   f.srv.Client(),
		MediaRoot:    f.root,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return NewClient(o)
}

func (f *fakeLinkedIn) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec := recorded{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: body}
	if r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
		rec.Form, _ = url.ParseQuery(string(body))
	}
	f.mu.Lock()
	f.calls = append(f.calls, rec)
	f.mu.Unlock()
}

func (f *fakeLinkedIn) requests() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.calls...)
}

func (f *fakeLinkedIn) paths() []string {
	var out []string
	for _, c := range f.requests() {
		out = append(out, c.Path)
	}
	return out
}

func (f *fakeLinkedIn) last(path string) (recorded, bool) {
	calls := f.requests()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Path == path {
			return calls[i], true
		}
	}
	return recorded{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func testCreds() credentials.Credentials {
	return credentials.New("tok-123", "urn:li:person:123")
}
