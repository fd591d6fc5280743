package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "postpilot/internal/platform/errors"
	pnet "postpilot/internal/platform/net"
	"postpilot/internal/platform/net/middleware"
)

func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestRecoverJSON(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("linkedin client is nil")
	}), middleware.RequestID(), middleware.RecoverJSON)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agent/start", nil)
	req.Header.Set("X-Request-Id", "req-panic")
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var w pnet.Wire
	if err := json.Unmarshal(rr.Body.Bytes(), &w); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != perr.ErrorCodePanic || w.RequestID != "req-panic" {
		t.Fatalf("wire = %+v", w)
	}
	if rr.Header().Get("X-Request-ID") != "req-panic" {
		t.Fatalf("request id header = %q", rr.Header().Get("X-Request-ID"))
	}
}

func TestRecoverJSONRepanicsAbort(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatal("ErrAbortHandler should propagate")
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestAccessLogKeepsStatusAndBody(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"urn:li:share:1"}`))
	}), middleware.RequestID(), middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Nanosecond}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/linkedin/posts", nil))
	if rr.Code != http.StatusCreated || rr.Body.String() != `{"id":"urn:li:share:1"}` {
		t.Fatalf("status = %d body = %q", rr.Code, rr.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedHeaders: []string{"Content-Type", "access-token", "person-urn"},
	})(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/linkedin/posts", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "access-token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("allow origin = %q", got)
	}
	if rr.Header().Get("Access-Control-Allow-Methods") != http.MethodPost {
		t.Fatalf("allow methods = %q", rr.Header().Get("Access-Control-Allow-Methods"))
	}

	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("foreign origin was allowed")
	}
}

func TestHeartbeat(t *testing.T) {
	var path string
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
	}), middleware.Heartbeat("/health"))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK || path != "" {
		t.Fatalf("heartbeat fell through: code=%d path=%q", rr.Code, path)
	}
}

func TestTimeoutCancelsContext(t *testing.T) {
	h := middleware.Timeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		if r.Context().Err() != context.DeadlineExceeded {
			t.Errorf("ctx err = %v", r.Context().Err())
		}
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/agent/start", nil))
	if rr.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d", rr.Code)
	}
}
