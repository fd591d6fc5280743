//go:build !swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "postpilot/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, enabled bool, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), enabled)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestMountDisabled(t *testing.T) {
	if rr := serve(t, false, "/api/docs/doc.json"); rr.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rr.Code)
	}
}

func TestMountServesSkeleton(t *testing.T) {
	rr := serve(t, true, "/api/docs/doc.json")
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d", rr.Code)
	}
	if rr.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("cache-control = %q", rr.Header().Get("Cache-Control"))
	}
	var spec map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &spec); err != nil {
		t.Fatalf("body: %v", err)
	}
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
}

func TestMountRedirectsBareDocs(t *testing.T) {
	rr := serve(t, true, "/api/docs")
	if rr.Code != http.StatusPermanentRedirect || rr.Header().Get("Location") != "/api/docs/" {
		t.Fatalf("code = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}
}
