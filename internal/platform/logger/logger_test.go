package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	kit "postpilot/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestBuildJSON(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "WARN", Format: "json", Service: "postpilot-api", Writer: &buf})

	l.Info().Msg("dropped")
	l.Warn().Str("niche", "devtools").Msg("llm slow")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want one line above warn, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if rec["service"] != "postpilot-api" || rec["niche"] != "devtools" || rec["level"] != "warn" {
		t.Fatalf("record = %v", rec)
	}
}

func TestBuildDefaultsToInfo(t *testing.T) {
	for _, lvl := range []string{"", "loud"} {
		if got := build(Options{Level: lvl, Writer: &bytes.Buffer{}}).GetLevel(); got != zerolog.InfoLevel {
			t.Fatalf("level %q -> %v", lvl, got)
		}
	}
}

func TestConsoleCarriesRequestFields(t *testing.T) {
	var buf bytes.Buffer
	_ = Get()
	l := build(Options{Level: "debug", Format: "console", Writer: &buf})
	kit.Swap(t, &root, l)
	kit.Swap(t, &base, l)
	Init(Options{Level: "error"}) // no-op once the root exists

	ctx := WithRequest(context.Background(), "req-123", "sess-abc")
	C(ctx).Info().Msg("post published")
	Named("linkedin").Debug().Msg("register upload")
	C(context.Background()).Info().Msg("bare")

	out := buf.String()
	kit.MustContain(t, out, "post published")
	kit.MustContain(t, out, "req-123")
	kit.MustContain(t, out, "sess-abc")
	kit.MustContain(t, out, "linkedin")
	kit.MustContain(t, out, "register upload")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")
	t.Setenv("LOG_COMPONENT", " worker ")

	opt := FromEnv()
	if opt.Level != "debug" || opt.Format != "json" || opt.Service != "postpilot" || !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("opt = %+v", opt)
	}
	if opt.Component != "worker" {
		t.Fatalf("component = %q", opt.Component)
	}
}

func TestRootComponentAndNamedOverride(t *testing.T) {
	var buf bytes.Buffer
	_ = Get()
	kit.Swap(t, &root, root)
	kit.Swap(t, &base, base)
	setup(Options{Level: "info", Format: "json", Component: "worker", Writer: &buf})

	Get().Info().Msg("from root")
	C(context.Background()).Info().Msg("from request")
	Named("linkedin").Info().Msg("from adapter")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", buf.String())
	}
	for i, want := range []string{"worker", "worker", "linkedin"} {
		if n := strings.Count(lines[i], `"component"`); n != 1 {
			t.Fatalf("line %d has %d component keys: %s", i, n, lines[i])
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(lines[i]), &rec); err != nil {
			t.Fatalf("not json: %v", err)
		}
		if rec["component"] != want {
			t.Fatalf("line %d component = %v, want %s", i, rec["component"], want)
		}
	}
}
