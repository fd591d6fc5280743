package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnv(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadDotEnv_Precedence(t *testing.T) {
	dir := t.TempDir()
	local := writeEnv(t, dir, ".env.local", "PP_TEST_A=local\n")
	base := writeEnv(t, dir, ".env", "PP_TEST_A=base\nPP_TEST_B=base\nPP_TEST_C=base\n")

	// t.Setenv registers cleanup; unset afterwards so the files can fill them
	for _, k := range []string{"PP_TEST_A", "PP_TEST_B"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	t.Setenv("PP_TEST_C", "process")
	t.Cleanup(func() {
		_ = os.Unsetenv("PP_TEST_A")
		_ = os.Unsetenv("PP_TEST_B")
	})

	got := LoadDotEnv(local, base, filepath.Join(dir, "missing.env"))
	if len(got) != 2 {
		t.Fatalf("loaded = %v", got)
	}

	c := New().Prefix("PP_TEST_")
	if v := c.MayString("A", ""); v != "local" {
		t.Fatalf("A = %q, want local", v)
	}
	if v := c.MayString("B", ""); v != "base" {
		t.Fatalf("B = %q, want base", v)
	}
	if v := c.MayString("C", ""); v != "process" {
		t.Fatalf("C = %q, want process", v)
	}
}

func TestLoadDotEnv_NothingToLoad(t *testing.T) {
	if got := LoadDotEnv(filepath.Join(t.TempDir(), "nope")); len(got) != 0 {
		t.Fatalf("loaded = %v", got)
	}
}
