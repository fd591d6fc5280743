package config

import (
	"testing"
	"time"

	kit "postpilot/internal/platform/testkit"
)

func TestPrefixNests(t *testing.T) {
	c := New().Prefix("LINKEDIN_").Prefix("OAUTH_")
	t.Setenv("LINKEDIN_OAUTH_CLIENT_ID", "  86abc  ")
	if got := c.MustString("CLIENT_ID"); got != "86abc" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("CLIENT_SECRET") })

	t.Setenv("LINKEDIN_OAUTH_BLANK", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("BLANK") })
}

func TestMayValues(t *testing.T) {
	c := New().Prefix("PP_")
	t.Setenv("PP_MAX_ITERATIONS", " 5 ")
	t.Setenv("PP_SWAGGER", "false")
	t.Setenv("PP_STEP_TIMEOUT", "90s")
	t.Setenv("PP_UA", "postpilot/1.0")

	if got := c.MayInt("MAX_ITERATIONS", 3); got != 5 {
		t.Fatalf("MayInt = %d", got)
	}
	if c.MayBool("SWAGGER", true) {
		t.Fatal("MayBool should read false")
	}
	if got := c.MayDuration("STEP_TIMEOUT", time.Minute); got != 90*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayString("UA", "postpilot"); got != "postpilot/1.0" {
		t.Fatalf("MayString = %q", got)
	}

	// unset keeps the default
	if c.MayInt("UNSET", 7) != 7 || !c.MayBool("UNSET", true) || c.MayDuration("UNSET", time.Second) != time.Second || c.MayString("UNSET", "d") != "d" {
		t.Fatal("defaults not applied")
	}
}

func TestMayFallsBackOnGarbage(t *testing.T) {
	c := New().Prefix("PP_")
	t.Setenv("PP_MAX_ITERATIONS", "three")
	t.Setenv("PP_SWAGGER", "maybe")
	t.Setenv("PP_STEP_TIMEOUT", "10")

	if c.MayInt("MAX_ITERATIONS", 3) != 3 {
		t.Fatal("bad int should fall back")
	}
	if !c.MayBool("SWAGGER", true) {
		t.Fatal("bad bool should fall back")
	}
	if c.MayDuration("STEP_TIMEOUT", time.Minute) != time.Minute {
		t.Fatal("unitless duration should fall back")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("PP_")
	def := []string{"openid", "profile"}

	t.Setenv("PP_SCOPES", " openid, w_member_social ,,")
	got := c.MayCSV("SCOPES", def)
	if len(got) != 2 || got[0] != "openid" || got[1] != "w_member_social" {
		t.Fatalf("MayCSV = %q", got)
	}

	t.Setenv("PP_SCOPES", " , ")
	if got := c.MayCSV("SCOPES", def); len(got) != 2 || got[1] != "profile" {
		t.Fatalf("blank list should fall back, got %q", got)
	}
}
