package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	if got := IfEmpty([]string{"access-token"}, []string{"x"}); len(got) != 1 || got[0] != "access-token" {
		t.Fatalf("non empty input replaced: %#v", got)
	}
	if got := IfEmpty(nil, []int{7}); len(got) != 1 || got[0] != 7 {
		t.Fatalf("default not used: %#v", got)
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	if !Contains("urn:li:person:abc", "person") {
		t.Fatal("want true")
	}
	if Contains("urn:li:person:abc", "share") {
		t.Fatal("want false")
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("agent", "name"); got != "agent" {
		t.Fatalf("got %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("want panic for blank name")
		}
	}()
	_ = MustString(" \t", "name")
}

func TestMustPrefix(t *testing.T) {
	ok := map[string]string{
		"/linkedin/":    "/linkedin",
		" agent ":       "/agent",
		"//meta//":      "/meta",
		"auth/linkedin": "/auth/linkedin",
	}
	for in, want := range ok {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", "  //  "} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("want panic for %q", in)
				}
			}()
			_ = MustPrefix(in)
		}()
	}
}
