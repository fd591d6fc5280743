package raw

import "testing"

func TestConf(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_LEVEL", " info ")
	t.Setenv("LOG_CALLER", "YES")
	t.Setenv("LOG_SAMPLE_EVERY", "10")
	t.Setenv("LOG_BAD_INT", "-3")
	t.Setenv("LOG_OFF", "no")

	if got := c.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get = %q", got)
	}
	if got := c.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("default = %q", got)
	}
	if !c.GetBool("CALLER", false) || c.GetBool("OFF", true) || !c.GetBool("UNSET", true) {
		t.Fatal("GetBool")
	}
	if c.GetInt("SAMPLE_EVERY", 0) != 10 || c.GetInt("BAD_INT", 1) != 1 || c.GetInt("UNSET", 2) != 2 {
		t.Fatal("GetInt")
	}
}
