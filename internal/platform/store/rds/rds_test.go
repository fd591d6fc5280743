package rds

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := Open(context.Background(), Config{URL: "redis://" + mr.Addr() + "/0"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = c.Close() }()

	if c.Options().ReadTimeout != defaultTimeout {
		t.Fatalf("read timeout = %v", c.Options().ReadTimeout)
	}
	if err := c.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Fatalf("miniredis saw %q", got)
	}
}

func TestOpen_Errors(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"blank", "  ", "required"},
		{"bad scheme", "http://nope", "parse redis url"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Open(context.Background(), Config{URL: tc.url})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err := Open(context.Background(), Config{URL: "redis://" + addr, DialTimeout: 200 * time.Millisecond})
	if err == nil || !strings.Contains(err.Error(), "ping redis") {
		t.Fatalf("err = %v", err)
	}
}
