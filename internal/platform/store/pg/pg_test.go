package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"postpilot/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const dsn = "postgres://u:p@h:5432/db?sslmode=disable"

func capture(t *testing.T, err error) **pgxpool.Config {
	t.Helper()
	testkit.Serial(t)
	seen := new(*pgxpool.Config)
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		*seen = pc
		if err != nil {
			return nil, err
		}
		return &pgxpool.Pool{}, nil
	})
	return seen
}

func TestOpenRejectsBadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "://bad"}, zerolog.Nop()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOpenPassesPoolError(t *testing.T) {
	capture(t, errors.New("boom"))
	if _, err := Open(context.Background(), Config{URL: dsn}, zerolog.Nop()); err == nil || err.Error() != "boom" {
		t.Fatalf("err = %v", err)
	}
}

func TestOpenAppliesConfig(t *testing.T) {
	cases := []struct {
		name   string
		cfg    Config
		traced bool
	}{
		{"plain", Config{URL: dsn, AppName: "postpilot-api", MaxConns: 4}, false},
		{"traced", Config{URL: dsn, LogSQL: true, Slow: 200 * time.Millisecond}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen := capture(t, nil)
			if _, err := Open(context.Background(), tc.cfg, zerolog.Nop()); err != nil {
				t.Fatalf("Open: %v", err)
			}
			pc := *seen
			if tc.cfg.MaxConns > 0 && pc.MaxConns != tc.cfg.MaxConns {
				t.Fatalf("MaxConns = %d", pc.MaxConns)
			}
			if got := pc.ConnConfig.RuntimeParams["application_name"]; got != tc.cfg.AppName {
				t.Fatalf("application_name = %q", got)
			}
			tr, ok := pc.ConnConfig.Tracer.(*Tracer)
			if ok != tc.traced {
				t.Fatalf("tracer = %T", pc.ConnConfig.Tracer)
			}
			if ok && tr.slow != tc.cfg.Slow {
				t.Fatalf("slow = %v", tr.slow)
			}
		})
	}
}
