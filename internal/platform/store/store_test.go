package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"postpilot/internal/platform/config"
	"postpilot/internal/platform/logger"
	"postpilot/internal/platform/testkit"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

// fakeTx satisfies TxRunner and optionally Pinger and Close
type fakeTx struct {
	pingErr error
	closed  bool
}

func (f *fakeTx) Tx(context.Context, func(q RowQuerier) error) error       { return nil }
func (f *fakeTx) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (f *fakeTx) QueryRow(context.Context, string, ...any) Row             { return nil }
func (f *fakeTx) Ping(context.Context) error                               { return f.pingErr }
func (f *fakeTx) Close() error                                             { f.closed = true; return nil }

func TestOpen_NothingEnabled(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.RDS != nil {
		t.Fatalf("expected no backends, got %+v", s)
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard on empty store: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close on empty store: %v", err)
	}
}

func TestOpen_PGBadURL(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true, URL: "://bad"}})
	if err == nil || s != nil {
		t.Fatalf("expected error and nil store, got %v %+v", err, s)
	}
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := Open(context.Background(), Config{Redis: RedisConfig{Enabled: true, URL: "redis://" + mr.Addr()}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.RDS == nil {
		t.Fatalf("redis not opened")
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpen_RedisFailureClosesPG(t *testing.T) {
	testkit.Serial(t)

	pg := &fakeTx{}
	testkit.Swap(t, &openPGFn, func(context.Context, Config, logger.Logger) (TxRunner, error) { return pg, nil })
	testkit.Swap(t, &openRedisFn, func(context.Context, Config) (goredis.UniversalClient, error) {
		return nil, errors.New("ping redis: refused")
	})

	_, err := Open(context.Background(), Config{
		PG:    PGConfig{Enabled: true},
		Redis: RedisConfig{Enabled: true},
	})
	if err == nil {
		t.Fatalf("expected redis error")
	}
	if !pg.closed {
		t.Fatalf("pg should be closed when a later backend fails")
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()

	var nilStore *Store
	if nilStore.Guard(context.Background()) == nil {
		t.Fatalf("nil store should fail Guard")
	}

	s := &Store{PG: &fakeTx{pingErr: errors.New("boom")}}
	err := s.Guard(context.Background())
	if err == nil || !strings.HasPrefix(err.Error(), "pg: ") {
		t.Fatalf("err = %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	mr.Close()
	s = &Store{PG: &fakeTx{}, RDS: rdb}
	err = s.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "redis: ") {
		t.Fatalf("err = %v", err)
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_URL", "postgres://u:p@db:5432/postpilot")
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "9")
	t.Setenv("SERVICE_PGSQL_SLOW_QUERY", "1s")
	t.Setenv("SESSION_REDIS_URL", "")

	c := FromConfig(config.New(), "postpilot-api")
	if !c.PG.Enabled || c.PG.MaxConns != 9 || c.PG.SlowQuery != time.Second || c.AppName != "postpilot-api" {
		t.Fatalf("pg config = %+v", c)
	}
	if c.Redis.Enabled {
		t.Fatalf("redis should be disabled without a url")
	}
}
