// Package store opens the optional backends the api runs with: postgres for the job summary
// and redis for keyed sessions
package store

import (
	"context"
	"errors"
	"fmt"

	"postpilot/internal/platform/logger"

	goredis "github.com/redis/go-redis/v9"
)

// Store holds whichever backends were enabled; the zero value has none
type Store struct {
	Log logger.Logger

	// PG backs the job summary, nil when disabled
	PG TxRunner

	// RDS backs the keyed session store, nil when disabled
	RDS goredis.UniversalClient
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// CommandTag reports what a statement touched
type CommandTag interface {
	RowsAffected() int64
}

// RowQuerier is the sql surface repos are written against
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn in a transaction, committing when it returns nil
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Option adjusts a Store during Open
type Option func(*Store)

// WithLogger sets the logger backends report through
func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.Log = log }
}

var (
	openPGFn    = openPG
	openRedisFn = openRedis
)

// Open connects the backends cfg enables; when one fails the ones already open are closed
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: logger.Named("store").With().Logger()}
	for _, o := range opts {
		o(s)
	}

	if cfg.PG.Enabled {
		pg, err := openPGFn(ctx, cfg, s.Log)
		if err != nil {
			return nil, err
		}
		s.PG = pg
	}
	if cfg.Redis.Enabled {
		rdb, err := openRedisFn(ctx, cfg)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.RDS = rdb
	}
	return s, nil
}

// Guard pings every open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if p, ok := s.PG.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pg: %w", err))
		}
	}
	if s.RDS != nil {
		if err := s.RDS.Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close closes whatever is open
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.RDS != nil {
		errs = append(errs, s.RDS.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
