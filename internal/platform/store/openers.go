package store

import (
	"context"
	"fmt"
	"time"

	"postpilot/internal/platform/logger"
	"postpilot/internal/platform/store/pg"
	"postpilot/internal/platform/store/rds"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	goredis "github.com/redis/go-redis/v9"
)

// postgres in compose often starts after the api
const (
	pgPingRetries = 19
	pgPingTimeout = 3 * time.Second
)

var pgPingBackoff = [2]time.Duration{150 * time.Millisecond, 2 * time.Second}

func openPG(ctx context.Context, cfg Config, log logger.Logger) (TxRunner, error) {
	pool, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		LogSQL:   cfg.PG.LogSQL,
		Slow:     cfg.PG.SlowQuery,
	}, log)
	if err != nil {
		return nil, err
	}

	retry := retrypolicy.NewBuilder[any]().
		WithMaxRetries(pgPingRetries).
		WithBackoff(pgPingBackoff[0], pgPingBackoff[1]).
		OnRetry(func(e failsafe.ExecutionEvent[any]) {
			log.Warn().Err(e.LastError()).Int("attempt", e.Attempts()).Msg("postgres not ready")
		}).
		Build()

	err = failsafe.With[any](retry).WithContext(ctx).Run(func() error {
		pctx, cancel := context.WithTimeout(ctx, pgPingTimeout)
		defer cancel()
		return pool.Ping(pctx)
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return newPGRunner(pool), nil
}

func openRedis(ctx context.Context, cfg Config) (goredis.UniversalClient, error) {
	return rds.Open(ctx, rds.Config{URL: cfg.Redis.URL, DialTimeout: cfg.Redis.DialTimeout})
}
