// Package pg opens the pgx pool behind the job summary store
package pg

import (
	"context"
	"fmt"
	"time"

	"postpilot/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	AppName  string
	MaxConns int32
	// LogSQL installs Tracer on every connection
	LogSQL bool
	// Slow promotes traced statements to warn; zero never does
	Slow time.Duration
}

var newPool = pgxpool.NewWithConfig

// Open builds a lazy pool; nothing dials until the first statement or Ping
func Open(ctx context.Context, cfg Config, log logger.Logger) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.LogSQL {
		pcfg.ConnConfig.Tracer = NewTracer(log, cfg.Slow)
	}
	return newPool(ctx, pcfg)
}
