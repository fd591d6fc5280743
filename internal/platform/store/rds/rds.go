// Package rds opens a single node redis client from a url
package rds

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config is a redis:// or rediss:// url plus the socket timeout used when the url sets none
type Config struct {
	URL         string
	DialTimeout time.Duration
}

// Open parses the url, dials and pings
func Open(ctx context.Context, cfg Config) (*goredis.Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	to := cfg.DialTimeout
	if to <= 0 {
		to = defaultTimeout
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = to
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = to
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = to
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
