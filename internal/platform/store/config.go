package store

import (
	"time"

	"postpilot/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG    PGConfig
	Redis RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled   bool
	URL       string
	MaxConns  int32
	LogSQL    bool
	SlowQuery time.Duration
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	Enabled     bool
	URL         string
	DialTimeout time.Duration
}

// FromConfig reads SERVICE_PGSQL_* and SESSION_REDIS_* values
// a backend is enabled when its url is set
func FromConfig(cfg config.Conf, appName string) Config {
	pc := cfg.Prefix("SERVICE_PGSQL_")
	rc := cfg.Prefix("SESSION_REDIS_")

	pgURL := pc.MayString("URL", "")
	redisURL := rc.MayString("URL", "")
	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:   pgURL != "",
			URL:       pgURL,
			MaxConns:  int32(pc.MayInt("MAX_CONNS", 4)),
			LogSQL:    pc.MayBool("LOG_SQL", false),
			SlowQuery: pc.MayDuration("SLOW_QUERY", 200*time.Millisecond),
		},
		Redis: RedisConfig{
			Enabled:     redisURL != "",
			URL:         redisURL,
			DialTimeout: rc.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		},
	}
}
