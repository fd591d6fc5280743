// Package modkit assembles API modules from shared deps and options
package modkit

import (
	"postpilot/internal/modkit/module"
	"postpilot/internal/modkit/repokit"
	"postpilot/internal/platform/config"
	"postpilot/internal/platform/logger"
	"postpilot/internal/platform/metrics"

	goredis "github.com/redis/go-redis/v9"
)

// Module is re-exported so services only import modkit
type Module = module.Module

// Deps holds core dependencies passed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	// PG is nil when no database is configured
	PG repokit.TxRunner
	// RDS is nil when sessions live in process memory
	RDS     goredis.UniversalClient
	Metrics *metrics.Metrics
}
