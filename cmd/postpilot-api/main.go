// @title         PostPilot API
// @version       0.1.0
// @description   LinkedIn sign in, agent driven drafting and publishing

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"postpilot/internal/modkit/repokit"
	"postpilot/internal/platform/config"
	"postpilot/internal/platform/logger"
	"postpilot/internal/platform/metrics"
	phttp "postpilot/internal/platform/net/http"
	"postpilot/internal/platform/store"

	"postpilot/internal/services/api"
	agentrepo "postpilot/internal/services/api/agent/repo"
)

func main() {
	fMigrate := flag.Bool("migrate", false, "create the job_summary table before serving")
	flag.Parse()

	// .env.local then .env; the process env always wins
	config.LoadDotEnv()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// postgres and redis are both optional; unset urls leave the backend nil
	st, err := store.Open(ctx, store.FromConfig(root, "postpilot-api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	if *fMigrate {
		if st.PG == nil {
			l.Panic().Msg("-migrate needs SERVICE_PGSQL_URL")
		}
		if _, err := st.PG.Exec(ctx, agentrepo.Schema); err != nil {
			l.Panic().Err(err).Msg("migrate failed")
		}
		l.Info().Msg("job_summary ready")
	}

	// CORE_API_ADDR, CORE_API_SHUTDOWN_TIMEOUT
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			APIConfig:      apiCfg,
			Store:          st,
			Logger:         l,
			Metrics:        metrics.New(),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
