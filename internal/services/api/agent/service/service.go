// Package service runs the posting workflow for a caller and keeps the job summary
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"postpilot/internal/adapters/linkedin"
	"postpilot/internal/core/credentials"
	"postpilot/internal/core/workflow"
	"postpilot/internal/modkit/repokit"
	perr "postpilot/internal/platform/errors"
	"postpilot/internal/platform/logger"
	"postpilot/internal/services/api/agent/domain"
	"postpilot/internal/services/api/agent/repo"

	"github.com/google/uuid"
)

// Service defines the agent service contract
type Service interface {
	domain.ServicePort
}

// Options tunes the summary store
type Options struct {
	// DB is optional; without it the summary reads zeros and outcomes are not kept
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Repo]
	// StatementTimeout bounds every summary statement, 0 leaves the server default
	StatementTimeout time.Duration
}

// Svc implements the agent service
type Svc struct {
	profiles domain.ProfilePort
	wf       domain.WorkflowPort
	db       repokit.TxRunner
	binder   repokit.Binder[repo.Repo]
	newID    func() string
	log      *logger.Logger
}

// New constructs an agent service
func New(profiles domain.ProfilePort, wf domain.WorkflowPort, opts Options) *Svc {
	if profiles == nil {
		panic("agent.Service requires a non nil ProfilePort")
	}
	if wf == nil {
		panic("agent.Service requires a non nil WorkflowPort")
	}
	s := &Svc{
		profiles: profiles,
		wf:       wf,
		newID:    uuid.NewString,
		log:      logger.Named("agent"),
	}
	if opts.DB != nil {
		if opts.Binder == nil {
			opts.Binder = repo.NewPG()
		}
		s.binder = opts.Binder
		s.db = opts.DB
		if opts.StatementTimeout > 0 {
			s.db = repokit.WithBeginHooks(opts.DB, statementTimeout(opts.StatementTimeout))
		}
	}
	return s
}

// Start verifies the token, then drives a run from seed to publish
func (s *Svc) Start(ctx context.Context, creds credentials.Credentials, in domain.StartQuery) (domain.StartOutput, error) {
	niche := strings.TrimSpace(in.Niche)
	if niche == "" {
		return domain.StartOutput{}, perr.WithField(perr.New(perr.ErrorCodeValidation, "niche is required"), "niche")
	}
	if !creds.Complete() {
		return domain.StartOutput{}, perr.Unauthorizedf("linkedin credentials are required")
	}

	prof, err := s.profiles.FetchProfile(ctx, creds.AccessToken)
	if err != nil {
		if linkedin.IsKind(err, linkedin.KindUpstreamAuth) {
			logger.C(ctx).Error().Err(err).Msg("invalid or expired linkedin access token")
			return domain.StartOutput{}, perr.Wrap(err, perr.ErrorCodeUnauthorized, "Invalid or expired LinkedIn access token")
		}
		return domain.StartOutput{}, err
	}

	runID := s.newID()
	log := logger.C(ctx).With().Str("run_id", runID).Str("niche", niche).Logger()
	log.Info().Str("member", prof.ID).Msg("linkedin member verified, starting workflow")

	seed := workflow.Seed(niche, creds)
	seed.Topic = strings.TrimSpace(in.Topic)
	seed.ImagePath = strings.TrimSpace(in.ImagePath)

	final, err := s.wf.Run(ctx, seed, func(ev workflow.Event) {
		log.Info().Str("node", string(ev.Node)).Int("iteration", ev.State.IterationCount).Msg("node executed")
	})
	s.record(ctx, err == nil)
	if err != nil {
		log.Error().Err(err).Msg("workflow failed")
		return domain.StartOutput{}, err
	}

	log.Info().Str("post_urn", final.PostURN).Msg("workflow finished")
	return domain.StartOutput{
		Status:     "success",
		Message:    "Workflow completed",
		RunID:      runID,
		FinalState: final.Redacted(),
	}, nil
}

// Summary reads the run counters; zeros when no database is configured
func (s *Svc) Summary(ctx context.Context) (domain.JobSummary, error) {
	if s.db == nil {
		return domain.JobSummary{}, nil
	}
	var row repo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		if err := repokit.RunMidHooks(ctx, q, readOnly); err != nil {
			return err
		}
		var err error
		row, err = s.binder.Bind(q).Summary(ctx)
		return err
	})
	if err != nil {
		return domain.JobSummary{}, perr.FromPostgres(err, "read job summary")
	}
	s.log.Debug().Int64("completed", row.Completed).Int64("failed", row.Failed).Msg("job summary fetched")
	return domain.JobSummary{TotalCompleted: row.Completed, TotalFailed: row.Failed}, nil
}

// record keeps the outcome of a run; a failure here never fails the run
func (s *Svc) record(ctx context.Context, ok bool) {
	if s.db == nil {
		return
	}
	var completed, failed int64 = 0, 1
	if ok {
		completed, failed = 1, 0
	}
	// the run may have consumed the request deadline
	ctx = context.WithoutCancel(ctx)
	write := func() error {
		return s.db.Tx(ctx, func(q repokit.Queryer) error {
			return s.binder.Bind(q).Record(ctx, completed, failed)
		})
	}
	err := write()
	// concurrent starts contend on the one summary row
	if perr.Retryable(err) {
		err = write()
	}
	if err != nil {
		s.log.Warn().Err(perr.FromPostgres(err, "record job outcome")).Bool("ok", ok).Msg("job summary not updated")
	}
}

func statementTimeout(d time.Duration) repokit.BeginHook {
	stmt := fmt.Sprintf("set local statement_timeout = %d", d.Milliseconds())
	return func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, stmt)
		return err
	}
}

func readOnly(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, "set transaction read only")
	return err
}
