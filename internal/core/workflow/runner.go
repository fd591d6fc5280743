package workflow

import (
	"context"
	"fmt"
	"iter"
	"time"

	perr "postpilot/internal/platform/errors"
	"postpilot/internal/platform/logger"
	"postpilot/internal/platform/metrics"
)

// DefaultMaxIterations caps draft rewrites when Options leaves it unset
const DefaultMaxIterations = 3

// Options tunes a Runner
type Options struct {
	// MaxIterations is how many drafts may be written before the last one is taken as is
	MaxIterations int
	// StepTimeout bounds a single step, 0 means only the caller's context applies
	StepTimeout time.Duration
	Metrics     *metrics.Metrics
}

// StepError is a failure inside one step
type StepError struct {
	Node Node
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("workflow step %s: %v", e.Node, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }

// Runner executes the step graph for one seed state at a time; it holds no per run state
type Runner struct {
	gen  Generator
	up   Uploader
	pub  Publisher
	opts Options
	log  *logger.Logger
}

// NewRunner wires a runner; nil ports are a programming error
func NewRunner(gen Generator, up Uploader, pub Publisher, opts Options) *Runner {
	if gen == nil || up == nil || pub == nil {
		panic("workflow.NewRunner: nil port")
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	return &Runner{gen: gen, up: up, pub: pub, opts: opts, log: logger.Named("workflow")}
}

// Stream runs the graph from seed and yields one event per executed step, in order.
// A failing step yields its node with the state as it stood before the step and a non nil error,
// then the sequence ends. The last state yielded is the authoritative result.
func (r *Runner) Stream(ctx context.Context, seed State) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		if err := validateSeed(seed); err != nil {
			r.opts.Metrics.ObserveRun(metrics.OutcomeError)
			yield(Event{State: seed}, err)
			return
		}

		st := seed
		node := NodeSelectTopic
		for node != "" {
			if err := ctx.Err(); err != nil {
				r.opts.Metrics.ObserveRun(metrics.OutcomeError)
				yield(Event{Node: node, State: st}, &StepError{Node: node, Err: err})
				return
			}

			next, out, err := r.step(ctx, node, st)
			if err != nil {
				r.log.Error().Err(err).Str("node", string(node)).Str("niche", st.Niche).Msg("workflow step failed")
				r.opts.Metrics.ObserveRun(metrics.OutcomeError)
				yield(Event{Node: node, State: st}, &StepError{Node: node, Err: err})
				return
			}
			st = out
			r.opts.Metrics.ObserveStep(string(node))
			r.log.Debug().Str("node", string(node)).Int("iteration", st.IterationCount).Msg("workflow step done")

			if !yield(Event{Node: node, State: st}, nil) {
				return
			}
			node = next
		}
		r.opts.Metrics.ObserveRun(metrics.OutcomeOK)
	}
}

// Run drains Stream and returns the final state, calling onEvent for each step when set
func (r *Runner) Run(ctx context.Context, seed State, onEvent func(Event)) (State, error) {
	final := seed
	for ev, err := range r.Stream(ctx, seed) {
		if err != nil {
			return final, err
		}
		final = ev.State
		if onEvent != nil {
			onEvent(ev)
		}
	}
	return final, nil
}

func validateSeed(s State) error {
	if s.Niche == "" {
		return perr.WithField(perr.InvalidArgf("niche is required"), "niche")
	}
	if !s.Credentials().Complete() {
		return perr.Unauthorizedf("linkedin credentials are required")
	}
	return nil
}

func (r *Runner) step(ctx context.Context, node Node, st State) (Node, State, error) {
	if r.opts.StepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.StepTimeout)
		defer cancel()
	}

	switch node {
	case NodeSelectTopic:
		return r.selectTopic(ctx, st)
	case NodeWriteDraft:
		return r.writeDraft(ctx, st)
	case NodeReviewDraft:
		return r.reviewDraft(ctx, st)
	case NodeAttachImage:
		return r.attachImage(ctx, st)
	case NodeFinalize:
		return r.finalize(st)
	case NodePublish:
		return r.publish(ctx, st)
	}
	return "", st, perr.Internalf("unknown workflow node %q", node)
}
