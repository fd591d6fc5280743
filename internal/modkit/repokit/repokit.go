// Package repokit is the glue between services and their sql repos: binders and transaction hooks
package repokit

import (
	"context"

	"postpilot/internal/platform/store"
)

type (
	// Queryer is what a bound repo runs statements on, a pool or a tx
	Queryer = store.RowQuerier
	// TxRunner opens transactions
	TxRunner = store.TxRunner
	// Row is a single result row
	Row = store.Row
	// CommandTag reports what a statement touched
	CommandTag = store.CommandTag
)

// Binder binds a repo to a Queryer, usually the tx of the current unit of work
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a function to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// BeginHook runs first thing inside every transaction, e.g. set local statement_timeout
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns a TxRunner that runs hooks in order before fn; statements outside Tx pass straight through
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hooked{TxRunner: inner, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		if err := RunMidHooks(ctx, q, h.hooks...); err != nil {
			return err
		}
		return fn(q)
	})
}

// RunMidHooks runs hooks on q in order and stops at the first error
func RunMidHooks(ctx context.Context, q Queryer, hooks ...BeginHook) error {
	for _, hk := range hooks {
		if err := hk(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
