package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is what a pool and a pgx.Tx have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier narrows a pool or a pgx.Tx to RowQuerier
type querier struct{ db pgxQuerier }

func (q querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return q.db.Exec(ctx, sql, args...)
}

func (q querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return q.db.QueryRow(ctx, sql, args...)
}

// pgRunner is the TxRunner the store hands out for postgres
type pgRunner struct {
	querier
	pool *pgxpool.Pool
}

func newPGRunner(pool *pgxpool.Pool) *pgRunner {
	return &pgRunner{querier: querier{db: pool}, pool: pool}
}

// Tx commits when fn returns nil and rolls back otherwise
func (a *pgRunner) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(querier{db: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (a *pgRunner) Ping(ctx context.Context) error { return a.pool.Ping(ctx) }

func (a *pgRunner) Close() error {
	a.pool.Close()
	return nil
}
