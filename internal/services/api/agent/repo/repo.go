// Package repo provides postgres access for the job summary
package repo

import (
	"context"

	"postpilot/internal/modkit/repokit"
)

// Repo is the persistence surface for run outcomes
type Repo interface {
	Summary(ctx context.Context) (Row, error)
	Record(ctx context.Context, completed, failed int64) error
}

// Row is the single summary row
type Row struct {
	Completed int64
	Failed    int64
}

// Schema creates the summary table; applied by postpilot-api -migrate
const Schema = `
create table if not exists job_summary (
	id smallint primary key default 1 check (id = 1),
	total_completed bigint not null default 0,
	total_failed bigint not null default 0,
	updated_at timestamptz not null default now()
)
`

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Summary(ctx context.Context) (Row, error) {
	// an empty table reads as zeros
	const sql = `
select coalesce(sum(total_completed), 0)::bigint, coalesce(sum(total_failed), 0)::bigint
from job_summary
`
	var out Row
	if err := r.q.QueryRow(ctx, sql).Scan(&out.Completed, &out.Failed); err != nil {
		return Row{}, err
	}
	return out, nil
}

func (r *queries) Record(ctx context.Context, completed, failed int64) error {
	const sql = `
insert into job_summary (id, total_completed, total_failed, updated_at)
values (1, $1, $2, now())
on conflict (id) do update
set total_completed = job_summary.total_completed + excluded.total_completed,
    total_failed = job_summary.total_failed + excluded.total_failed,
    updated_at = now()
`
	_, err := r.q.Exec(ctx, sql, completed, failed)
	return err
}
