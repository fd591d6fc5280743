package pg

import (
	"context"
	"strings"
	"time"

	"postpilot/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type traceKey struct{}

type traceStart struct {
	sql  string
	args int
	at   time.Time
}

// Tracer is a pgx.QueryTracer that logs each statement once it finishes
// bind values are counted, never logged
type Tracer struct {
	log  zerolog.Logger
	slow time.Duration
	now  func() time.Time
}

var _ pgx.QueryTracer = (*Tracer)(nil)

// NewTracer logs at debug whatever level log is set to, and at warn past slow
func NewTracer(log logger.Logger, slow time.Duration) *Tracer {
	return &Tracer{
		log:  log.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
		slow: slow,
		now:  time.Now,
	}
}

func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: d.SQL, args: len(d.Args), at: t.now()})
}

func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(st.at)
	slow := t.slow > 0 && elapsed >= t.slow

	evt := t.log.Debug()
	if slow {
		evt = t.log.Warn()
	}
	evt.Dur("elapsed", elapsed).
		Bool("slow", slow).
		Str("sql", strings.Join(strings.Fields(st.sql), " ")).
		Int("args", st.args).
		Str("tag", d.CommandTag.String()).
		Err(d.Err).
		Msg("pg query")
}
