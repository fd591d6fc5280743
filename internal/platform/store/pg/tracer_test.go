package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

type line struct {
	Level     string  `json:"level"`
	Elapsed   float64 `json:"elapsed"`
	Slow      bool    `json:"slow"`
	SQL       string  `json:"sql"`
	Args      int     `json:"args"`
	Tag       string  `json:"tag"`
	Error     string  `json:"error"`
	Component string  `json:"component"`
}

// run traces one statement that takes took on a fake clock
func run(t *testing.T, slow, took time.Duration, end pgx.TraceQueryEndData) (line, string) {
	t.Helper()
	var buf bytes.Buffer
	tr := NewTracer(zerolog.New(&buf).Level(zerolog.ErrorLevel), slow)
	at := time.Date(2025, 9, 3, 13, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return at }

	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{
		SQL:  "UPDATE job_summary\n\tSET total_failed = total_failed + 1\n WHERE id = $1",
		Args: []any{"secret-value"},
	})
	at = at.Add(took)
	tr.TraceQueryEnd(ctx, nil, end)

	var got line
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("unmarshal: %v raw=%s", err, buf.String())
	}
	return got, buf.String()
}

func TestTracerLogsAtDebugWithoutBindValues(t *testing.T) {
	got, raw := run(t, time.Second, 2500*time.Microsecond, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("UPDATE 1")})

	if bytes.Contains([]byte(raw), []byte("secret-value")) {
		t.Fatalf("bind values leaked: %s", raw)
	}
	want := line{
		Level:     "debug",
		Elapsed:   2.5,
		SQL:       "UPDATE job_summary SET total_failed = total_failed + 1 WHERE id = $1",
		Args:      1,
		Tag:       "UPDATE 1",
		Component: "pg",
	}
	if got != want {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
}

func TestTracerSlowAndFailed(t *testing.T) {
	got, _ := run(t, 100*time.Millisecond, 150*time.Millisecond, pgx.TraceQueryEndData{Err: errors.New("boom")})
	if got.Level != "warn" || !got.Slow || got.Error != "boom" {
		t.Fatalf("got %+v", got)
	}

	got, _ = run(t, 0, time.Hour, pgx.TraceQueryEndData{})
	if got.Level != "debug" || got.Slow {
		t.Fatalf("zero threshold should never be slow: %+v", got)
	}
}

func TestTracerIgnoresUnstartedQueries(t *testing.T) {
	var buf bytes.Buffer
	NewTracer(zerolog.New(&buf), 0).TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %s", buf.String())
	}
}
