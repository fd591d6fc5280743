// Package logger owns the process zerolog root and the request scoped children built from it
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"postpilot/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's logger; callers never import zerolog for it
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level       string
	Format      string // console or json
	Service     string
	Component   string // root component, Named children replace it
	Writer      io.Writer
	WithCaller  bool
	SampleEvery int
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       rc.Get("LEVEL", "info"),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", "postpilot"),
		Component:   strings.TrimSpace(rc.Get("COMPONENT", "")),
		WithCaller:  rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root zerolog.Logger
	// base is root before the component field, so Named never repeats the key
	base zerolog.Logger
)

// Init builds the root logger; only the first call has any effect
func Init(opt Options) {
	once.Do(func() { setup(opt) })
}

// Get returns the root logger, building it from env on first use
func Get() *Logger {
	once.Do(func() { setup(FromEnv()) })
	return &root
}

func setup(opt Options) {
	base = build(opt)
	root = withComponent(base, opt.Component)
}

func withComponent(l zerolog.Logger, component string) zerolog.Logger {
	if component == "" {
		return l
	}
	return l.With().Str("component", component).Logger()
}

func build(opt Options) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opt.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zc := zerolog.New(w).Level(lvl).With().Timestamp()
	if opt.Service != "" {
		zc = zc.Str("service", opt.Service)
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		zc = zc.Str("go_version", bi.GoVersion)
	}
	if opt.WithCaller {
		zc = zc.Caller()
	}
	l := zc.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

type ctxKey uint8

const (
	keyRequestID ctxKey = iota
	keySessionID
)

// WithRequest stores the ids C attaches to every line; blanks are skipped
func WithRequest(ctx context.Context, reqID, sessionID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, keySessionID, sessionID)
	}
	return ctx
}

// C returns a child of the root carrying request_id and session_id from ctx
func C(ctx context.Context) *Logger {
	zc := Get().With()
	if v, _ := ctx.Value(keyRequestID).(string); v != "" {
		zc = zc.Str("request_id", v)
	}
	if v, _ := ctx.Value(keySessionID).(string); v != "" {
		zc = zc.Str("session_id", v)
	}
	l := zc.Logger()
	return &l
}

// Named returns a child tagged with component, replacing the root's LOG_COMPONENT
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	_ = Get()
	l := withComponent(base, component)
	return &l
}
