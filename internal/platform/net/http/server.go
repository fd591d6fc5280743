package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"postpilot/internal/platform/config"
	"postpilot/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listener
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server

	shutdownTimeout time.Duration
}

// NewServer reads ADDR (default ":8000") and SHUTDOWN_TIMEOUT from cfg
func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("ADDR", ":8000"),
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: cfg.MayDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Router is the mount point for the api
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler serves the mounted routes, handy for httptest
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run listens until ctx is done, then drains in flight requests
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	log.Info().Dur("timeout", s.shutdownTimeout).Msg("http draining")
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
