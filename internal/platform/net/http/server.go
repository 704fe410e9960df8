package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"namematch/internal/platform/config"
	"namematch/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// Server owns the chi mux and the listening http.Server
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer reads ADDR, READ_TIMEOUT_SEC, WRITE_TIMEOUT_SEC and SHUTDOWN_TIMEOUT_SEC
// from cfg. Read and write windows are wide because uploads carry whole statements
func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	sec := func(key string, def int) time.Duration {
		return time.Duration(cfg.MayIntRange(key, def, 1, 3600)) * time.Second
	}
	return &Server{
		mux:   m,
		grace: sec("SHUTDOWN_TIMEOUT_SEC", 10),
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("ADDR", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       sec("READ_TIMEOUT_SEC", 60),
			WriteTimeout:      sec("WRITE_TIMEOUT_SEC", 90),
		},
	}
}

// Router returns the mux behind the Router seam
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is cancelled or the listener fails. Cancellation drains
// in-flight reconciliations for up to the shutdown grace period
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", s.srv.Addr).Msg("http listening")
		if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Dur("grace", s.grace).Msg("http shutting down")
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
		defer cancel()
		return s.srv.Shutdown(sctx)
	})
	return g.Wait()
}
