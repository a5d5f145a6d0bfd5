package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mufasadev/finance-analytics/internal/config"
	"github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 30 * time.Second

type Service struct {
	config  *config.Config
	logger  *zerolog.Logger
	cleanup []func()
}

// NewService creates a new instance of the service
func NewService(cfg *config.Config) *Service {
	l := log.GetLogger()
	return &Service{config: cfg, logger: &l}
}

// OnShutdown registers f to run after the server stopped. Functions run in reverse order of registration.
func (s *Service) OnShutdown(f func()) {
	s.cleanup = append(s.cleanup, f)
}

// Run serves handler until ctx is cancelled or the process receives SIGINT/SIGTERM.
func (s *Service) Run(ctx context.Context, handler http.Handler) {
	server := &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal().Err(err).Msg(errors.ErrorFailedToRunTheServer)
		}
	}()

	s.logger.Info().Str("addr", s.config.Server.Addr()).
		Str("backend", s.config.Storage.Backend).
		Bool("events", s.config.Broker.Enabled()).
		Msg("Server is listening")

	done := make(chan struct{})
	go s.shutdown(ctx, server, done)
	<-done
}

// shutdown gracefully shuts down the server without interrupting any active connections.
func (s *Service) shutdown(ctx context.Context, server *http.Server, done chan struct{}) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("Server is shutting down due to context cancellation...")
	case <-quit:
		s.logger.Info().Msg("Server is shutting down...")
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		s.logger.Error().Err(err).Msg(errors.ErrorFailedToShutdownTheServer)
	}

	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}

	s.logger.Info().Msg("Server stopped")
	close(done)
}
