package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/mentoraid/internal/bootstrap"
	"github.com/yigit/mentoraid/internal/config"
	"github.com/yigit/mentoraid/internal/pkg/helpers"
	"github.com/yigit/mentoraid/internal/pkg/notify"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	deps   *bootstrap.Dependencies
	relay  *notify.NATSRelay
	logger zerolog.Logger
	http   *http.Server

	// baseCtx bounds every background task; cancel stops them on shutdown
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	baseCtx, cancel := context.WithCancel(context.Background())

	deps, err := bootstrap.BuildDependencies(baseCtx, cfg, lgr)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	s := &Server{
		config:  cfg,
		router:  router,
		deps:    deps,
		logger:  lgr,
		baseCtx: baseCtx,
		cancel:  cancel,
	}

	if cfg.Notifications.NATSURL != "" {
		relay, err := notify.ConnectNATSRelay(cfg.Notifications.NATSURL, cfg.Notifications.NATSSubject, lgr)
		if err != nil {
			// The dashboard works without the relay
			lgr.Error().Err(err).Str("url", cfg.Notifications.NATSURL).Msg("NATS relay disabled")
		} else {
			s.relay = relay
		}
	}

	return s, nil
}

// startBackground launches the long-running tasks tied to baseCtx
func (s *Server) startBackground() {
	go s.deps.Hub.Run(s.baseCtx)
	s.deps.Bridge.Start(s.baseCtx)
	s.deps.Scheduler.Start()
	if s.relay != nil {
		go s.relay.Run(s.baseCtx, s.deps.Bus)
	}
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.startBackground()

	s.http = &http.Server{
		Addr:        ":" + s.config.Server.Port,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	// Channel to listen for errors starting the server
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.cancel()
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and its background tasks.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := helpers.ParseDuration(s.config.Server.ShutdownTimeout, 10*time.Second)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	// Pending simulations observe the cancelled context and exit early
	s.cancel()

	if err := s.deps.Scheduler.Stop(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Timed out waiting for maintenance jobs")
		shutdownError = true
	}

	done := make(chan struct{})
	go func() {
		s.deps.UploadService.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn().Msg("Timed out waiting for upload processing to finish")
		shutdownError = true
	}

	if s.relay != nil {
		if err := s.relay.Close(); err != nil {
			s.logger.Error().Err(err).Msg("NATS relay close error")
			shutdownError = true
		}
	}

	s.deps.Bus.Close()

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
