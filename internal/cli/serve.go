package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lingobridge/internal/config"
	"lingobridge/internal/router"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger, err := setupLogger(cfg.Env)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		logger.Info("Starting translation gateway...", zap.String("provider", cfg.Provider.Name))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, cleanup, err := buildService(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize translation service: %w", err)
		}
		defer cleanup()

		srv := &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      router.New(svc, logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: cfg.Provider.Timeout + 15*time.Second,
			IdleTimeout:  60 * time.Second,
		}

		return runServer(ctx, srv, logger)
	},
}

// runServer serves until ctx is done or the listener fails, then shuts the
// server down gracefully.
func runServer(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server exited")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
