package cli

import (
	"context"
	"fmt"
	"io"

	"lingobridge/internal/config"
	"lingobridge/internal/database"
	"lingobridge/internal/history"
	"lingobridge/internal/queue"
	"lingobridge/internal/service"
	"lingobridge/internal/translate"

	"go.uber.org/zap"
)

func setupLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// buildService wires the configured provider and the optional history and
// event sinks. The returned cleanup releases everything that was opened.
func buildService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*service.TranslationService, func(), error) {
	var closers []io.Closer
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				logger.Warn("Failed to release resource", zap.Error(err))
			}
		}
	}

	translator, err := translate.NewTranslator(ctx, cfg.Provider, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create translator: %w", err)
	}
	if c, ok := translator.(io.Closer); ok {
		closers = append(closers, c)
	}

	var opts []service.Option

	if cfg.Provider.DetectSource {
		opts = append(opts, service.WithDetector(translate.NewDetector()))
		logger.Info("Local language detection enabled")
	}

	if cfg.Database.Enabled() {
		db, err := database.New(cfg.Database)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		closers = append(closers, db)

		if err := database.Migrate(db.DB); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to migrate database schema: %w", err)
		}
		opts = append(opts, service.WithHistory(history.NewRepository(db)))
		logger.Info("Translation history enabled", zap.String("database", cfg.Database.Name))
	}

	if cfg.RabbitMQ.Enabled() {
		conn, err := queue.NewConnection(cfg.RabbitMQ)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		closers = append(closers, conn)

		publisher := queue.NewPublisher(conn, cfg.RabbitMQ.Exchange)
		closers = append(closers, publisher)

		opts = append(opts, service.WithEvents(publisher))
		logger.Info("Translation events enabled", zap.String("exchange", cfg.RabbitMQ.Exchange))
	}

	return service.NewTranslationService(translator, logger, opts...), cleanup, nil
}
