package translate

import (
	"context"
	"fmt"

	"lingobridge/internal/config"

	"go.uber.org/zap"
)

// NewTranslator creates the translator selected by cfg.Name, wrapped in a
// rate limiter when cfg.RPS is positive.
func NewTranslator(ctx context.Context, cfg config.ProviderConfig, logger *zap.Logger) (Translator, error) {
	var t Translator

	switch cfg.Name {
	case config.ProviderGoogle, "":
		if cfg.Google.APIKey == "" {
			return nil, fmt.Errorf("GOOGLE_TRANSLATE_API_KEY is required for google provider")
		}
		logger.Info("Creating Google translator",
			zap.String("endpoint", cfg.Google.Endpoint),
			zap.Duration("timeout", cfg.Timeout),
		)
		g, err := NewGoogleClient(ctx, cfg.Google, cfg.Timeout, logger)
		if err != nil {
			return nil, err
		}
		t = g

	case config.ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for gemini provider")
		}
		logger.Info("Creating Gemini translator",
			zap.String("model", cfg.Gemini.Model),
			zap.String("base_url", cfg.Gemini.BaseURL),
		)
		t = NewGeminiClient(cfg.Gemini, cfg.Timeout, logger)

	case config.ProviderMyMemory:
		logger.Info("Creating MyMemory translator",
			zap.String("base_url", cfg.MyMemory.BaseURL),
		)
		t = NewMyMemoryClient(cfg.MyMemory, cfg.Timeout, logger)

	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", cfg.Name)
	}

	return newRateLimited(t, cfg.RPS), nil
}
