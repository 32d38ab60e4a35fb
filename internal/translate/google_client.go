package translate

import (
	"context"
	"fmt"
	"time"

	"lingobridge/internal/config"
	"lingobridge/internal/models"

	gtranslate "cloud.google.com/go/translate"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleClient handles translation calls to Google Cloud Translation v2.
type GoogleClient struct {
	client  *gtranslate.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewGoogleClient creates a Google client authenticated with cfg.APIKey.
// Extra options are appended after the ones derived from cfg.
func NewGoogleClient(ctx context.Context, cfg config.GoogleConfig, timeout time.Duration, logger *zap.Logger, opts ...option.ClientOption) (*GoogleClient, error) {
	clientOpts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	client, err := gtranslate.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google translate client: %w", err)
	}

	return &GoogleClient{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Name implements Translator.
func (c *GoogleClient) Name() string {
	return config.ProviderGoogle
}

// Translate translates req.Text. The source language is omitted for "auto"
// so that Google detects and reports it.
func (c *GoogleClient) Translate(ctx context.Context, req Request) (*Translation, error) {
	target, err := language.Parse(req.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", req.TargetLang, err)
	}

	opts := &gtranslate.Options{Format: gtranslate.Text}
	if req.SourceLang != "" && req.SourceLang != models.AutoDetect {
		source, err := language.Parse(req.SourceLang)
		if err != nil {
			return nil, fmt.Errorf("invalid source language %q: %w", req.SourceLang, err)
		}
		opts.Source = source
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	translations, err := c.client.Translate(ctx, []string{req.Text}, target, opts)
	if err != nil {
		return nil, fmt.Errorf("Google translation failed: %w", err)
	}
	if len(translations) == 0 {
		c.logger.Debug("Google response has no translations")
		return nil, ErrUnexpectedResponse
	}

	out := &Translation{Text: translations[0].Text}
	if translations[0].Source != language.Und {
		out.DetectedSourceLang = translations[0].Source.String()
	}
	return out, nil
}

// Close releases the underlying client.
func (c *GoogleClient) Close() error {
	return c.client.Close()
}
