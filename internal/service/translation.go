package service

import (
	"context"
	"errors"
	"time"

	"lingobridge/internal/models"
	"lingobridge/internal/translate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrHistoryDisabled is returned by History when no recorder is configured.
var ErrHistoryDisabled = errors.New("history is not enabled")

// LanguageDetector guesses the language of a text.
type LanguageDetector interface {
	DetectISO(text string) (string, bool)
}

// HistoryRecorder persists translation attempts.
type HistoryRecorder interface {
	Record(ctx context.Context, rec models.HistoryRecord) error
	Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error)
}

// EventPublisher publishes translation events.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// TranslationService adapts translation requests to provider calls and back.
type TranslationService struct {
	translator translate.Translator
	detector   LanguageDetector
	history    HistoryRecorder
	events     EventPublisher
	logger     *zap.Logger
	now        func() time.Time
}

// Option customizes the translation service.
type Option func(*TranslationService)

// WithDetector fills detected_source_language for providers that do not report it.
func WithDetector(d LanguageDetector) Option {
	return func(s *TranslationService) {
		s.detector = d
	}
}

// WithHistory records every attempt.
func WithHistory(h HistoryRecorder) Option {
	return func(s *TranslationService) {
		s.history = h
	}
}

// WithEvents publishes an event after every attempt.
func WithEvents(p EventPublisher) Option {
	return func(s *TranslationService) {
		s.events = p
	}
}

// NewTranslationService creates a new translation service.
func NewTranslationService(translator translate.Translator, logger *zap.Logger, opts ...Option) *TranslationService {
	s := &TranslationService{
		translator: translator,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the name of the configured provider.
func (s *TranslationService) Provider() string {
	return s.translator.Name()
}

// Translate performs one provider call and normalizes its outcome. Provider
// failures are reported in the result, never as a Go error.
func (s *TranslationService) Translate(ctx context.Context, req models.TranslationRequest) models.TranslationResult {
	source := req.Source()
	start := s.now()

	out, err := s.translator.Translate(ctx, translate.Request{
		Text:       req.Text,
		SourceLang: source,
		TargetLang: req.TargetLanguage,
	})

	var result models.TranslationResult
	switch {
	case err != nil:
		s.logger.Warn("Translation provider failed",
			zap.String("provider", s.translator.Name()),
			zap.String("target_language", req.TargetLanguage),
			zap.Error(err),
		)
		result = models.NewErrorResult(err.Error())
	case out == nil:
		result = models.NewErrorResult(translate.ErrUnexpectedResponse.Error())
	default:
		detected := out.DetectedSourceLang
		if detected == "" && source == models.AutoDetect && s.detector != nil {
			if code, ok := s.detector.DetectISO(req.Text); ok {
				detected = code
			}
		}
		result = models.NewSuccessResult(out.Text, detected)
	}

	latency := s.now().Sub(start)
	s.recordHistory(ctx, req, source, result, latency)
	s.publishEvent(ctx, req, source, result, latency)

	return result
}

// Languages returns the supported language table.
func (s *TranslationService) Languages() map[string]string {
	return models.Languages()
}

// History returns the most recent translation attempts.
func (s *TranslationService) History(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Recent(ctx, limit)
}

func (s *TranslationService) recordHistory(ctx context.Context, req models.TranslationRequest, source string, result models.TranslationResult, latency time.Duration) {
	if s.history == nil {
		return
	}

	rec := models.HistoryRecord{
		ID:             uuid.New(),
		Provider:       s.translator.Name(),
		SourceLanguage: source,
		TargetLanguage: req.TargetLanguage,
		Text:           req.Text,
		TranslatedText: result.TranslatedText,
		Success:        result.Success,
		LatencyMS:      latency.Milliseconds(),
		CreatedAt:      s.now(),
	}
	if result.DetectedSourceLanguage != "" {
		detected := result.DetectedSourceLanguage
		rec.DetectedSourceLanguage = &detected
	}
	if !result.Success {
		msg := result.Error
		rec.Error = &msg
	}

	// detached from client cancellation
	if err := s.history.Record(context.WithoutCancel(ctx), rec); err != nil {
		s.logger.Error("Failed to record translation history", zap.Error(err))
	}
}

func (s *TranslationService) publishEvent(ctx context.Context, req models.TranslationRequest, source string, result models.TranslationResult, latency time.Duration) {
	if s.events == nil {
		return
	}

	routingKey := models.EventTranslationCompleted
	if !result.Success {
		routingKey = models.EventTranslationFailed
	}

	event := models.TranslationEvent{
		ID:             uuid.NewString(),
		Provider:       s.translator.Name(),
		SourceLanguage: source,
		TargetLanguage: req.TargetLanguage,
		Success:        result.Success,
		Error:          result.Error,
		LatencyMS:      latency.Milliseconds(),
		OccurredAt:     s.now(),
	}

	if err := s.events.Publish(context.WithoutCancel(ctx), routingKey, event); err != nil {
		s.logger.Error("Failed to publish translation event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
