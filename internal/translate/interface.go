package translate

import (
	"context"
	"errors"
)

// ErrUnexpectedResponse is returned when a provider answers 2xx but the body
// lacks the fields a translation is read from.
var ErrUnexpectedResponse = errors.New("Unexpected API response format")

// Request is a single provider call.
type Request struct {
	Text string
	// SourceLang is a language code or "auto".
	SourceLang string
	TargetLang string
}

// Translation is what a provider returned.
type Translation struct {
	Text string
	// DetectedSourceLang is empty when the provider does not report it.
	DetectedSourceLang string
}

//go:generate mockgen -destination=mock/translator_mock.go -package=mock_translate lingobridge/internal/translate Translator

// Translator is the interface for translation providers.
type Translator interface {
	// Name identifies the provider in logs, history and events.
	Name() string
	// Translate issues exactly one call to the provider.
	Translate(ctx context.Context, req Request) (*Translation, error)
}
