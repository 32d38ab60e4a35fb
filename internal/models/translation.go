package models

import (
	"time"

	"github.com/google/uuid"
)

// AutoDetect asks the provider to detect the source language.
const AutoDetect = "auto"

// TranslationRequest is a single text to translate.
type TranslationRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language,omitempty"`
}

// Source returns the source language, defaulting to AutoDetect.
func (r TranslationRequest) Source() string {
	if r.SourceLanguage == "" {
		return AutoDetect
	}
	return r.SourceLanguage
}

// TranslationResult is the normalized outcome returned to clients.
// TranslatedText is set only on success and Error only on failure.
type TranslationResult struct {
	Success                bool    `json:"success"`
	TranslatedText         *string `json:"translated_text,omitempty"`
	DetectedSourceLanguage string  `json:"detected_source_language,omitempty"`
	Error                  string  `json:"error,omitempty"`
}

// NewSuccessResult builds a successful result.
func NewSuccessResult(text, detected string) TranslationResult {
	return TranslationResult{
		Success:                true,
		TranslatedText:         &text,
		DetectedSourceLanguage: detected,
	}
}

// NewErrorResult builds a failed result carrying msg.
func NewErrorResult(msg string) TranslationResult {
	return TranslationResult{Success: false, Error: msg}
}

// Text returns the translated text, or "" for failed results.
func (r TranslationResult) Text() string {
	if r.TranslatedText == nil {
		return ""
	}
	return *r.TranslatedText
}

// HistoryRecord is one persisted translation attempt.
type HistoryRecord struct {
	ID                     uuid.UUID `json:"id" db:"id"`
	Provider               string    `json:"provider" db:"provider"`
	SourceLanguage         string    `json:"source_language" db:"source_language"`
	TargetLanguage         string    `json:"target_language" db:"target_language"`
	Text                   string    `json:"text" db:"text"`
	TranslatedText         *string   `json:"translated_text,omitempty" db:"translated_text"`
	DetectedSourceLanguage *string   `json:"detected_source_language,omitempty" db:"detected_source_language"`
	Success                bool      `json:"success" db:"success"`
	Error                  *string   `json:"error,omitempty" db:"error"`
	LatencyMS              int64     `json:"latency_ms" db:"latency_ms"`
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
}

// TranslationEvent is published after every translation attempt. It never carries text.
type TranslationEvent struct {
	ID             string    `json:"id"`
	Provider       string    `json:"provider"`
	SourceLanguage string    `json:"source_language"`
	TargetLanguage string    `json:"target_language"`
	Success        bool      `json:"success"`
	Error          string    `json:"error,omitempty"`
	LatencyMS      int64     `json:"latency_ms"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Routing keys for TranslationEvent.
const (
	EventTranslationCompleted = "translation.completed"
	EventTranslationFailed    = "translation.failed"
)
