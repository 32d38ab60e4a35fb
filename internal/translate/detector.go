package translate

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// detectable mirrors the languages of models.Languages. zh-TW has no
// separate lingua model and is reported as zh.
var detectable = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Japanese,
	lingua.Korean,
	lingua.Chinese,
	lingua.Arabic,
	lingua.Hindi,
	lingua.Russian,
	lingua.Portuguese,
	lingua.Turkish,
}

// Detector guesses the language of a text locally, for providers that do not
// report a detected source language.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector restricted to the supported languages.
func NewDetector() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(detectable...).
		Build()

	return &Detector{detector: detector}
}

// DetectISO returns the lower-case ISO 639-1 code of text's language.
func (d *Detector) DetectISO(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
