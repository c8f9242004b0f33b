package interfaces

import (
	"context"
	"errors"
)

// ErrTranslatorUnavailable is returned when no machine translator is configured.
var ErrTranslatorUnavailable = errors.New("translator unavailable")

// TranslationFormat tells the translator how to treat the payload.
type TranslationFormat string

const (
	// TranslationFormatText marks plain text payloads.
	TranslationFormatText TranslationFormat = "text"
	// TranslationFormatHTML marks payloads carrying markup that must survive translation.
	TranslationFormatHTML TranslationFormat = "html"
)

// SourceLocaleAuto asks the translator to detect the source language.
const SourceLocaleAuto = "auto"

// TranslateRequest captures a single machine-translation call.
type TranslateRequest struct {
	Text         string            `json:"text"`
	SourceLocale string            `json:"source_locale"`
	TargetLocale string            `json:"target_locale"`
	Format       TranslationFormat `json:"format"`
}

// Translator is the external machine-translation collaborator. Implementations
// are invoked once per (text, target locale) pair and must surface network or
// upstream failures as errors rather than panicking.
type Translator interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslatorFunc adapts a plain function to the Translator contract.
type TranslatorFunc func(ctx context.Context, req TranslateRequest) (string, error)

// Translate implements Translator.
func (f TranslatorFunc) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	return f(ctx, req)
}
