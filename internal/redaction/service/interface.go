// Package service implements the redaction core: resolving overlapping entity spans,
// rewriting text under a strategy and calling the external detection engine.
package service

import (
	"context"

	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
)

// EntityDetector finds PII entities in plaintext.
type EntityDetector interface {
	// Detect returns the raw, possibly overlapping spans reported for text.
	Detect(ctx context.Context, text string, strategy redactionDomain.Strategy) ([]redactionDomain.EntitySpan, error)
}

// TextRedactor rewrites text so that every span is replaced according to strategy.
type TextRedactor interface {
	Redact(text string, strategy redactionDomain.Strategy, spans []redactionDomain.EntitySpan) (string, error)
}
