package service

import (
	"strings"

	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
)

// Redactor rewrites detected entities. It is stateless and safe for concurrent use.
type Redactor struct{}

// NewRedactor creates a Redactor.
func NewRedactor() *Redactor {
	return &Redactor{}
}

// Redact copies text into a new string, substituting every span with the value chosen
// by strategy. Spans must be ordered, non-overlapping and inside text, as returned by
// MergeSpans; anything else returns redactionDomain.ErrInvalidSpans. Text between spans
// is copied byte for byte.
func (r *Redactor) Redact(
	text string,
	strategy redactionDomain.Strategy,
	spans []redactionDomain.EntitySpan,
) (string, error) {
	if err := strategy.Validate(); err != nil {
		return "", err
	}
	if len(spans) == 0 {
		return text, nil
	}
	if err := validateSpans(text, spans); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text))

	cursor := 0
	for _, span := range spans {
		b.WriteString(text[cursor:span.Start])
		b.WriteString(replacement(strategy, span.EntityType, text[span.Start:span.End]))
		cursor = span.End
	}
	b.WriteString(text[cursor:])

	return b.String(), nil
}

func validateSpans(text string, spans []redactionDomain.EntitySpan) error {
	previousEnd := 0
	for _, span := range spans {
		if !span.InBounds(len(text)) || span.Start < previousEnd {
			return redactionDomain.ErrInvalidSpans
		}
		previousEnd = span.End
	}
	return nil
}

// replacement returns the substitute for one entity.
func replacement(strategy redactionDomain.Strategy, entityType, covered string) string {
	tag := strings.ToUpper(entityType)

	switch strategy {
	case redactionDomain.StrategyReplace:
		return "<" + tag + ">"
	case redactionDomain.StrategyMask:
		return strings.Repeat(string(redactionDomain.MaskChar), redactionDomain.MaskLength)
	case redactionDomain.StrategyFake:
		if value, ok := pickFake(tag, covered); ok {
			return value
		}
		return "<" + tag + ">"
	case redactionDomain.StrategyCustom:
		return "[REDACTED_" + tag + "]"
	default:
		// Unreachable once the strategy has been validated.
		return "<" + tag + ">"
	}
}
