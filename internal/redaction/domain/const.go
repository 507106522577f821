// Package domain defines the redaction domain: entity spans reported by the detection
// engine, the closed set of redaction strategies and the upload pipeline inputs and outputs.
package domain

// Strategy selects how a detected entity is rewritten.
type Strategy string

const (
	StrategyReplace Strategy = "replace"
	StrategyMask    Strategy = "mask"
	StrategyFake    Strategy = "fake"
	StrategyCustom  Strategy = "custom"
)

// DefaultStrategy is used when an upload does not name one.
const DefaultStrategy = StrategyReplace

// Redaction constants
const (
	// MaskLength is the number of mask characters written for every masked entity,
	// independent of the entity length so the output does not leak it.
	MaskLength = 4

	// MaskChar is the character repeated MaskLength times by the mask strategy.
	MaskChar = '*'

	// DefaultFileName names uploads that did not carry a file name.
	DefaultFileName = "file"

	// RedactedContentType is the content type of every stored artifact.
	RedactedContentType = "text/plain; charset=utf-8"
)

// Strategies lists every strategy in a stable order.
func Strategies() []Strategy {
	return []Strategy{StrategyReplace, StrategyMask, StrategyFake, StrategyCustom}
}

// ParseStrategy converts s into a Strategy. An empty string yields DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return DefaultStrategy, nil
	}
	strategy := Strategy(s)
	if err := strategy.Validate(); err != nil {
		return "", err
	}
	return strategy, nil
}

// Validate checks if the strategy is one of the known values.
func (s Strategy) Validate() error {
	switch s {
	case StrategyReplace, StrategyMask, StrategyFake, StrategyCustom:
		return nil
	default:
		return ErrUnknownStrategy
	}
}

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	return string(s)
}

// Description returns a human readable summary and example for the strategy.
func (s Strategy) Description() (description, example string) {
	switch s {
	case StrategyReplace:
		return "Replace with entity type tags (e.g., <PERSON>, <EMAIL_ADDRESS>)", "John Doe → <PERSON>"
	case StrategyMask:
		return "Replace with asterisks (e.g., ****)", "John Doe → ****"
	case StrategyFake:
		return "Replace with realistic fake data", "John Doe → Alice Johnson"
	case StrategyCustom:
		return "Replace with custom redaction tags", "John Doe → [REDACTED_PERSON]"
	default:
		return "", ""
	}
}
