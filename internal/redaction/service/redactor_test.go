package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
)

func TestRedactor_Redact_JohnDoe(t *testing.T) {
	redactor := NewRedactor()
	text := "Hello, my name is John Doe"
	spans := []span{{EntityType: "PERSON", Start: 18, End: 26, Score: 0.9}}

	tests := []struct {
		strategy redactionDomain.Strategy
		expected string
	}{
		{strategy: redactionDomain.StrategyReplace, expected: "Hello, my name is <PERSON>"},
		{strategy: redactionDomain.StrategyMask, expected: "Hello, my name is ****"},
		{strategy: redactionDomain.StrategyCustom, expected: "Hello, my name is [REDACTED_PERSON]"},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			redacted, err := redactor.Redact(text, tt.strategy, spans)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, redacted)
		})
	}

	t.Run("fake", func(t *testing.T) {
		redacted, err := redactor.Redact(text, redactionDomain.StrategyFake, spans)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(redacted, "Hello, my name is "))
		assert.Contains(t, fakeValues["PERSON"], strings.TrimPrefix(redacted, "Hello, my name is "))

		again, err := redactor.Redact(text, redactionDomain.StrategyFake, spans)
		require.NoError(t, err)
		assert.Equal(t, redacted, again)
	})
}

func TestRedactor_Redact_Identity(t *testing.T) {
	redactor := NewRedactor()
	text := "Nothing to see here, ünïcödé included"

	for _, strategy := range redactionDomain.Strategies() {
		redacted, err := redactor.Redact(text, strategy, nil)
		require.NoError(t, err)
		assert.Equal(t, text, redacted)
	}
}

func TestRedactor_Redact_LengthLaw(t *testing.T) {
	redactor := NewRedactor()
	text := "Mail bob@example.com or call 555-123-4567, ask for Bob in Zürich"
	raw := []span{
		{EntityType: "EMAIL_ADDRESS", Start: 5, End: 20, Score: 1.0},
		{EntityType: "PHONE_NUMBER", Start: 29, End: 41, Score: 0.75},
		{EntityType: "PERSON", Start: 51, End: 54, Score: 0.85},
		{EntityType: "LOCATION", Start: 58, End: 65, Score: 0.85},
	}
	spans := MergeSpans(text, raw)
	require.Len(t, spans, 4)

	for _, strategy := range redactionDomain.Strategies() {
		t.Run(strategy.String(), func(t *testing.T) {
			redacted, err := redactor.Redact(text, strategy, spans)
			require.NoError(t, err)

			expected := len(text)
			for _, s := range spans {
				expected += len(replacement(strategy, s.EntityType, text[s.Start:s.End])) - s.Len()
			}
			assert.Equal(t, expected, len(redacted))
			assert.True(t, strings.HasPrefix(redacted, "Mail "))
			assert.Contains(t, redacted, " or call ")
			assert.Contains(t, redacted, ", ask for ")
		})
	}
}

func TestRedactor_Redact_Replacements(t *testing.T) {
	redactor := NewRedactor()

	t.Run("entity type is upper-cased", func(t *testing.T) {
		redacted, err := redactor.Redact("hi Ann", redactionDomain.StrategyReplace, []span{
			{EntityType: "person", Start: 3, End: 6, Score: 0.9},
		})
		require.NoError(t, err)
		assert.Equal(t, "hi <PERSON>", redacted)
	})

	t.Run("mask length does not depend on entity length", func(t *testing.T) {
		redacted, err := redactor.Redact("a Bartholomew b", redactionDomain.StrategyMask, []span{
			{EntityType: "PERSON", Start: 2, End: 13, Score: 0.9},
		})
		require.NoError(t, err)
		assert.Equal(t, "a **** b", redacted)
	})

	t.Run("fake falls back to tag for unknown type", func(t *testing.T) {
		redacted, err := redactor.Redact("id AB123", redactionDomain.StrategyFake, []span{
			{EntityType: "MEDICAL_LICENSE", Start: 3, End: 8, Score: 0.9},
		})
		require.NoError(t, err)
		assert.Equal(t, "id <MEDICAL_LICENSE>", redacted)
	})

	t.Run("fake single value pool", func(t *testing.T) {
		redacted, err := redactor.Redact("ssn 078-05-1120", redactionDomain.StrategyFake, []span{
			{EntityType: "US_SSN", Start: 4, End: 15, Score: 0.9},
		})
		require.NoError(t, err)
		assert.Equal(t, "ssn 123-45-6789", redacted)
	})

	t.Run("adjacent spans", func(t *testing.T) {
		redacted, err := redactor.Redact("AnnBob", redactionDomain.StrategyCustom, []span{
			{EntityType: "PERSON", Start: 0, End: 3, Score: 0.9},
			{EntityType: "PERSON", Start: 3, End: 6, Score: 0.9},
		})
		require.NoError(t, err)
		assert.Equal(t, "[REDACTED_PERSON][REDACTED_PERSON]", redacted)
	})
}

func TestRedactor_Redact_Errors(t *testing.T) {
	redactor := NewRedactor()
	text := "Hello, my name is John Doe"

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := redactor.Redact(text, redactionDomain.Strategy("hash"), nil)
		assert.ErrorIs(t, err, redactionDomain.ErrUnknownStrategy)
	})

	tests := []struct {
		name  string
		spans []span
	}{
		{name: "out of range", spans: []span{{EntityType: "PERSON", Start: 18, End: 40}}},
		{name: "empty", spans: []span{{EntityType: "PERSON", Start: 18, End: 18}}},
		{name: "overlapping", spans: []span{
			{EntityType: "PERSON", Start: 18, End: 26},
			{EntityType: "PERSON", Start: 20, End: 22},
		}},
		{name: "unordered", spans: []span{
			{EntityType: "PERSON", Start: 18, End: 26},
			{EntityType: "PERSON", Start: 0, End: 5},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := redactor.Redact(text, redactionDomain.StrategyReplace, tt.spans)
			assert.ErrorIs(t, err, redactionDomain.ErrInvalidSpans)
		})
	}
}
