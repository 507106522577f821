package service

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
)

type span = redactionDomain.EntitySpan

func TestMergeSpans(t *testing.T) {
	text := "Contact John Smith at john@example.com from Berlin today"

	tests := []struct {
		name     string
		text     string
		spans    []span
		expected []span
	}{
		{
			name:     "no spans",
			text:     text,
			spans:    nil,
			expected: []span{},
		},
		{
			name: "disjoint spans are sorted",
			text: text,
			spans: []span{
				{EntityType: "EMAIL_ADDRESS", Start: 22, End: 38, Score: 1.0},
				{EntityType: "PERSON", Start: 8, End: 18, Score: 0.85},
			},
			expected: []span{
				{EntityType: "PERSON", Start: 8, End: 18, Score: 0.85},
				{EntityType: "EMAIL_ADDRESS", Start: 22, End: 38, Score: 1.0},
			},
		},
		{
			name: "invalid spans are discarded",
			text: text,
			spans: []span{
				{EntityType: "PERSON", Start: -1, End: 4, Score: 1.0},
				{EntityType: "PERSON", Start: 5, End: 5, Score: 1.0},
				{EntityType: "PERSON", Start: 9, End: 3, Score: 1.0},
				{EntityType: "PERSON", Start: 50, End: 500, Score: 1.0},
				{EntityType: "LOCATION", Start: 44, End: 50, Score: 0.7},
			},
			expected: []span{
				{EntityType: "LOCATION", Start: 44, End: 50, Score: 0.7},
			},
		},
		{
			name: "duplicates collapse",
			text: text,
			spans: []span{
				{EntityType: "PERSON", Start: 8, End: 18, Score: 0.85},
				{EntityType: "PERSON", Start: 8, End: 18, Score: 0.85},
			},
			expected: []span{
				{EntityType: "PERSON", Start: 8, End: 18, Score: 0.85},
			},
		},
		{
			name: "contained lower score span is dropped",
			text: text,
			spans: []span{
				{EntityType: "PERSON", Start: 8, End: 18, Score: 0.9},
				{EntityType: "LOCATION", Start: 13, End: 18, Score: 0.4},
			},
			expected: []span{
				{EntityType: "PERSON", Start: 8, End: 18, Score: 0.9},
			},
		},
		{
			name: "contained higher score span splits the outer span",
			text: text,
			spans: []span{
				{EntityType: "PERSON", Start: 0, End: 18, Score: 0.5},
				{EntityType: "LOCATION", Start: 8, End: 12, Score: 0.9},
			},
			expected: []span{
				{EntityType: "PERSON", Start: 0, End: 8, Score: 0.5},
				{EntityType: "LOCATION", Start: 8, End: 12, Score: 0.9},
				{EntityType: "PERSON", Start: 12, End: 18, Score: 0.5},
			},
		},
		{
			name: "higher score wins a partial overlap",
			text: text,
			spans: []span{
				{EntityType: "PERSON", Start: 8, End: 18, Score: 0.6},
				{EntityType: "EMAIL_ADDRESS", Start: 13, End: 38, Score: 0.95},
			},
			expected: []span{
				{EntityType: "PERSON", Start: 8, End: 13, Score: 0.6},
				{EntityType: "EMAIL_ADDRESS", Start: 13, End: 38, Score: 0.95},
			},
		},
		{
			name: "longer span wins on equal score",
			text: text,
			spans: []span{
				{EntityType: "PERSON", Start: 8, End: 12, Score: 0.8},
				{EntityType: "LOCATION", Start: 10, End: 18, Score: 0.8},
			},
			expected: []span{
				{EntityType: "PERSON", Start: 8, End: 10, Score: 0.8},
				{EntityType: "LOCATION", Start: 10, End: 18, Score: 0.8},
			},
		},
		{
			name: "entity type breaks full ties",
			text: text,
			spans: []span{
				{EntityType: "PERSON", Start: 8, End: 14, Score: 0.8},
				{EntityType: "LOCATION", Start: 12, End: 18, Score: 0.8},
			},
			expected: []span{
				{EntityType: "PERSON", Start: 8, End: 12, Score: 0.8},
				{EntityType: "LOCATION", Start: 12, End: 18, Score: 0.8},
			},
		},
		{
			name: "spans splitting a multibyte rune are widened",
			text: "José Doe",
			spans: []span{
				{EntityType: "PERSON", Start: 0, End: 4, Score: 0.9},
			},
			expected: []span{
				{EntityType: "PERSON", Start: 0, End: 5, Score: 0.9},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := MergeSpans(tt.text, tt.spans)
			assert.Equal(t, tt.expected, merged)
			assertResolved(t, tt.text, merged)
		})
	}
}

func TestMergeSpans_OrderInvariance(t *testing.T) {
	text := "Jane Roe lives at 42 Baker Street, London and mails jane.roe@example.org"
	spans := []span{
		{EntityType: "PERSON", Start: 0, End: 8, Score: 0.85},
		{EntityType: "PERSON", Start: 0, End: 4, Score: 0.6},
		{EntityType: "LOCATION", Start: 18, End: 40, Score: 0.7},
		{EntityType: "LOCATION", Start: 35, End: 41, Score: 0.9},
		{EntityType: "EMAIL_ADDRESS", Start: 52, End: 72, Score: 1.0},
		{EntityType: "PERSON", Start: 52, End: 60, Score: 0.5},
		{EntityType: "URL", Start: 61, End: 72, Score: 0.5},
		{EntityType: "NRP", Start: 35, End: 41, Score: 0.9},
	}

	expected := MergeSpans(text, spans)
	assertResolved(t, text, expected)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		shuffled := slices.Clone(spans)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, expected, MergeSpans(text, shuffled))
	}
}

func TestMergeSpans_DoesNotMutateInput(t *testing.T) {
	spans := []span{
		{EntityType: "PERSON", Start: 8, End: 18, Score: 0.6},
		{EntityType: "EMAIL_ADDRESS", Start: 13, End: 38, Score: 0.95},
	}
	original := slices.Clone(spans)

	_ = MergeSpans("Contact John Smith at john@example.com", spans)
	assert.Equal(t, original, spans)
}

// assertResolved checks that spans are ordered, non-overlapping and in bounds.
func assertResolved(t *testing.T, text string, spans []span) {
	t.Helper()
	previousEnd := 0
	for _, s := range spans {
		require.True(t, s.InBounds(len(text)), "span out of bounds: %+v", s)
		require.GreaterOrEqual(t, s.Start, previousEnd, "spans overlap or are unordered")
		previousEnd = s.End
	}
}
