package domain

// EntitySpan is a detected entity expressed as a half-open byte range [Start, End)
// into the decrypted text.
type EntitySpan struct {
	EntityType string
	Start      int
	End        int
	Score      float64
}

// Len returns the number of bytes covered by the span.
func (s EntitySpan) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether s and other share at least one byte.
func (s EntitySpan) Overlaps(other EntitySpan) bool {
	return s.Start < other.End && other.Start < s.End
}

// InBounds reports whether s is non-empty and lies inside a text of textLen bytes.
func (s EntitySpan) InBounds(textLen int) bool {
	return s.Start >= 0 && s.Start < s.End && s.End <= textLen
}

// CountByType returns the number of spans per entity type.
func CountByType(spans []EntitySpan) map[string]int {
	counts := make(map[string]int, len(spans))
	for _, span := range spans {
		counts[span.EntityType]++
	}
	return counts
}
