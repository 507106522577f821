package service

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
)

// MergeSpans turns raw detector output into an ordered list of non-overlapping spans.
//
// Spans outside the text or empty are discarded and spans that split a UTF-8 sequence
// are widened to the enclosing rune boundaries. On overlap the span with the higher
// score wins, then the longer one, then the lexically smaller entity type, then the one
// already resolved. The loser is trimmed to the parts outside the winner and those
// remainders compete again. The result depends only on the set of input spans, not on
// their order.
func MergeSpans(text string, spans []redactionDomain.EntitySpan) []redactionDomain.EntitySpan {
	queue := make([]redactionDomain.EntitySpan, 0, len(spans))
	for _, span := range spans {
		if !span.InBounds(len(text)) {
			continue
		}
		if math.IsNaN(span.Score) {
			span.Score = 0
		}
		queue = append(queue, widenToRuneBoundaries(text, span))
	}
	slices.SortFunc(queue, compareSpans)

	result := make([]redactionDomain.EntitySpan, 0, len(queue))
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if len(result) == 0 || !result[len(result)-1].Overlaps(next) {
			result = append(result, next)
			continue
		}

		last := result[len(result)-1]
		if !wins(next, last) {
			if next.End > last.End {
				next.Start = last.End
				queue = insertSorted(queue, next)
			}
			continue
		}

		if last.End > next.End {
			tail := last
			tail.Start = next.End
			queue = insertSorted(queue, tail)
		}
		if next.Start > last.Start {
			result[len(result)-1].End = next.Start
		} else {
			result = result[:len(result)-1]
		}
		result = append(result, next)
	}

	return result
}

// compareSpans orders by start ascending, length descending, entity type ascending and
// score descending.
func compareSpans(a, b redactionDomain.EntitySpan) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Len(), a.Len()); c != 0 {
		return c
	}
	if c := strings.Compare(a.EntityType, b.EntityType); c != 0 {
		return c
	}
	return cmp.Compare(b.Score, a.Score)
}

// wins reports whether challenger displaces the already resolved span.
func wins(challenger, resolved redactionDomain.EntitySpan) bool {
	if challenger.Score != resolved.Score {
		return challenger.Score > resolved.Score
	}
	if challenger.Len() != resolved.Len() {
		return challenger.Len() > resolved.Len()
	}
	return challenger.EntityType < resolved.EntityType
}

func insertSorted(queue []redactionDomain.EntitySpan, span redactionDomain.EntitySpan) []redactionDomain.EntitySpan {
	i, _ := slices.BinarySearchFunc(queue, span, compareSpans)
	return slices.Insert(queue, i, span)
}

func widenToRuneBoundaries(text string, span redactionDomain.EntitySpan) redactionDomain.EntitySpan {
	for span.Start > 0 && !utf8.RuneStart(text[span.Start]) {
		span.Start--
	}
	for span.End < len(text) && !utf8.RuneStart(text[span.End]) {
		span.End++
	}
	return span
}
