package domain

import (
	"github.com/allisson/redactor/internal/errors"
)

var (
	// ErrUnknownStrategy indicates a strategy outside the supported set.
	ErrUnknownStrategy = errors.Wrap(errors.ErrInvalidInput, "unknown redaction strategy")

	// ErrInvalidSpans indicates spans passed to the redactor that are out of range,
	// unordered or overlapping. MergeSpans output never triggers it.
	ErrInvalidSpans = errors.Wrap(errors.ErrInvalidInput, "invalid entity spans")

	// ErrInvalidContent indicates decrypted content that is not valid UTF-8 text.
	ErrInvalidContent = errors.Wrap(errors.ErrInvalidInput, "content is not valid utf-8 text")

	// ErrDetectionEngineFailed indicates the detection engine was unreachable, timed out
	// or answered with something other than a valid entity list.
	ErrDetectionEngineFailed = errors.Wrap(errors.ErrUnavailable, "detection engine failed")
)
