// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/redactor/internal/errors"
)

// MaxFileNameLength is the longest file name accepted on upload, in bytes.
const MaxFileNameLength = 255

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// FileName validates a client supplied file name. Path components are tolerated
// because the stored name is sanitized later; control characters and invalid
// UTF-8 are not.
var FileName = validation.NewStringRuleWithError(
	func(s string) bool {
		if len(s) > MaxFileNameLength || !utf8.ValidString(s) {
			return false
		}
		return strings.IndexFunc(s, unicode.IsControl) < 0
	},
	validation.NewError(
		"validation_file_name",
		"must be valid UTF-8 without control characters and at most 255 bytes",
	),
)
