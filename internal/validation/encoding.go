package validation

import (
	"encoding/base64"
	"strings"

	validation "github.com/jellydator/validation"
)

var (
	errBase64     = validation.NewError("validation_base64", "must be valid base64-encoded data")
	errBase64Size = validation.NewError("validation_base64_size", "decoded value is too large")
)

// DecodeBase64 strictly decodes standard padded base64. Line breaks and
// non-canonical padding bits are rejected. When maxDecoded is positive the decoded
// value may not exceed that many bytes. Errors are validation errors.
func DecodeBase64(s string, maxDecoded int) ([]byte, error) {
	if strings.ContainsAny(s, "\r\n") {
		return nil, errBase64
	}
	if maxDecoded > 0 && base64.StdEncoding.DecodedLen(len(s)) > maxDecoded+2 {
		return nil, errBase64Size
	}

	decoded, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, errBase64
	}
	if maxDecoded > 0 && len(decoded) > maxDecoded {
		return nil, errBase64Size
	}
	return decoded, nil
}

// Base64 returns a rule accepting what DecodeBase64 accepts. Empty strings are left
// to Required.
func Base64(maxDecoded int) validation.Rule {
	return Base64Into(nil, maxDecoded)
}

// Base64Into is Base64 that also stores the decoded bytes in dst when dst is not nil.
func Base64Into(dst *[]byte, maxDecoded int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_base64_type", "must be a string")
		}
		if s == "" {
			return nil
		}

		decoded, err := DecodeBase64(s, maxDecoded)
		if err != nil {
			return err
		}
		if dst != nil {
			*dst = decoded
		}
		return nil
	})
}
