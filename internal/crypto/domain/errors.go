package domain

import (
	"github.com/allisson/redactor/internal/errors"
)

// Cryptographic error definitions.
//
// ErrKeyExchangeFailed and ErrDecryptionFailed both wrap errors.ErrDecryption so the
// HTTP layer answers them identically. Neither carries the underlying library error.
var (
	// ErrKeyExchangeFailed indicates the encrypted session key could not be unwrapped.
	// Wrong ciphertext length, bad OAEP padding and a session key of the wrong size
	// all produce this same value.
	ErrKeyExchangeFailed = errors.Wrap(errors.ErrDecryption, "session key exchange failed")

	// ErrDecryptionFailed indicates the sealed payload was malformed or failed
	// authentication.
	ErrDecryptionFailed = errors.Wrap(errors.ErrDecryption, "payload decryption failed")

	// ErrWeakKey indicates an RSA key smaller than MinRSAKeyBits.
	ErrWeakKey = errors.Wrap(errors.ErrInvalidInput, "rsa key is too small")

	// ErrInvalidPrivateKey indicates the private key material could not be parsed.
	ErrInvalidPrivateKey = errors.Wrap(errors.ErrInvalidInput, "invalid rsa private key")

	// ErrInvalidKeySize indicates a session key that is not SessionKeySize bytes long.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid session key size")

	// ErrUnsupportedKMSScheme indicates a KMS key URI whose scheme has no registered driver.
	ErrUnsupportedKMSScheme = errors.Wrap(errors.ErrInvalidInput, "unsupported kms key uri scheme")
)
