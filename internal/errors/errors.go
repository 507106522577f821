// Package errors defines the error kinds shared by every redactor module. Domain
// packages wrap these kinds and the HTTP layer maps each kind to one status code.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDecryption indicates an encrypted payload could not be opened. Handlers must
	// answer with a fixed message regardless of which cryptographic step failed.
	ErrDecryption = errors.New("decryption failed")

	// ErrUnavailable indicates a downstream dependency failed or timed out. The
	// request may be retried by the caller.
	ErrUnavailable = errors.New("unavailable")

	// ErrCapacity indicates a bounded resource, such as the artifact store, is full.
	ErrCapacity = errors.New("capacity exceeded")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message and keeps it in the chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Tag makes err also match kind under Is without changing its message.
func Tag(err, kind error) error {
	if err == nil {
		return nil
	}
	return &taggedError{err: err, kind: kind}
}

type taggedError struct {
	err  error
	kind error
}

func (e *taggedError) Error() string { return e.err.Error() }

func (e *taggedError) Unwrap() []error { return []error{e.err, e.kind} }

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
