package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineError struct {
	Status int
}

func (e engineError) Error() string { return "engine answered with an error status" }

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "artifact not found")

	assert.EqualError(t, wrapped, "artifact not found: not found")
	assert.True(t, Is(wrapped, ErrNotFound))
	assert.NoError(t, Wrap(nil, "artifact not found"))
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrInvalidInput, "span %d overlaps", 3)

	assert.EqualError(t, wrapped, "span 3 overlaps: invalid input")
	assert.True(t, Is(wrapped, ErrInvalidInput))
	assert.NoError(t, Wrapf(nil, "span %d overlaps", 3))
}

func TestTag(t *testing.T) {
	storageFailed := New("artifact storage failed")
	storeFull := Tag(Wrap(storageFailed, "artifact store is full"), ErrCapacity)

	assert.EqualError(t, storeFull, "artifact store is full: artifact storage failed")
	assert.True(t, Is(storeFull, storageFailed))
	assert.True(t, Is(storeFull, ErrCapacity))
	assert.False(t, Is(storeFull, ErrUnavailable))

	assert.True(t, Is(Wrap(storeFull, "put"), ErrCapacity), "tag survives further wrapping")
	assert.NoError(t, Tag(nil, ErrCapacity))
}

func TestAs(t *testing.T) {
	wrapped := Wrap(Tag(engineError{Status: 502}, ErrUnavailable), "detection engine failed")

	var target engineError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, 502, target.Status)
}

func TestKindsAreDistinct(t *testing.T) {
	kinds := []error{ErrNotFound, ErrInvalidInput, ErrDecryption, ErrUnavailable, ErrCapacity}

	for i, a := range kinds {
		for j, b := range kinds {
			assert.Equal(t, i == j, errors.Is(a, b), "%v vs %v", a, b)
		}
	}
}
