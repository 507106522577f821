package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
)

var (
	testKeyPairOnce sync.Once
	testKeyPair     *cryptoDomain.KeyPair
	testKeyPairErr  error
)

// sharedKeyPair returns a 2048-bit key pair generated once per test binary.
func sharedKeyPair(t *testing.T) *cryptoDomain.KeyPair {
	t.Helper()
	testKeyPairOnce.Do(func() {
		testKeyPair, testKeyPairErr = GenerateKeyPair(2048)
	})
	require.NoError(t, testKeyPairErr)
	return testKeyPair
}
