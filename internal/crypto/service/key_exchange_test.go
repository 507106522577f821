package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
	"github.com/allisson/redactor/internal/errors"
)

func TestKeyExchange_Handshake(t *testing.T) {
	keyExchange := NewKeyExchange(sharedKeyPair(t))

	first := keyExchange.PublicKeyPEM()
	second := keyExchange.PublicKeyPEM()
	assert.Equal(t, first, second)
	assert.Contains(t, string(first), "-----BEGIN PUBLIC KEY-----")
	assert.Equal(t, "RSA-2048", keyExchange.Algorithm())

	publicKey, err := ParsePublicKeyPEM(first)
	require.NoError(t, err)
	assert.Equal(t, sharedKeyPair(t).PrivateKey().PublicKey.N, publicKey.N)
}

func TestKeyExchange_DecryptSessionKey(t *testing.T) {
	keyPair := sharedKeyPair(t)
	keyExchange := NewKeyExchange(keyPair)
	publicKey := &keyPair.PrivateKey().PublicKey

	t.Run("round trip", func(t *testing.T) {
		sessionKey, err := NewSessionKey()
		require.NoError(t, err)

		wrapped, err := EncryptSessionKey(publicKey, sessionKey)
		require.NoError(t, err)

		unwrapped, err := keyExchange.DecryptSessionKey(wrapped)
		require.NoError(t, err)
		assert.Equal(t, sessionKey, unwrapped)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := keyExchange.DecryptSessionKey([]byte("short"))
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyExchangeFailed)
		assert.True(t, errors.Is(err, errors.ErrDecryption))
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		sessionKey, err := NewSessionKey()
		require.NoError(t, err)
		wrapped, err := EncryptSessionKey(publicKey, sessionKey)
		require.NoError(t, err)

		wrapped[10] ^= 0xff
		_, err = keyExchange.DecryptSessionKey(wrapped)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyExchangeFailed)
	})

	t.Run("encrypted under another key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		sessionKey, err := NewSessionKey()
		require.NoError(t, err)
		wrapped, err := EncryptSessionKey(&other.PublicKey, sessionKey)
		require.NoError(t, err)

		_, err = keyExchange.DecryptSessionKey(wrapped)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyExchangeFailed)
	})

	t.Run("session key of wrong size", func(t *testing.T) {
		wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, publicKey, make([]byte, 16), nil)
		require.NoError(t, err)

		_, err = keyExchange.DecryptSessionKey(wrapped)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyExchangeFailed)
	})
}

func TestEncryptSessionKey_InvalidSize(t *testing.T) {
	_, err := EncryptSessionKey(&sharedKeyPair(t).PrivateKey().PublicKey, make([]byte, 8))
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
}

func TestParsePublicKeyPEM_Invalid(t *testing.T) {
	_, err := ParsePublicKeyPEM([]byte("not pem"))
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}
