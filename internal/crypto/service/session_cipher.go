package service

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
)

// SessionCipher seals and opens payloads with ChaCha20-Poly1305 under a
// per-request session key. No associated data is bound.
type SessionCipher struct{}

// NewSessionCipher creates a SessionCipher.
func NewSessionCipher() *SessionCipher {
	return &SessionCipher{}
}

// Open decrypts a parsed sealed payload.
func (s *SessionCipher) Open(sessionKey []byte, payload cryptoDomain.SealedPayload) ([]byte, error) {
	return s.Decrypt(sessionKey, payload.Nonce, payload.Ciphertext)
}

// Decrypt verifies the Poly1305 tag and returns the plaintext. Any failure, including
// a wrong key size or nonce size, returns cryptoDomain.ErrDecryptionFailed.
func (s *SessionCipher) Decrypt(sessionKey, nonce, ciphertext []byte) ([]byte, error) {
	if len(sessionKey) != cryptoDomain.SessionKeySize || len(nonce) != cryptoDomain.NonceSize {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	aead, err := chacha20poly1305.New(sessionKey)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

// Seal encrypts plaintext under sessionKey with a random nonce.
func (s *SessionCipher) Seal(sessionKey, plaintext []byte) (cryptoDomain.SealedPayload, error) {
	aead, err := chacha20poly1305.New(sessionKey)
	if err != nil {
		return cryptoDomain.SealedPayload{}, cryptoDomain.ErrInvalidKeySize
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return cryptoDomain.SealedPayload{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return cryptoDomain.SealedPayload{
		Version:    cryptoDomain.PayloadVersion1,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
	}, nil
}
