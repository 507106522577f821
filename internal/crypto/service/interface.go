// Package service implements the cryptographic half of the upload protocol: the
// RSA-OAEP session key exchange and ChaCha20-Poly1305 payload sealing.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
)

// KeyExchanger unwraps session keys sent by clients.
type KeyExchanger interface {
	// PublicKeyPEM returns the PEM encoded public key handed out by the handshake.
	PublicKeyPEM() []byte

	// Algorithm returns the handshake algorithm label.
	Algorithm() string

	// DecryptSessionKey recovers a 32-byte session key from its RSA-OAEP ciphertext.
	DecryptSessionKey(ciphertext []byte) ([]byte, error)
}

// PayloadOpener authenticates and decrypts sealed payloads.
type PayloadOpener interface {
	// Open returns the plaintext of payload or cryptoDomain.ErrDecryptionFailed.
	Open(sessionKey []byte, payload cryptoDomain.SealedPayload) ([]byte, error)
}

// KMSKeeper is the subset of *secrets.Keeper used to protect the private key file.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
