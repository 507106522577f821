package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"

	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
	"github.com/allisson/redactor/internal/errors"
)

// KeyExchange unwraps RSA-OAEP (SHA-256, empty label) encrypted session keys.
// It holds no mutable state and is safe for concurrent use.
type KeyExchange struct {
	keyPair *cryptoDomain.KeyPair
}

// NewKeyExchange creates a KeyExchange bound to keyPair.
func NewKeyExchange(keyPair *cryptoDomain.KeyPair) *KeyExchange {
	return &KeyExchange{keyPair: keyPair}
}

// PublicKeyPEM returns the PKIX PEM public key. Every call returns the same bytes.
func (k *KeyExchange) PublicKeyPEM() []byte {
	return k.keyPair.PublicKeyPEM()
}

// Algorithm returns e.g. "RSA-2048".
func (k *KeyExchange) Algorithm() string {
	return k.keyPair.Algorithm()
}

// DecryptSessionKey recovers the session key. All failures collapse into
// cryptoDomain.ErrKeyExchangeFailed so callers cannot tell padding errors apart.
func (k *KeyExchange) DecryptSessionKey(ciphertext []byte) ([]byte, error) {
	privateKey := k.keyPair.PrivateKey()
	if len(ciphertext) != privateKey.Size() {
		return nil, cryptoDomain.ErrKeyExchangeFailed
	}

	sessionKey, err := rsa.DecryptOAEP(sha256.New(), nil, privateKey, ciphertext, nil)
	if err != nil {
		return nil, cryptoDomain.ErrKeyExchangeFailed
	}

	if len(sessionKey) != cryptoDomain.SessionKeySize {
		cryptoDomain.Wipe(sessionKey)
		return nil, cryptoDomain.ErrKeyExchangeFailed
	}

	return sessionKey, nil
}

// ParsePublicKeyPEM decodes a PKIX "PUBLIC KEY" block as returned by the handshake.
func ParsePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "invalid public key pem")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "invalid public key")
	}

	publicKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.Wrap(errors.ErrInvalidInput, "public key is not rsa")
	}
	return publicKey, nil
}

// EncryptSessionKey wraps sessionKey for publicKey. It is the client half of
// DecryptSessionKey.
func EncryptSessionKey(publicKey *rsa.PublicKey, sessionKey []byte) ([]byte, error) {
	if len(sessionKey) != cryptoDomain.SessionKeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, publicKey, sessionKey, nil)
}

// NewSessionKey returns a fresh random session key.
func NewSessionKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.SessionKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
