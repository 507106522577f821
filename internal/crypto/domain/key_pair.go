package domain

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// KeyPair is the server RSA key pair. It is built once at startup and never mutated,
// so a single value can be shared by every request goroutine.
type KeyPair struct {
	privateKey   *rsa.PrivateKey
	publicKeyPEM []byte
}

// NewKeyPair wraps an RSA private key. The PEM encoding of the public half is computed
// here once so every handshake returns byte-identical output.
func NewKeyPair(privateKey *rsa.PrivateKey) (*KeyPair, error) {
	if privateKey == nil {
		return nil, ErrInvalidPrivateKey
	}
	if privateKey.N.BitLen() < MinRSAKeyBits {
		return nil, ErrWeakKey
	}

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}

	return &KeyPair{
		privateKey:   privateKey,
		publicKeyPEM: pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}),
	}, nil
}

// PrivateKey returns the private half for decryption.
func (k *KeyPair) PrivateKey() *rsa.PrivateKey {
	return k.privateKey
}

// PublicKeyPEM returns a copy of the PEM encoded public key.
func (k *KeyPair) PublicKeyPEM() []byte {
	out := make([]byte, len(k.publicKeyPEM))
	copy(out, k.publicKeyPEM)
	return out
}

// Bits returns the modulus size.
func (k *KeyPair) Bits() int {
	return k.privateKey.N.BitLen()
}

// Algorithm returns the handshake algorithm label, e.g. "RSA-2048".
func (k *KeyPair) Algorithm() string {
	return fmt.Sprintf("RSA-%d", k.Bits())
}
