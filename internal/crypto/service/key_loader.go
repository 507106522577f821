package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"

	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
)

// KeyLoader provisions the server key pair, either freshly generated or read from a
// PEM file. A file may be stored as base64 KMS ciphertext of the PEM when a KMS key
// URI is configured.
type KeyLoader struct {
	kmsService KMSService
}

// NewKeyLoader creates a KeyLoader.
func NewKeyLoader(kmsService KMSService) *KeyLoader {
	return &KeyLoader{kmsService: kmsService}
}

// Load returns the key pair. With an empty path a new key of the given size is
// generated, otherwise the file is read and, when kmsKeyURI is set, decrypted first.
func (l *KeyLoader) Load(ctx context.Context, path, kmsKeyURI string, bits int) (*cryptoDomain.KeyPair, error) {
	if path == "" {
		return GenerateKeyPair(bits)
	}

	data, err := os.ReadFile(path) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file: %w", err)
	}

	if kmsKeyURI != "" {
		plaintext, err := l.openWithKMS(ctx, kmsKeyURI, data)
		cryptoDomain.Wipe(data)
		if err != nil {
			return nil, err
		}
		data = plaintext
	}
	defer cryptoDomain.Wipe(data)

	privateKey, err := ParsePrivateKeyPEM(data)
	if err != nil {
		return nil, err
	}
	return cryptoDomain.NewKeyPair(privateKey)
}

// SealWithKMS encrypts a PEM private key with the KMS key and returns the base64
// text that Load expects to find on disk.
func (l *KeyLoader) SealWithKMS(ctx context.Context, kmsKeyURI string, pemBytes []byte) ([]byte, error) {
	keeper, err := l.kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	ciphertext, err := keeper.Encrypt(ctx, pemBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt private key with KMS: %w", err)
	}

	out := make([]byte, base64.StdEncoding.EncodedLen(len(ciphertext)))
	base64.StdEncoding.Encode(out, ciphertext)
	return out, nil
}

func (l *KeyLoader) openWithKMS(ctx context.Context, kmsKeyURI string, data []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(data)))
	if err != nil {
		return nil, cryptoDomain.ErrInvalidPrivateKey
	}

	keeper, err := l.kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt private key with KMS: %w", err)
	}
	return plaintext, nil
}

// GenerateKeyPair creates a new RSA key pair of the given size.
func GenerateKeyPair(bits int) (*cryptoDomain.KeyPair, error) {
	if bits < cryptoDomain.MinRSAKeyBits {
		return nil, cryptoDomain.ErrWeakKey
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate rsa key: %w", err)
	}
	return cryptoDomain.NewKeyPair(privateKey)
}

// ParsePrivateKeyPEM accepts "RSA PRIVATE KEY" (PKCS#1) and "PRIVATE KEY" (PKCS#8) blocks.
func ParsePrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, cryptoDomain.ErrInvalidPrivateKey
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, cryptoDomain.ErrInvalidPrivateKey
		}
		return privateKey, nil
	case "PRIVATE KEY":
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, cryptoDomain.ErrInvalidPrivateKey
		}
		privateKey, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, cryptoDomain.ErrInvalidPrivateKey
		}
		return privateKey, nil
	default:
		return nil, cryptoDomain.ErrInvalidPrivateKey
	}
}

// EncodePrivateKeyPEM encodes privateKey as a PKCS#8 "PRIVATE KEY" block.
func EncodePrivateKeyPEM(privateKey *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}
