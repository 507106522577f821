package app

import (
	"context"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
	cryptoService "github.com/allisson/redactor/internal/crypto/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KeyLoader returns the loader that reads or generates the server key pair.
func (c *Container) KeyLoader() *cryptoService.KeyLoader {
	c.keyLoaderInit.Do(func() {
		c.keyLoader = cryptoService.NewKeyLoader(c.KMSService())
	})
	return c.keyLoader
}

// KeyPair returns the server RSA key pair. It is loaded from RSAPrivateKeyPath when
// set and generated otherwise.
func (c *Container) KeyPair() (*cryptoDomain.KeyPair, error) {
	c.keyPairInit.Do(func() {
		var err error
		c.keyPair, err = c.initKeyPair()
		c.storeErr("keyPair", err)
	})
	if err := c.loadErr("keyPair"); err != nil {
		return nil, err
	}
	return c.keyPair, nil
}

// KeyExchange returns the session key unwrapping service.
func (c *Container) KeyExchange() (*cryptoService.KeyExchange, error) {
	c.keyExchangeInit.Do(func() {
		keyPair, err := c.KeyPair()
		if err != nil {
			c.storeErr("keyExchange", fmt.Errorf("failed to get key pair for key exchange: %w", err))
			return
		}
		c.keyExchange = cryptoService.NewKeyExchange(keyPair)
	})
	if err := c.loadErr("keyExchange"); err != nil {
		return nil, err
	}
	return c.keyExchange, nil
}

// SessionCipher returns the ChaCha20-Poly1305 payload cipher.
func (c *Container) SessionCipher() *cryptoService.SessionCipher {
	c.sessionCipherInit.Do(func() {
		c.sessionCipher = cryptoService.NewSessionCipher()
	})
	return c.sessionCipher
}

func (c *Container) initKeyPair() (*cryptoDomain.KeyPair, error) {
	keyPair, err := c.KeyLoader().Load(
		context.Background(),
		c.config.RSAPrivateKeyPath,
		c.config.KMSKeyURI,
		c.config.RSAKeyBits,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load key pair: %w", err)
	}

	source := "generated"
	if c.config.RSAPrivateKeyPath != "" {
		source = c.config.RSAPrivateKeyPath
	}
	c.Logger().Info("server key pair ready",
		slog.String("algorithm", keyPair.Algorithm()),
		slog.String("source", source),
	)
	return keyPair, nil
}
