// Package domain defines the cryptographic domain of the upload handshake: the server
// key pair, the session key and nonce sizes, and the sealed payload wire format.
package domain

// Sizes shared by the client and the server.
const (
	// SessionKeySize is the size in bytes of a client generated ChaCha20-Poly1305 session key.
	SessionKeySize = 32

	// NonceSize is the ChaCha20-Poly1305 nonce size (96 bits).
	NonceSize = 12

	// TagSize is the Poly1305 authentication tag size appended to every ciphertext.
	TagSize = 16

	// MinRSAKeyBits is the smallest accepted RSA modulus.
	MinRSAKeyBits = 2048

	// MaxWrappedKeySize bounds an RSA-OAEP wrapped session key (an 8192-bit modulus).
	MaxWrappedKeySize = 1024
)

// Algorithm names exposed to clients.
const (
	// SessionCipherAlgorithm is the AEAD used for upload bodies.
	SessionCipherAlgorithm = "chacha20-poly1305"

	// KeyWrapAlgorithm describes how session keys are wrapped with the server public key.
	// OAEP uses SHA-256 for both the label hash and MGF1, with an empty label.
	KeyWrapAlgorithm = "RSA-OAEP-SHA256"
)
