package domain

// PayloadVersion1 tags the only sealed payload layout understood by the server.
const PayloadVersion1 byte = 0x01

// SealedPayload is an upload body encrypted under a session key.
//
// Wire layout, version 1 (before base64 encoding):
//
//	+---------+----------------+-------------------------------+
//	| version |     nonce      |     ciphertext || tag         |
//	| 1 byte  |   12 bytes     |   len(plaintext) + 16 bytes   |
//	+---------+----------------+-------------------------------+
//
// The version byte lets the layout evolve without ambiguity between client and server.
type SealedPayload struct {
	Version    byte
	Nonce      []byte
	Ciphertext []byte
}

// ParseSealedPayload splits raw bytes into version, nonce and ciphertext-with-tag.
// Any malformed input returns ErrDecryptionFailed so parsing failures look exactly
// like authentication failures to the caller.
func ParseSealedPayload(raw []byte) (SealedPayload, error) {
	if len(raw) < 1+NonceSize+TagSize {
		return SealedPayload{}, ErrDecryptionFailed
	}
	if raw[0] != PayloadVersion1 {
		return SealedPayload{}, ErrDecryptionFailed
	}

	return SealedPayload{
		Version:    raw[0],
		Nonce:      raw[1 : 1+NonceSize],
		Ciphertext: raw[1+NonceSize:],
	}, nil
}

// Bytes serializes the payload using the version 1 layout.
func (p SealedPayload) Bytes() []byte {
	out := make([]byte, 0, 1+len(p.Nonce)+len(p.Ciphertext))
	out = append(out, p.Version)
	out = append(out, p.Nonce...)
	out = append(out, p.Ciphertext...)
	return out
}
