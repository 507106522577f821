package domain

import (
	"path"
	"strings"
)

// Handshake is the public half of the server key pair as handed to clients.
type Handshake struct {
	Algorithm string
	PublicKey string
}

// UploadInput carries an encrypted upload after base64 decoding.
type UploadInput struct {
	EncryptedData       []byte
	EncryptedSessionKey []byte
	FileName            string
	Strategy            Strategy
	// RequestID correlates the upload with logs and the audit trail.
	RequestID string
}

// UploadResult describes a stored redacted artifact.
type UploadResult struct {
	FileID      string
	FileName    string
	EntityCount int
}

// maxBaseNameLength caps the client supplied part of a stored file name.
const maxBaseNameLength = 100

// RedactedFileName builds "<name>_<strategy>_redacted.txt" from a client supplied name.
// Directory components and extensions are dropped and characters outside
// [A-Za-z0-9._-] become underscores.
func RedactedFileName(name string, strategy Strategy) string {
	base := strings.ReplaceAll(name, "\\", "/")
	base = path.Base(base)
	base = strings.TrimSuffix(base, path.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		if b.Len() >= maxBaseNameLength {
			break
		}
	}

	clean := strings.Trim(b.String(), "._")
	if clean == "" {
		clean = DefaultFileName
	}
	return clean + "_" + strategy.String() + "_redacted.txt"
}
