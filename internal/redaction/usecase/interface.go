// Package usecase implements the upload pipeline: session key exchange, payload
// decryption, entity detection, span merging, redaction and artifact storage.
package usecase

import (
	"context"

	artifactDomain "github.com/allisson/redactor/internal/artifact/domain"
	auditDomain "github.com/allisson/redactor/internal/audit/domain"
	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
)

// KeyExchanger unwraps client session keys.
type KeyExchanger interface {
	PublicKeyPEM() []byte
	Algorithm() string
	DecryptSessionKey(ciphertext []byte) ([]byte, error)
}

// PayloadOpener decrypts sealed upload bodies.
type PayloadOpener interface {
	Open(sessionKey []byte, payload cryptoDomain.SealedPayload) ([]byte, error)
}

// EntityDetector calls the detection engine.
type EntityDetector interface {
	Detect(ctx context.Context, text string, strategy redactionDomain.Strategy) ([]redactionDomain.EntitySpan, error)
}

// TextRedactor rewrites resolved spans.
type TextRedactor interface {
	Redact(text string, strategy redactionDomain.Strategy, spans []redactionDomain.EntitySpan) (string, error)
}

// ArtifactStore holds redacted artifacts for download.
type ArtifactStore interface {
	Put(ctx context.Context, content []byte, fileName, contentType string) (string, error)
	Get(ctx context.Context, id string) (*artifactDomain.Artifact, error)
	Delete(ctx context.Context, id string) error
}

// AuditRecorder records upload attempts.
type AuditRecorder interface {
	Record(ctx context.Context, audit *auditDomain.RedactionAudit) error
}

// RedactionUseCase defines the operations exposed over HTTP.
type RedactionUseCase interface {
	// Handshake returns the server public key.
	Handshake(ctx context.Context) (*redactionDomain.Handshake, error)

	// Upload decrypts, redacts and stores one document. Nothing is stored unless every
	// step succeeds.
	Upload(ctx context.Context, input *redactionDomain.UploadInput) (*redactionDomain.UploadResult, error)

	// Download returns a stored artifact.
	Download(ctx context.Context, fileID string) (*artifactDomain.Artifact, error)

	// Delete removes a stored artifact before it expires.
	Delete(ctx context.Context, fileID string) error
}
