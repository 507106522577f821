// Package domain defines the redaction audit trail. Audit records describe what
// happened to an upload and never contain any part of the uploaded or redacted text.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of an upload attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// RedactionAudit records one upload attempt.
type RedactionAudit struct {
	ID        uuid.UUID
	RequestID string
	// FileID is empty when the upload failed.
	FileID      string
	Strategy    string
	EntityCount int
	// EntityCounts maps entity type to the number of redacted spans of that type.
	EntityCounts map[string]int
	Status       Status
	// ErrorCode is a short failure category such as "decryption_failed".
	ErrorCode string
	CreatedAt time.Time
}
