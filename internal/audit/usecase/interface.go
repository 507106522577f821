// Package usecase records and prunes the redaction audit trail.
package usecase

import (
	"context"
	"time"

	auditDomain "github.com/allisson/redactor/internal/audit/domain"
)

// RedactionAuditRepository persists redaction audit rows.
type RedactionAuditRepository interface {
	Create(ctx context.Context, audit *auditDomain.RedactionAudit) error

	// DeleteOlderThan deletes (or with dryRun counts) rows created before olderThan.
	DeleteOlderThan(ctx context.Context, olderThan time.Time, dryRun bool) (int64, error)
}

// AuditUseCase defines the audit trail operations.
type AuditUseCase interface {
	// Record stores one upload attempt. ID and CreatedAt are assigned here.
	Record(ctx context.Context, audit *auditDomain.RedactionAudit) error

	// DeleteOlderThan removes rows older than the given number of days and returns how
	// many were (or with dryRun would be) removed.
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)
}
