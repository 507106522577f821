// Package mysql implements redaction audit persistence for MySQL.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	auditDomain "github.com/allisson/redactor/internal/audit/domain"
	apperrors "github.com/allisson/redactor/internal/errors"
)

// MySQLRedactionAuditRepository implements RedactionAudit persistence for MySQL.
// Uses BINARY(16) for the UUID primary key.
type MySQLRedactionAuditRepository struct {
	db *sql.DB
}

// Create inserts a RedactionAudit. Nil entity counts are stored as NULL.
func (m *MySQLRedactionAuditRepository) Create(
	ctx context.Context,
	audit *auditDomain.RedactionAudit,
) error {
	id, err := audit.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal redaction audit id")
	}

	var countsJSON []byte
	if audit.EntityCounts != nil {
		countsJSON, err = json.Marshal(audit.EntityCounts)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal entity counts")
		}
	}

	query := `INSERT INTO redaction_audits
			  (id, request_id, file_id, strategy, entity_count, entity_counts, status, error_code, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = m.db.ExecContext(
		ctx,
		query,
		id,
		audit.RequestID,
		nullString(audit.FileID),
		audit.Strategy,
		audit.EntityCount,
		countsJSON,
		string(audit.Status),
		nullString(audit.ErrorCode),
		audit.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create redaction audit")
	}

	return nil
}

// DeleteOlderThan removes audit rows created before olderThan. With dryRun the rows
// are only counted.
func (m *MySQLRedactionAuditRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	if dryRun {
		var count int64
		err := m.db.QueryRowContext(
			ctx,
			`SELECT COUNT(*) FROM redaction_audits WHERE created_at < ?`,
			olderThan,
		).Scan(&count)
		if err != nil {
			return 0, apperrors.Wrap(err, "failed to count redaction audits")
		}
		return count, nil
	}

	result, err := m.db.ExecContext(ctx, `DELETE FROM redaction_audits WHERE created_at < ?`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete redaction audits")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows count")
	}

	return count, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NewMySQLRedactionAuditRepository creates a new MySQL RedactionAudit repository.
func NewMySQLRedactionAuditRepository(db *sql.DB) *MySQLRedactionAuditRepository {
	return &MySQLRedactionAuditRepository{db: db}
}
