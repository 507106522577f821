// Package postgresql implements redaction audit persistence for PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	auditDomain "github.com/allisson/redactor/internal/audit/domain"
	apperrors "github.com/allisson/redactor/internal/errors"
)

// PostgreSQLRedactionAuditRepository implements RedactionAudit persistence for PostgreSQL.
type PostgreSQLRedactionAuditRepository struct {
	db *sql.DB
}

// Create inserts a RedactionAudit. Nil entity counts are stored as NULL.
func (p *PostgreSQLRedactionAuditRepository) Create(
	ctx context.Context,
	audit *auditDomain.RedactionAudit,
) error {
	var countsJSON []byte
	if audit.EntityCounts != nil {
		var err error
		countsJSON, err = json.Marshal(audit.EntityCounts)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal entity counts")
		}
	}

	query := `INSERT INTO redaction_audits
			  (id, request_id, file_id, strategy, entity_count, entity_counts, status, error_code, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := p.db.ExecContext(
		ctx,
		query,
		audit.ID,
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
func (p *PostgreSQLRedactionAuditRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	if dryRun {
		var count int64
		err := p.db.QueryRowContext(
			ctx,
			`SELECT COUNT(*) FROM redaction_audits WHERE created_at < $1`,
			olderThan,
		).Scan(&count)
		if err != nil {
			return 0, apperrors.Wrap(err, "failed to count redaction audits")
		}
		return count, nil
	}

	result, err := p.db.ExecContext(ctx, `DELETE FROM redaction_audits WHERE created_at < $1`, olderThan)
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

// NewPostgreSQLRedactionAuditRepository creates a new PostgreSQL RedactionAudit repository.
func NewPostgreSQLRedactionAuditRepository(db *sql.DB) *PostgreSQLRedactionAuditRepository {
	return &PostgreSQLRedactionAuditRepository{db: db}
}
