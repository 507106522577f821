package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/redactor/internal/audit/domain"
	apperrors "github.com/allisson/redactor/internal/errors"
)

type auditUseCase struct {
	repo RedactionAuditRepository
	now  func() time.Time
}

func (a *auditUseCase) Record(ctx context.Context, audit *auditDomain.RedactionAudit) error {
	audit.ID = uuid.Must(uuid.NewV7())
	audit.CreatedAt = a.now().UTC()

	if err := a.repo.Create(ctx, audit); err != nil {
		return apperrors.Wrap(err, "failed to record redaction audit")
	}
	return nil
}

func (a *auditUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be zero or positive")
	}

	olderThan := a.now().UTC().AddDate(0, 0, -days)
	count, err := a.repo.DeleteOlderThan(ctx, olderThan, dryRun)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete redaction audits")
	}
	return count, nil
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(repo RedactionAuditRepository) AuditUseCase {
	return &auditUseCase{repo: repo, now: time.Now}
}
