package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/redactor/internal/audit/domain"
	"github.com/allisson/redactor/internal/audit/usecase/mocks"
	apperrors "github.com/allisson/redactor/internal/errors"
)

func TestAuditUseCase_Record(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	t.Run("assigns id and timestamp", func(t *testing.T) {
		repo := &mocks.MockRedactionAuditRepository{}
		uc := &auditUseCase{repo: repo, now: func() time.Time { return fixed }}

		audit := &auditDomain.RedactionAudit{
			RequestID:   "req-1",
			FileID:      "file-1",
			Strategy:    "replace",
			EntityCount: 1,
			Status:      auditDomain.StatusSuccess,
		}
		repo.On("Create", ctx, mock.MatchedBy(func(a *auditDomain.RedactionAudit) bool {
			return a.ID != uuid.Nil && a.CreatedAt.Equal(fixed) && a.RequestID == "req-1"
		})).Return(nil).Once()

		require.NoError(t, uc.Record(ctx, audit))
		assert.Equal(t, byte(7), byte(audit.ID.Version()))
		repo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mocks.MockRedactionAuditRepository{}
		uc := NewAuditUseCase(repo)

		repo.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()

		err := uc.Record(ctx, &auditDomain.RedactionAudit{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to record redaction audit")
	})
}

func TestAuditUseCase_DeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	t.Run("computes cutoff", func(t *testing.T) {
		repo := &mocks.MockRedactionAuditRepository{}
		uc := &auditUseCase{repo: repo, now: func() time.Time { return fixed }}

		repo.On("DeleteOlderThan", ctx, fixed.AddDate(0, 0, -30), true).Return(int64(12), nil).Once()

		count, err := uc.DeleteOlderThan(ctx, 30, true)
		require.NoError(t, err)
		assert.Equal(t, int64(12), count)
		repo.AssertExpectations(t)
	})

	t.Run("negative days", func(t *testing.T) {
		uc := NewAuditUseCase(&mocks.MockRedactionAuditRepository{})

		_, err := uc.DeleteOlderThan(ctx, -1, false)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mocks.MockRedactionAuditRepository{}
		uc := NewAuditUseCase(repo)

		repo.On("DeleteOlderThan", ctx, mock.AnythingOfType("time.Time"), false).
			Return(int64(0), errors.New("db down")).Once()

		_, err := uc.DeleteOlderThan(ctx, 1, false)
		assert.Error(t, err)
	})
}
