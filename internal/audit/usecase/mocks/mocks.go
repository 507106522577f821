// Package mocks provides mock implementations of the audit use case interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	auditDomain "github.com/allisson/redactor/internal/audit/domain"
)

// MockRedactionAuditRepository is a mock implementation of RedactionAuditRepository.
type MockRedactionAuditRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockRedactionAuditRepository) Create(ctx context.Context, audit *auditDomain.RedactionAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

// DeleteOlderThan mocks the DeleteOlderThan method.
func (m *MockRedactionAuditRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, olderThan, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditUseCase is a mock implementation of AuditUseCase.
type MockAuditUseCase struct {
	mock.Mock
}

// Record mocks the Record method.
func (m *MockAuditUseCase) Record(ctx context.Context, audit *auditDomain.RedactionAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

// DeleteOlderThan mocks the DeleteOlderThan method.
func (m *MockAuditUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
