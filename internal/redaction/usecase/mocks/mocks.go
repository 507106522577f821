// Package mocks provides mock implementations of the redaction use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	artifactDomain "github.com/allisson/redactor/internal/artifact/domain"
	auditDomain "github.com/allisson/redactor/internal/audit/domain"
	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
)

// MockRedactionUseCase is a mock implementation of RedactionUseCase.
type MockRedactionUseCase struct {
	mock.Mock
}

// Handshake mocks the Handshake method.
func (m *MockRedactionUseCase) Handshake(ctx context.Context) (*redactionDomain.Handshake, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redactionDomain.Handshake), args.Error(1)
}

// Upload mocks the Upload method.
func (m *MockRedactionUseCase) Upload(
	ctx context.Context,
	input *redactionDomain.UploadInput,
) (*redactionDomain.UploadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redactionDomain.UploadResult), args.Error(1)
}

// Download mocks the Download method.
func (m *MockRedactionUseCase) Download(ctx context.Context, fileID string) (*artifactDomain.Artifact, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*artifactDomain.Artifact), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockRedactionUseCase) Delete(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

// MockEntityDetector is a mock implementation of EntityDetector.
type MockEntityDetector struct {
	mock.Mock
}

// Detect mocks the Detect method.
func (m *MockEntityDetector) Detect(
	ctx context.Context,
	text string,
	strategy redactionDomain.Strategy,
) ([]redactionDomain.EntitySpan, error) {
	args := m.Called(ctx, text, strategy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]redactionDomain.EntitySpan), args.Error(1)
}

// MockArtifactStore is a mock implementation of ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

// Put mocks the Put method.
func (m *MockArtifactStore) Put(ctx context.Context, content []byte, fileName, contentType string) (string, error) {
	args := m.Called(ctx, content, fileName, contentType)
	return args.String(0), args.Error(1)
}

// Get mocks the Get method.
func (m *MockArtifactStore) Get(ctx context.Context, id string) (*artifactDomain.Artifact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*artifactDomain.Artifact), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockArtifactStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuditRecorder is a mock implementation of AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

// Record mocks the Record method.
func (m *MockAuditRecorder) Record(ctx context.Context, audit *auditDomain.RedactionAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}
