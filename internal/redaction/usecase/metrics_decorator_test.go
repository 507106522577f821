package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	artifactDomain "github.com/allisson/redactor/internal/artifact/domain"
	"github.com/allisson/redactor/internal/metrics"
	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
	"github.com/allisson/redactor/internal/redaction/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordEntities(ctx context.Context, strategy string, count int) {
	m.Called(ctx, strategy, count)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func expectOperation(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "redaction", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "redaction", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestNewRedactionUseCaseWithMetrics(t *testing.T) {
	decorator := NewRedactionUseCaseWithMetrics(&mocks.MockRedactionUseCase{}, &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*RedactionUseCase)(nil), decorator)
}

func TestMetricsDecorator_Handshake(t *testing.T) {
	ctx := context.Background()
	mockUseCase := &mocks.MockRedactionUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	handshake := &redactionDomain.Handshake{Algorithm: "RSA-2048", PublicKey: "pem"}
	mockUseCase.On("Handshake", ctx).Return(handshake, nil).Once()
	expectOperation(mockMetrics, ctx, "handshake", "success")

	got, err := NewRedactionUseCaseWithMetrics(mockUseCase, mockMetrics).Handshake(ctx)

	require.NoError(t, err)
	assert.Equal(t, handshake, got)
	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}

func TestMetricsDecorator_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsEntities", func(t *testing.T) {
		mockUseCase := &mocks.MockRedactionUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := &redactionDomain.UploadInput{Strategy: redactionDomain.StrategyFake}
		result := &redactionDomain.UploadResult{FileID: "file-1", EntityCount: 3}
		mockUseCase.On("Upload", ctx, input).Return(result, nil).Once()
		expectOperation(mockMetrics, ctx, "upload", "success")
		mockMetrics.On("RecordEntities", ctx, "fake", 3).Return().Once()

		got, err := NewRedactionUseCaseWithMetrics(mockUseCase, mockMetrics).Upload(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, result, got)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Success_DefaultStrategyLabel", func(t *testing.T) {
		mockUseCase := &mocks.MockRedactionUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := &redactionDomain.UploadInput{}
		mockUseCase.On("Upload", ctx, input).Return(&redactionDomain.UploadResult{EntityCount: 1}, nil).Once()
		expectOperation(mockMetrics, ctx, "upload", "success")
		mockMetrics.On("RecordEntities", ctx, "replace", 1).Return().Once()

		_, err := NewRedactionUseCaseWithMetrics(mockUseCase, mockMetrics).Upload(ctx, input)

		require.NoError(t, err)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_NoEntitiesRecorded", func(t *testing.T) {
		mockUseCase := &mocks.MockRedactionUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := &redactionDomain.UploadInput{}
		mockUseCase.On("Upload", ctx, input).Return(nil, redactionDomain.ErrDetectionEngineFailed).Once()
		expectOperation(mockMetrics, ctx, "upload", "error")

		got, err := NewRedactionUseCaseWithMetrics(mockUseCase, mockMetrics).Upload(ctx, input)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, redactionDomain.ErrDetectionEngineFailed)
		mockMetrics.AssertNotCalled(t, "RecordEntities", mock.Anything, mock.Anything, mock.Anything)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUseCase := &mocks.MockRedactionUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		artifact := &artifactDomain.Artifact{ID: "file-1"}
		mockUseCase.On("Download", ctx, "file-1").Return(artifact, nil).Once()
		expectOperation(mockMetrics, ctx, "download", "success")

		got, err := NewRedactionUseCaseWithMetrics(mockUseCase, mockMetrics).Download(ctx, "file-1")

		require.NoError(t, err)
		assert.Equal(t, artifact, got)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		mockUseCase := &mocks.MockRedactionUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Download", ctx, "missing").Return(nil, artifactDomain.ErrArtifactNotFound).Once()
		expectOperation(mockMetrics, ctx, "download", "error")

		_, err := NewRedactionUseCaseWithMetrics(mockUseCase, mockMetrics).Download(ctx, "missing")

		assert.ErrorIs(t, err, artifactDomain.ErrArtifactNotFound)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Delete(t *testing.T) {
	ctx := context.Background()
	mockUseCase := &mocks.MockRedactionUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	mockUseCase.On("Delete", ctx, "file-1").Return(errors.New("boom")).Once()
	expectOperation(mockMetrics, ctx, "delete", "error")

	err := NewRedactionUseCaseWithMetrics(mockUseCase, mockMetrics).Delete(ctx, "file-1")

	assert.Error(t, err)
	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}
