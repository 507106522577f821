package usecase

import (
	"context"
	"time"

	artifactDomain "github.com/allisson/redactor/internal/artifact/domain"
	"github.com/allisson/redactor/internal/metrics"
	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
)

// redactionUseCaseWithMetrics decorates RedactionUseCase with metrics instrumentation.
type redactionUseCaseWithMetrics struct {
	next    RedactionUseCase
	metrics metrics.BusinessMetrics
}

// NewRedactionUseCaseWithMetrics wraps a RedactionUseCase with metrics recording.
func NewRedactionUseCaseWithMetrics(useCase RedactionUseCase, m metrics.BusinessMetrics) RedactionUseCase {
	return &redactionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *redactionUseCaseWithMetrics) Handshake(ctx context.Context) (*redactionDomain.Handshake, error) {
	start := time.Now()
	handshake, err := r.next.Handshake(ctx)
	r.record(ctx, "handshake", start, err)
	return handshake, err
}

// Upload also records how many entities were redacted per strategy.
func (r *redactionUseCaseWithMetrics) Upload(
	ctx context.Context,
	input *redactionDomain.UploadInput,
) (*redactionDomain.UploadResult, error) {
	start := time.Now()
	result, err := r.next.Upload(ctx, input)
	r.record(ctx, "upload", start, err)

	if err == nil {
		strategy := input.Strategy
		if strategy == "" {
			strategy = redactionDomain.DefaultStrategy
		}
		r.metrics.RecordEntities(ctx, strategy.String(), result.EntityCount)
	}
	return result, err
}

func (r *redactionUseCaseWithMetrics) Download(ctx context.Context, fileID string) (*artifactDomain.Artifact, error) {
	start := time.Now()
	artifact, err := r.next.Download(ctx, fileID)
	r.record(ctx, "download", start, err)
	return artifact, err
}

func (r *redactionUseCaseWithMetrics) Delete(ctx context.Context, fileID string) error {
	start := time.Now()
	err := r.next.Delete(ctx, fileID)
	r.record(ctx, "delete", start, err)
	return err
}

func (r *redactionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "redaction", operation, status)
	r.metrics.RecordDuration(ctx, "redaction", operation, time.Since(start), status)
}
