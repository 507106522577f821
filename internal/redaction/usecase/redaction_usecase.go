package usecase

import (
	"context"
	"log/slog"
	"unicode/utf8"

	artifactDomain "github.com/allisson/redactor/internal/artifact/domain"
	auditDomain "github.com/allisson/redactor/internal/audit/domain"
	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
	apperrors "github.com/allisson/redactor/internal/errors"
	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
	redactionService "github.com/allisson/redactor/internal/redaction/service"
)

type redactionUseCase struct {
	keyExchange KeyExchanger
	opener      PayloadOpener
	detector    EntityDetector
	redactor    TextRedactor
	store       ArtifactStore
	auditor     AuditRecorder
	logger      *slog.Logger
}

func (r *redactionUseCase) Handshake(ctx context.Context) (*redactionDomain.Handshake, error) {
	return &redactionDomain.Handshake{
		Algorithm: r.keyExchange.Algorithm(),
		PublicKey: string(r.keyExchange.PublicKeyPEM()),
	}, nil
}

func (r *redactionUseCase) Upload(
	ctx context.Context,
	input *redactionDomain.UploadInput,
) (*redactionDomain.UploadResult, error) {
	strategy := input.Strategy
	if strategy == "" {
		strategy = redactionDomain.DefaultStrategy
	}

	result, spans, err := r.upload(ctx, input, strategy)
	r.audit(ctx, input.RequestID, strategy, result, spans, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *redactionUseCase) upload(
	ctx context.Context,
	input *redactionDomain.UploadInput,
	strategy redactionDomain.Strategy,
) (*redactionDomain.UploadResult, []redactionDomain.EntitySpan, error) {
	if err := strategy.Validate(); err != nil {
		return nil, nil, err
	}

	sessionKey, err := r.keyExchange.DecryptSessionKey(input.EncryptedSessionKey)
	if err != nil {
		return nil, nil, err
	}
	defer cryptoDomain.Wipe(sessionKey)

	payload, err := cryptoDomain.ParseSealedPayload(input.EncryptedData)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := r.opener.Open(sessionKey, payload)
	if err != nil {
		return nil, nil, err
	}
	defer cryptoDomain.Wipe(plaintext)

	if !utf8.Valid(plaintext) {
		return nil, nil, redactionDomain.ErrInvalidContent
	}
	text := string(plaintext)

	detected, err := r.detector.Detect(ctx, text, strategy)
	if err != nil {
		return nil, nil, err
	}

	spans := redactionService.MergeSpans(text, detected)
	redacted, err := r.redactor.Redact(text, strategy, spans)
	if err != nil {
		return nil, nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	fileName := redactionDomain.RedactedFileName(input.FileName, strategy)
	fileID, err := r.store.Put(ctx, []byte(redacted), fileName, redactionDomain.RedactedContentType)
	if err != nil {
		return nil, nil, err
	}

	return &redactionDomain.UploadResult{
		FileID:      fileID,
		FileName:    fileName,
		EntityCount: len(spans),
	}, spans, nil
}

func (r *redactionUseCase) Download(ctx context.Context, fileID string) (*artifactDomain.Artifact, error) {
	return r.store.Get(ctx, fileID)
}

func (r *redactionUseCase) Delete(ctx context.Context, fileID string) error {
	return r.store.Delete(ctx, fileID)
}

// audit records the attempt without failing the upload when the audit trail is down.
func (r *redactionUseCase) audit(
	ctx context.Context,
	requestID string,
	strategy redactionDomain.Strategy,
	result *redactionDomain.UploadResult,
	spans []redactionDomain.EntitySpan,
	uploadErr error,
) {
	if r.auditor == nil {
		return
	}

	audit := &auditDomain.RedactionAudit{
		RequestID: requestID,
		Strategy:  strategy.String(),
		Status:    auditDomain.StatusSuccess,
	}
	if uploadErr != nil {
		audit.Status = auditDomain.StatusFailure
		audit.ErrorCode = ErrorCode(uploadErr)
	} else {
		audit.FileID = result.FileID
		audit.EntityCount = result.EntityCount
		audit.EntityCounts = redactionDomain.CountByType(spans)
	}

	if err := r.auditor.Record(context.WithoutCancel(ctx), audit); err != nil {
		r.logger.Error("failed to record redaction audit",
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
	}
}

// ErrorCode maps an upload error to the short category stored in the audit trail.
func ErrorCode(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrDecryption):
		return "decryption_failed"
	case apperrors.Is(err, redactionDomain.ErrDetectionEngineFailed):
		return "detection_engine_failed"
	case apperrors.Is(err, redactionDomain.ErrUnknownStrategy):
		return "unknown_strategy"
	case apperrors.Is(err, redactionDomain.ErrInvalidContent):
		return "invalid_content"
	case apperrors.Is(err, artifactDomain.ErrStorageFailed):
		return "storage_failed"
	case apperrors.Is(err, context.Canceled), apperrors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal_error"
	}
}

// NewRedactionUseCase creates the upload pipeline. auditor may be nil.
func NewRedactionUseCase(
	keyExchange KeyExchanger,
	opener PayloadOpener,
	detector EntityDetector,
	redactor TextRedactor,
	store ArtifactStore,
	auditor AuditRecorder,
	logger *slog.Logger,
) RedactionUseCase {
	return &redactionUseCase{
		keyExchange: keyExchange,
		opener:      opener,
		detector:    detector,
		redactor:    redactor,
		store:       store,
		auditor:     auditor,
		logger:      logger,
	}
}
