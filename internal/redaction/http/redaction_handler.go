// Package http provides HTTP handlers for the encrypted upload and redacted download flow.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/allisson/redactor/internal/httputil"
	"github.com/allisson/redactor/internal/redaction/http/dto"
	redactionUseCase "github.com/allisson/redactor/internal/redaction/usecase"
	customValidation "github.com/allisson/redactor/internal/validation"
)

// RedactionHandler handles the handshake, upload and download endpoints.
type RedactionHandler struct {
	redactionUseCase redactionUseCase.RedactionUseCase
	maxUploadBytes   int64
	logger           *slog.Logger
}

// NewRedactionHandler creates a new redaction handler. maxUploadBytes <= 0 disables the body limit.
func NewRedactionHandler(
	redactionUseCase redactionUseCase.RedactionUseCase,
	maxUploadBytes int64,
	logger *slog.Logger,
) *RedactionHandler {
	return &RedactionHandler{
		redactionUseCase: redactionUseCase,
		maxUploadBytes:   maxUploadBytes,
		logger:           logger,
	}
}

// HandshakeHandler publishes the server public key.
// GET /handshake - Returns 200 OK with the algorithm and PEM encoded public key.
func (h *RedactionHandler) HandshakeHandler(c *gin.Context) {
	handshake, err := h.redactionUseCase.Handshake(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapHandshakeToResponse(handshake))
}

// UploadHandler decrypts, redacts and stores an uploaded document.
// POST /upload - Returns 200 OK with the artifact id. Decryption failures return 400
// with a fixed body, detection engine failures 503.
func (h *RedactionHandler) UploadHandler(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var req dto.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httputil.HandleRequestTooLargeGin(c, maxBytesErr.Limit, h.logger)
			return
		}
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input, err := req.ToInput(requestid.Get(c))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	result, err := h.redactionUseCase.Upload(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("document redacted",
		slog.String("request_id", input.RequestID),
		slog.String("file_id", result.FileID),
		slog.String("strategy", input.Strategy.String()),
		slog.Int("entity_count", result.EntityCount),
	)

	c.JSON(http.StatusOK, dto.MapUploadResultToResponse(result))
}

// DownloadHandler serves a redacted artifact as an attachment.
// GET /download/:file_id - Returns 200 OK with the content, 304 when If-None-Match
// matches the checksum, 404 when the artifact is unknown or expired.
func (h *RedactionHandler) DownloadHandler(c *gin.Context) {
	fileID := strings.TrimSpace(c.Param("file_id"))
	if fileID == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("file_id cannot be empty"), h.logger)
		return
	}

	artifact, err := h.redactionUseCase.Download(c.Request.Context(), fileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	etag := `"` + artifact.Checksum + `"`
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-store")
	if artifact.Checksum != "" && c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		c.Writer.WriteHeaderNow()
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": artifact.FileName,
	}))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Content)
}

// DeleteHandler removes a redacted artifact before its TTL expires.
// DELETE /download/:file_id - Returns 204 No Content, 404 when the artifact is unknown.
func (h *RedactionHandler) DeleteHandler(c *gin.Context) {
	fileID := strings.TrimSpace(c.Param("file_id"))
	if fileID == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("file_id cannot be empty"), h.logger)
		return
	}

	if err := h.redactionUseCase.Delete(c.Request.Context(), fileID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// StrategiesHandler lists the supported redaction strategies.
// GET /strategies - Returns 200 OK.
func (h *RedactionHandler) StrategiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapStrategiesToResponse())
}
