package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/redactor/internal/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/upload", nil)
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "decryption",
			err:          apperrors.Wrap(apperrors.ErrDecryption, "rsa oaep"),
			expectedCode: http.StatusBadRequest,
			expectedErr:  "decryption_failed",
		},
		{
			name:         "not found",
			err:          apperrors.Wrap(apperrors.ErrNotFound, "artifact"),
			expectedCode: http.StatusNotFound,
			expectedErr:  "not_found",
		},
		{
			name:         "capacity",
			err:          apperrors.Tag(errors.New("artifact store is full"), apperrors.ErrCapacity),
			expectedCode: http.StatusInsufficientStorage,
			expectedErr:  "storage_full",
		},
		{
			name:         "invalid input",
			err:          apperrors.Wrap(apperrors.ErrInvalidInput, "unknown strategy"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  "invalid_input",
		},
		{
			name:         "unavailable",
			err:          apperrors.Wrap(apperrors.ErrUnavailable, "detection engine"),
			expectedCode: http.StatusServiceUnavailable,
			expectedErr:  "service_unavailable",
		},
		{
			name:         "internal",
			err:          errors.New("disk on fire"),
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedErr, decodeError(t, w).Error)
		})
	}
}

func TestHandleErrorGin_DecryptionMessageIsFixed(t *testing.T) {
	first, w1 := newContext()
	second, w2 := newContext()

	HandleErrorGin(first, apperrors.Wrap(apperrors.ErrDecryption, "oaep: bad padding"), nil)
	HandleErrorGin(second, apperrors.Wrap(apperrors.ErrDecryption, "chacha20poly1305: tag mismatch"), nil)

	assert.Equal(t, w1.Body.String(), w2.Body.String())
	assert.NotContains(t, w1.Body.String(), "oaep")
}

func TestHandleErrorGin_InternalDetailsAreLoggedNotReturned(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	c, w := newContext()

	HandleErrorGin(c, errors.New("secret detail"), logger)

	assert.NotContains(t, w.Body.String(), "secret detail")
	assert.Contains(t, buf.String(), "secret detail")
	assert.Contains(t, buf.String(), `"status_code":500`)
}

func TestHandleErrorGin_NilError(t *testing.T) {
	c, w := newContext()

	HandleErrorGin(c, nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newContext()

	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeError(t, w)
	assert.Equal(t, "bad_request", response.Error)
	assert.Equal(t, "unexpected EOF", response.Message)
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newContext()

	HandleValidationErrorGin(c, errors.New("encrypted_data: cannot be blank."), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation_error", decodeError(t, w).Error)
}

func TestHandleRequestTooLargeGin(t *testing.T) {
	c, w := newContext()

	HandleRequestTooLargeGin(c, 1024, nil)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "request_too_large", decodeError(t, w).Error)
}
