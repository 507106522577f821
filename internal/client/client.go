// Package client implements the client side of the encrypted upload protocol: fetch
// the server public key, seal the document under a fresh session key, upload it and
// download the redacted result.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
	cryptoService "github.com/allisson/redactor/internal/crypto/service"
	apperrors "github.com/allisson/redactor/internal/errors"
	"github.com/allisson/redactor/internal/httputil"
	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
	"github.com/allisson/redactor/internal/redaction/http/dto"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 * 1024

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to a redactor server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cipher     *cryptoService.SessionCipher
}

// Download is a redacted artifact fetched from the server.
type Download struct {
	FileName    string
	ContentType string
	ETag        string
	Content     []byte
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("server returned %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the status code onto the matching domain sentinel so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.Code == "decryption_failed":
		return apperrors.ErrDecryption
	case e.StatusCode == http.StatusNotFound:
		return apperrors.ErrNotFound
	case e.StatusCode == http.StatusUnprocessableEntity, e.StatusCode == http.StatusBadRequest:
		return apperrors.ErrInvalidInput
	case e.StatusCode == http.StatusServiceUnavailable, e.StatusCode == http.StatusTooManyRequests:
		return apperrors.ErrUnavailable
	default:
		return nil
	}
}

// New creates a Client using a pooled transport.
func New(cfg Config) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		cipher:     cryptoService.NewSessionCipher(),
	}
}

// Handshake fetches the server public key.
func (c *Client) Handshake(ctx context.Context) (*dto.HandshakeResponse, error) {
	var response dto.HandshakeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/handshake", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Upload encrypts content for the server and uploads it for redaction.
func (c *Client) Upload(
	ctx context.Context,
	content []byte,
	fileName string,
	strategy redactionDomain.Strategy,
) (*dto.UploadResponse, error) {
	handshake, err := c.Handshake(ctx)
	if err != nil {
		return nil, err
	}

	publicKey, err := cryptoService.ParsePublicKeyPEM([]byte(handshake.PublicKey))
	if err != nil {
		return nil, err
	}

	sessionKey, err := cryptoService.NewSessionKey()
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Wipe(sessionKey)

	encryptedKey, err := cryptoService.EncryptSessionKey(publicKey, sessionKey)
	if err != nil {
		return nil, err
	}

	payload, err := c.cipher.Seal(sessionKey, content)
	if err != nil {
		return nil, err
	}

	request := dto.UploadRequest{
		EncryptedData:       base64.StdEncoding.EncodeToString(payload.Bytes()),
		EncryptedSessionKey: base64.StdEncoding.EncodeToString(encryptedKey),
		FileName:            fileName,
		RedactionStrategy:   strategy.String(),
	}

	var response dto.UploadResponse
	if err := c.doJSON(ctx, http.MethodPost, "/upload", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Download fetches a redacted artifact.
func (c *Client) Download(ctx context.Context, fileID string) (*Download, error) {
	resp, err := c.do(ctx, http.MethodGet, "/download/"+url.PathEscape(fileID), nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read download: %w", err)
	}

	download := &Download{
		ContentType: resp.Header.Get("Content-Type"),
		ETag:        strings.Trim(resp.Header.Get("ETag"), `"`),
		Content:     content,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		download.FileName = params["filename"]
	}
	return download, nil
}

// Delete removes a redacted artifact from the server.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/download/"+url.PathEscape(fileID), nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// Strategies lists the strategies offered by the server.
func (c *Client) Strategies(ctx context.Context) (*dto.StrategiesResponse, error) {
	var response dto.StrategiesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/strategies", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// do sends the request and turns any non-2xx answer into an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() {
			_ = resp.Body.Close()
		}()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body httputil.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&body); err == nil {
		apiErr.Code = body.Error
		apiErr.Message = body.Message
	}
	return apiErr
}
