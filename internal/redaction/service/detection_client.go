package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/allisson/redactor/internal/errors"
	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
)

// OffsetUnit is the unit of span offsets in detection engine responses.
type OffsetUnit string

const (
	// OffsetUnitByte means offsets index UTF-8 bytes.
	OffsetUnitByte OffsetUnit = "byte"
	// OffsetUnitRune means offsets index Unicode code points.
	OffsetUnitRune OffsetUnit = "rune"
)

// ParseOffsetUnit converts a configuration value into an OffsetUnit.
func ParseOffsetUnit(s string) (OffsetUnit, error) {
	switch OffsetUnit(s) {
	case OffsetUnitByte, OffsetUnitRune:
		return OffsetUnit(s), nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidInput, "invalid offset unit %q", s)
	}
}

// DefaultDetectionTimeout bounds engine calls when no positive Timeout is configured.
const DefaultDetectionTimeout = 30 * time.Second

// DetectionClientConfig configures a DetectionClient.
type DetectionClientConfig struct {
	URL              string
	Timeout          time.Duration
	OffsetUnit       OffsetUnit
	MaxResponseBytes int64
}

// DetectionClient calls the external detection engine over HTTP.
//
// Request:  POST URL {"text": "...", "strategy": "replace"}
// Response: [{"entity_type","start","end","score"}, ...] or an object holding that
// array under "entity_details" or "entities".
type DetectionClient struct {
	config     DetectionClientConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewDetectionClient creates a DetectionClient backed by a pooled transport.
func NewDetectionClient(config DetectionClientConfig, logger *slog.Logger) *DetectionClient {
	if config.OffsetUnit == "" {
		config.OffsetUnit = OffsetUnitByte
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultDetectionTimeout
	}
	return &DetectionClient{
		config:     config,
		httpClient: cleanhttp.DefaultPooledClient(),
		logger:     logger,
	}
}

type detectionRequest struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
}

type detectedEntity struct {
	EntityType string  `json:"entity_type"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Score      float64 `json:"score"`
}

type detectionEnvelope struct {
	EntityDetails []detectedEntity `json:"entity_details"`
	Entities      []detectedEntity `json:"entities"`
}

// Detect sends text to the engine and returns its spans as byte offsets. Network
// failures, timeouts, non-2xx answers and undecodable bodies all return an error
// wrapping redactionDomain.ErrDetectionEngineFailed.
func (c *DetectionClient) Detect(
	ctx context.Context,
	text string,
	strategy redactionDomain.Strategy,
) ([]redactionDomain.EntitySpan, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, err := json.Marshal(detectionRequest{Text: text, Strategy: strategy.String()})
	if err != nil {
		return nil, c.fail("encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return nil, c.fail("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail("send request", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, c.fail("unexpected status", fmt.Errorf("status %d", resp.StatusCode))
	}

	raw, err := c.readBody(resp.Body)
	if err != nil {
		return nil, c.fail("read response", err)
	}

	entities, err := decodeEntities(raw)
	if err != nil {
		return nil, c.fail("decode response", err)
	}

	spans := make([]redactionDomain.EntitySpan, len(entities))
	for i, entity := range entities {
		spans[i] = redactionDomain.EntitySpan{
			EntityType: entity.EntityType,
			Start:      entity.Start,
			End:        entity.End,
			Score:      entity.Score,
		}
	}

	if c.config.OffsetUnit == OffsetUnitRune {
		spans = runeSpansToBytes(text, spans)
	}
	return spans, nil
}

func (c *DetectionClient) readBody(body io.Reader) ([]byte, error) {
	if c.config.MaxResponseBytes <= 0 {
		return io.ReadAll(body)
	}

	raw, err := io.ReadAll(io.LimitReader(body, c.config.MaxResponseBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > c.config.MaxResponseBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", c.config.MaxResponseBytes)
	}
	return raw, nil
}

// fail logs the cause and returns the sentinel. The cause never reaches clients.
func (c *DetectionClient) fail(step string, cause error) error {
	c.logger.Error("detection engine call failed",
		slog.String("step", step),
		slog.Any("error", cause),
	)
	return errors.Wrap(redactionDomain.ErrDetectionEngineFailed, step)
}

func decodeEntities(raw []byte) ([]detectedEntity, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	if trimmed[0] == '[' {
		var entities []detectedEntity
		if err := json.Unmarshal(trimmed, &entities); err != nil {
			return nil, err
		}
		return entities, nil
	}

	var envelope detectionEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	switch {
	case envelope.EntityDetails != nil:
		return envelope.EntityDetails, nil
	case envelope.Entities != nil:
		return envelope.Entities, nil
	default:
		return nil, fmt.Errorf("response carries no entity list")
	}
}

// runeSpansToBytes converts code point offsets into byte offsets. Offsets past the
// end of text are mapped to -1 so MergeSpans drops the span.
func runeSpansToBytes(text string, spans []redactionDomain.EntitySpan) []redactionDomain.EntitySpan {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))

	toByte := func(runeOffset int) int {
		if runeOffset < 0 || runeOffset >= len(offsets) {
			return -1
		}
		return offsets[runeOffset]
	}

	converted := make([]redactionDomain.EntitySpan, len(spans))
	for i, span := range spans {
		span.Start = toByte(span.Start)
		span.End = toByte(span.End)
		converted[i] = span
	}
	return converted
}
