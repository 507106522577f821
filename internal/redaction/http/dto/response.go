package dto

import (
	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
)

// UploadSuccessMessage is returned with every successful upload.
const UploadSuccessMessage = "File processed successfully"

// HandshakeResponse publishes the server public key.
type HandshakeResponse struct {
	Algorithm string `json:"algorithm"`
	PublicKey string `json:"public_key"`
}

// UploadResponse identifies the stored redacted artifact.
type UploadResponse struct {
	FileID      string `json:"file_id"`
	FileName    string `json:"filename"`
	Message     string `json:"message"`
	EntityCount int    `json:"entity_count"`
}

// StrategyResponse describes one redaction strategy.
type StrategyResponse struct {
	Description string `json:"description"`
	Example     string `json:"example"`
}

// StrategiesResponse lists every strategy keyed by name.
type StrategiesResponse struct {
	Strategies map[string]StrategyResponse `json:"strategies"`
	Default    string                      `json:"default"`
}

// MapHandshakeToResponse converts a domain handshake to an API response.
func MapHandshakeToResponse(handshake *redactionDomain.Handshake) HandshakeResponse {
	return HandshakeResponse{
		Algorithm: handshake.Algorithm,
		PublicKey: handshake.PublicKey,
	}
}

// MapUploadResultToResponse converts an upload result to an API response.
func MapUploadResultToResponse(result *redactionDomain.UploadResult) UploadResponse {
	return UploadResponse{
		FileID:      result.FileID,
		FileName:    result.FileName,
		Message:     UploadSuccessMessage,
		EntityCount: result.EntityCount,
	}
}

// MapStrategiesToResponse describes every known strategy.
func MapStrategiesToResponse() StrategiesResponse {
	strategies := make(map[string]StrategyResponse, len(redactionDomain.Strategies()))
	for _, strategy := range redactionDomain.Strategies() {
		description, example := strategy.Description()
		strategies[strategy.String()] = StrategyResponse{
			Description: description,
			Example:     example,
		}
	}

	return StrategiesResponse{
		Strategies: strategies,
		Default:    redactionDomain.DefaultStrategy.String(),
	}
}
