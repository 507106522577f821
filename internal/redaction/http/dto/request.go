// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
	customValidation "github.com/allisson/redactor/internal/validation"
)

// UploadRequest carries an encrypted document. Both binary fields are standard base64.
type UploadRequest struct {
	EncryptedData       string `json:"encrypted_data"`
	EncryptedSessionKey string `json:"encrypted_session_key"`
	FileName            string `json:"file_name"`
	RedactionStrategy   string `json:"redaction_strategy"`

	// Filled by a successful Validate so ToInput does not decode again.
	encryptedData       []byte
	encryptedSessionKey []byte
}

// Validate checks if the upload request is valid.
func (r *UploadRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EncryptedData,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64Into(&r.encryptedData, 0),
		),
		validation.Field(&r.EncryptedSessionKey,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64Into(&r.encryptedSessionKey, cryptoDomain.MaxWrappedKeySize),
		),
		validation.Field(&r.FileName,
			customValidation.FileName,
		),
		validation.Field(&r.RedactionStrategy,
			validation.By(validateStrategy),
		),
	)
}

// ToInput decodes the request into the use case input. Validate must succeed first.
func (r *UploadRequest) ToInput(requestID string) (*redactionDomain.UploadInput, error) {
	encryptedData, err := decodedOrDecode(r.encryptedData, r.EncryptedData, 0)
	if err != nil {
		return nil, err
	}

	encryptedSessionKey, err := decodedOrDecode(
		r.encryptedSessionKey,
		r.EncryptedSessionKey,
		cryptoDomain.MaxWrappedKeySize,
	)
	if err != nil {
		return nil, err
	}

	strategy, err := redactionDomain.ParseStrategy(r.RedactionStrategy)
	if err != nil {
		return nil, err
	}

	return &redactionDomain.UploadInput{
		EncryptedData:       encryptedData,
		EncryptedSessionKey: encryptedSessionKey,
		FileName:            r.FileName,
		Strategy:            strategy,
		RequestID:           requestID,
	}, nil
}

func decodedOrDecode(decoded []byte, encoded string, maxDecoded int) ([]byte, error) {
	if decoded != nil {
		return decoded, nil
	}
	decoded, err := customValidation.DecodeBase64(encoded, maxDecoded)
	if err != nil {
		return nil, customValidation.WrapValidationError(err)
	}
	return decoded, nil
}

func validateStrategy(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_strategy_type", "must be a string")
	}

	if _, err := redactionDomain.ParseStrategy(s); err != nil {
		return validation.NewError("validation_strategy", "must be one of replace, mask, fake, custom")
	}
	return nil
}
