package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
	cryptoService "github.com/allisson/redactor/internal/crypto/service"
)

// RunCreateKeyPair generates the server RSA private key.
//
// Without kmsKeyURI the PKCS#8 PEM is emitted as is. With kmsKeyURI the PEM is encrypted
// with that KMS key and emitted base64 encoded, which is what the server expects when
// KMS_KEY_URI is set. For local development use "base64key://<32-byte-base64-key>".
//
// With outputPath the key is written to that file (mode 0600) and the matching
// environment variables are printed, otherwise the key itself is printed.
func RunCreateKeyPair(
	ctx context.Context,
	keyLoader *cryptoService.KeyLoader,
	logger *slog.Logger,
	writer io.Writer,
	bits int,
	kmsKeyURI string,
	outputPath string,
) error {
	keyPair, err := cryptoService.GenerateKeyPair(bits)
	if err != nil {
		return fmt.Errorf("failed to generate key pair: %w", err)
	}

	data, err := cryptoService.EncodePrivateKeyPEM(keyPair.PrivateKey())
	if err != nil {
		return err
	}

	if kmsKeyURI != "" {
		sealed, err := keyLoader.SealWithKMS(ctx, kmsKeyURI, data)
		cryptoDomain.Wipe(data)
		if err != nil {
			return err
		}
		data = sealed
	}
	defer cryptoDomain.Wipe(data)

	if outputPath == "" {
		_, err := writer.Write(data)
		return err
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write private key file: %w", err)
	}

	logger.Info("key pair created",
		slog.String("algorithm", keyPair.Algorithm()),
		slog.String("path", outputPath),
		slog.Bool("kms", kmsKeyURI != ""),
	)

	_, _ = fmt.Fprintln(writer, "# Key pair configuration")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "RSA_PRIVATE_KEY_PATH=%q\n", outputPath)
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=%q\n", kmsKeyURI)
	}
	return nil
}
