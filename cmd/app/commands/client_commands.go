package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/fatih/color"

	"github.com/allisson/redactor/internal/client"
	redactionDomain "github.com/allisson/redactor/internal/redaction/domain"
	"github.com/allisson/redactor/internal/redaction/http/dto"
)

// RedactorClient is the part of the protocol client the CLI needs.
type RedactorClient interface {
	Upload(
		ctx context.Context,
		content []byte,
		fileName string,
		strategy redactionDomain.Strategy,
	) (*dto.UploadResponse, error)
	Download(ctx context.Context, fileID string) (*client.Download, error)
	Delete(ctx context.Context, fileID string) error
	Strategies(ctx context.Context) (*dto.StrategiesResponse, error)
}

var (
	placeholderPattern = regexp.MustCompile(`<[A-Z0-9_]+>|\[REDACTED_[A-Z0-9_]+\]|\*{4}`)

	placeholderColor = color.New(color.FgRed, color.Bold)
	labelColor       = color.New(color.FgCyan)
	successColor     = color.New(color.FgGreen)
)

// highlightPlaceholders colors every redaction marker in text. Plain text is
// returned when color output is disabled.
func highlightPlaceholders(text string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		return placeholderColor.Sprint(match)
	})
}

// RunUpload encrypts a file, uploads it for redaction and prints the artifact id.
// An empty inputPath or "-" reads the document from streams.Reader.
func RunUpload(
	ctx context.Context,
	redactorClient RedactorClient,
	streams IOTuple,
	inputPath string,
	fileName string,
	strategy string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	parsed, err := redactionDomain.ParseStrategy(strategy)
	if err != nil {
		return fmt.Errorf("invalid strategy %q: %w", strategy, err)
	}

	content, err := readInput(streams.Reader, inputPath)
	if err != nil {
		return err
	}

	if fileName == "" && inputPath != "" && inputPath != "-" {
		fileName = filepath.Base(inputPath)
	}

	response, err := redactorClient.Upload(ctx, content, fileName, parsed)
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}

	if format == "json" {
		return writeJSON(streams.Writer, response)
	}

	_, _ = fmt.Fprintln(streams.Writer, successColor.Sprint(response.Message))
	_, _ = fmt.Fprintf(streams.Writer, "%s %s\n", labelColor.Sprint("file_id:     "), response.FileID)
	_, _ = fmt.Fprintf(streams.Writer, "%s %s\n", labelColor.Sprint("filename:    "), response.FileName)
	_, _ = fmt.Fprintf(streams.Writer, "%s %d\n", labelColor.Sprint("entity_count:"), response.EntityCount)
	return nil
}

// RunDownload fetches a redacted artifact. Without outputPath the content is printed
// with redaction markers highlighted. An outputPath naming a directory receives the
// file under its server side name. With deleteAfter the artifact is removed from the
// server once saved.
func RunDownload(
	ctx context.Context,
	redactorClient RedactorClient,
	writer io.Writer,
	fileID string,
	outputPath string,
	deleteAfter bool,
) error {
	download, err := redactorClient.Download(ctx, fileID)
	if err != nil {
		return fmt.Errorf("failed to download artifact: %w", err)
	}

	if outputPath == "" {
		if _, err := fmt.Fprint(writer, highlightPlaceholders(string(download.Content))); err != nil {
			return err
		}
	} else {
		if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
			outputPath = filepath.Join(outputPath, filepath.Base(download.FileName))
		}
		if err := os.WriteFile(outputPath, download.Content, 0o600); err != nil {
			return fmt.Errorf("failed to write artifact: %w", err)
		}
		_, _ = fmt.Fprintf(writer, "%s %s\n", successColor.Sprint("saved"), outputPath)
	}

	if deleteAfter {
		if err := redactorClient.Delete(ctx, fileID); err != nil {
			return fmt.Errorf("failed to delete artifact: %w", err)
		}
	}
	return nil
}

// RunDelete removes a redacted artifact from the server.
func RunDelete(ctx context.Context, redactorClient RedactorClient, writer io.Writer, fileID string) error {
	if err := redactorClient.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	_, _ = fmt.Fprintf(writer, "%s %s\n", successColor.Sprint("deleted"), fileID)
	return nil
}

// RunStrategies lists the redaction strategies offered by the server.
func RunStrategies(ctx context.Context, redactorClient RedactorClient, writer io.Writer, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	response, err := redactorClient.Strategies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list strategies: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, response)
	}

	names := make([]string, 0, len(response.Strategies))
	for name := range response.Strategies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		strategy := response.Strategies[name]
		label := name
		if name == response.Default {
			label += " (default)"
		}
		_, _ = fmt.Fprintf(writer, "%s\n  %s\n  example: %s\n",
			labelColor.Sprint(label),
			strategy.Description,
			highlightPlaceholders(strategy.Example),
		)
	}
	return nil
}

func readInput(reader io.Reader, inputPath string) ([]byte, error) {
	if inputPath == "" || inputPath == "-" {
		content, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return content, nil
	}

	content, err := os.ReadFile(inputPath) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return content, nil
}
