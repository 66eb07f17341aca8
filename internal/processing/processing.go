// Package processing exposes the document intake endpoints. It resolves
// uploaded files or raw text into pipeline input, runs the processing
// pipeline, and shapes the response envelope.
package processing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/intakehq/intake/internal/classifications"
	"github.com/intakehq/intake/internal/extract"
	"github.com/intakehq/intake/internal/pipeline"
)

// MinInputLength is the shortest input accepted for processing. Anything
// shorter is rejected before classification and leaves no audit record.
const MinInputLength = 3

var (
	ErrNoInput       = errors.New("no input provided")
	ErrInputTooShort = errors.New("input too short")
	ErrFileRead      = errors.New("failed to read uploaded file")
)

// Service turns raw intake input into pipeline executions.
type Service struct {
	runtime   *pipeline.Runtime
	extractor extract.TextExtractor
	logger    *slog.Logger
}

// NewService creates a Service.
func NewService(
	rt *pipeline.Runtime,
	extractor extract.TextExtractor,
	logger *slog.Logger,
) *Service {
	return &Service{
		runtime:   rt,
		extractor: extractor,
		logger:    logger.With("system", "processing"),
	}
}

// ProcessText runs the pipeline over raw text. detected may be empty, in
// which case the classifier infers the format.
func (s *Service) ProcessText(
	ctx context.Context,
	content string,
	detected classifications.Format,
) (*pipeline.Result, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrNoInput
	}
	if len(content) < MinInputLength {
		return nil, ErrInputTooShort
	}

	return pipeline.Execute(ctx, s.runtime, content, detected)
}

// ProcessFile runs the pipeline over an uploaded file. PDFs are written to a
// scratch file and routed through the text extractor; .json files pre-declare
// the JSON format; any other file is treated as inline text.
func (s *Service) ProcessFile(
	ctx context.Context,
	filename string,
	contentType string,
	file io.Reader,
) (*pipeline.Result, error) {
	if isPDF(filename, contentType) {
		text, err := s.extractPDF(ctx, file)
		if err != nil {
			return nil, err
		}
		return s.ProcessText(ctx, text, classifications.FormatPDF)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}

	var detected classifications.Format
	if strings.HasSuffix(strings.ToLower(filename), ".json") {
		detected = classifications.FormatJSON
	}

	return s.ProcessText(ctx, string(data), detected)
}

func (s *Service) extractPDF(ctx context.Context, file io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "intake-upload-*.pdf")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}

	return s.extractor.Text(ctx, tmp.Name())
}

func isPDF(filename, contentType string) bool {
	return contentType == "application/pdf" ||
		strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// ParseFormat maps an input_type form value to a Format. Unrecognized values
// return the empty Format, leaving detection to the classifier.
func ParseFormat(inputType string) classifications.Format {
	switch strings.ToLower(strings.TrimSpace(inputType)) {
	case "email":
		return classifications.FormatEmail
	case "json":
		return classifications.FormatJSON
	case "pdf":
		return classifications.FormatPDF
	}
	return ""
}
