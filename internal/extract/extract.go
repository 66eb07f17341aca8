// Package extract converts uploaded PDF files to plain text for the PDF
// agent. The production implementation uses pdfcpu; a stub for tests returns
// canned text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrExtractFailed is returned when a PDF cannot be read or yields no text.
var ErrExtractFailed = errors.New("failed to extract text from PDF")

// TextExtractor converts a PDF file on disk to plain text.
type TextExtractor interface {
	Text(ctx context.Context, path string) (string, error)
}

// PDFExtractor implements TextExtractor with pdfcpu.
type PDFExtractor struct {
	logger *slog.Logger
}

// NewPDFExtractor creates a PDFExtractor.
func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger.With("system", "extract")}
}

// Text validates the document and extracts page content to a scratch
// directory, concatenating the per-page output in directory order.
func (e *PDFExtractor) Text(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	count, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}
	if count == 0 {
		return "", fmt.Errorf("%w: document has no pages", ErrExtractFailed)
	}

	outDir, err := os.MkdirTemp("", "intake-extract-")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(path, outDir, nil, nil); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	var pages []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
		}
		pages = append(pages, string(data))
	}

	text := strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" {
		return "", fmt.Errorf("%w: document yielded no text", ErrExtractFailed)
	}

	e.logger.Debug("PDF text extracted", "path", path, "pages", count, "length", len(text))
	return text, nil
}

// StaticExtractor returns fixed text for every path. Used in tests.
type StaticExtractor struct {
	Content string
	Err     error
}

func (s *StaticExtractor) Text(context.Context, string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Content, nil
}
