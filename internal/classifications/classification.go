// Package classifications implements the classification audit domain.
// Every pipeline invocation records the detected format and intent of an
// incoming document here before any agent runs, whether the values came from
// the oracle or the deterministic fallback. Records are append-only.
package classifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Format identifies the structural category of an incoming document.
type Format string

const (
	FormatEmail Format = "Email"
	FormatJSON  Format = "JSON"
	FormatPDF   Format = "PDF"
)

// Valid reports whether f is one of the recognized formats.
func (f Format) Valid() bool {
	switch f {
	case FormatEmail, FormatJSON, FormatPDF:
		return true
	}
	return false
}

// Classification represents a stored format and intent decision for a
// document. ContentPreview holds at most the first 200 characters of the
// input. Metadata carries the full decision record as produced by the
// classifier, including the resolution source for each field.
type Classification struct {
	ID             uuid.UUID       `json:"id"`
	Format         Format          `json:"format"`
	Intent         string          `json:"intent"`
	ContentPreview string          `json:"content_preview"`
	Confidence     float64         `json:"confidence"`
	Metadata       json.RawMessage `json:"metadata"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateCommand carries the data needed to record a classification.
type CreateCommand struct {
	Format         Format  `json:"format"`
	Intent         string  `json:"intent"`
	ContentPreview string  `json:"content_preview"`
	Confidence     float64 `json:"confidence"`
	Metadata       any     `json:"metadata"`
}
