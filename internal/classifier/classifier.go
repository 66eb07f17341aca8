// Package classifier determines the format and business intent of incoming
// documents. Both decisions ask the oracle first and fall back to
// deterministic keyword heuristics when the oracle fails or returns an
// unusable response, so classification always succeeds on non-empty input.
// Every run stores a classification record before any agent executes.
package classifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/intakehq/intake/internal/classifications"
	"github.com/intakehq/intake/internal/oracle"
	"github.com/intakehq/intake/pkg/formatting"
	"github.com/intakehq/intake/pkg/metrics"
)

const (
	// PreviewLimit bounds the stored content preview.
	PreviewLimit = 200

	// formatMaxTokens caps the format-classification reply, which is a
	// two-field JSON object and never needs the default budget.
	formatMaxTokens = 200

	defaultConfidence  = 0.85
	fallbackConfidence = 0.5
)

// Outcome is the complete result of one classification run, including the
// persisted record and the resolution source of each decision.
type Outcome struct {
	Record       *classifications.Classification `json:"record"`
	Format       classifications.Format          `json:"format"`
	Intent       string                          `json:"intent"`
	Confidence   float64                         `json:"confidence"`
	FormatSource oracle.Source                   `json:"format_source"`
	IntentSource oracle.Source                   `json:"intent_source"`
}

type formatResponse struct {
	Format    string `json:"format"`
	Reasoning string `json:"reasoning"`
}

type intentResponse struct {
	Intent     string  `json:"intent"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

// Classifier classifies documents and records the results.
type Classifier struct {
	oracle  oracle.TextOracle
	store   classifications.System
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a Classifier.
func New(
	o oracle.TextOracle,
	store classifications.System,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Classifier {
	return &Classifier{
		oracle:  o,
		store:   store,
		logger:  logger.With("system", "classifier"),
		metrics: m,
	}
}

// Classify determines the format and intent of content and persists the
// classification record. A non-empty detectedFormat (from a file extension
// or upstream knowledge) skips format detection entirely. Intent
// classification always runs. The returned error is non-nil only when the
// record cannot be stored; oracle failures are absorbed by the fallbacks.
func (c *Classifier) Classify(
	ctx context.Context,
	content string,
	detectedFormat classifications.Format,
) (*Outcome, error) {
	format := detectedFormat
	formatSource := oracle.SourceDetected

	if format == "" {
		format, formatSource = c.classifyFormat(ctx, content)
	}

	intent, confidence, intentSource := c.classifyIntent(ctx, content)

	record, err := c.store.Create(ctx, classifications.CreateCommand{
		Format:         format,
		Intent:         intent,
		ContentPreview: Preview(content),
		Confidence:     confidence,
		Metadata: map[string]any{
			"format":        format,
			"intent":        intent,
			"confidence":    confidence,
			"format_source": formatSource,
			"intent_source": intentSource,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store classification: %w", err)
	}

	c.logger.Info("document classified",
		"id", record.ID,
		"format", format,
		"intent", intent,
		"confidence", confidence,
		"format_source", formatSource,
		"intent_source", intentSource,
	)

	return &Outcome{
		Record:       record,
		Format:       format,
		Intent:       intent,
		Confidence:   confidence,
		FormatSource: formatSource,
		IntentSource: intentSource,
	}, nil
}

func (c *Classifier) classifyFormat(ctx context.Context, content string) (classifications.Format, oracle.Source) {
	req := oracle.JSON(formatPrompt(content))
	req.MaxTokens = formatMaxTokens

	response, err := c.oracle.Complete(ctx, req)
	if err == nil {
		if parsed, perr := formatting.Parse[formatResponse](response); perr == nil {
			format := classifications.Format(parsed.Format)
			if format.Valid() {
				c.metrics.OracleCalls.WithLabelValues("classify_format", string(oracle.SourceOracle)).Inc()
				return format, oracle.SourceOracle
			}
		}
	}

	c.logger.Warn("format classification fell back to heuristics", "error", err)
	c.metrics.OracleCalls.WithLabelValues("classify_format", string(oracle.SourceFallback)).Inc()
	return fallbackFormat(content), oracle.SourceFallback
}

func (c *Classifier) classifyIntent(ctx context.Context, content string) (string, float64, oracle.Source) {
	response, err := c.oracle.Complete(ctx, oracle.JSON(intentPrompt(content)))
	if err == nil {
		if parsed, perr := formatting.Parse[intentResponse](response); perr == nil && parsed.Intent != "" {
			c.metrics.OracleCalls.WithLabelValues("classify_intent", string(oracle.SourceOracle)).Inc()
			return parsed.Intent, clampConfidence(parsed.Confidence), oracle.SourceOracle
		}
	}

	c.logger.Warn("intent classification fell back to heuristics", "error", err)
	c.metrics.OracleCalls.WithLabelValues("classify_intent", string(oracle.SourceFallback)).Inc()
	return fallbackIntent(content), fallbackConfidence, oracle.SourceFallback
}

// Preview returns at most the first PreviewLimit characters of content,
// suffixed with an ellipsis when truncated. Truncation counts runes, never
// splitting a multi-byte character, so the preview is always valid UTF-8.
func Preview(content string) string {
	count := 0
	for i := range content {
		if count == PreviewLimit {
			return content[:i] + "..."
		}
		count++
	}
	return content
}

func clampConfidence(v float64) float64 {
	switch {
	case v <= 0:
		return defaultConfidence
	case v > 1:
		return 1
	}
	return v
}
