package classifier

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/intakehq/intake/internal/classifications"
	"github.com/intakehq/intake/internal/oracle"
	"github.com/intakehq/intake/internal/testsupport"
	"github.com/intakehq/intake/pkg/metrics"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func TestFallbackFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    classifications.Format
	}{
		{"from header", "From: alice@example.com\nHello", classifications.FormatEmail},
		{"subject header", "SUBJECT: quarterly report", classifications.FormatEmail},
		{"bare address", "contact bob@example.com for details", classifications.FormatEmail},
		{"json object", `{"invoice_id": "INV-1"}`, classifications.FormatJSON},
		{"json array", `  [1, 2, 3]`, classifications.FormatJSON},
		{"plain text", "Quarterly revenue summary for review", classifications.FormatPDF},
		{"empty", "", classifications.FormatPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fallbackFormat(tt.content); got != tt.want {
				t.Errorf("fallbackFormat(%q) = %q, want %q", tt.content, got, tt.want)
			}
			if !fallbackFormat(tt.content).Valid() {
				t.Errorf("fallbackFormat(%q) produced an invalid format", tt.content)
			}
		})
	}
}

func TestFallbackIntent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invoice keywords", "Please process this invoice for payment", "Invoice Processing"},
		{"policy shadows invoice", "Our GDPR policy covers invoice retention", "Policy Review"},
		{"complaint", "I have a complaint about my order", "Customer Service"},
		{"fraud", "We detected suspicious activity", "Risk Assessment"},
		{"contract", "Attached is the signed agreement", "Contract Review"},
		{"documentation", "Installation guide for the appliance", "Documentation"},
		{"no match", "hello world", IntentGeneral},
		{"empty", "", IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fallbackIntent(tt.content); got != tt.want {
				t.Errorf("fallbackIntent(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	short := "brief content"
	if got := Preview(short); got != short {
		t.Errorf("Preview(short) = %q, want unchanged", got)
	}

	long := strings.Repeat("x", PreviewLimit+50)
	got := Preview(long)
	if len(got) != PreviewLimit+3 {
		t.Errorf("Preview(long) length = %d, want %d", len(got), PreviewLimit+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("Preview(long) should end with ellipsis")
	}
}

func TestPreviewMultibyte(t *testing.T) {
	within := strings.Repeat("€", 100)
	if got := Preview(within); got != within {
		t.Errorf("Preview(100 runes) = %q, want unchanged", got)
	}

	long := strings.Repeat("€", PreviewLimit+50)
	got := Preview(long)
	if !utf8.ValidString(got) {
		t.Fatalf("Preview produced invalid UTF-8: %x", got)
	}
	if want := strings.Repeat("€", PreviewLimit) + "..."; got != want {
		t.Errorf("Preview truncated %d runes, want %d", utf8.RuneCountInString(got)-3, PreviewLimit)
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, defaultConfidence},
		{-0.5, defaultConfidence},
		{1.5, 1},
		{0.75, 0.75},
	}

	for _, tt := range tests {
		if got := clampConfidence(tt.in); got != tt.want {
			t.Errorf("clampConfidence(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClassifyFallback(t *testing.T) {
	store := &testsupport.ClassificationStore{}
	c := New(oracle.FailingOracle{}, store, testLogger(), testMetrics())

	outcome, err := c.Classify(context.Background(), "Please process this invoice for payment", "")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if outcome.Format != classifications.FormatPDF {
		t.Errorf("Format = %q, want PDF", outcome.Format)
	}
	if outcome.Intent != "Invoice Processing" {
		t.Errorf("Intent = %q, want Invoice Processing", outcome.Intent)
	}
	if outcome.Confidence != fallbackConfidence {
		t.Errorf("Confidence = %v, want %v", outcome.Confidence, fallbackConfidence)
	}
	if outcome.FormatSource != oracle.SourceFallback || outcome.IntentSource != oracle.SourceFallback {
		t.Errorf("sources = %q/%q, want fallback/fallback", outcome.FormatSource, outcome.IntentSource)
	}
	if len(store.Records) != 1 {
		t.Fatalf("stored %d records, want 1", len(store.Records))
	}
	if store.Records[0].ID != outcome.Record.ID {
		t.Error("outcome record does not match stored record")
	}
}

func TestClassifyOracle(t *testing.T) {
	store := &testsupport.ClassificationStore{}
	o := &oracle.StaticOracle{
		Response: `{"format": "Email", "intent": "Customer Service", "reasoning": "test", "confidence": 0.92}`,
	}
	c := New(o, store, testLogger(), testMetrics())

	outcome, err := c.Classify(context.Background(), "From: a@b.com\nSubject: hi", "")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if outcome.Format != classifications.FormatEmail {
		t.Errorf("Format = %q, want Email", outcome.Format)
	}
	if outcome.Intent != "Customer Service" {
		t.Errorf("Intent = %q, want Customer Service", outcome.Intent)
	}
	if outcome.Confidence != 0.92 {
		t.Errorf("Confidence = %v, want 0.92", outcome.Confidence)
	}
	if outcome.FormatSource != oracle.SourceOracle || outcome.IntentSource != oracle.SourceOracle {
		t.Errorf("sources = %q/%q, want oracle/oracle", outcome.FormatSource, outcome.IntentSource)
	}
	if len(o.Prompts) != 2 {
		t.Errorf("oracle received %d prompts, want 2 (format and intent)", len(o.Prompts))
	}
}

func TestClassifyRequestBudgets(t *testing.T) {
	store := &testsupport.ClassificationStore{}
	o := &oracle.StaticOracle{
		Response: `{"format": "Email", "intent": "Customer Service", "confidence": 0.9}`,
	}
	c := New(o, store, testLogger(), testMetrics())

	if _, err := c.Classify(context.Background(), "From: a@b.com\nSubject: hi", ""); err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if len(o.Requests) != 2 {
		t.Fatalf("oracle received %d requests, want 2", len(o.Requests))
	}

	format, intent := o.Requests[0], o.Requests[1]
	if format.MaxTokens != formatMaxTokens {
		t.Errorf("format MaxTokens = %d, want %d", format.MaxTokens, formatMaxTokens)
	}
	if !format.JSONResponse || !intent.JSONResponse {
		t.Error("both requests should ask for JSON responses")
	}
	if intent.MaxTokens != 0 {
		t.Errorf("intent MaxTokens = %d, want 0 (default budget)", intent.MaxTokens)
	}
}

func TestClassifyDetectedFormatSkipsInference(t *testing.T) {
	store := &testsupport.ClassificationStore{}
	o := &oracle.StaticOracle{
		Response: `{"intent": "Invoice Processing", "reasoning": "test", "confidence": 0.9}`,
	}
	c := New(o, store, testLogger(), testMetrics())

	outcome, err := c.Classify(context.Background(), `{"invoice_id": "INV-1"}`, classifications.FormatJSON)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if outcome.Format != classifications.FormatJSON {
		t.Errorf("Format = %q, want JSON", outcome.Format)
	}
	if outcome.FormatSource != oracle.SourceDetected {
		t.Errorf("FormatSource = %q, want detected", outcome.FormatSource)
	}
	if len(o.Prompts) != 1 {
		t.Errorf("oracle received %d prompts, want 1 (intent only)", len(o.Prompts))
	}
}

func TestClassifyStoreFailure(t *testing.T) {
	store := &testsupport.ClassificationStore{Err: classifications.ErrDuplicate}
	c := New(oracle.FailingOracle{}, store, testLogger(), testMetrics())

	if _, err := c.Classify(context.Background(), "some content", ""); err == nil {
		t.Fatal("expected error when store fails")
	}
}
