package pdfdoc

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intakehq/intake/internal/oracle"
	"github.com/intakehq/intake/internal/results"
	"github.com/intakehq/intake/pkg/formatting"
	"github.com/intakehq/intake/pkg/metrics"
)

// summaryLimit bounds the general-document summary, counted in runes.
const summaryLimit = 200

var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total[:\s]+\$?(\d[\d,]*\.?\d*)`),
	regexp.MustCompile(`(?i)amount due[:\s]+\$?(\d[\d,]*\.?\d*)`),
	regexp.MustCompile(`(?i)\$(\d[\d,]*\.?\d*)\s*total`),
}

var invoiceNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)invoice\s*#?\s*(\w+)`),
	regexp.MustCompile(`(?i)inv\s*#?\s*(\w+)`),
	regexp.MustCompile(`#(\d+)`),
}

// Agent processes PDF documents. Process receives extracted plain text; the
// caller is responsible for running file uploads through a TextExtractor.
type Agent struct {
	oracle  oracle.TextOracle
	store   results.System
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a PDF Agent.
func New(
	o oracle.TextOracle,
	store results.System,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Agent {
	return &Agent{
		oracle:  o,
		store:   store,
		logger:  logger.With("agent", "pdf"),
		metrics: m,
	}
}

type typeResponse struct {
	DocumentType string  `json:"document_type"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
}

// Process analyzes document text and persists the agent result linked to the
// given classification. Type detection scores keywords before consulting the
// oracle; extraction falls back to pattern matching or placeholder values.
func (a *Agent) Process(
	ctx context.Context,
	text string,
	classificationID uuid.UUID,
) (*Result, *results.AgentResult, error) {
	started := time.Now()

	docType, typeSource := a.determineType(ctx, text)

	var extracted ExtractedData
	extractSource := oracle.SourceFallback
	switch docType {
	case TypeInvoice:
		extracted.Invoice, extractSource = a.extractInvoice(ctx, text)
	case TypePolicy:
		extracted.Policy, extractSource = a.extractPolicy(ctx, text)
	default:
		extracted.General = summarizeGeneral(text)
	}

	result := &Result{
		AgentType:       "PDF",
		DocumentType:    docType,
		ExtractedData:   extracted,
		Flags:           checkFlags(extracted, text),
		ComplianceFlags: checkComplianceFlags(text),
		TextLength:      len(text),
		TypeSource:      typeSource,
		ExtractSource:   extractSource,
	}

	record, err := a.store.Create(ctx, results.CreateCommand{
		ClassificationID:   classificationID,
		AgentType:          results.AgentPDF,
		ResultData:         result,
		ProcessingDuration: time.Since(started).Seconds(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("store PDF result: %w", err)
	}

	a.logger.Info("PDF processed",
		"result_id", record.ID,
		"document_type", docType,
		"flags", len(result.Flags),
		"compliance_flags", len(result.ComplianceFlags),
	)
	return result, record, nil
}

func (a *Agent) determineType(ctx context.Context, text string) (string, oracle.Source) {
	if docType, ok := scoreDocumentType(text); ok {
		return docType, oracle.SourceDetected
	}

	response, err := a.oracle.Complete(ctx, oracle.JSON(typePrompt(text)))
	if err == nil {
		if parsed, perr := formatting.Parse[typeResponse](response); perr == nil && parsed.DocumentType != "" {
			a.metrics.OracleCalls.WithLabelValues("pdf_type", string(oracle.SourceOracle)).Inc()
			return parsed.DocumentType, oracle.SourceOracle
		}
	}

	a.metrics.OracleCalls.WithLabelValues("pdf_type", string(oracle.SourceFallback)).Inc()
	return TypeGeneral, oracle.SourceFallback
}

func (a *Agent) extractInvoice(ctx context.Context, text string) (*InvoiceData, oracle.Source) {
	response, err := a.oracle.Complete(ctx, oracle.JSON(invoicePrompt(text)))
	if err == nil {
		if inv, perr := formatting.Parse[InvoiceData](response); perr == nil {
			a.metrics.OracleCalls.WithLabelValues("pdf_invoice", string(oracle.SourceOracle)).Inc()
			return &inv, oracle.SourceOracle
		}
	}

	a.logger.Warn("invoice extraction fell back to patterns", "error", err)
	a.metrics.OracleCalls.WithLabelValues("pdf_invoice", string(oracle.SourceFallback)).Inc()
	return fallbackInvoice(text), oracle.SourceFallback
}

func (a *Agent) extractPolicy(ctx context.Context, text string) (*PolicyData, oracle.Source) {
	response, err := a.oracle.Complete(ctx, oracle.JSON(policyPrompt(text)))
	if err == nil {
		if pol, perr := formatting.Parse[PolicyData](response); perr == nil {
			a.metrics.OracleCalls.WithLabelValues("pdf_policy", string(oracle.SourceOracle)).Inc()
			return &pol, oracle.SourceOracle
		}
	}

	a.logger.Warn("policy extraction fell back to placeholders", "error", err)
	a.metrics.OracleCalls.WithLabelValues("pdf_policy", string(oracle.SourceFallback)).Inc()
	return &PolicyData{
		PolicyTitle:         "Policy Document",
		EffectiveDate:       "Not specified",
		PolicyType:          "General",
		KeyRequirements:     []string{},
		ComplianceStandards: []string{},
		PenaltiesMentioned:  []string{},
		ReviewDate:          "Not specified",
	}, oracle.SourceFallback
}

func fallbackInvoice(text string) *InvoiceData {
	var total float64
	for _, pattern := range amountPatterns {
		m := pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			total = v
			break
		}
	}

	number := "Unknown"
	for _, pattern := range invoiceNumberPatterns {
		if m := pattern.FindStringSubmatch(text); len(m) >= 2 {
			number = m[1]
			break
		}
	}

	return &InvoiceData{
		InvoiceNumber: number,
		TotalAmount:   total,
		Currency:      "USD",
		InvoiceDate:   "Not found",
		DueDate:       "Not found",
		VendorName:    "Not found",
		CustomerName:  "Not found",
		LineItems:     []LineItem{},
		TaxAmount:     0,
		Subtotal:      total,
	}
}

func summarizeGeneral(text string) *GeneralData {
	summary := text
	count := 0
	for i := range text {
		if count == summaryLimit {
			summary = text[:i] + "..."
			break
		}
		count++
	}

	return &GeneralData{
		DocumentSummary:   summary,
		WordCount:         len(strings.Fields(text)),
		KeyTopics:         []string{},
		DocumentStructure: "General document",
	}
}
