package jsondoc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/intakehq/intake/internal/oracle"
	"github.com/intakehq/intake/internal/results"
	"github.com/intakehq/intake/pkg/formatting"
	"github.com/intakehq/intake/pkg/metrics"
)

// Agent processes JSON documents.
type Agent struct {
	oracle  oracle.TextOracle
	store   results.System
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a JSON Agent.
func New(
	o oracle.TextOracle,
	store results.System,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Agent {
	return &Agent{
		oracle:  o,
		store:   store,
		logger:  logger.With("agent", "json"),
		metrics: m,
	}
}

type typeResponse struct {
	Type      string `json:"type"`
	Reasoning string `json:"reasoning"`
}

type anomalyResponse struct {
	Anomalies []Anomaly `json:"anomalies"`
}

// Process validates and analyzes JSON content and persists the agent result
// linked to the given classification. Malformed JSON returns
// ErrInvalidPayload before any analysis or storage.
func (a *Agent) Process(
	ctx context.Context,
	content string,
	classificationID uuid.UUID,
) (*Result, *results.AgentResult, error) {
	started := time.Now()

	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	jsonType, typeSource := a.determineType(ctx, data)
	validation := validateSchema(data, jsonType)
	anomalies := a.detectAnomalies(ctx, data, jsonType)
	extracted := extractBusinessData(data, jsonType)
	risk := assessRisk(anomalies)

	result := &Result{
		AgentType:        "JSON",
		JSONType:         jsonType,
		SchemaValidation: validation,
		Anomalies:        anomalies,
		ExtractedData:    extracted,
		RiskLevel:        risk,
		RawDataSize:      len(content),
		TypeSource:       typeSource,
	}

	record, err := a.store.Create(ctx, results.CreateCommand{
		ClassificationID:   classificationID,
		AgentType:          results.AgentJSON,
		ResultData:         result,
		ProcessingDuration: time.Since(started).Seconds(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("store JSON result: %w", err)
	}

	a.logger.Info("JSON processed",
		"result_id", record.ID,
		"json_type", jsonType,
		"valid", validation.IsValid,
		"anomalies", len(anomalies),
		"risk_level", risk,
	)
	return result, record, nil
}

// determineType identifies the payload type structurally first. Only payloads
// with no recognizable shape consult the oracle, and oracle failure yields
// the general type.
func (a *Agent) determineType(ctx context.Context, data map[string]any) (string, oracle.Source) {
	_, hasEvent := data["event_type"]
	_, hasTimestamp := data["timestamp"]
	_, hasInvoiceID := data["invoice_id"]
	_, hasAmount := data["amount"]
	_, hasTransactionID := data["transaction_id"]
	_, hasAccountID := data["account_id"]

	// A transaction identifier wins over the bare-amount invoice rule, so
	// payloads carrying both stay transactions.
	switch {
	case hasEvent && hasTimestamp:
		return TypeWebhook, oracle.SourceDetected
	case hasTransactionID, hasAmount && hasAccountID:
		return TypeTransaction, oracle.SourceDetected
	case hasInvoiceID || hasAmount:
		return TypeInvoice, oracle.SourceDetected
	}

	response, err := a.oracle.Complete(ctx, oracle.JSON(typePrompt(data)))
	if err == nil {
		if parsed, perr := formatting.Parse[typeResponse](response); perr == nil && parsed.Type != "" {
			a.metrics.OracleCalls.WithLabelValues("json_type", string(oracle.SourceOracle)).Inc()
			return parsed.Type, oracle.SourceOracle
		}
	}

	a.metrics.OracleCalls.WithLabelValues("json_type", string(oracle.SourceFallback)).Inc()
	return TypeGeneral, oracle.SourceFallback
}

// detectAnomalies combines the deterministic type-specific checks with
// oracle-detected anomalies. Oracle failure leaves the deterministic set
// untouched.
func (a *Agent) detectAnomalies(ctx context.Context, data map[string]any, jsonType string) []Anomaly {
	var anomalies []Anomaly

	switch jsonType {
	case TypeInvoice:
		anomalies = append(anomalies, checkInvoiceAnomalies(data)...)
	case TypeTransaction:
		anomalies = append(anomalies, checkTransactionAnomalies(data)...)
	case TypeWebhook:
		anomalies = append(anomalies, checkWebhookAnomalies(data)...)
	}

	response, err := a.oracle.Complete(ctx, oracle.JSON(anomalyPrompt(data, jsonType)))
	if err == nil {
		if parsed, perr := formatting.Parse[anomalyResponse](response); perr == nil {
			anomalies = append(anomalies, parsed.Anomalies...)
		}
	}

	if anomalies == nil {
		anomalies = []Anomaly{}
	}
	return anomalies
}

func extractBusinessData(data map[string]any, jsonType string) ExtractedData {
	extracted := ExtractedData{
		DataType:        jsonType,
		KeyFields:       map[string]any{},
		BusinessMetrics: map[string]any{},
	}

	switch jsonType {
	case TypeInvoice:
		amount, _ := numberField(data, "amount")
		items, _ := data["line_items"].([]any)
		extracted.KeyFields = map[string]any{
			"invoice_id":  data["invoice_id"],
			"amount":      data["amount"],
			"customer_id": data["customer_id"],
			"currency":    stringOr(data, "currency", "USD"),
		}
		extracted.BusinessMetrics = map[string]any{
			"total_amount":    amount,
			"line_item_count": len(items),
			"is_high_value":   amount > 10000,
		}
	case TypeTransaction:
		amount, _ := numberField(data, "amount")
		extracted.KeyFields = map[string]any{
			"transaction_id": data["transaction_id"],
			"amount":         data["amount"],
			"account_id":     data["account_id"],
			"type":           data["type"],
		}
		extracted.BusinessMetrics = map[string]any{
			"amount":       amount,
			"is_high_risk": amount > 50000,
			"account_id":   data["account_id"],
		}
	case TypeWebhook:
		extracted.KeyFields = map[string]any{
			"event_type": data["event_type"],
			"timestamp":  data["timestamp"],
			"source":     stringOr(data, "source", "unknown"),
		}
		extracted.BusinessMetrics = map[string]any{
			"event_type": data["event_type"],
			"data_size":  len(fmt.Sprintf("%v", data["data"])),
		}
	}

	return extracted
}

func stringOr(data map[string]any, key, fallback string) string {
	if v, ok := data[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
