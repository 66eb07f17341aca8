// Package jsondoc implements the JSON format agent. It determines the payload
// type, validates it against a fixed schema set, detects type-specific
// anomalies, extracts business data, and assesses an overall risk level.
package jsondoc

import (
	"errors"

	"github.com/intakehq/intake/internal/oracle"
)

// ErrInvalidPayload is returned when content cannot be parsed as JSON.
// It is distinct from processing failures: malformed input is a client error.
var ErrInvalidPayload = errors.New("invalid JSON payload")

// Payload types recognized by the agent.
const (
	TypeWebhook     = "webhook"
	TypeInvoice     = "invoice"
	TypeTransaction = "transaction"
	TypeGeneral     = "general"
)

// Anomaly severities and risk levels.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// SchemaValidation reports the outcome of validating a payload against the
// expected schema for its type.
type SchemaValidation struct {
	IsValid       bool     `json:"is_valid"`
	MissingFields []string `json:"missing_fields"`
	TypeErrors    []string `json:"type_errors"`
	ExtraFields   []string `json:"extra_fields"`
	SchemaUsed    string   `json:"schema_used"`
}

// Anomaly describes a single detected irregularity in a payload.
type Anomaly struct {
	Type        string `json:"type"`
	Field       string `json:"field"`
	Value       any    `json:"value"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// ExtractedData holds the business fields and metrics pulled from a payload.
type ExtractedData struct {
	DataType        string         `json:"data_type"`
	KeyFields       map[string]any `json:"key_fields"`
	BusinessMetrics map[string]any `json:"business_metrics"`
}

// Result is the complete JSON agent output.
type Result struct {
	AgentType        string           `json:"agent_type"`
	JSONType         string           `json:"json_type"`
	SchemaValidation SchemaValidation `json:"schema_validation"`
	Anomalies        []Anomaly        `json:"anomalies"`
	ExtractedData    ExtractedData    `json:"extracted_data"`
	RiskLevel        string           `json:"risk_level"`
	RawDataSize      int              `json:"raw_data_size"`
	TypeSource       oracle.Source    `json:"type_source"`
}
