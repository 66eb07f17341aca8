// Package traces implements the processing trace audit domain. A trace is
// the capstone record of one pipeline invocation, linking the classification,
// agent result, and action result rows by their explicit identifiers. The
// pipeline passes those identifiers directly from the records it created,
// so lineage never depends on insertion order or recency.
package traces

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StatusCompleted is the status recorded for a fully processed document.
// Failed invocations never produce a trace row.
const StatusCompleted = "completed"

// Trace represents a stored pipeline invocation record.
// TotalProcessingTime is the wall-clock duration in seconds.
type Trace struct {
	ID                  uuid.UUID `json:"id"`
	ClassificationID    uuid.UUID `json:"classification_id"`
	AgentResultID       uuid.UUID `json:"agent_result_id"`
	ActionResultID      uuid.UUID `json:"action_result_id"`
	Status              string    `json:"status"`
	TotalProcessingTime float64   `json:"total_processing_time"`
	CreatedAt           time.Time `json:"created_at"`
}

// Detail joins a trace with the records it links for audit queries.
type Detail struct {
	Trace
	Format           string          `json:"format"`
	Intent           string          `json:"intent"`
	ContentPreview   string          `json:"content_preview"`
	Confidence       float64         `json:"confidence"`
	AgentType        string          `json:"agent_type"`
	ActionsTriggered json.RawMessage `json:"actions_triggered"`
	SuccessCount     int             `json:"success_count"`
	FailureCount     int             `json:"failure_count"`
}

// CreateCommand carries the data needed to record a trace. All three linked
// identifiers are required.
type CreateCommand struct {
	ClassificationID    uuid.UUID `json:"classification_id"`
	AgentResultID       uuid.UUID `json:"agent_result_id"`
	ActionResultID      uuid.UUID `json:"action_result_id"`
	Status              string    `json:"status"`
	TotalProcessingTime float64   `json:"total_processing_time"`
}
