// Package results implements the agent result audit domain. Each record
// captures the full output of one format agent run, linked to the
// classification that routed the document to that agent.
package results

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AgentType identifies which format agent produced a result.
type AgentType string

const (
	AgentEmail AgentType = "email"
	AgentJSON  AgentType = "json"
	AgentPDF   AgentType = "pdf"
)

// Valid reports whether a is one of the recognized agent types.
func (a AgentType) Valid() bool {
	switch a {
	case AgentEmail, AgentJSON, AgentPDF:
		return true
	}
	return false
}

// AgentResult represents a stored agent analysis output. ResultData holds
// the agent's complete structured result. ProcessingDuration is the agent
// run time in seconds.
type AgentResult struct {
	ID                 uuid.UUID       `json:"id"`
	ClassificationID   uuid.UUID       `json:"classification_id"`
	AgentType          AgentType       `json:"agent_type"`
	ResultData         json.RawMessage `json:"result_data"`
	ProcessingDuration float64         `json:"processing_duration"`
	CreatedAt          time.Time       `json:"created_at"`
}

// CreateCommand carries the data needed to record an agent result.
type CreateCommand struct {
	ClassificationID   uuid.UUID `json:"classification_id"`
	AgentType          AgentType `json:"agent_type"`
	ResultData         any       `json:"result_data"`
	ProcessingDuration float64   `json:"processing_duration"`
}
