// Package actions implements the action result audit domain. Each record
// captures the ordered outcomes of the downstream actions triggered for one
// agent result, including per-action success or failure.
package actions

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActionResult represents the stored outcome of executing the routed actions
// for a single agent result. ActionsTriggered preserves execution order.
// FailureCount is always len(actions) - SuccessCount.
type ActionResult struct {
	ID               uuid.UUID       `json:"id"`
	AgentResultID    uuid.UUID       `json:"agent_result_id"`
	ActionsTriggered json.RawMessage `json:"actions_triggered"`
	SuccessCount     int             `json:"success_count"`
	FailureCount     int             `json:"failure_count"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CreateCommand carries the data needed to record an action result.
type CreateCommand struct {
	AgentResultID    uuid.UUID `json:"agent_result_id"`
	ActionsTriggered any       `json:"actions_triggered"`
	SuccessCount     int       `json:"success_count"`
	FailureCount     int       `json:"failure_count"`
}
