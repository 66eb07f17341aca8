// Package decisions implements the decision log audit domain. Components
// record intermediate reasoning here, currently the action router's routing
// choices. TraceID is advisory and carries no foreign key, since decisions
// are written before the trace row exists.
package decisions

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Component and decision type values currently recorded.
const (
	ComponentActionRouter = "action_router"
	TypeActionRouting     = "action_routing"
)

// DecisionLog represents a stored reasoning record from a pipeline component.
type DecisionLog struct {
	ID           uuid.UUID       `json:"id"`
	Component    string          `json:"component"`
	DecisionType string          `json:"decision_type"`
	DecisionData json.RawMessage `json:"decision_data"`
	Reasoning    string          `json:"reasoning"`
	TraceID      *uuid.UUID      `json:"trace_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateCommand carries the data needed to record a decision log entry.
type CreateCommand struct {
	Component    string     `json:"component"`
	DecisionType string     `json:"decision_type"`
	DecisionData any        `json:"decision_data"`
	Reasoning    string     `json:"reasoning"`
	TraceID      *uuid.UUID `json:"trace_id,omitempty"`
}
