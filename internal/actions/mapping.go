package actions

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/intakehq/intake/pkg/query"
	"github.com/intakehq/intake/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "action_results", "a").
	Project("id", "ID").
	Project("agent_result_id", "AgentResultID").
	Project("actions_triggered", "ActionsTriggered").
	Project("success_count", "SuccessCount").
	Project("failure_count", "FailureCount").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for action result queries.
type Filters struct {
	AgentResultID *uuid.UUID `json:"agent_result_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("AgentResultID", f.AgentResultID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("agent_result_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.AgentResultID = &id
		}
	}

	return f
}

func scanActionResult(s repository.Scanner) (ActionResult, error) {
	var a ActionResult

	err := s.Scan(
		&a.ID,
		&a.AgentResultID,
		&a.ActionsTriggered,
		&a.SuccessCount,
		&a.FailureCount,
		&a.CreatedAt,
	)

	return a, err
}
