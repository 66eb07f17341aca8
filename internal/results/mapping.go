package results

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/intakehq/intake/pkg/query"
	"github.com/intakehq/intake/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "agent_results", "ar").
	Project("id", "ID").
	Project("classification_id", "ClassificationID").
	Project("agent_type", "AgentType").
	Project("result_data", "ResultData").
	Project("processing_duration", "ProcessingDuration").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for agent result queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	AgentType        *AgentType `json:"agent_type,omitempty"`
	ClassificationID *uuid.UUID `json:"classification_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("AgentType", f.AgentType).
		WhereEquals("ClassificationID", f.ClassificationID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("agent_type"); v != "" {
		agentType := AgentType(v)
		f.AgentType = &agentType
	}

	if v := values.Get("classification_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.ClassificationID = &id
		}
	}

	return f
}

func scanAgentResult(s repository.Scanner) (AgentResult, error) {
	var r AgentResult

	err := s.Scan(
		&r.ID,
		&r.ClassificationID,
		&r.AgentType,
		&r.ResultData,
		&r.ProcessingDuration,
		&r.CreatedAt,
	)

	return r, err
}
