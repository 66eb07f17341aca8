package decisions

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/intakehq/intake/pkg/query"
	"github.com/intakehq/intake/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "decision_logs", "d").
	Project("id", "ID").
	Project("component", "Component").
	Project("decision_type", "DecisionType").
	Project("decision_data", "DecisionData").
	Project("reasoning", "Reasoning").
	Project("trace_id", "TraceID").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for decision log queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	Component    *string    `json:"component,omitempty"`
	DecisionType *string    `json:"decision_type,omitempty"`
	TraceID      *uuid.UUID `json:"trace_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Component", f.Component).
		WhereEquals("DecisionType", f.DecisionType).
		WhereEquals("TraceID", f.TraceID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("component"); v != "" {
		f.Component = &v
	}

	if v := values.Get("decision_type"); v != "" {
		f.DecisionType = &v
	}

	if v := values.Get("trace_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.TraceID = &id
		}
	}

	return f
}

func scanDecisionLog(s repository.Scanner) (DecisionLog, error) {
	var d DecisionLog

	err := s.Scan(
		&d.ID,
		&d.Component,
		&d.DecisionType,
		&d.DecisionData,
		&d.Reasoning,
		&d.TraceID,
		&d.CreatedAt,
	)

	return d, err
}
