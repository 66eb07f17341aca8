package traces

import (
	"net/url"

	"github.com/intakehq/intake/pkg/query"
	"github.com/intakehq/intake/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "processing_traces", "t").
	Project("id", "ID").
	Project("classification_id", "ClassificationID").
	Project("agent_result_id", "AgentResultID").
	Project("action_result_id", "ActionResultID").
	Project("status", "Status").
	Project("total_processing_time", "TotalProcessingTime").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for trace queries.
type Filters struct {
	Status *string `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("status"); v != "" {
		f.Status = &v
	}

	return f
}

func scanTrace(s repository.Scanner) (Trace, error) {
	var t Trace

	err := s.Scan(
		&t.ID,
		&t.ClassificationID,
		&t.AgentResultID,
		&t.ActionResultID,
		&t.Status,
		&t.TotalProcessingTime,
		&t.CreatedAt,
	)

	return t, err
}

func scanDetail(s repository.Scanner) (Detail, error) {
	var d Detail

	err := s.Scan(
		&d.ID,
		&d.ClassificationID,
		&d.AgentResultID,
		&d.ActionResultID,
		&d.Status,
		&d.TotalProcessingTime,
		&d.CreatedAt,
		&d.Format,
		&d.Intent,
		&d.ContentPreview,
		&d.Confidence,
		&d.AgentType,
		&d.ActionsTriggered,
		&d.SuccessCount,
		&d.FailureCount,
	)

	return d, err
}
