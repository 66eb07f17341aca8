package classifications

import (
	"net/url"

	"github.com/intakehq/intake/pkg/query"
	"github.com/intakehq/intake/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "classifications", "c").
	Project("id", "ID").
	Project("format", "Format").
	Project("intent", "Intent").
	Project("content_preview", "ContentPreview").
	Project("confidence", "Confidence").
	Project("metadata", "Metadata").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for classification queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	Format *Format `json:"format,omitempty"`
	Intent *string `json:"intent,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Format", f.Format).
		WhereEquals("Intent", f.Intent)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("format"); v != "" {
		format := Format(v)
		f.Format = &format
	}

	if v := values.Get("intent"); v != "" {
		f.Intent = &v
	}

	return f
}

func scanClassification(s repository.Scanner) (Classification, error) {
	var c Classification

	err := s.Scan(
		&c.ID,
		&c.Format,
		&c.Intent,
		&c.ContentPreview,
		&c.Confidence,
		&c.Metadata,
		&c.CreatedAt,
	)

	return c, err
}
