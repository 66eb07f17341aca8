package query_test

import (
	"testing"

	"github.com/intakehq/intake/pkg/query"
)

func testProjection() *query.Projection {
	return query.NewProjectionMap("intake", "traces", "t").
		Project("id", "ID").
		Project("intent", "Intent").
		Project("created_at", "CreatedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionFrom(t *testing.T) {
	p := testProjection()
	want := "intake.traces t"
	if got := p.From(); got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
}

func TestProjectionColumns(t *testing.T) {
	p := testProjection()
	want := "t.id, t.intent, t.created_at"
	if got := p.Columns(); got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"mapped field", "Intent", "t.intent"},
		{"mapped timestamp", "CreatedAt", "t.created_at"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "single ascending",
			input: "intent",
			want:  []query.SortField{{Field: "intent", Descending: false}},
		},
		{
			name:  "single descending",
			input: "-created_at",
			want:  []query.SortField{{Field: "created_at", Descending: true}},
		},
		{
			name:  "multiple mixed",
			input: "intent,-created_at",
			want: []query.SortField{
				{Field: "intent", Descending: false},
				{Field: "created_at", Descending: true},
			},
		},
		{
			name:  "with spaces",
			input: " intent , -created_at ",
			want: []query.SortField{
				{Field: "intent", Descending: false},
				{Field: "created_at", Descending: true},
			},
		},
		{
			name:  "empty parts skipped",
			input: "intent,,created_at",
			want: []query.SortField{
				{Field: "intent", Descending: false},
				{Field: "created_at", Descending: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildNoConditions(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.Build()

	want := "SELECT t.id, t.intent, t.created_at FROM intake.traces t"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuildDefaultSort(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	sql, _ := b.Build()

	want := "SELECT t.id, t.intent, t.created_at FROM intake.traces t ORDER BY t.created_at DESC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuildOrderByOverridesDefault(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	b.OrderByFields([]query.SortField{{Field: "Intent"}})
	sql, _ := b.Build()

	want := "SELECT t.id, t.intent, t.created_at FROM intake.traces t ORDER BY t.intent ASC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestWhereEquals(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("Intent", "Complaint")
	sql, args := b.Build()

	want := "SELECT t.id, t.intent, t.created_at FROM intake.traces t WHERE t.intent = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "Complaint" {
		t.Errorf("args = %v, want [Complaint]", args)
	}
}

func TestWhereEqualsSkipsNil(t *testing.T) {
	b := query.NewBuilder(testProjection())
	var intent *string
	b.WhereEquals("Intent", intent)
	sql, args := b.Build()

	want := "SELECT t.id, t.intent, t.created_at FROM intake.traces t"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestWhereSearch(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereSearch(ptr("invoice"), "Intent")
	sql, args := b.Build()

	want := "SELECT t.id, t.intent, t.created_at FROM intake.traces t WHERE (t.intent ILIKE $1)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "%invoice%" {
		t.Errorf("args = %v, want [%%invoice%%]", args)
	}
}

func TestWhereSearchMultipleFields(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereSearch(ptr("urgent"), "Intent", "ID")
	sql, args := b.Build()

	want := "SELECT t.id, t.intent, t.created_at FROM intake.traces t WHERE (t.intent ILIKE $1 OR t.id ILIKE $2)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Fatalf("args length = %d, want 2", len(args))
	}
}

func TestWhereSearchSkipsEmpty(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereSearch(nil, "Intent")
	b.WhereSearch(ptr(""), "Intent")
	_, args := b.Build()

	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestSequentialPlaceholders(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("Intent", "Complaint")
	b.WhereSearch(ptr("refund"), "Intent", "ID")
	sql, args := b.Build()

	want := "SELECT t.id, t.intent, t.created_at FROM intake.traces t" +
		" WHERE t.intent = $1 AND (t.intent ILIKE $2 OR t.id ILIKE $3)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Fatalf("args length = %d, want 3", len(args))
	}
}

func TestBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("Intent", "Complaint")
	sql, args := b.BuildCount()

	want := "SELECT COUNT(*) FROM intake.traces t WHERE t.intent = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("args length = %d, want 1", len(args))
	}
}

func TestBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	sql, _ := b.BuildPage(3, 25)

	want := "SELECT t.id, t.intent, t.created_at FROM intake.traces t" +
		" ORDER BY t.created_at DESC LIMIT 25 OFFSET 50"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuildSingle(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.BuildSingle("ID", "abc-123")

	want := "SELECT t.id, t.intent, t.created_at FROM intake.traces t WHERE t.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc-123" {
		t.Errorf("args = %v, want [abc-123]", args)
	}
}
