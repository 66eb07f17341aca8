// Package query builds SELECT statements for the audit tables from logical
// field names. A Projection maps view properties to qualified columns so
// repositories never embed alias-prefixed SQL in filter code.
package query

import (
	"fmt"
	"strings"
)

// Projection maps view property names to qualified column references for one
// table.
type Projection struct {
	schema  string
	table   string
	alias   string
	columns map[string]string
	ordered []string
}

// NewProjectionMap creates a Projection for schema.table under the given
// alias.
func NewProjectionMap(schema, table, alias string) *Projection {
	return &Projection{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project registers a column under a view property name. Registration order
// fixes the SELECT column order.
func (p *Projection) Project(column, viewName string) *Projection {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns[viewName] = qualified
	p.ordered = append(p.ordered, qualified)
	return p
}

// From returns the aliased table reference for a FROM clause.
func (p *Projection) From() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view property to its qualified column. Unmapped names
// pass through unchanged.
func (p *Projection) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Columns returns the SELECT column list.
func (p *Projection) Columns() string {
	return strings.Join(p.ordered, ", ")
}
