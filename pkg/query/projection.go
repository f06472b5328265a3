package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view field names to qualified SQL columns for a table
// and the tables joined to it.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	joins   []string
	columns []string
	views   map[string]string
}

// NewProjectionMap creates a projection for schema.table aliased as alias.
// An empty schema produces an unqualified table name.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		views:  make(map[string]string),
	}
}

// Project adds a column of the base table under the given view name.
func (p *ProjectionMap) Project(column, view string) *ProjectionMap {
	return p.ProjectFrom(p.alias, column, view)
}

// ProjectFrom adds a column of a joined table under the given view name.
func (p *ProjectionMap) ProjectFrom(alias, column, view string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", alias, column)
	p.columns = append(p.columns, qualified)
	p.views[view] = qualified
	return p
}

// Join appends a join clause, e.g. "JOIN folders f ON f.id = d.folder_id".
func (p *ProjectionMap) Join(clause string) *ProjectionMap {
	p.joins = append(p.joins, clause)
	return p
}

// Alias returns the base table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased base table reference.
func (p *ProjectionMap) Table() string {
	if p.schema == "" {
		return fmt.Sprintf("%s %s", p.table, p.alias)
	}
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// From returns the base table followed by every join clause.
func (p *ProjectionMap) From() string {
	if len(p.joins) == 0 {
		return p.Table()
	}
	return p.Table() + " " + strings.Join(p.joins, " ")
}

// Column resolves a view name to its qualified column.
// Unknown names are returned unchanged.
func (p *ProjectionMap) Column(view string) string {
	if col, ok := p.views[view]; ok {
		return col
	}
	return view
}

// Has reports whether a view name is projected.
func (p *ProjectionMap) Has(view string) bool {
	_, ok := p.views[view]
	return ok
}

// Columns returns the comma-separated select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns the select list as a slice.
func (p *ProjectionMap) ColumnList() []string {
	list := make([]string, len(p.columns))
	copy(list, p.columns)
	return list
}
