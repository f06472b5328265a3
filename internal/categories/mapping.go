package categories

import (
	"net/url"

	"github.com/JaimeStill/folio/pkg/query"
	"github.com/JaimeStill/folio/pkg/repository"
)

var projection = query.NewProjectionMap("", "categories", "c").
	Project("id", "id").
	Project("name", "name").
	Project("description", "description").
	Project("status", "status").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "name"}

const categoryColumns = `id, name, description, status, created_at, updated_at`

const fieldColumns = `id, category_id, name, field_type, required, display_order, max_length, created_at`

func scanCategory(s repository.Scanner) (Category, error) {
	var c Category
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func scanField(s repository.Scanner) (Field, error) {
	var f Field
	err := s.Scan(
		&f.ID,
		&f.CategoryID,
		&f.Name,
		&f.Type,
		&f.Required,
		&f.Order,
		&f.MaxLength,
		&f.CreatedAt,
	)
	return f, err
}

// Filters contains optional criteria for filtering category queries.
type Filters struct {
	Name   *string
	Status *Status
}

// FiltersFromQuery extracts category filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if s := values.Get("status"); s != "" {
		status := Status(s)
		f.Status = &status
	}

	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("name", f.Name).
		WhereEquals("status", f.Status)
}
