package folders

import (
	"net/url"

	"github.com/JaimeStill/folio/pkg/query"
	"github.com/JaimeStill/folio/pkg/repository"
)

var projection = query.NewProjectionMap("", "folders", "f").
	Project("id", "id").
	Project("label", "label").
	Project("location", "location").
	Project("description", "description").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "label"}

const columns = `id, label, location, description, created_at, updated_at`

func scanFolder(s repository.Scanner) (Folder, error) {
	var f Folder
	err := s.Scan(
		&f.ID,
		&f.Label,
		&f.Location,
		&f.Description,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	return f, err
}

// Filters contains optional criteria for filtering folder queries.
type Filters struct {
	Label    *string
	Location *string
}

// FiltersFromQuery extracts folder filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if l := values.Get("label"); l != "" {
		f.Label = &l
	}

	if l := values.Get("location"); l != "" {
		f.Location = &l
	}

	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("label", f.Label).
		WhereContains("location", f.Location)
}
