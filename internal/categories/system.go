package categories

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/pkg/pagination"
)

// System defines the category schema operations. Every mutation takes the
// caller's RequestContext and invalidates cached field lists.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Category], error)
	Find(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, rc access.RequestContext, cmd CreateCommand) (*Category, error)
	Update(ctx context.Context, rc access.RequestContext, id uuid.UUID, cmd UpdateCommand) (*Category, error)
	Rename(ctx context.Context, rc access.RequestContext, id uuid.UUID, name string) (*Category, error)
	Retire(ctx context.Context, rc access.RequestContext, id uuid.UUID) (*Category, error)
	Reactivate(ctx context.Context, rc access.RequestContext, id uuid.UUID) (*Category, error)

	// Fields returns the category's fields ordered by display order, then id.
	Fields(ctx context.Context, categoryID uuid.UUID) ([]Field, error)
	AddField(ctx context.Context, rc access.RequestContext, categoryID uuid.UUID, cmd AddFieldCommand) (*Field, error)
	UpdateField(ctx context.Context, rc access.RequestContext, categoryID, fieldID uuid.UUID, cmd UpdateFieldCommand) (*Field, error)

	// RemoveField deletes the field definition. Values stored for it remain
	// in place but are no longer readable.
	RemoveField(ctx context.Context, rc access.RequestContext, categoryID, fieldID uuid.UUID) error
}
