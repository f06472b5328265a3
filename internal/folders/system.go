package folders

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/pkg/pagination"
)

// System defines folder operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Folder], error)
	Find(ctx context.Context, id uuid.UUID) (*Folder, error)
	Create(ctx context.Context, rc access.RequestContext, cmd CreateCommand) (*Folder, error)
	Update(ctx context.Context, rc access.RequestContext, id uuid.UUID, cmd UpdateCommand) (*Folder, error)

	// Delete removes an empty folder. Folders that hold documents are
	// rejected with ErrInUse.
	Delete(ctx context.Context, rc access.RequestContext, id uuid.UUID) error
}
