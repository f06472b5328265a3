package documents

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/pkg/pagination"
)

// System defines the document aggregate operations.
type System interface {
	// Get returns the document aggregate, or nil when no document has id.
	Get(ctx context.Context, id uuid.UUID) (*Aggregate, error)

	// Find is Get reporting an absent document as ErrNotFound.
	Find(ctx context.Context, id uuid.UUID) (*Aggregate, error)

	// Create stores the metadata and values of a new document in one
	// transaction. A file in the command is attached after commit; failing
	// to attach it does not fail the create.
	Create(ctx context.Context, rc access.RequestContext, cmd CreateCommand) (*Aggregate, error)

	Update(ctx context.Context, rc access.RequestContext, id uuid.UUID, cmd UpdateCommand) (*Aggregate, error)
	ChangeManagementStatus(ctx context.Context, rc access.RequestContext, id uuid.UUID, status ManagementStatus) (*Aggregate, error)
	ChangeBackupStatus(ctx context.Context, rc access.RequestContext, id uuid.UUID, status BackupStatus) (*Aggregate, error)

	// Delete removes the document with its values and attachment rows.
	// Attachment blobs are removed afterwards on a best-effort basis.
	Delete(ctx context.Context, rc access.RequestContext, id uuid.UUID) error

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Summary], error)
	Summaries(ctx context.Context, filters Filters, limit, offset int) ([]Summary, error)
	Count(ctx context.Context, filters Filters) (int, error)

	// Export writes the documents matching filters as an XLSX workbook.
	// Filtering by category adds one column per category field.
	Export(ctx context.Context, filters Filters, w io.Writer) error
}
