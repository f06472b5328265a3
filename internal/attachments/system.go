package attachments

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/access"
)

// System defines attachment operations.
type System interface {
	List(ctx context.Context, documentID uuid.UUID) ([]Attachment, error)
	Find(ctx context.Context, documentID, id uuid.UUID) (*Attachment, error)

	// Data returns the attachment with its stored bytes.
	Data(ctx context.Context, documentID, id uuid.UUID) (*Attachment, []byte, error)

	// Store saves data as a new attachment of the document. The blob is
	// written first and removed again if the row cannot be recorded.
	Store(ctx context.Context, rc access.RequestContext, documentID uuid.UUID, data []byte, meta Meta) (*Attachment, error)

	Delete(ctx context.Context, rc access.RequestContext, documentID, id uuid.UUID) error

	// Purge removes the blobs of attachments whose rows are already gone.
	// Failures are logged, never returned.
	Purge(ctx context.Context, atts []Attachment)

	// MaxUploadSize returns the largest accepted file in bytes.
	MaxUploadSize() int64
}
