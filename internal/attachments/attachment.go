// Package attachments stores files attached to documents. Blobs live in the
// storage system; rows in the attachments table record their metadata and
// are removed with the owning document.
package attachments

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a stored file belonging to a document.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	DocumentID  uuid.UUID `json:"document_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count,omitempty"`
	StorageKey  string    `json:"storage_key"`
	CreatedAt   time.Time `json:"created_at"`
}

// Meta describes an uploaded file. An empty ContentType is detected from
// the file contents.
type Meta struct {
	Filename    string
	ContentType string
}
