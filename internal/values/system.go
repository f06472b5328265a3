package values

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// System defines the document value operations.
type System interface {
	// Write validates in against the category's current fields and stores it
	// inside tx. Any invalid entry rejects the whole input before a row is
	// written. Blank values delete optional fields.
	Write(ctx context.Context, tx *sql.Tx, documentID, categoryID uuid.UUID, in Input, mode Mode) error

	// Set writes in for an existing document in its own transaction.
	Set(ctx context.Context, documentID uuid.UUID, in Input) error

	// Get returns the readable values of a document keyed by field id.
	Get(ctx context.Context, documentID uuid.UUID) (Values, error)

	// Rows returns the raw stored rows of a document, including values of
	// fields that no longer exist.
	Rows(ctx context.Context, documentID uuid.UUID) ([]Row, error)
}
