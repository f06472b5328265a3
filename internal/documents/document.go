// Package documents manages registry documents as aggregates: the fixed
// metadata row, the dynamic field values defined by the document's category,
// and the files attached to it.
package documents

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/attachments"
	"github.com/JaimeStill/folio/internal/fieldtype"
	"github.com/JaimeStill/folio/internal/values"
)

// ManagementStatus tracks where a document is in its handling. Any status
// may be set from any other.
type ManagementStatus string

const (
	StatusPending   ManagementStatus = "pending"
	StatusInReview  ManagementStatus = "in_review"
	StatusArchived  ManagementStatus = "archived"
	StatusCancelled ManagementStatus = "cancelled"
)

// ManagementStatuses lists every management status.
func ManagementStatuses() []ManagementStatus {
	return []ManagementStatus{StatusPending, StatusInReview, StatusArchived, StatusCancelled}
}

func (s ManagementStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusArchived, StatusCancelled:
		return true
	}
	return false
}

// BackupStatus records whether the physical document has been backed up.
type BackupStatus string

const (
	BackupPending BackupStatus = "not_backed_up"
	BackupDone    BackupStatus = "backed_up"
)

func (s BackupStatus) Valid() bool {
	return s == BackupPending || s == BackupDone
}

// Document is the fixed metadata of a registry entry.
type Document struct {
	ID               uuid.UUID        `json:"id"`
	CategoryID       uuid.UUID        `json:"category_id"`
	FolderID         uuid.UUID        `json:"folder_id"`
	CreatedBy        string           `json:"created_by"`
	Title            string           `json:"title"`
	DocumentDate     time.Time        `json:"document_date"`
	ManagementStatus ManagementStatus `json:"management_status"`
	BackupStatus     BackupStatus     `json:"backup_status"`
	Version          int              `json:"version"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Summary is a document with the display names of its category and folder.
type Summary struct {
	Document
	CategoryName string `json:"category_name"`
	FolderLabel  string `json:"folder_label"`
}

// Entry is one field of the document's category with its current value.
// Value is nil when the document stores nothing for the field.
type Entry struct {
	FieldID  uuid.UUID        `json:"field_id"`
	Name     string           `json:"name"`
	Type     fieldtype.Type   `json:"type"`
	Required bool             `json:"required"`
	Value    *fieldtype.Value `json:"value"`
}

// Aggregate is the complete view of a document. Fields follow the
// category's display order.
type Aggregate struct {
	Summary
	Fields      []Entry                  `json:"fields"`
	Attachments []attachments.Attachment `json:"attachments"`
}

// Value returns the entry of the named field. Names match case-insensitively.
func (a *Aggregate) Value(name string) (Entry, bool) {
	for _, e := range a.Fields {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// File is an upload attached to a document after it is created.
type File struct {
	Data []byte
	Meta attachments.Meta
}

// CreateCommand contains the data required to register a document.
// DocumentDate uses the YYYY-MM-DD layout and Values is keyed by field id.
type CreateCommand struct {
	CategoryID   uuid.UUID    `json:"category_id"`
	FolderID     uuid.UUID    `json:"folder_id"`
	Title        string       `json:"title" validate:"max=500"`
	DocumentDate string       `json:"document_date" validate:"required"`
	Values       values.Input `json:"values"`
	File         *File        `json:"-"`
}

// UpdateCommand patches a document. Nil members are left unchanged.
// When ExpectedVersion is set the update fails with a conflict unless the
// stored version still matches.
type UpdateCommand struct {
	FolderID         *uuid.UUID        `json:"folder_id,omitempty"`
	Title            *string           `json:"title,omitempty" validate:"omitempty,max=500"`
	DocumentDate     *string           `json:"document_date,omitempty"`
	ManagementStatus *ManagementStatus `json:"management_status,omitempty"`
	BackupStatus     *BackupStatus     `json:"backup_status,omitempty"`
	Values           values.Input      `json:"values,omitempty"`
	ExpectedVersion  *int              `json:"expected_version,omitempty"`
}

// StatusCommand carries a status change.
type StatusCommand struct {
	Status string `json:"status" validate:"required"`
}
