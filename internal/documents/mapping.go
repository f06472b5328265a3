package documents

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/fieldtype"
	"github.com/JaimeStill/folio/pkg/apperr"
	"github.com/JaimeStill/folio/pkg/query"
	"github.com/JaimeStill/folio/pkg/repository"
)

var projection = query.NewProjectionMap("", "documents", "d").
	Project("id", "id").
	Project("category_id", "category_id").
	Project("folder_id", "folder_id").
	Project("created_by", "created_by").
	Project("title", "title").
	Project("document_date", "document_date").
	Project("management_status", "management_status").
	Project("backup_status", "backup_status").
	Project("version", "version").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at").
	Join("JOIN categories c ON c.id = d.category_id").
	Join("JOIN folders f ON f.id = d.folder_id").
	ProjectFrom("c", "name", "category_name").
	ProjectFrom("f", "label", "folder_label")

var defaultSort = []query.SortField{
	{Field: "created_at", Descending: true},
	{Field: "id", Descending: true},
}

const insertDocument = `INSERT INTO documents (
		id, category_id, folder_id, created_by, title, document_date,
		management_status, backup_status, version, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9, $9)`

func scanSummary(s repository.Scanner) (Summary, error) {
	var d Summary
	err := s.Scan(
		&d.ID,
		&d.CategoryID,
		&d.FolderID,
		&d.CreatedBy,
		&d.Title,
		&d.DocumentDate,
		&d.ManagementStatus,
		&d.BackupStatus,
		&d.Version,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.CategoryName,
		&d.FolderLabel,
	)
	return d, err
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(fieldtype.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// assignment is one column of an update. Only columns named here may be
// patched.
type assignment struct {
	column string
	value  any
}

func (c UpdateCommand) assignments() ([]assignment, []apperr.FieldError) {
	var (
		sets []assignment
		errs []apperr.FieldError
	)

	if c.FolderID != nil {
		sets = append(sets, assignment{"folder_id", *c.FolderID})
	}
	if c.Title != nil {
		sets = append(sets, assignment{"title", strings.TrimSpace(*c.Title)})
	}
	if c.DocumentDate != nil {
		if d, err := parseDate(*c.DocumentDate); err != nil {
			errs = append(errs, apperr.Field("document_date", err))
		} else {
			sets = append(sets, assignment{"document_date", d})
		}
	}
	if c.ManagementStatus != nil {
		if !c.ManagementStatus.Valid() {
			errs = append(errs, apperr.Field("management_status", ErrInvalidStatus))
		} else {
			sets = append(sets, assignment{"management_status", string(*c.ManagementStatus)})
		}
	}
	if c.BackupStatus != nil {
		if !c.BackupStatus.Valid() {
			errs = append(errs, apperr.Field("backup_status", ErrInvalidBackupStatus))
		} else {
			sets = append(sets, assignment{"backup_status", string(*c.BackupStatus)})
		}
	}

	return sets, errs
}

// updateStatement builds the patch of document id guarded by its current
// version. The version is always incremented.
func updateStatement(sets []assignment, id uuid.UUID, version int, now time.Time) (string, []any) {
	clauses := make([]string, 0, len(sets)+2)
	args := make([]any, 0, len(sets)+3)

	for _, s := range sets {
		args = append(args, s.value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", s.column, len(args)))
	}

	args = append(args, now)
	clauses = append(clauses, fmt.Sprintf("updated_at = $%d", len(args)), "version = version + 1")

	args = append(args, id, version)
	stmt := fmt.Sprintf(
		"UPDATE documents SET %s WHERE id = $%d AND version = $%d",
		strings.Join(clauses, ", "), len(args)-1, len(args),
	)
	return stmt, args
}

// Filters contains optional criteria for filtering document queries.
// DateFrom and DateTo bound the document date inclusively.
type Filters struct {
	CategoryID       *uuid.UUID
	FolderID         *uuid.UUID
	ManagementStatus *ManagementStatus
	BackupStatus     *BackupStatus
	CreatedBy        *string
	DateFrom         *time.Time
	DateTo           *time.Time
	Title            *string
}

// FiltersFromQuery extracts document filters from URL query parameters.
// Malformed ids, dates, and statuses are reported as field errors.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var (
		f    Filters
		errs []apperr.FieldError
	)

	parseID := func(key string) *uuid.UUID {
		raw := values.Get(key)
		if raw == "" {
			return nil
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			errs = append(errs, apperr.Field(key, ErrInvalidFilter))
			return nil
		}
		return &id
	}

	parseDay := func(key string) *time.Time {
		raw := values.Get(key)
		if raw == "" {
			return nil
		}
		d, err := parseDate(raw)
		if err != nil {
			errs = append(errs, apperr.Field(key, err))
			return nil
		}
		return &d
	}

	f.CategoryID = parseID("category_id")
	f.FolderID = parseID("folder_id")
	f.DateFrom = parseDay("date_from")
	f.DateTo = parseDay("date_to")

	if s := values.Get("management_status"); s != "" {
		status := ManagementStatus(s)
		if status.Valid() {
			f.ManagementStatus = &status
		} else {
			errs = append(errs, apperr.Field("management_status", ErrInvalidStatus))
		}
	}

	if s := values.Get("backup_status"); s != "" {
		status := BackupStatus(s)
		if status.Valid() {
			f.BackupStatus = &status
		} else {
			errs = append(errs, apperr.Field("backup_status", ErrInvalidBackupStatus))
		}
	}

	if s := values.Get("created_by"); s != "" {
		f.CreatedBy = &s
	}

	if s := values.Get("title"); s != "" {
		f.Title = &s
	}

	if len(errs) > 0 {
		return Filters{}, apperr.Fields(errs...)
	}
	return f, nil
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("category_id", f.CategoryID).
		WhereEquals("folder_id", f.FolderID).
		WhereEquals("created_by", f.CreatedBy).
		WhereGTE("document_date", f.DateFrom).
		WhereLTE("document_date", f.DateTo).
		WhereContains("title", f.Title)

	if f.ManagementStatus != nil {
		b.WhereEquals("management_status", string(*f.ManagementStatus))
	}
	if f.BackupStatus != nil {
		b.WhereEquals("backup_status", string(*f.BackupStatus))
	}
	return b
}
