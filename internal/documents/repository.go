package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/internal/attachments"
	"github.com/JaimeStill/folio/internal/categories"
	"github.com/JaimeStill/folio/internal/folders"
	"github.com/JaimeStill/folio/internal/values"
	"github.com/JaimeStill/folio/pkg/apperr"
	"github.com/JaimeStill/folio/pkg/pagination"
	"github.com/JaimeStill/folio/pkg/query"
	"github.com/JaimeStill/folio/pkg/repository"
	"github.com/JaimeStill/folio/pkg/validate"
)

type repo struct {
	db          *sql.DB
	categories  categories.System
	values      values.System
	attachments attachments.System
	logger      *slog.Logger
	pagination  pagination.Config
}

// New creates the document system on top of the category schema, the value
// store, and attachment storage.
func New(
	db *sql.DB,
	cats categories.System,
	vals values.System,
	atts attachments.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:          db,
		categories:  cats,
		values:      vals,
		attachments: atts,
		logger:      logger.With("system", "documents"),
		pagination:  pagination,
	}
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*Aggregate, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("id", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSummary)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}

	return r.assemble(ctx, s)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Aggregate, error) {
	a, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (r *repo) Create(ctx context.Context, rc access.RequestContext, cmd CreateCommand) (*Aggregate, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	cmd.Title = strings.TrimSpace(cmd.Title)
	if err := validate.Struct(cmd); err != nil {
		return nil, err
	}

	var errs []apperr.FieldError
	if cmd.CategoryID == uuid.Nil {
		errs = append(errs, apperr.Field("category_id", ErrRequiredID))
	}
	if cmd.FolderID == uuid.Nil {
		errs = append(errs, apperr.Field("folder_id", ErrRequiredID))
	}
	date, err := parseDate(cmd.DocumentDate)
	if err != nil {
		errs = append(errs, apperr.Field("document_date", err))
	}
	if len(errs) > 0 {
		return nil, apperr.Fields(errs...)
	}

	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := checkCategory(ctx, tx, cmd.CategoryID); err != nil {
			return struct{}{}, err
		}
		if err := checkFolder(ctx, tx, cmd.FolderID); err != nil {
			return struct{}{}, err
		}

		if _, err := tx.ExecContext(ctx, insertDocument,
			id, cmd.CategoryID, cmd.FolderID, rc.UserID, cmd.Title, date,
			string(StatusPending), string(BackupPending), now,
		); err != nil {
			return struct{}{}, fmt.Errorf("insert document: %w", err)
		}

		return struct{}{}, r.values.Write(ctx, tx, id, cmd.CategoryID, cmd.Values, values.ModeCreate)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("document created",
		"id", id,
		"category_id", cmd.CategoryID,
		"folder_id", cmd.FolderID,
		"user", rc.UserID,
	)

	if cmd.File != nil {
		if _, err := r.attachments.Store(ctx, rc, id, cmd.File.Data, cmd.File.Meta); err != nil {
			r.logger.Warn("attach file to new document failed",
				"id", id,
				"filename", cmd.File.Meta.Filename,
				"error", err,
			)
		}
	}

	return r.Find(ctx, id)
}

func (r *repo) Update(ctx context.Context, rc access.RequestContext, id uuid.UUID, cmd UpdateCommand) (*Aggregate, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	if err := validate.Struct(cmd); err != nil {
		return nil, err
	}

	sets, errs := cmd.assignments()
	if len(errs) > 0 {
		return nil, apperr.Fields(errs...)
	}

	var version int
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var categoryID uuid.UUID
		err := tx.QueryRowContext(ctx,
			`SELECT category_id, version FROM documents WHERE id = $1`, id,
		).Scan(&categoryID, &version)
		if errors.Is(err, sql.ErrNoRows) {
			return struct{}{}, ErrNotFound
		}
		if err != nil {
			return struct{}{}, fmt.Errorf("load document: %w", err)
		}

		if cmd.ExpectedVersion != nil && *cmd.ExpectedVersion != version {
			return struct{}{}, fmt.Errorf("%w: expected version %d, stored %d", ErrVersionConflict, *cmd.ExpectedVersion, version)
		}

		if cmd.FolderID != nil {
			if err := checkFolder(ctx, tx, *cmd.FolderID); err != nil {
				return struct{}{}, err
			}
		}

		stmt, args := updateStatement(sets, id, version, time.Now().UTC())
		err = repository.ExecExpectOne(ctx, tx, stmt, args...)
		if errors.Is(err, sql.ErrNoRows) {
			return struct{}{}, ErrVersionConflict
		}
		if err != nil {
			return struct{}{}, fmt.Errorf("update document: %w", err)
		}

		if len(cmd.Values) == 0 {
			return struct{}{}, nil
		}
		return struct{}{}, r.values.Write(ctx, tx, id, categoryID, cmd.Values, values.ModeUpdate)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("document updated",
		"id", id,
		"version", version+1,
		"columns", len(sets),
		"values", len(cmd.Values),
		"user", rc.UserID,
	)

	return r.Find(ctx, id)
}

func (r *repo) ChangeManagementStatus(ctx context.Context, rc access.RequestContext, id uuid.UUID, status ManagementStatus) (*Aggregate, error) {
	return r.Update(ctx, rc, id, UpdateCommand{ManagementStatus: &status})
}

func (r *repo) ChangeBackupStatus(ctx context.Context, rc access.RequestContext, id uuid.UUID, status BackupStatus) (*Aggregate, error) {
	return r.Update(ctx, rc, id, UpdateCommand{BackupStatus: &status})
}

func (r *repo) Delete(ctx context.Context, rc access.RequestContext, id uuid.UUID) error {
	if err := rc.Validate(); err != nil {
		return err
	}

	atts, err := r.attachments.List(ctx, id)
	if err != nil {
		return fmt.Errorf("list attachments: %w", err)
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, `DELETE FROM documents WHERE id = $1`, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	r.attachments.Purge(ctx, atts)

	r.logger.Info("document deleted", "id", id, "attachments", len(atts), "user", rc.UserID)
	return nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Summary], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "title", "category_name", "folder_label", "created_by")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Summaries(ctx context.Context, filters Filters, limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = r.pagination.MaxPageSize
	}

	qb := query.NewBuilder(projection, defaultSort...)
	filters.Apply(qb)

	q, args := qb.BuildLimit(limit, offset)
	items, err := repository.QueryMany(ctx, r.db, q, args, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return items, nil
}

func (r *repo) Count(ctx context.Context, filters Filters) (int, error) {
	qb := query.NewBuilder(projection)
	filters.Apply(qb)

	q, args := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return total, nil
}

func (r *repo) assemble(ctx context.Context, s Summary) (*Aggregate, error) {
	fields, err := r.categories.Fields(ctx, s.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}

	vals, err := r.values.Get(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("load values: %w", err)
	}

	atts, err := r.attachments.List(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("load attachments: %w", err)
	}

	entries := make([]Entry, 0, len(fields))
	for _, f := range fields {
		e := Entry{
			FieldID:  f.ID,
			Name:     f.Name,
			Type:     f.Type,
			Required: f.Required,
		}
		if v, ok := vals[f.ID]; ok {
			e.Value = &v
		}
		entries = append(entries, e)
	}

	return &Aggregate{
		Summary:     s,
		Fields:      entries,
		Attachments: atts,
	}, nil
}

func checkCategory(ctx context.Context, q repository.Querier, id uuid.UUID) error {
	var status categories.Status
	err := q.QueryRowContext(ctx, `SELECT status FROM categories WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return categories.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if status != categories.StatusActive {
		return categories.ErrObsolete
	}
	return nil
}

func checkFolder(ctx context.Context, q repository.Querier, id uuid.UUID) error {
	var n int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM folders WHERE id = $1`, id).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return folders.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load folder: %w", err)
	}
	return nil
}
