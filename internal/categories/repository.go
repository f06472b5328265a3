package categories

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
	"github.com/JaimeStill/folio/pkg/apperr"
	"github.com/JaimeStill/folio/pkg/cache"
	"github.com/JaimeStill/folio/pkg/pagination"
	"github.com/JaimeStill/folio/pkg/query"
	"github.com/JaimeStill/folio/pkg/repository"
	"github.com/JaimeStill/folio/pkg/validate"
)

type repo struct {
	db         *sql.DB
	cache      cache.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a category repository. Field lists are cached through cache.
func New(db *sql.DB, cache cache.System, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		cache:      cache,
		logger:     logger.With("system", "categories"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Category], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "name", "description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Category, error) {
	c, err := r.find(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	fields, err := r.Fields(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Fields = fields

	return c, nil
}

func (r *repo) Create(ctx context.Context, rc access.RequestContext, cmd CreateCommand) (*Category, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := validate.Struct(cmd); err != nil {
		return nil, err
	}

	defs := make([]fieldDef, len(cmd.Fields))
	var errs []apperr.FieldError
	for i, f := range cmd.Fields {
		def, ferrs := checkField(fmt.Sprintf("fields[%d].", i), f.Name, f.Type, f.Order, f.MaxLength)
		defs[i] = def
		errs = append(errs, ferrs...)
	}
	if len(errs) > 0 {
		return nil, apperr.Fields(errs...)
	}

	now := time.Now().UTC()
	id := uuid.Must(uuid.NewV7())

	insertCategory := `INSERT INTO categories (id, name, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + categoryColumns

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Category, error) {
		c, err := repository.QueryOne(ctx, tx, insertCategory, []any{
			id, cmd.Name, cmd.Description, StatusActive, now,
		}, scanCategory)
		if err != nil {
			return c, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		order := 0
		c.Fields = make([]Field, 0, len(defs))
		for i, def := range defs {
			if o := cmd.Fields[i].Order; o != nil {
				order = *o
			} else {
				order++
			}

			f, err := insertField(ctx, tx, c.ID, def, cmd.Fields[i].Required, order, now)
			if err != nil {
				return c, err
			}
			c.Fields = append(c.Fields, f)
		}

		SortFields(c.Fields)
		return c, nil
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("category created", "id", c.ID, "name", c.Name, "fields", len(c.Fields), "user", rc.UserID)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, rc access.RequestContext, id uuid.UUID, cmd UpdateCommand) (*Category, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := validate.Struct(cmd); err != nil {
		return nil, err
	}

	q := `UPDATE categories SET name = $1, description = $2, updated_at = $3
		WHERE id = $4
		RETURNING ` + categoryColumns

	c, err := r.mutate(ctx, q, cmd.Name, cmd.Description, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("category updated", "id", c.ID, "name", c.Name, "user", rc.UserID)
	return c, nil
}

func (r *repo) Rename(ctx context.Context, rc access.RequestContext, id uuid.UUID, name string) (*Category, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	cmd := RenameCommand{Name: strings.TrimSpace(name)}
	if err := validate.Struct(cmd); err != nil {
		return nil, err
	}

	q := `UPDATE categories SET name = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + categoryColumns

	c, err := r.mutate(ctx, q, cmd.Name, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("category renamed", "id", c.ID, "name", c.Name, "user", rc.UserID)
	return c, nil
}

func (r *repo) Retire(ctx context.Context, rc access.RequestContext, id uuid.UUID) (*Category, error) {
	return r.setStatus(ctx, rc, id, StatusObsolete)
}

func (r *repo) Reactivate(ctx context.Context, rc access.RequestContext, id uuid.UUID) (*Category, error) {
	return r.setStatus(ctx, rc, id, StatusActive)
}

func (r *repo) Fields(ctx context.Context, categoryID uuid.UUID) ([]Field, error) {
	key := fieldsKey(categoryID)

	var fields []Field
	hit, err := r.cache.Get(ctx, key, &fields)
	if err != nil {
		r.logger.Warn("field cache read failed", "category_id", categoryID, "error", err)
	}
	if hit {
		return fields, nil
	}

	if _, err := r.find(ctx, r.db, categoryID); err != nil {
		return nil, err
	}

	fields, err = LoadFields(ctx, r.db, categoryID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, fields); err != nil {
		r.logger.Warn("field cache write failed", "category_id", categoryID, "error", err)
	}
	return fields, nil
}

func (r *repo) AddField(ctx context.Context, rc access.RequestContext, categoryID uuid.UUID, cmd AddFieldCommand) (*Field, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	if err := validate.Struct(cmd); err != nil {
		return nil, err
	}

	def, errs := checkField("", cmd.Name, cmd.Type, cmd.Order, cmd.MaxLength)
	if len(errs) > 0 {
		return nil, apperr.Fields(errs...)
	}

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Field, error) {
		if _, err := r.find(ctx, tx, categoryID); err != nil {
			return Field{}, err
		}

		var order int
		if cmd.Order != nil {
			order = *cmd.Order
		} else {
			next, err := nextOrder(ctx, tx, categoryID)
			if err != nil {
				return Field{}, err
			}
			order = next
		}

		return insertField(ctx, tx, categoryID, def, cmd.Required, order, time.Now().UTC())
	})

	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, categoryID)
	r.logger.Info("field added", "category_id", categoryID, "field_id", f.ID, "name", f.Name, "type", f.Type, "user", rc.UserID)
	return &f, nil
}

func (r *repo) UpdateField(ctx context.Context, rc access.RequestContext, categoryID, fieldID uuid.UUID, cmd UpdateFieldCommand) (*Field, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	if err := validate.Struct(cmd); err != nil {
		return nil, err
	}

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Field, error) {
		current, err := findField(ctx, tx, categoryID, fieldID)
		if err != nil {
			return Field{}, err
		}

		next, err := applyFieldPatch(current, cmd)
		if err != nil {
			return Field{}, err
		}

		q := `UPDATE category_fields
			SET name = $1, field_type = $2, required = $3, display_order = $4, max_length = $5
			WHERE id = $6 AND category_id = $7
			RETURNING ` + fieldColumns

		f, err := repository.QueryOne(ctx, tx, q, []any{
			next.Name, next.Type, next.Required, next.Order, next.MaxLength, fieldID, categoryID,
		}, scanField)
		return f, mapFieldError(err)
	})

	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, categoryID)
	r.logger.Info("field updated", "category_id", categoryID, "field_id", f.ID, "name", f.Name, "type", f.Type, "user", rc.UserID)
	return &f, nil
}

func (r *repo) RemoveField(ctx context.Context, rc access.RequestContext, categoryID, fieldID uuid.UUID) error {
	if err := rc.Validate(); err != nil {
		return err
	}

	q := `DELETE FROM category_fields WHERE id = $1 AND category_id = $2`
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, fieldID, categoryID)
	})

	if err != nil {
		return mapFieldError(err)
	}

	r.invalidate(ctx, categoryID)
	r.logger.Info("field removed", "category_id", categoryID, "field_id", fieldID, "user", rc.UserID)
	return nil
}

func (r *repo) find(ctx context.Context, q repository.Querier, id uuid.UUID) (*Category, error) {
	stmt, args := query.
		NewBuilder(projection).
		BuildSingle("id", id)

	c, err := repository.QueryOne(ctx, q, stmt, args, scanCategory)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) mutate(ctx context.Context, q string, args ...any) (*Category, error) {
	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Category, error) {
		return repository.QueryOne(ctx, tx, q, args, scanCategory)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) setStatus(ctx context.Context, rc access.RequestContext, id uuid.UUID, status Status) (*Category, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	q := `UPDATE categories
		SET updated_at = CASE WHEN status = $1 THEN updated_at ELSE $2 END, status = $1
		WHERE id = $3
		RETURNING ` + categoryColumns

	c, err := r.mutate(ctx, q, status, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("category status set", "id", c.ID, "status", c.Status, "user", rc.UserID)
	return c, nil
}

func (r *repo) invalidate(ctx context.Context, categoryID uuid.UUID) {
	if err := r.cache.Delete(ctx, fieldsKey(categoryID)); err != nil {
		r.logger.Warn("field cache invalidation failed", "category_id", categoryID, "error", err)
	}
}

func insertField(ctx context.Context, tx *sql.Tx, categoryID uuid.UUID, def fieldDef, required bool, order int, now time.Time) (Field, error) {
	q := `INSERT INTO category_fields (id, category_id, name, field_type, required, display_order, max_length, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + fieldColumns

	f, err := repository.QueryOne(ctx, tx, q, []any{
		uuid.Must(uuid.NewV7()), categoryID, def.name, def.ft, required, order, def.maxLength, now,
	}, scanField)
	if err != nil {
		return f, mapFieldError(err)
	}
	return f, nil
}

func findField(ctx context.Context, q repository.Querier, categoryID, fieldID uuid.UUID) (Field, error) {
	stmt := `SELECT ` + fieldColumns + ` FROM category_fields WHERE id = $1 AND category_id = $2`
	f, err := repository.QueryOne(ctx, q, stmt, []any{fieldID, categoryID}, scanField)
	if err != nil {
		return f, mapFieldError(err)
	}
	return f, nil
}

func applyFieldPatch(f Field, cmd UpdateFieldCommand) (Field, error) {
	name := f.Name
	if cmd.Name != nil {
		name = *cmd.Name
	}

	typ := string(f.Type)
	if cmd.Type != nil {
		typ = *cmd.Type
	}

	maxLength := f.MaxLength
	if cmd.MaxLength != nil {
		maxLength = cmd.MaxLength
	}

	def, errs := checkField("", name, typ, cmd.Order, maxLength)
	if len(errs) > 0 {
		if cmd.MaxLength == nil && !def.ft.IsText() && onlyMaxLength(errs) {
			def.maxLength = nil
		} else {
			return f, apperr.Fields(errs...)
		}
	}

	f.Name = def.name
	f.Type = def.ft
	f.MaxLength = def.maxLength
	if cmd.Required != nil {
		f.Required = *cmd.Required
	}
	if cmd.Order != nil {
		f.Order = *cmd.Order
	}
	return f, nil
}

// onlyMaxLength reports whether every error concerns max_length, which
// happens when a text field is retyped and its inherited limit no longer applies.
func onlyMaxLength(errs []apperr.FieldError) bool {
	for _, e := range errs {
		if !errors.Is(e.Err, ErrInvalidMaxLength) {
			return false
		}
	}
	return true
}

func fieldsKey(categoryID uuid.UUID) string {
	return "categories:fields:" + categoryID.String()
}
