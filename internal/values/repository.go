package values

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/categories"
	"github.com/JaimeStill/folio/internal/fieldtype"
	"github.com/JaimeStill/folio/pkg/apperr"
	"github.com/JaimeStill/folio/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a value store over db.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "values"),
	}
}

type op struct {
	field categories.Field
	value *fieldtype.Value
}

func (r *repo) Write(ctx context.Context, tx *sql.Tx, documentID, categoryID uuid.UUID, in Input, mode Mode) error {
	fields, err := categories.LoadFields(ctx, tx, categoryID)
	if err != nil {
		return err
	}

	ops, err := plan(fields, in, mode)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, o := range ops {
		if o.value == nil {
			if _, err := tx.ExecContext(ctx, deleteValue, documentID, o.field.ID); err != nil {
				return fmt.Errorf("clear value %s: %w", o.field.Name, err)
			}
			continue
		}

		a := append([]any{documentID, o.field.ID}, args(*o.value)...)
		a = append(a, now)
		if _, err := tx.ExecContext(ctx, upsertValue, a...); err != nil {
			return fmt.Errorf("write value %s: %w", o.field.Name, err)
		}
	}

	r.logger.Debug("values written", "document_id", documentID, "count", len(ops))
	return nil
}

func (r *repo) Set(ctx context.Context, documentID uuid.UUID, in Input) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var categoryID uuid.UUID
		err := tx.QueryRowContext(ctx, `SELECT category_id FROM documents WHERE id = $1`, documentID).Scan(&categoryID)
		if err != nil {
			return struct{}{}, repository.MapError(err, ErrDocumentNotFound, ErrDocumentNotFound)
		}
		return struct{}{}, r.Write(ctx, tx, documentID, categoryID, in, ModeUpdate)
	})
	return err
}

func (r *repo) Get(ctx context.Context, documentID uuid.UUID) (Values, error) {
	rows, err := repository.QueryMany(ctx, r.db, selectCurrent, []any{documentID}, scanCurrent)
	if err != nil {
		return nil, fmt.Errorf("query values: %w", err)
	}

	out := make(Values, len(rows))
	for _, c := range rows {
		out[c.fieldID] = c.value
	}
	return out, nil
}

func (r *repo) Rows(ctx context.Context, documentID uuid.UUID) ([]Row, error) {
	rows, err := repository.QueryMany(ctx, r.db, selectRows, []any{documentID}, scanRow)
	if err != nil {
		return nil, fmt.Errorf("query value rows: %w", err)
	}
	return rows, nil
}

// plan validates every entry of in against fields and returns the writes
// in field display order. A nil op value marks a delete.
func plan(fields []categories.Field, in Input, mode Mode) ([]op, error) {
	byID := make(map[uuid.UUID]categories.Field, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}

	var errs []apperr.FieldError

	given := make(map[uuid.UUID]any, len(in))
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		id, err := uuid.Parse(k)
		if _, ok := byID[id]; err != nil || !ok {
			errs = append(errs, apperr.Field(k, ErrUnknownField))
			continue
		}
		given[id] = in[k]
	}

	ops := make([]op, 0, len(given))
	for _, f := range fields {
		key := f.ID.String()
		raw, present := given[f.ID]

		if !present {
			if mode == ModeCreate && f.Required {
				errs = append(errs, apperr.Field(key, fmt.Errorf("%s: %w", f.Name, ErrRequired)))
			}
			continue
		}

		if blank(raw) {
			if f.Required {
				errs = append(errs, apperr.Field(key, fmt.Errorf("%s: %w", f.Name, ErrRequired)))
				continue
			}
			ops = append(ops, op{field: f})
			continue
		}

		v, err := fieldtype.Coerce(f.Type, raw, f.MaxLength)
		if err != nil {
			errs = append(errs, apperr.Field(key, fmt.Errorf("%s: %w", f.Name, err)))
			continue
		}
		ops = append(ops, op{field: f, value: &v})
	}

	if len(errs) > 0 {
		return nil, apperr.Fields(errs...)
	}
	return ops, nil
}

func blank(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case json.Number:
		return strings.TrimSpace(v.String()) == ""
	default:
		return false
	}
}
