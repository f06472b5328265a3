package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/fieldtype"
	"github.com/JaimeStill/folio/pkg/apperr"
	"github.com/JaimeStill/folio/pkg/repository"
)

// LoadFields reads a category's fields through q in display order. It is
// used by callers that must see the schema inside their own transaction.
func LoadFields(ctx context.Context, q repository.Querier, categoryID uuid.UUID) ([]Field, error) {
	stmt := `SELECT ` + fieldColumns + ` FROM category_fields
		WHERE category_id = $1
		ORDER BY display_order, id`

	fields, err := repository.QueryMany(ctx, q, stmt, []any{categoryID}, scanField)
	if err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}

	SortFields(fields)
	return fields, nil
}

type fieldDef struct {
	name      string
	ft        fieldtype.Type
	maxLength *int
}

// checkField validates a field definition. Failures are reported under
// prefix-qualified field names.
func checkField(prefix, name, typ string, order, maxLength *int) (fieldDef, []apperr.FieldError) {
	var errs []apperr.FieldError
	def := fieldDef{name: strings.TrimSpace(name)}

	if def.name == "" {
		errs = append(errs, apperr.Field(prefix+"name", ErrNameRequired))
	}

	ft, err := fieldtype.ParseType(typ)
	if err != nil {
		errs = append(errs, apperr.Field(prefix+"type", err))
	}
	def.ft = ft

	if order != nil && *order < 0 {
		errs = append(errs, apperr.Field(prefix+"order", ErrInvalidOrder))
	}

	if maxLength != nil && *maxLength != 0 && err == nil {
		if err := checkMaxLength(ft, *maxLength); err != nil {
			errs = append(errs, apperr.Field(prefix+"max_length", err))
		} else {
			n := *maxLength
			def.maxLength = &n
		}
	}

	return def, errs
}

func checkMaxLength(ft fieldtype.Type, n int) error {
	if !ft.IsText() {
		return fmt.Errorf("%w: %s fields have no length", ErrInvalidMaxLength, ft)
	}
	if n < 0 {
		return fmt.Errorf("%w: must be positive", ErrInvalidMaxLength)
	}
	if limit := ft.SlotLimit(); limit > 0 && n > limit {
		return fmt.Errorf("%w: %s holds at most %d characters", ErrInvalidMaxLength, ft, limit)
	}
	return nil
}

func nextOrder(ctx context.Context, q repository.Querier, categoryID uuid.UUID) (int, error) {
	var max int
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(display_order), 0) FROM category_fields WHERE category_id = $1`,
		categoryID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("next field order: %w", err)
	}
	return max + 1, nil
}

func mapFieldError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return repository.MapError(err, ErrFieldNotFound, ErrDuplicateField)
}
