package values

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JaimeStill/folio/internal/fieldtype"
	"github.com/JaimeStill/folio/pkg/repository"
)

const upsertValue = `INSERT INTO document_values
		(document_id, field_id, text_value, number_value, date_value, bool_value, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (document_id, field_id) DO UPDATE SET
		text_value = excluded.text_value,
		number_value = excluded.number_value,
		date_value = excluded.date_value,
		bool_value = excluded.bool_value,
		updated_at = excluded.updated_at`

const deleteValue = `DELETE FROM document_values WHERE document_id = $1 AND field_id = $2`

const selectCurrent = `SELECT f.id, f.field_type, v.text_value, v.number_value, v.date_value, v.bool_value
	FROM document_values v
	JOIN documents d ON d.id = v.document_id
	JOIN category_fields f ON f.id = v.field_id AND f.category_id = d.category_id
	WHERE v.document_id = $1`

const selectRows = `SELECT document_id, field_id, text_value, number_value, date_value, bool_value, updated_at
	FROM document_values
	WHERE document_id = $1
	ORDER BY field_id`

type slots struct {
	text   sql.NullString
	number decimal.NullDecimal
	date   sql.NullTime
	boolv  sql.NullBool
}

func (s *slots) dest() []any {
	return []any{&s.text, &s.number, &s.date, &s.boolv}
}

// value builds a Value tagged with the field's current type from whichever
// slot is populated.
func (s *slots) value(ft fieldtype.Type) fieldtype.Value {
	v := fieldtype.Value{Type: ft}
	switch {
	case s.text.Valid:
		v.Text = &s.text.String
	case s.number.Valid:
		v.Number = &s.number.Decimal
	case s.date.Valid:
		d := fieldtype.DateValue(s.date.Time)
		v.Date = d.Date
	case s.boolv.Valid:
		v.Bool = &s.boolv.Bool
	}
	return v
}

// args returns the four slot parameters for v; unused slots are NULL.
func args(v fieldtype.Value) []any {
	out := []any{nil, nil, nil, nil}
	switch {
	case v.Text != nil:
		out[0] = *v.Text
	case v.Number != nil:
		out[1] = *v.Number
	case v.Date != nil:
		out[2] = *v.Date
	case v.Bool != nil:
		out[3] = *v.Bool
	}
	return out
}

type current struct {
	fieldID uuid.UUID
	value   fieldtype.Value
}

func scanCurrent(s repository.Scanner) (current, error) {
	var (
		c  current
		ft fieldtype.Type
		sl slots
	)
	err := s.Scan(append([]any{&c.fieldID, &ft}, sl.dest()...)...)
	c.value = sl.value(ft)
	return c, err
}

func scanRow(s repository.Scanner) (Row, error) {
	var (
		r  Row
		sl slots
	)
	dest := append([]any{&r.DocumentID, &r.FieldID}, sl.dest()...)
	dest = append(dest, &r.UpdatedAt)
	if err := s.Scan(dest...); err != nil {
		return r, err
	}

	if sl.text.Valid {
		r.Text = &sl.text.String
	}
	if sl.number.Valid {
		r.Number = &sl.number.Decimal
	}
	if sl.date.Valid {
		r.Date = &sl.date.Time
	}
	if sl.boolv.Valid {
		r.Bool = &sl.boolv.Bool
	}
	return r, nil
}
