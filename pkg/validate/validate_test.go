package validate_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/folio/pkg/apperr"
	"github.com/JaimeStill/folio/pkg/validate"
)

type createFolder struct {
	Label       string  `json:"label" validate:"required,max=8"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=4"`
	Kind        string  `json:"kind" validate:"omitempty,oneof=archive active"`
}

func TestStruct(t *testing.T) {
	long := "too long"

	tests := []struct {
		name       string
		input      createFolder
		wantFields []string
	}{
		{"valid", createFolder{Label: "Audits"}, nil},
		{"missing label", createFolder{}, []string{"label"}},
		{"several", createFolder{Label: "Quarterly audits", Description: &long, Kind: "other"}, []string{"label", "description", "kind"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.input)
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("Struct() error = %v", err)
				}
				return
			}

			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("Struct() error = %v, want validation error", err)
			}

			fields := apperr.FieldsOf(err)
			if len(fields) != len(tt.wantFields) {
				t.Fatalf("fields = %v, want %v", fields, tt.wantFields)
			}
			for i, f := range fields {
				if f.Field != tt.wantFields[i] {
					t.Errorf("fields[%d] = %q, want %q", i, f.Field, tt.wantFields[i])
				}
			}
		})
	}
}

func TestStruct_Message(t *testing.T) {
	err := validate.Struct(createFolder{})
	fields := apperr.FieldsOf(err)
	if len(fields) != 1 || fields[0].Err.Error() != "is required" {
		t.Errorf("fields = %+v", fields)
	}
}
