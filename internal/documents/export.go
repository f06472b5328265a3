package documents

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/JaimeStill/folio/internal/categories"
	"github.com/JaimeStill/folio/internal/fieldtype"
)

// ExportSheet is the name of the worksheet written by Export.
const ExportSheet = "Documents"

const exportBatch = 200

// ExportHeaders are the fixed leading columns of an export.
var ExportHeaders = []string{
	"Title",
	"Category",
	"Folder",
	"Document Date",
	"Management Status",
	"Backup Status",
	"Created By",
	"Version",
	"Created At",
	"Updated At",
}

func (r *repo) Export(ctx context.Context, filters Filters, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	var fields []categories.Field
	if filters.CategoryID != nil {
		var err error
		if fields, err = r.categories.Fields(ctx, *filters.CategoryID); err != nil {
			return err
		}
	}

	header := make([]any, 0, len(ExportHeaders)+len(fields))
	for _, h := range ExportHeaders {
		header = append(header, h)
	}
	for _, fd := range fields {
		header = append(header, fd.Name)
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for offset := 0; ; offset += exportBatch {
		batch, err := r.Summaries(ctx, filters, exportBatch, offset)
		if err != nil {
			return err
		}

		for _, s := range batch {
			cells, err := r.exportRow(ctx, s, fields)
			if err != nil {
				return err
			}

			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(ExportSheet, cell, &cells); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}

		if len(batch) < exportBatch {
			break
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	r.logger.Info("documents exported", "rows", row-2, "fields", len(fields))
	return nil
}

func (r *repo) exportRow(ctx context.Context, s Summary, fields []categories.Field) ([]any, error) {
	cells := []any{
		s.Title,
		s.CategoryName,
		s.FolderLabel,
		s.DocumentDate.Format(fieldtype.DateLayout),
		string(s.ManagementStatus),
		string(s.BackupStatus),
		s.CreatedBy,
		s.Version,
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if len(fields) == 0 {
		return cells, nil
	}

	vals, err := r.values.Get(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("load values: %w", err)
	}

	for _, fd := range fields {
		v, ok := vals[fd.ID]
		if !ok {
			cells = append(cells, "")
			continue
		}
		cells = append(cells, v.String())
	}
	return cells, nil
}
