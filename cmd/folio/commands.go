package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/folio/internal/categories"
	"github.com/JaimeStill/folio/internal/documents"
	"github.com/JaimeStill/folio/pkg/pagination"
)

func seedCmd() *cobra.Command {
	var (
		file string
		only []string
		list bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load categories, folders and documents from a YAML seed file",
		Long: "Load registry data from a YAML seed file. Without --file the embedded " +
			"sample registry is used. Records that already exist are left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list {
				fmt.Fprintln(out, "Available seeders:")
				for _, s := range seeders {
					fmt.Fprintf(out, "  - %s: %s\n", s.Name(), s.Description())
				}
				return nil
			}

			data, err := loadSeedData(file)
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			created, err := runSeeders(cmd.Context(), a.domain, data, only)
			for _, s := range seeders {
				if n := created[s.Name()]; n > 0 {
					fmt.Fprintf(out, "%s: %d created\n", s.Name(), n)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "seed file (defaults to the embedded sample)")
	cmd.Flags().StringSliceVar(&only, "only", nil, "run only the named seeders")
	cmd.Flags().BoolVar(&list, "list", false, "list available seeders")
	return cmd
}

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Inspect document categories",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filters categories.Filters
			if status != "" {
				s := categories.Status(status)
				filters.Status = &s
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			all, err := allCategories(cmd.Context(), a.domain.Categories, filters)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tDESCRIPTION")
			for _, c := range all {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Status, c.Description)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status (active or obsolete)")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "fields <category-id>",
		Short: "Show a category's fields in display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id: %w", err)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.domain.Categories.Find(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n\n", c.Name, c.Status)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ORDER\tNAME\tTYPE\tREQUIRED\tMAX LENGTH\tID")
			for _, f := range c.Fields {
				maxLen := "-"
				if f.MaxLength != nil {
					maxLen = fmt.Sprint(*f.MaxLength)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\t%s\n", f.Order, f.Name, f.Type, f.Required, maxLen, f.ID)
			}
			return tw.Flush()
		},
	})

	return cmd
}

func exportCmd() *cobra.Command {
	var (
		output     string
		categoryID string
		folderID   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write documents to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filters documents.Filters
			if categoryID != "" {
				id, err := uuid.Parse(categoryID)
				if err != nil {
					return fmt.Errorf("invalid --category: %w", err)
				}
				filters.CategoryID = &id
			}
			if folderID != "" {
				id, err := uuid.Parse(folderID)
				if err != nil {
					return fmt.Errorf("invalid --folder: %w", err)
				}
				filters.FolderID = &id
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}

			if err := a.domain.Documents.Export(cmd.Context(), filters, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "documents.xlsx", "output file")
	cmd.Flags().StringVar(&categoryID, "category", "", "only documents of this category; adds its field columns")
	cmd.Flags().StringVar(&folderID, "folder", "", "only documents in this folder")
	return cmd
}

func allCategories(ctx context.Context, sys categories.System, filters categories.Filters) ([]categories.Category, error) {
	var all []categories.Category
	for page := 1; ; page++ {
		result, err := sys.List(ctx, pagination.PageRequest{Page: page, PageSize: 100}, filters)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Data...)
		if page >= result.TotalPages {
			return all, nil
		}
	}
}
