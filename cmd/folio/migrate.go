package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/folio/migrations"
	"github.com/JaimeStill/folio/pkg/database"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := database.Migrate(&cfg.Database, migrations.FS); err != nil {
				return err
			}
			return printVersion(cmd, &cfg.Database)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := database.MigrateDown(&cfg.Database, migrations.FS, steps); err != nil {
				return err
			}
			return printVersion(cmd, &cfg.Database)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return printVersion(cmd, &cfg.Database)
		},
	})

	return cmd
}

func printVersion(cmd *cobra.Command, cfg *database.Config) error {
	version, dirty, err := database.MigrationVersion(cfg, migrations.FS)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case version == 0:
		fmt.Fprintln(out, "schema: no migrations applied")
	case dirty:
		fmt.Fprintf(out, "schema: version %d (dirty)\n", version)
	default:
		fmt.Fprintf(out, "schema: version %d\n", version)
	}
	return nil
}
