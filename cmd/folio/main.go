// Command folio is the registry's operator tool: it applies schema
// migrations, seeds reference data, and inspects or exports the registry
// without going through the HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/internal/api"
	"github.com/JaimeStill/folio/internal/config"
	"github.com/JaimeStill/folio/internal/infrastructure"
)

// operator is the identity recorded on rows written by the tool.
var operator = access.RequestContext{UserID: "folio-cli", Role: access.RoleAdmin}

func main() {
	root := &cobra.Command{
		Use:           "folio",
		Short:         "Operate the folio document registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(categoriesCmd())
	root.AddCommand(exportCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return config.Load()
}

// app is a started infrastructure plus the domain systems built on it.
type app struct {
	cfg    *config.Config
	infra  *infrastructure.Infrastructure
	domain *api.Domain
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := infra.Start(); err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		infra:  infra,
		domain: api.NewDomain(api.NewRuntime(cfg, infra)),
	}, nil
}

func (a *app) Close() error {
	return a.infra.Lifecycle.Shutdown(10 * time.Second)
}
