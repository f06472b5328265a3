package api

import (
	"net/http"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/internal/attachments"
	"github.com/JaimeStill/folio/internal/categories"
	"github.com/JaimeStill/folio/internal/config"
	"github.com/JaimeStill/folio/internal/documents"
	"github.com/JaimeStill/folio/internal/folders"
	"github.com/JaimeStill/folio/pkg/openapi"
	"github.com/JaimeStill/folio/pkg/routes"
	"github.com/JaimeStill/folio/web/scalar"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	guard := access.NewGuard(runtime.Authorizer, runtime.Logger)

	categoriesHandler := categories.NewHandler(domain.Categories, guard, runtime.Logger, runtime.Pagination)
	foldersHandler := folders.NewHandler(domain.Folders, guard, runtime.Logger, runtime.Pagination)
	documentsHandler := documents.NewHandler(domain.Documents, guard, runtime.Logger, runtime.Pagination, runtime.MaxUploadSize)
	attachmentsHandler := attachments.NewHandler(domain.Attachments, guard, runtime.Logger)

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		categoriesHandler.Routes(),
		foldersHandler.Routes(),
		documentsHandler.Routes(),
		attachmentsHandler.Routes(),
		scalar.Routes(cfg.API.OpenAPI.Title, "openapi.json"),
	)
}
