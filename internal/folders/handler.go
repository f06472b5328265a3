package folders

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/pkg/apperr"
	"github.com/JaimeStill/folio/pkg/handlers"
	"github.com/JaimeStill/folio/pkg/pagination"
	"github.com/JaimeStill/folio/pkg/routes"
)

var errInvalidID = apperr.Validation("invalid id")

// Handler provides HTTP endpoints for folder operations.
type Handler struct {
	sys        System
	guard      *access.Guard
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a folder handler.
func NewHandler(sys System, guard *access.Guard, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		guard:      guard,
		logger:     logger.With("handler", "folders"),
		pagination: pagination,
	}
}

// Routes returns the folder endpoint route group.
func (h *Handler) Routes() routes.Group {
	read := func(fn http.HandlerFunc) http.HandlerFunc { return h.guard.Require(access.DocumentsRead, fn) }
	write := func(fn http.HandlerFunc) http.HandlerFunc { return h.guard.Require(access.FoldersWrite, fn) }

	return routes.Group{
		Prefix:      "/folders",
		Tags:        []string{"Folders"},
		Description: "Physical folders holding filed documents",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: read(h.List), OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: read(h.Find), OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "/search", Handler: read(h.Search), OpenAPI: Spec.Search},
			{Method: "POST", Pattern: "", Handler: write(h.Create), OpenAPI: Spec.Create},
			{Method: "PUT", Pattern: "/{id}", Handler: write(h.Update), OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: write(h.Delete), OpenAPI: Spec.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	f, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, f)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var page pagination.PageRequest
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.List(r.Context(), page, FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rc, _ := access.FromContext(r.Context())
	f, err := h.sys.Create(r.Context(), rc, cmd)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, f)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rc, _ := access.FromContext(r.Context())
	f, err := h.sys.Update(r.Context(), rc, id, cmd)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, f)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	rc, _ := access.FromContext(r.Context())
	if err := h.sys.Delete(r.Context(), rc, id); err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
