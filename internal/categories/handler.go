package categories

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/internal/fieldtype"
	"github.com/JaimeStill/folio/pkg/apperr"
	"github.com/JaimeStill/folio/pkg/handlers"
	"github.com/JaimeStill/folio/pkg/pagination"
	"github.com/JaimeStill/folio/pkg/routes"
)

var errInvalidID = apperr.Validation("invalid id")

// TypeInfo describes a supported field type.
type TypeInfo struct {
	Type      fieldtype.Type `json:"type"`
	Slot      fieldtype.Slot `json:"slot"`
	SlotLimit int            `json:"slot_limit,omitempty"`
}

// Handler provides HTTP endpoints for category schemas.
type Handler struct {
	sys        System
	guard      *access.Guard
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a category handler. Mutations require schema:manage.
func NewHandler(sys System, guard *access.Guard, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		guard:      guard,
		logger:     logger.With("handler", "categories"),
		pagination: pagination,
	}
}

// Routes returns the category endpoint route group.
func (h *Handler) Routes() routes.Group {
	read := func(fn http.HandlerFunc) http.HandlerFunc { return h.guard.Require(access.DocumentsRead, fn) }
	manage := func(fn http.HandlerFunc) http.HandlerFunc { return h.guard.Require(access.SchemaManage, fn) }

	return routes.Group{
		Prefix:      "/categories",
		Tags:        []string{"Categories"},
		Description: "Document categories and their field schemas",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: read(h.List), OpenAPI: Spec.List},
			{Method: "POST", Pattern: "/search", Handler: read(h.Search), OpenAPI: Spec.Search},
			{Method: "GET", Pattern: "/types", Handler: read(h.Types), OpenAPI: Spec.Types},
			{Method: "GET", Pattern: "/{id}", Handler: read(h.Find), OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "", Handler: manage(h.Create), OpenAPI: Spec.Create},
			{Method: "PUT", Pattern: "/{id}", Handler: manage(h.Update), OpenAPI: Spec.Update},
			{Method: "POST", Pattern: "/{id}/rename", Handler: manage(h.Rename), OpenAPI: Spec.Rename},
			{Method: "POST", Pattern: "/{id}/retire", Handler: manage(h.Retire), OpenAPI: Spec.Retire},
			{Method: "POST", Pattern: "/{id}/reactivate", Handler: manage(h.Reactivate), OpenAPI: Spec.Reactivate},
			{Method: "GET", Pattern: "/{id}/fields", Handler: read(h.Fields), OpenAPI: Spec.Fields},
			{Method: "POST", Pattern: "/{id}/fields", Handler: manage(h.AddField), OpenAPI: Spec.AddField},
			{Method: "PUT", Pattern: "/{id}/fields/{fieldId}", Handler: manage(h.UpdateField), OpenAPI: Spec.UpdateField},
			{Method: "DELETE", Pattern: "/{id}/fields/{fieldId}", Handler: manage(h.RemoveField), OpenAPI: Spec.RemoveField},
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

func (h *Handler) Types(w http.ResponseWriter, r *http.Request) {
	types := fieldtype.Types()
	info := make([]TypeInfo, len(types))
	for i, t := range types {
		slot, _ := fieldtype.SlotFor(t)
		info[i] = TypeInfo{Type: t, Slot: slot, SlotLimit: t.SlotLimit()}
	}
	handlers.RespondJSON(w, http.StatusOK, info)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rc, _ := access.FromContext(r.Context())
	c, err := h.sys.Create(r.Context(), rc, cmd)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rc, _ := access.FromContext(r.Context())
	c, err := h.sys.Update(r.Context(), rc, id, cmd)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}

func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var cmd RenameCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rc, _ := access.FromContext(r.Context())
	c, err := h.sys.Rename(r.Context(), rc, id, cmd.Name)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}

func (h *Handler) Retire(w http.ResponseWriter, r *http.Request) {
	h.status(w, r, h.sys.Retire)
}

func (h *Handler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.status(w, r, h.sys.Reactivate)
}

func (h *Handler) Fields(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	fields, err := h.sys.Fields(r.Context(), id)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fields)
}

func (h *Handler) AddField(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var cmd AddFieldCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rc, _ := access.FromContext(r.Context())
	f, err := h.sys.AddField(r.Context(), rc, id, cmd)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, f)
}

func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	fieldID, ok := h.pathID(w, r, "fieldId")
	if !ok {
		return
	}

	var cmd UpdateFieldCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rc, _ := access.FromContext(r.Context())
	f, err := h.sys.UpdateField(r.Context(), rc, id, fieldID, cmd)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, f)
}

func (h *Handler) RemoveField(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	fieldID, ok := h.pathID(w, r, "fieldId")
	if !ok {
		return
	}

	rc, _ := access.FromContext(r.Context())
	if err := h.sys.RemoveField(r.Context(), rc, id, fieldID); err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type statusFunc func(ctx context.Context, rc access.RequestContext, id uuid.UUID) (*Category, error)

func (h *Handler) status(w http.ResponseWriter, r *http.Request, fn statusFunc) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	rc, _ := access.FromContext(r.Context())
	c, err := fn(r.Context(), rc, id)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
