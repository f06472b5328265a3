package attachments

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/pkg/apperr"
	"github.com/JaimeStill/folio/pkg/handlers"
	"github.com/JaimeStill/folio/pkg/routes"
)

var errInvalidID = apperr.Validation("invalid id")

// Handler provides HTTP endpoints for document attachments.
type Handler struct {
	sys    System
	guard  *access.Guard
	logger *slog.Logger
}

// NewHandler creates an attachment handler.
func NewHandler(sys System, guard *access.Guard, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		guard:  guard,
		logger: logger.With("handler", "attachments"),
	}
}

// Routes returns the attachment endpoint route group.
func (h *Handler) Routes() routes.Group {
	read := func(fn http.HandlerFunc) http.HandlerFunc { return h.guard.Require(access.DocumentsRead, fn) }
	write := func(fn http.HandlerFunc) http.HandlerFunc { return h.guard.Require(access.DocumentsWrite, fn) }

	return routes.Group{
		Prefix:      "/documents/{id}/attachments",
		Tags:        []string{"Attachments"},
		Description: "Files attached to documents",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: read(h.List), OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: write(h.Upload), OpenAPI: Spec.Upload},
			{Method: "GET", Pattern: "/{attachmentId}", Handler: read(h.Find), OpenAPI: Spec.Find},
			{Method: "GET", Pattern: "/{attachmentId}/data", Handler: read(h.Download), OpenAPI: Spec.Download},
			{Method: "DELETE", Pattern: "/{attachmentId}", Handler: write(h.Delete), OpenAPI: Spec.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	documentID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.sys.List(r.Context(), documentID)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	documentID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "attachmentId")
	if !ok {
		return
	}

	a, err := h.sys.Find(r.Context(), documentID, id)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	documentID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.sys.MaxUploadSize()); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	data, meta, err := ReadUpload(r, "file", h.sys.MaxUploadSize())
	if err != nil {
		if err == ErrNoFile {
			err = fmt.Errorf("%w: %v", ErrInvalidFile, err)
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	rc, _ := access.FromContext(r.Context())
	a, err := h.sys.Store(r.Context(), rc, documentID, data, meta)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, a)
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	documentID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "attachmentId")
	if !ok {
		return
	}

	a, data, err := h.sys.Data(r.Context(), documentID, id)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	documentID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "attachmentId")
	if !ok {
		return
	}

	rc, _ := access.FromContext(r.Context())
	if err := h.sys.Delete(r.Context(), rc, documentID, id); err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
