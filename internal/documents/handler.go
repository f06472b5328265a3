package documents

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/internal/attachments"
	"github.com/JaimeStill/folio/internal/values"
	"github.com/JaimeStill/folio/pkg/apperr"
	"github.com/JaimeStill/folio/pkg/handlers"
	"github.com/JaimeStill/folio/pkg/pagination"
	"github.com/JaimeStill/folio/pkg/routes"
	"github.com/JaimeStill/folio/pkg/validate"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	errInvalidID   = apperr.Validation("invalid id")
	errInvalidBody = apperr.Validation("invalid request body")
)

// Handler provides HTTP endpoints for document operations.
type Handler struct {
	sys           System
	guard         *access.Guard
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates a document handler. maxUploadSize bounds the file
// accepted by a multipart create.
func NewHandler(sys System, guard *access.Guard, logger *slog.Logger, pagination pagination.Config, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		guard:         guard,
		logger:        logger.With("handler", "documents"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the document endpoint route group.
func (h *Handler) Routes() routes.Group {
	read := func(fn http.HandlerFunc) http.HandlerFunc { return h.guard.Require(access.DocumentsRead, fn) }
	write := func(fn http.HandlerFunc) http.HandlerFunc { return h.guard.Require(access.DocumentsWrite, fn) }

	return routes.Group{
		Prefix:      "/documents",
		Tags:        []string{"Documents"},
		Description: "Registry documents with category-defined fields",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: read(h.List), OpenAPI: Spec.List},
			{Method: "POST", Pattern: "/search", Handler: read(h.Search), OpenAPI: Spec.Search},
			{Method: "GET", Pattern: "/export", Handler: read(h.Export), OpenAPI: Spec.Export},
			{Method: "GET", Pattern: "/{id}", Handler: read(h.Find), OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "", Handler: write(h.Create), OpenAPI: Spec.Create},
			{Method: "PATCH", Pattern: "/{id}", Handler: write(h.Update), OpenAPI: Spec.Update},
			{Method: "POST", Pattern: "/{id}/status", Handler: write(h.SetStatus), OpenAPI: Spec.SetStatus},
			{Method: "POST", Pattern: "/{id}/backup", Handler: write(h.SetBackup), OpenAPI: Spec.SetBackup},
			{Method: "GET", Pattern: "/{id}/values", Handler: read(h.Values), OpenAPI: Spec.Values},
			{Method: "PUT", Pattern: "/{id}/values", Handler: write(h.SetValues), OpenAPI: Spec.SetValues},
			{Method: "DELETE", Pattern: "/{id}", Handler: write(h.Delete), OpenAPI: Spec.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

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

	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := h.sys.Export(r.Context(), filters, &buf); err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", `attachment; filename="documents.xlsx"`)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	a, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// Create accepts either a JSON CreateCommand or a multipart form carrying
// the command as JSON in the "document" part and an optional "file" part.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand

	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, attachments.ErrFileTooLarge)
			return
		}

		if err := decode(strings.NewReader(r.FormValue("document")), &cmd, false); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}

		data, meta, err := attachments.ReadUpload(r, "file", h.maxUploadSize)
		switch {
		case errors.Is(err, attachments.ErrNoFile):
		case err != nil:
			handlers.RespondError(w, h.logger, attachments.MapHTTPStatus(err), err)
			return
		default:
			cmd.File = &File{Data: data, Meta: meta}
		}
	} else if err := decode(r.Body, &cmd, false); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rc, _ := access.FromContext(r.Context())
	a, err := h.sys.Create(r.Context(), rc, cmd)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, a)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd UpdateCommand
	if err := decode(r.Body, &cmd, true); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rc, _ := access.FromContext(r.Context())
	a, err := h.sys.Update(r.Context(), rc, id, cmd)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, cmd, ok := h.statusRequest(w, r)
	if !ok {
		return
	}

	rc, _ := access.FromContext(r.Context())
	a, err := h.sys.ChangeManagementStatus(r.Context(), rc, id, ManagementStatus(cmd.Status))
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

func (h *Handler) SetBackup(w http.ResponseWriter, r *http.Request) {
	id, cmd, ok := h.statusRequest(w, r)
	if !ok {
		return
	}

	rc, _ := access.FromContext(r.Context())
	a, err := h.sys.ChangeBackupStatus(r.Context(), rc, id, BackupStatus(cmd.Status))
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

func (h *Handler) Values(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	a, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a.Fields)
}

// SetValues patches field values only. It bumps the document version like
// any other update.
func (h *Handler) SetValues(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var in values.Input
	if err := decode(r.Body, &in, false); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd UpdateCommand
	cmd.Values = in
	if v := r.URL.Query().Get("expected_version"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, apperr.Fields(apperr.Field("expected_version", errInvalidBody)))
			return
		}
		cmd.ExpectedVersion = &n
	}

	rc, _ := access.FromContext(r.Context())
	a, err := h.sys.Update(r.Context(), rc, id, cmd)
	if err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a.Fields)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rc, _ := access.FromContext(r.Context())
	if err := h.sys.Delete(r.Context(), rc, id); err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) statusRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, StatusCommand, bool) {
	var cmd StatusCommand

	id, ok := h.pathID(w, r)
	if !ok {
		return id, cmd, false
	}

	if err := decode(r.Body, &cmd, true); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return id, cmd, false
	}

	if err := validate.Struct(cmd); err != nil {
		handlers.RespondAppError(w, h.logger, err)
		return id, cmd, false
	}

	return id, cmd, true
}

// decode reads JSON keeping numbers as json.Number so field values are
// coerced without float rounding. strict rejects members the target does
// not declare.
func decode(r io.Reader, v any, strict bool) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}
