package attachments

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/pkg/repository"
	"github.com/JaimeStill/folio/pkg/storage"
)

type repo struct {
	db            *sql.DB
	storage       storage.System
	logger        *slog.Logger
	maxUploadSize int64
}

// New creates an attachment repository with database and blob storage integration.
func New(db *sql.DB, storage storage.System, logger *slog.Logger, maxUploadSize int64) System {
	return &repo{
		db:            db,
		storage:       storage,
		logger:        logger.With("system", "attachments"),
		maxUploadSize: maxUploadSize,
	}
}

func (r *repo) MaxUploadSize() int64 {
	return r.maxUploadSize
}

func (r *repo) List(ctx context.Context, documentID uuid.UUID) ([]Attachment, error) {
	q := `SELECT ` + columns + ` FROM attachments WHERE document_id = $1 ORDER BY created_at, id`

	items, err := repository.QueryMany(ctx, r.db, q, []any{documentID}, scanAttachment)
	if err != nil {
		return nil, fmt.Errorf("query attachments: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, documentID, id uuid.UUID) (*Attachment, error) {
	q := `SELECT ` + columns + ` FROM attachments WHERE id = $1 AND document_id = $2`

	a, err := repository.QueryOne(ctx, r.db, q, []any{id, documentID}, scanAttachment)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Data(ctx context.Context, documentID, id uuid.UUID) (*Attachment, []byte, error) {
	a, err := r.Find(ctx, documentID, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := r.storage.Retrieve(ctx, a.StorageKey)
	if err != nil {
		r.logger.Error("retrieve attachment failed", "id", id, "storage_key", a.StorageKey, "error", err)
		return nil, nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return a, data, nil
}

func (r *repo) Store(ctx context.Context, rc access.RequestContext, documentID uuid.UUID, data []byte, meta Meta) (*Attachment, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidFile)
	}
	if r.maxUploadSize > 0 && int64(len(data)) > r.maxUploadSize {
		return nil, ErrFileTooLarge
	}

	filename := sanitizeFilename(meta.Filename)
	if filename == "" || filename == "." {
		return nil, fmt.Errorf("%w: filename is required", ErrInvalidFile)
	}

	contentType := detectContentType(meta.ContentType, data)

	var pageCount *int
	if contentType == "application/pdf" {
		pc, err := extractPDFPageCount(data)
		if err != nil {
			r.logger.Warn("failed to extract pdf page count", "document_id", documentID, "filename", filename, "error", err)
		} else {
			pageCount = pc
		}
	}

	id := uuid.Must(uuid.NewV7())
	storageKey := buildStorageKey(documentID, id, filename)

	if err := r.storage.Store(ctx, storageKey, data); err != nil {
		r.logger.Error("store attachment failed", "document_id", documentID, "storage_key", storageKey, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	q := `INSERT INTO attachments (id, document_id, filename, content_type, size_bytes, page_count, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + columns

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Attachment, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			id, documentID, filename, contentType, int64(len(data)), pageCount, storageKey, time.Now().UTC(),
		}, scanAttachment)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, storageKey); delErr != nil {
			r.logger.Error("cleanup failed after db error", "storage_key", storageKey, "error", delErr)
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("attachment stored",
		"id", a.ID,
		"document_id", documentID,
		"filename", a.Filename,
		"size_bytes", a.SizeBytes,
		"user", rc.UserID,
	)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, rc access.RequestContext, documentID, id uuid.UUID) error {
	if err := rc.Validate(); err != nil {
		return err
	}

	a, err := r.Find(ctx, documentID, id)
	if err != nil {
		return err
	}

	q := `DELETE FROM attachments WHERE id = $1`
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.Purge(ctx, []Attachment{*a})
	r.logger.Info("attachment deleted", "id", id, "document_id", documentID, "user", rc.UserID)
	return nil
}

func (r *repo) Purge(ctx context.Context, atts []Attachment) {
	for _, a := range atts {
		if err := r.storage.Delete(ctx, a.StorageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
			r.logger.Error("storage cleanup failed", "storage_key", a.StorageKey, "error", err)
		}
	}
}

func buildStorageKey(documentID, id uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/attachments/%s/%s", documentID, id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}

func detectContentType(header string, data []byte) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func extractPDFPageCount(data []byte) (*int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	return &count, nil
}
