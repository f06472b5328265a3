package attachments_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/internal/attachments"
	"github.com/JaimeStill/folio/internal/dbtest"
	"github.com/JaimeStill/folio/pkg/storage"
)

var editor = access.RequestContext{UserID: "editor-1", Role: access.RoleEditor}

type fixture struct {
	db      *sql.DB
	dir     string
	storage storage.System
	sys     attachments.System
}

func newFixture(t *testing.T, maxUpload int64) *fixture {
	t.Helper()

	db := dbtest.Open(t)
	dir := t.TempDir()
	store, err := storage.New(&storage.Config{Provider: storage.ProviderFilesystem, BasePath: dir}, dbtest.Logger())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	return &fixture{
		db:      db,
		dir:     dir,
		storage: store,
		sys:     attachments.New(db, store, dbtest.Logger(), maxUpload),
	}
}

func (f *fixture) newDocument(t *testing.T) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	categoryID := uuid.Must(uuid.NewV7())
	folderID := uuid.Must(uuid.NewV7())
	docID := uuid.Must(uuid.NewV7())

	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO categories (id, name, description, status, created_at, updated_at) VALUES ($1, $2, '', 'active', $3, $3)`,
			[]any{categoryID, "Category " + categoryID.String(), now}},
		{`INSERT INTO folders (id, label, location, description, created_at, updated_at) VALUES ($1, $2, '', '', $3, $3)`,
			[]any{folderID, "Folder " + folderID.String(), now}},
		{`INSERT INTO documents (id, category_id, folder_id, created_by, title, document_date, management_status, backup_status, version, created_at, updated_at)
			VALUES ($1, $2, $3, 'u1', '', $4, 'pending', 'not_backed_up', 1, $4, $4)`,
			[]any{docID, categoryID, folderID, now}},
	}
	for _, s := range stmts {
		if _, err := f.db.ExecContext(ctx, s.q, s.args...); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return docID
}

func (f *fixture) blobCount(t *testing.T) int {
	t.Helper()
	n := 0
	filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func TestStore_RoundTrip(t *testing.T) {
	f := newFixture(t, 1<<20)
	ctx := context.Background()
	docID := f.newDocument(t)

	content := []byte("minutes of the quarterly audit")
	a, err := f.sys.Store(ctx, editor, docID, content, attachments.Meta{Filename: "audit notes.txt"})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if a.Filename != "audit_notes.txt" {
		t.Errorf("Filename = %q, want sanitized", a.Filename)
	}
	if a.ContentType != "text/plain; charset=utf-8" {
		t.Errorf("ContentType = %q, want detected text/plain", a.ContentType)
	}
	if a.SizeBytes != int64(len(content)) || a.PageCount != nil {
		t.Errorf("SizeBytes = %d, PageCount = %v", a.SizeBytes, a.PageCount)
	}

	list, err := f.sys.List(ctx, docID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("List() = %+v, want the stored attachment", list)
	}

	_, data, err := f.sys.Data(ctx, docID, a.ID)
	if err != nil {
		t.Fatalf("Data() error = %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("Data() = %q, want %q", data, content)
	}

	if err := f.sys.Delete(ctx, editor, docID, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ok, _ := f.storage.Validate(ctx, a.StorageKey); ok {
		t.Error("blob still present after Delete()")
	}
	if _, err := f.sys.Find(ctx, docID, a.ID); !errors.Is(err, attachments.ErrNotFound) {
		t.Errorf("Find() after delete error = %v, want ErrNotFound", err)
	}
}

func TestStore_Failures(t *testing.T) {
	f := newFixture(t, 16)
	ctx := context.Background()
	docID := f.newDocument(t)

	tests := []struct {
		name  string
		rc    access.RequestContext
		docID uuid.UUID
		data  []byte
		meta  attachments.Meta
		want  error
	}{
		{"too large", editor, docID, bytes.Repeat([]byte("x"), 17), attachments.Meta{Filename: "big.bin"}, attachments.ErrFileTooLarge},
		{"empty", editor, docID, nil, attachments.Meta{Filename: "empty.txt"}, attachments.ErrInvalidFile},
		{"no filename", editor, docID, []byte("abc"), attachments.Meta{}, attachments.ErrInvalidFile},
		{"no user", access.RequestContext{}, docID, []byte("abc"), attachments.Meta{Filename: "a.txt"}, access.ErrNoUser},
		{"unknown document", editor, uuid.New(), []byte("abc"), attachments.Meta{Filename: "a.txt"}, attachments.ErrDocumentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sys.Store(ctx, tt.rc, tt.docID, tt.data, tt.meta)
			if !errors.Is(err, tt.want) {
				t.Errorf("Store() error = %v, want %v", err, tt.want)
			}
		})
	}

	if n := f.blobCount(t); n != 0 {
		t.Errorf("%d blobs left behind by failed stores, want 0", n)
	}
}

func TestStore_UnreadablePDF(t *testing.T) {
	f := newFixture(t, 1<<20)
	docID := f.newDocument(t)

	a, err := f.sys.Store(context.Background(), editor, docID, []byte("%PDF-1.7 truncated"), attachments.Meta{Filename: "scan.pdf"})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if a.ContentType != "application/pdf" {
		t.Errorf("ContentType = %q, want application/pdf", a.ContentType)
	}
	if a.PageCount != nil {
		t.Errorf("PageCount = %d, want nil for unreadable pdf", *a.PageCount)
	}
}

func TestHandler_Upload(t *testing.T) {
	f := newFixture(t, 1<<20)
	docID := f.newDocument(t)

	guard := access.NewGuard(access.NewAuthorizer(), dbtest.Logger())
	h := attachments.NewHandler(f.sys, guard, dbtest.Logger())

	mux := http.NewServeMux()
	group := h.Routes()
	for _, r := range group.Routes {
		mux.HandleFunc(r.Method+" "+group.Prefix+r.Pattern, r.Handler)
	}
	handler := access.Identity()(mux)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "report.txt")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	part.Write([]byte("report body"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/documents/"+docID.String()+"/attachments", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(access.HeaderUserID, "u1")
	req.Header.Set(access.HeaderRole, "editor")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/documents/"+docID.String()+"/attachments", nil)
	req.Header.Set(access.HeaderUserID, "u2")
	req.Header.Set(access.HeaderRole, "viewer")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("list status = %d, want 200", rec.Code)
	}
}
