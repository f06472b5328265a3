package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/folio/pkg/lifecycle"
	"github.com/JaimeStill/folio/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFilesystem(t *testing.T) (storage.System, string) {
	t.Helper()
	dir := t.TempDir()
	sys, err := storage.New(&storage.Config{Provider: storage.ProviderFilesystem, BasePath: dir}, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sys, dir
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr bool
	}{
		{"filesystem", storage.Config{Provider: storage.ProviderFilesystem, BasePath: t.TempDir()}, false},
		{"default provider", storage.Config{BasePath: t.TempDir()}, false},
		{"filesystem without base path", storage.Config{Provider: storage.ProviderFilesystem}, true},
		{"gcs without bucket", storage.Config{Provider: storage.ProviderGCS}, true},
		{"gcs deferred client", storage.Config{Provider: storage.ProviderGCS, Bucket: "folio-attachments"}, false},
		{"unknown", storage.Config{Provider: "s3"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.New(&tt.cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilesystem_StartCreatesDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "blobs")
	sys, err := storage.New(&storage.Config{BasePath: target}, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()

	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		t.Errorf("base directory not created: %v", err)
	}
}

func TestFilesystem_RoundTrip(t *testing.T) {
	sys, dir := newFilesystem(t)
	ctx := context.Background()
	key := "documents/0191/attachments/0192/report.pdf"

	if err := sys.Store(ctx, key, []byte("first")); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := sys.Store(ctx, key, []byte("second")); err != nil {
		t.Fatalf("Store() overwrite error = %v", err)
	}

	data, err := sys.Retrieve(ctx, key)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if string(data) != "second" {
		t.Errorf("data = %q, want second", data)
	}

	exists, err := sys.Validate(ctx, key)
	if err != nil || !exists {
		t.Errorf("Validate() = %v, %v; want true", exists, err)
	}

	if err := sys.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := sys.Delete(ctx, key); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}

	if _, err := sys.Retrieve(ctx, key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() after delete error = %v, want ErrNotFound", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "documents")); !os.IsNotExist(err) {
		t.Error("empty parent directories should be pruned")
	}
}

func TestFilesystem_InvalidKeys(t *testing.T) {
	sys, _ := newFilesystem(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape.txt", "a/../../escape.txt", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			if err := sys.Store(ctx, key, []byte("x")); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) error = %v, want ErrInvalidKey", key, err)
			}
			if _, err := sys.Retrieve(ctx, key); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Retrieve(%q) error = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestConfig_Finalize(t *testing.T) {
	os.Setenv("TEST_STORAGE_MAX_UPLOAD", "5MB")
	defer os.Unsetenv("TEST_STORAGE_MAX_UPLOAD")

	cfg := &storage.Config{}
	if err := cfg.Finalize(&storage.Env{MaxUploadSize: "TEST_STORAGE_MAX_UPLOAD"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Provider != storage.ProviderFilesystem {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.MaxUploadSizeBytes() != 5_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 5000000", cfg.MaxUploadSizeBytes())
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"gcs without bucket", storage.Config{Provider: storage.ProviderGCS}},
		{"bad size", storage.Config{MaxUploadSize: "lots"}},
		{"unknown provider", storage.Config{Provider: "ftp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}
