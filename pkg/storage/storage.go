// Package storage provides blob storage for document attachments.
// The filesystem provider suits development and single-node deployments;
// the gcs provider stores blobs in a Google Cloud Storage bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/folio/pkg/lifecycle"
)

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates the key is empty or attempts path traversal.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// System stores and retrieves binary blobs by key.
type System interface {
	// Store saves data at key, overwriting existing content.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data at key or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// New creates the System selected by cfg.Provider.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Provider {
	case ProviderGCS:
		return NewGCS(cfg, logger)
	case ProviderFilesystem, "":
		return NewFilesystem(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}
