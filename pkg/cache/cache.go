// Package cache provides a keyed JSON cache for read-mostly lookups.
// Values are serialized with encoding/json so the memory and redis
// providers behave the same way.
package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/folio/pkg/lifecycle"
)

// System caches JSON-serializable values by key.
type System interface {
	// Get decodes the value at key into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value at key for the configured TTL.
	Set(ctx context.Context, key string, value any) error

	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// New creates the System selected by cfg.Provider.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "cache", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderRedis:
		return newRedis(cfg, logger), nil
	case ProviderMemory, "":
		return NewMemory(cfg.TTLDuration()), nil
	default:
		return nil, fmt.Errorf("unknown cache provider: %s", cfg.Provider)
	}
}
