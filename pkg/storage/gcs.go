package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/JaimeStill/folio/pkg/lifecycle"
)

type gcsStore struct {
	bucket  string
	options []option.ClientOption
	client  *gcs.Client
	logger  *slog.Logger
}

// NewGCS creates bucket-backed storage. The client is opened in Start.
func NewGCS(cfg *Config, logger *slog.Logger) (System, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	return &gcsStore{
		bucket:  cfg.Bucket,
		options: opts,
		logger:  logger.With("system", "storage", "provider", ProviderGCS),
	}, nil
}

func (g *gcsStore) Start(lc *lifecycle.Coordinator) error {
	g.logger.Info("starting storage system", "bucket", g.bucket)

	client, err := gcs.NewClient(lc.Context(), g.options...)
	if err != nil {
		return fmt.Errorf("create gcs client: %w", err)
	}
	g.client = client

	lc.OnStartup(func() {
		if _, err := client.Bucket(g.bucket).Attrs(lc.Context()); err != nil {
			g.logger.Error("gcs bucket not accessible", "bucket", g.bucket, "error", err)
			return
		}
		g.logger.Info("gcs bucket verified")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := client.Close(); err != nil {
			g.logger.Error("gcs client close failed", "error", err)
		}
	})

	return nil
}

func (g *gcsStore) Store(ctx context.Context, key string, data []byte) error {
	obj, err := g.object(key)
	if err != nil {
		return err
	}

	w := obj.NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object writer: %w", err)
	}
	return nil
}

func (g *gcsStore) Retrieve(ctx context.Context, key string) ([]byte, error) {
	obj, err := g.object(key)
	if err != nil {
		return nil, err
	}

	r, err := obj.NewReader(ctx)
	if err != nil {
		return nil, mapGCSError(err, "open object")
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}

func (g *gcsStore) Delete(ctx context.Context, key string) error {
	obj, err := g.object(key)
	if err != nil {
		return err
	}

	if err := obj.Delete(ctx); err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return mapGCSError(err, "delete object")
	}
	return nil
}

func (g *gcsStore) Validate(ctx context.Context, key string) (bool, error) {
	obj, err := g.object(key)
	if err != nil {
		return false, err
	}

	if _, err := obj.Attrs(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return false, nil
		}
		return false, mapGCSError(err, "stat object")
	}
	return true, nil
}

func (g *gcsStore) object(key string) (*gcs.ObjectHandle, error) {
	if g.client == nil {
		return nil, fmt.Errorf("gcs storage not started")
	}
	if key == "" || strings.HasPrefix(path.Clean(key), "..") || path.IsAbs(key) {
		return nil, ErrInvalidKey
	}
	return g.client.Bucket(g.bucket).Object(path.Clean(key)), nil
}

func mapGCSError(err error, op string) error {
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
