package storage

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// Provider selects the blob storage backend.
type Provider string

// Storage providers.
const (
	ProviderFilesystem Provider = "filesystem"
	ProviderGCS        Provider = "gcs"
)

// Config contains blob storage configuration.
type Config struct {
	Provider Provider `toml:"provider"`

	// BasePath is the root directory for filesystem storage.
	// Default: ".data/blobs"
	BasePath string `toml:"base_path"`

	// Bucket and CredentialsJSON configure the gcs provider. Empty credentials
	// fall back to application default credentials.
	Bucket          string `toml:"bucket"`
	CredentialsJSON string `toml:"credentials_json"`

	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64
}

// Env maps environment variable names for storage configuration.
type Env struct {
	Provider        string
	BasePath        string
	Bucket          string
	CredentialsJSON string
	MaxUploadSize   string
}

// MaxUploadSizeBytes returns the parsed upload limit. Valid after Finalize.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Bucket != "" {
		c.Bucket = overlay.Bucket
	}
	if overlay.CredentialsJSON != "" {
		c.CredentialsJSON = overlay.CredentialsJSON
	}
	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "100MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.Provider); env.Provider != "" && v != "" {
		c.Provider = Provider(v)
	}
	if v := os.Getenv(env.BasePath); env.BasePath != "" && v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(env.Bucket); env.Bucket != "" && v != "" {
		c.Bucket = v
	}
	if v := os.Getenv(env.CredentialsJSON); env.CredentialsJSON != "" && v != "" {
		c.CredentialsJSON = v
	}
	if v := os.Getenv(env.MaxUploadSize); env.MaxUploadSize != "" && v != "" {
		c.MaxUploadSize = v
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
	case ProviderGCS:
		if c.Bucket == "" {
			return fmt.Errorf("bucket required for gcs provider")
		}
	default:
		return fmt.Errorf("invalid storage provider: %s (must be filesystem or gcs)", c.Provider)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
