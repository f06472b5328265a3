package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider selects the cache backend.
type Provider string

// Cache providers.
const (
	ProviderMemory Provider = "memory"
	ProviderRedis  Provider = "redis"
)

// Config contains cache configuration.
type Config struct {
	Provider Provider `toml:"provider"`
	Address  string   `toml:"address"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	PoolSize int      `toml:"pool_size"`
	TTL      string   `toml:"ttl"`
}

// Env maps environment variable names for cache configuration.
type Env struct {
	Provider string
	Address  string
	Password string
	DB       string
	TTL      string
}

// TTLDuration parses TTL. Valid after Finalize.
func (c *Config) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Address != "" {
		c.Address = overlay.Address
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.DB != 0 {
		c.DB = overlay.DB
	}
	if overlay.PoolSize != 0 {
		c.PoolSize = overlay.PoolSize
	}
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderMemory
	}
	if c.Address == "" {
		c.Address = "localhost:6379"
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.TTL == "" {
		c.TTL = "10m"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.Provider); env.Provider != "" && v != "" {
		c.Provider = Provider(v)
	}
	if v := os.Getenv(env.Address); env.Address != "" && v != "" {
		c.Address = v
	}
	if v := os.Getenv(env.Password); env.Password != "" && v != "" {
		c.Password = v
	}
	if v := os.Getenv(env.DB); env.DB != "" && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DB = n
		}
	}
	if v := os.Getenv(env.TTL); env.TTL != "" && v != "" {
		c.TTL = v
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderMemory, ProviderRedis:
	default:
		return fmt.Errorf("invalid cache provider: %s (must be memory or redis)", c.Provider)
	}
	if d, err := time.ParseDuration(c.TTL); err != nil || d <= 0 {
		return fmt.Errorf("invalid ttl: %s", c.TTL)
	}
	return nil
}
