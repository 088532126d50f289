// Package config loads the iconforge configuration file.
//
// Configuration is an explicit, immutable value handed to the pipeline at job
// start. Nothing in this package (or anywhere else) keeps process-wide
// mutable packing state; tests and concurrent invocations can each carry
// their own Config.
//
// The file format is TOML:
//
//	columns = 20
//	sizes = [16, 32, 64]
//	supersample = 4
//	output = "assets/ui"
//	workers = 0          # 0 = one per CPU
//
//	[cache]
//	backend = "file"     # file | redis | none
//	redis_addr = "localhost:6379"
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/iconforge/iconforge/pkg/errors"
)

// DefaultFile is the config filename probed in the working directory when no
// explicit path is given.
const DefaultFile = "iconforge.toml"

// Cache backend names.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// CacheConfig selects the icon tile cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`
}

// Config holds all packing options read from the config file.
type Config struct {
	Columns     int    `toml:"columns"`
	Sizes       []int  `toml:"sizes"`
	Supersample int    `toml:"supersample"`
	Output      string `toml:"output"`
	Workers     int    `toml:"workers"`

	Cache CacheConfig `toml:"cache"`
}

// Default returns the built-in configuration, matching the legacy generator's
// grid (20 columns) and size ladder.
func Default() Config {
	return Config{
		Columns:     20,
		Sizes:       []int{16, 32, 64},
		Supersample: 4,
		Output:      "atlas",
		Cache:       CacheConfig{Backend: CacheFile, RedisAddr: "localhost:6379"},
	}
}

// Load reads the TOML config at path, layered over Default.
//
// With an empty path, DefaultFile is probed and silently skipped when absent.
// An explicit path that doesn't exist is a NOT_FOUND error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read config file %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a packable grid.
func (c Config) Validate() error {
	if c.Columns < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "columns must be >= 1, got %d", c.Columns)
	}
	if c.Supersample < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "supersample must be >= 1, got %d", c.Supersample)
	}
	if len(c.Sizes) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one icon size is required")
	}
	for _, s := range c.Sizes {
		if s < 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "icon sizes must be >= 1, got %d", s)
		}
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q (must be file, redis, or none)", c.Cache.Backend)
	}
	return nil
}
