// Package config loads and saves the skillgraph configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/skillgraph/config.toml
// (falling back to ~/.config). Every section is optional; missing keys keep
// their defaults.
//
//	[view]
//	theme = "auto"
//	category = "cloud"
//
//	[physics]
//	cooldown_ticks = 100
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/skillgraph/pkg/engine"
	"github.com/matzehuels/skillgraph/pkg/errors"
	"github.com/matzehuels/skillgraph/pkg/layout"
	"github.com/matzehuels/skillgraph/pkg/physics"
	"github.com/matzehuels/skillgraph/pkg/render"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds skillgraph configuration.
type Config struct {
	Layout  layout.Config  `toml:"layout"`
	Physics physics.Config `toml:"physics"`
	Render  render.Config  `toml:"render"`
	Engine  engine.Config  `toml:"engine"`
	View    ViewConfig     `toml:"view"`
	Cache   CacheConfig    `toml:"cache"`
}

// ViewConfig controls what is shown at startup.
type ViewConfig struct {
	Theme    string  `toml:"theme"`    // "auto", "dark", "light"
	Category string  `toml:"category"` // empty shows everything
	Width    float64 `toml:"width"`    // headless render width
	Height   float64 `toml:"height"`   // headless render height
}

// CacheConfig controls the render artifact cache.
type CacheConfig struct {
	Backend  string        `toml:"backend"` // "file", "redis", "none"
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Layout:  layout.DefaultConfig(),
		Physics: physics.DefaultConfig(),
		Render:  render.DefaultConfig(),
		Engine:  engine.DefaultConfig(),
		View:    ViewConfig{Theme: "auto", Width: 1200, Height: 800},
		Cache:   CacheConfig{Backend: BackendFile, TTL: 7 * 24 * time.Hour},
	}
}

// Dir returns the skillgraph config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "skillgraph")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path, or the default path when path is
// empty. A missing file yields the defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path, or the default path when path is empty.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
// It returns the path it checked.
func EnsureExists(path string) (string, error) {
	if path == "" {
		path = Path()
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return path, Save(path, Default())
}

// Encode returns cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks values a user is likely to get wrong. Numeric tuning
// values are not range-checked beyond what SetDefaults repairs.
func (c *Config) Validate() error {
	if err := errors.ValidateTheme(c.View.Theme); err != nil {
		return err
	}
	if _, err := errors.ValidateCategory(c.View.Category); err != nil {
		return err
	}
	if err := errors.ValidateViewport(c.View.Width, c.View.Height); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if err := errors.ValidateRedisURL(c.Cache.RedisURL); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}

func (c *Config) setDefaults() {
	c.Layout.SetDefaults()
	c.Physics.SetDefaults()
	c.Render.SetDefaults()
	c.Engine.SetDefaults()
	if c.View.Theme == "" {
		c.View.Theme = "auto"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendFile
	}
}
