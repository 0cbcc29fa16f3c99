package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/skillgraph/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.View.Theme != "auto" {
		t.Errorf("theme = %q, want auto", cfg.View.Theme)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Physics.CooldownTicks != 100 {
		t.Errorf("cooldown = %d, want 100", cfg.Physics.CooldownTicks)
	}
	if cfg.Engine.SettleDelay != time.Second {
		t.Errorf("settle delay = %v, want 1s", cfg.Engine.SettleDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDirUsesXDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	if got, want := Dir(), filepath.Join(tmp, "skillgraph"); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
	if got, want := Path(), filepath.Join(tmp, "skillgraph", "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoadMissingDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("backend = %q, want defaults", cfg.Cache.Backend)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load missing = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[view]
theme = "dark"
category = "cloud"

[physics]
cooldown_ticks = 40
disable_crossing = true

[engine]
settle_delay = "250ms"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.View.Theme != "dark" || cfg.View.Category != "cloud" {
		t.Errorf("view = %+v", cfg.View)
	}
	if cfg.Physics.CooldownTicks != 40 || !cfg.Physics.DisableCrossing {
		t.Errorf("physics = %+v", cfg.Physics)
	}
	if cfg.Engine.SettleDelay != 250*time.Millisecond {
		t.Errorf("settle delay = %v, want 250ms", cfg.Engine.SettleDelay)
	}
	// Untouched sections keep their defaults.
	if cfg.Physics.LinkStrength != Default().Physics.LinkStrength {
		t.Errorf("link strength = %v, want default", cfg.Physics.LinkStrength)
	}
	if cfg.Engine.ResizeDebounce != 100*time.Millisecond {
		t.Errorf("resize debounce = %v, want default", cfg.Engine.ResizeDebounce)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"malformed", "[view\ntheme=", errors.ErrCodeInvalidConfig},
		{"bad theme", "[view]\ntheme = \"sepia\"", errors.ErrCodeInvalidTheme},
		{"bad category", "[view]\ncategory = \"cooking\"", errors.ErrCodeInvalidCategory},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
		{"redis without url", "[cache]\nbackend = \"redis\"", errors.ErrCodeInvalidInput},
		{"bad viewport", "[view]\nwidth = -5.0", errors.ErrCodeInvalidViewport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.View.Theme = "light"
	cfg.Cache.Backend = BackendRedis
	cfg.Cache.RedisURL = "redis://localhost:6379/2"
	cfg.Physics.MaxCrossingPairs = 500

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEnsureExists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := EnsureExists("")
	if err != nil {
		t.Fatalf("EnsureExists: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not created: %v", err)
	}

	// An existing file is left alone.
	if err := os.WriteFile(path, []byte("[view]\ntheme = \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureExists(""); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.View.Theme != "dark" {
		t.Errorf("EnsureExists overwrote existing config")
	}
}

func TestEncode(t *testing.T) {
	data, err := Encode(Default())
	if err != nil {
		t.Fatal(err)
	}
	for _, section := range []string{"[layout]", "[physics]", "[render]", "[engine]", "[view]", "[cache]"} {
		if !strings.Contains(string(data), section) {
			t.Errorf("encoded config missing %s", section)
		}
	}
}
