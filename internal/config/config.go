// Package config loads wikiview settings from defaults, an optional YAML
// file and WIKIVIEW_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kyaoi/wikiview/internal/logging"
	"github.com/kyaoi/wikiview/internal/wiki"
)

const envPrefix = "WIKIVIEW_"

// Config holds the application configuration.
type Config struct {
	ContentDir   string        `koanf:"content_dir"`
	Watch        bool          `koanf:"watch"`
	StartPage    string        `koanf:"start_page"`
	Theme        string        `koanf:"theme"`
	CopyFeedback time.Duration `koanf:"copy_feedback"`
	NarrowWidth  int           `koanf:"narrow_width"`
	SidebarWidth int           `koanf:"sidebar_width"`
	Clipboard    string        `koanf:"clipboard"`
	PrefsPath    string        `koanf:"prefs_path"`
	LogFile      string        `koanf:"log_file"`
	LogLevel     string        `koanf:"log_level"`
}

// Dir returns the directory holding the config, preference and log files.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "wikiview")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".wikiview")
	}
	return ".wikiview"
}

// DefaultPath is the config file read when --config is not given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Watch:        true,
		StartPage:    wiki.PageHome.Slug(),
		Theme:        wiki.ThemeDark.String(),
		CopyFeedback: 2 * time.Second,
		NarrowWidth:  110,
		SidebarWidth: 28,
		Clipboard:    "auto",
		PrefsPath:    filepath.Join(dir, "prefs.yaml"),
		LogFile:      "",
		LogLevel:     "info",
	}
}

// Load reads configuration from path, then overlays environment variable
// overrides (WIKIVIEW_CONTENT_DIR -> content_dir, ...). A missing file is not
// an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

var validClipboardModes = map[string]bool{
	"auto":   true,
	"system": true,
	"osc52":  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if _, err := wiki.ParsePage(c.StartPage); err != nil {
		return fmt.Errorf("start_page: %w", err)
	}
	if _, err := wiki.ParseTheme(c.Theme); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	if c.CopyFeedback <= 0 {
		return fmt.Errorf("copy_feedback must be positive")
	}
	if c.NarrowWidth < 0 {
		return fmt.Errorf("narrow_width must be non-negative")
	}
	if c.SidebarWidth < 16 {
		return fmt.Errorf("sidebar_width must be at least 16")
	}
	if !validClipboardModes[strings.ToLower(c.Clipboard)] {
		return fmt.Errorf("invalid clipboard %q: must be one of auto, system, osc52", c.Clipboard)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Page returns the configured start page. Call Validate first.
func (c *Config) Page() wiki.Page {
	p, _ := wiki.ParsePage(c.StartPage)
	return p
}

// InitialTheme returns the configured theme. Call Validate first.
func (c *Config) InitialTheme() wiki.Theme {
	t, _ := wiki.ParseTheme(c.Theme)
	return t
}
