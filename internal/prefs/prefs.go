// Package prefs persists user preferences that outlive a session.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kyaoi/wikiview/internal/wiki"
)

// Prefs is the on-disk preference document.
type Prefs struct {
	Theme string `yaml:"theme,omitempty"`
}

// Store reads and writes the preference file at Path.
type Store struct {
	Path string
}

// NewStore returns a store for path. An empty path disables persistence.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load returns the saved preferences. A missing file yields zero Prefs.
func (s *Store) Load() (Prefs, error) {
	if s == nil || s.Path == "" {
		return Prefs{}, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("reading preferences: %w", err)
	}
	var p Prefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("parsing preferences %s: %w", s.Path, err)
	}
	return p, nil
}

// Theme returns the saved theme, or fallback when none is saved or the
// saved value is invalid.
func (s *Store) Theme(fallback wiki.Theme) wiki.Theme {
	p, err := s.Load()
	if err != nil || p.Theme == "" {
		return fallback
	}
	theme, err := wiki.ParseTheme(p.Theme)
	if err != nil {
		return fallback
	}
	return theme
}

// SaveTheme records theme, keeping any other saved preferences.
func (s *Store) SaveTheme(theme wiki.Theme) error {
	if s == nil || s.Path == "" {
		return nil
	}
	p, err := s.Load()
	if err != nil {
		p = Prefs{}
	}
	p.Theme = theme.String()
	return s.save(p)
}

func (s *Store) save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("writing preferences to %s: %w", s.Path, err)
	}
	return nil
}
