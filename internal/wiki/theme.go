package wiki

import (
	"fmt"
	"strings"
)

// Theme is the colour scheme used for every view.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

// Toggle returns the other theme. Toggling twice yields the original value.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// ParseTheme accepts "dark" or "light" (case-insensitive).
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	default:
		return ThemeDark, fmt.Errorf("invalid theme %q: must be dark or light", s)
	}
}
