// Package highlight colours lines of displayed code samples without a real
// grammar. Each line is classified on its own.
package highlight

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// Kind is the classification of a single line.
type Kind int

const (
	Plain Kind = iota
	Directive
	KeyValue
)

func (k Kind) String() string {
	switch k {
	case Directive:
		return "directive"
	case KeyValue:
		return "keyvalue"
	default:
		return "plain"
	}
}

// Line is one classified line of source text. For KeyValue lines Split is
// the byte index of the first '='.
type Line struct {
	Text  string
	Kind  Kind
	Split int
}

// Key returns the part before the first '=' on KeyValue lines and "" otherwise.
func (l Line) Key() string {
	if l.Kind != KeyValue {
		return ""
	}
	return l.Text[:l.Split]
}

// Value returns the part starting at the first '=' on KeyValue lines and ""
// otherwise.
func (l Line) Value() string {
	if l.Kind != KeyValue {
		return ""
	}
	return l.Text[l.Split:]
}

// Classify assigns a Kind to line. A line whose first non-space character is
// '[' is a Directive even if it also contains '='.
func Classify(line string) Line {
	if strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "[") {
		return Line{Text: line, Kind: Directive}
	}
	if i := strings.IndexByte(line, '='); i >= 0 {
		return Line{Text: line, Kind: KeyValue, Split: i}
	}
	return Line{Text: line, Kind: Plain}
}

// Lines splits code on '\n' and classifies every line, blank ones included.
func Lines(code string) []Line {
	raw := strings.Split(code, "\n")
	out := make([]Line, len(raw))
	for i, line := range raw {
		out[i] = Classify(line)
	}
	return out
}

// Palette holds the styles used to render classified lines.
type Palette struct {
	Directive lipgloss.Style
	Key       lipgloss.Style
	Value     lipgloss.Style
	Plain     lipgloss.Style
}

// DarkPalette mirrors the cyan / purple / green scheme of the dark theme.
func DarkPalette() Palette {
	return Palette{
		Directive: lipgloss.NewStyle().Foreground(lipgloss.Color("#22d3ee")),
		Key:       lipgloss.NewStyle().Foreground(lipgloss.Color("#c084fc")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
		Plain:     lipgloss.NewStyle().Foreground(lipgloss.Color("#cbd5e1")),
	}
}

// LightPalette uses darker shades that stay readable on a light background.
func LightPalette() Palette {
	return Palette{
		Directive: lipgloss.NewStyle().Foreground(lipgloss.Color("#0e7490")),
		Key:       lipgloss.NewStyle().Foreground(lipgloss.Color("#7e22ce")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d")),
		Plain:     lipgloss.NewStyle().Foreground(lipgloss.Color("#334155")),
	}
}

// Render styles a classified line.
func (p Palette) Render(l Line) string {
	switch l.Kind {
	case Directive:
		return p.Directive.Render(l.Text)
	case KeyValue:
		return p.Key.Render(l.Key()) + p.Value.Render(l.Value())
	default:
		if l.Text == "" {
			return ""
		}
		return p.Plain.Render(l.Text)
	}
}

// RenderCode classifies and styles every line of code.
func (p Palette) RenderCode(code string) []string {
	lines := Lines(code)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = p.Render(l)
	}
	return out
}
