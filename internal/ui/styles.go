package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kyaoi/wikiview/internal/wiki"
)

// Styles holds the chrome styles for one theme.
type Styles struct {
	BlurBorder  lipgloss.Color
	FocusBorder lipgloss.Color
	Accent      lipgloss.Color
	Muted       lipgloss.Color

	Header        lipgloss.Style
	Logo          lipgloss.Style
	HeaderLink    lipgloss.Style
	HeaderIcon    lipgloss.Style
	Footer        lipgloss.Style
	PanelTitle    lipgloss.Style
	SectionTitle  lipgloss.Style
	NavLine       lipgloss.Style
	NavInert      lipgloss.Style
	NavActive     lipgloss.Style
	NavSelected   lipgloss.Style
	NavSelectedBg lipgloss.Style
	TOCLine       lipgloss.Style
	TOCActive     lipgloss.Style
	Backdrop      lipgloss.Color
	HelpBox       lipgloss.Style
	SearchBar     lipgloss.Style
	Error         lipgloss.Style
}

// StylesFor returns the chrome styles for theme.
func StylesFor(theme wiki.Theme) Styles {
	if theme == wiki.ThemeLight {
		return buildStyles(lightPalette)
	}
	return buildStyles(darkPalette)
}

type palette struct {
	bg, surface, border, focus, accent, text, strong, muted, selectedFg, selectedBg, inactiveBg, err string
}

var darkPalette = palette{
	bg:         "#0f172a",
	surface:    "#1f2335",
	border:     "#3b4261",
	focus:      "#7aa2f7",
	accent:     "#22d3ee",
	text:       "#a9b1d6",
	strong:     "#c0caf5",
	muted:      "#64748b",
	selectedFg: "#1a1b26",
	selectedBg: "#7aa2f7",
	inactiveBg: "#283457",
	err:        "#ff6b6b",
}

var lightPalette = palette{
	bg:         "#f8fafc",
	surface:    "#e2e8f0",
	border:     "#cbd5e1",
	focus:      "#2563eb",
	accent:     "#0891b2",
	text:       "#334155",
	strong:     "#0f172a",
	muted:      "#64748b",
	selectedFg: "#f8fafc",
	selectedBg: "#2563eb",
	inactiveBg: "#dbeafe",
	err:        "#dc2626",
}

func buildStyles(p palette) Styles {
	return Styles{
		BlurBorder:  lipgloss.Color(p.border),
		FocusBorder: lipgloss.Color(p.focus),
		Accent:      lipgloss.Color(p.accent),
		Muted:       lipgloss.Color(p.muted),

		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color(p.border)),
		Logo:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
		HeaderLink: lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)),
		HeaderIcon: lipgloss.NewStyle().Foreground(lipgloss.Color(p.strong)).Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color(p.border)),
		PanelTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.strong)),
		SectionTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.muted)),
		NavLine:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)),
		NavInert:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		NavActive:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
		NavSelected:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.selectedFg)).Background(lipgloss.Color(p.selectedBg)).Bold(true),
		NavSelectedBg: lipgloss.NewStyle().Foreground(lipgloss.Color(p.strong)).Background(lipgloss.Color(p.inactiveBg)),
		TOCLine:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)),
		TOCActive:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)),
		Backdrop:      lipgloss.Color(p.border),
		HelpBox: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.focus)).
			Background(lipgloss.Color(p.surface)),
		SearchBar: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color(p.text)).
			Background(lipgloss.Color(p.surface)),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color(p.err)),
	}
}

func panelStyle(color lipgloss.Color, right bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(color)
	if right {
		return s.BorderLeft(true)
	}
	return s.BorderRight(true)
}

func contentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1)
}
