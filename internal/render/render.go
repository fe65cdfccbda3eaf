// Package render turns parsed pages into terminal text: prose through
// glamour, code samples through the line highlighter, callouts as bordered
// boxes.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/wikiview/internal/content"
	"github.com/kyaoi/wikiview/internal/highlight"
	"github.com/kyaoi/wikiview/internal/wiki"
)

const (
	minWidth     = 20
	blockIndent  = 2
	calloutInset = 4
)

// Marker wraps s so that it can be hit-tested later under id. A nil Marker
// leaves text untouched.
type Marker func(id, s string) string

// CopyZoneID is the hit zone of a code block's copy button.
func CopyZoneID(blockID string) string {
	return "copy:" + blockID
}

// BlockState is the per-code-block view state supplied by the caller.
type BlockState struct {
	Focused bool
	Copied  bool
}

// Span locates a rendered code block in the output.
type Span struct {
	ID     string
	Line   int
	Height int
}

// Page is a rendered document.
type Page struct {
	Content string
	Blocks  []Span
}

// BlockAt returns the ID of the code block covering line, if any.
func (p Page) BlockAt(line int) (string, bool) {
	for _, b := range p.Blocks {
		if line >= b.Line && line < b.Line+b.Height {
			return b.ID, true
		}
	}
	return "", false
}

// Span returns the span of the block with the given ID.
func (p Page) Span(id string) (Span, bool) {
	for _, b := range p.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Span{}, false
}

// Renderer renders documents at a fixed width and theme.
type Renderer struct {
	width   int
	theme   wiki.Theme
	prose   *glamour.TermRenderer
	callout *glamour.TermRenderer
	palette highlight.Palette
	look    look
}

type look struct {
	codeBorder    lipgloss.Color
	codeFocus     lipgloss.Color
	codeTitle     lipgloss.Style
	copyIdle      lipgloss.Style
	copyDone      lipgloss.Style
	calloutTitle  lipgloss.Style
	calloutColors map[content.CalloutKind]lipgloss.Color
}

func lookFor(theme wiki.Theme) look {
	if theme == wiki.ThemeLight {
		return look{
			codeBorder:   lipgloss.Color("#cbd5e1"),
			codeFocus:    lipgloss.Color("#0891b2"),
			codeTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#334155")),
			copyIdle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")),
			copyDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d")).Bold(true),
			calloutTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f172a")),
			calloutColors: map[content.CalloutKind]lipgloss.Color{
				content.CalloutNote:    lipgloss.Color("#0891b2"),
				content.CalloutTip:     lipgloss.Color("#059669"),
				content.CalloutWarning: lipgloss.Color("#d97706"),
			},
		}
	}
	return look{
		codeBorder:   lipgloss.Color("#334155"),
		codeFocus:    lipgloss.Color("#22d3ee"),
		codeTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cbd5e1")),
		copyIdle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
		copyDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true),
		calloutTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f1f5f9")),
		calloutColors: map[content.CalloutKind]lipgloss.Color{
			content.CalloutNote:    lipgloss.Color("#22d3ee"),
			content.CalloutTip:     lipgloss.Color("#34d399"),
			content.CalloutWarning: lipgloss.Color("#fbbf24"),
		},
	}
}

var calloutIcons = map[content.CalloutKind]string{
	content.CalloutNote:    "ℹ",
	content.CalloutTip:     "✱",
	content.CalloutWarning: "⚠",
}

// New creates a renderer wrapping text at width columns.
func New(width int, theme wiki.Theme) (*Renderer, error) {
	if width < minWidth {
		width = minWidth
	}
	prose, err := newMarkdown(width, theme)
	if err != nil {
		return nil, err
	}
	callout, err := newMarkdown(max(width-blockIndent-calloutInset, minWidth/2), theme)
	if err != nil {
		return nil, err
	}
	palette := highlight.DarkPalette()
	if theme == wiki.ThemeLight {
		palette = highlight.LightPalette()
	}
	return &Renderer{
		width:   width,
		theme:   theme,
		prose:   prose,
		callout: callout,
		palette: palette,
		look:    lookFor(theme),
	}, nil
}

// Width returns the wrap width.
func (r *Renderer) Width() int { return r.width }

// Theme returns the theme the renderer was built for.
func (r *Renderer) Theme() wiki.Theme { return r.theme }

func newMarkdown(width int, theme wiki.Theme) (*glamour.TermRenderer, error) {
	style := styles.TokyoNightStyle
	if theme == wiki.ThemeLight {
		style = styles.LightStyle
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
}

// Document renders doc. states supplies focus and copy feedback per code
// block ID; mark, when set, tags copy buttons for mouse hit-testing.
func (r *Renderer) Document(doc *content.Document, states map[string]BlockState, mark Marker) (Page, error) {
	if mark == nil {
		mark = func(_ string, s string) string { return s }
	}
	var (
		parts []string
		page  Page
		line  int
	)
	add := func(s string) {
		parts = append(parts, s)
		line += strings.Count(s, "\n") + 2
	}

	for _, block := range doc.Blocks {
		switch block.Kind {
		case content.BlockMarkdown:
			out, err := r.prose.Render(block.Text)
			if err != nil {
				return Page{}, fmt.Errorf("rendering %s: %w", doc.Page.Slug(), err)
			}
			if out = trimBlankLines(out); out != "" {
				add(out)
			}
		case content.BlockCode:
			out := r.CodeBlock(block, states[block.ID], mark)
			page.Blocks = append(page.Blocks, Span{ID: block.ID, Line: line, Height: strings.Count(out, "\n") + 1})
			add(out)
		case content.BlockCallout:
			out, err := r.Callout(block)
			if err != nil {
				return Page{}, fmt.Errorf("rendering %s: %w", doc.Page.Slug(), err)
			}
			add(out)
		}
	}
	page.Content = strings.Join(parts, "\n\n")
	return page, nil
}

// CodeBlock renders a titled box with a copy button and highlighted lines.
func (r *Renderer) CodeBlock(block content.Block, state BlockState, mark Marker) string {
	if mark == nil {
		mark = func(_ string, s string) string { return s }
	}
	border := r.look.codeBorder
	if state.Focused {
		border = r.look.codeFocus
	}
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	inner := max(r.width-blockIndent-box.GetHorizontalFrameSize(), 8)

	label := r.look.copyIdle.Render("⧉ Copy")
	if state.Copied {
		label = r.look.copyDone.Render("✓ Copied!")
	}
	button := mark(CopyZoneID(block.ID), label)

	title := ansi.Truncate(block.Title, max(inner-lipgloss.Width(label)-1, 1), "…")
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(label), 1)
	header := r.look.codeTitle.Render(title) + strings.Repeat(" ", gap) + button
	rule := lipgloss.NewStyle().Foreground(border).Render(strings.Repeat("─", inner))

	lines := make([]string, 0, 2+strings.Count(block.Text, "\n")+1)
	lines = append(lines, header, rule)
	for _, l := range r.palette.RenderCode(block.Text) {
		lines = append(lines, wrapLine(l, inner)...)
	}
	out := box.Render(strings.Join(lines, "\n"))
	return indent(out, blockIndent)
}

// Callout renders a note, tip or warning box.
func (r *Renderer) Callout(block content.Block) (string, error) {
	color := r.look.calloutColors[block.Callout]
	body, err := r.callout.Render(block.Text)
	if err != nil {
		return "", err
	}
	icon := lipgloss.NewStyle().Foreground(color).Render(calloutIcons[block.Callout])
	title := icon + " " + r.look.calloutTitle.Render(block.Title)
	text := title
	if body = trimBlankLines(body); body != "" {
		text += "\n" + body
	}
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(color).
		PaddingLeft(1)
	return indent(box.Render(text), blockIndent), nil
}

func wrapLine(s string, width int) []string {
	if lipgloss.Width(s) <= width {
		return []string{s}
	}
	return strings.Split(ansi.Hardwrap(s, width, true), "\n")
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// trimBlankLines drops leading and trailing lines that hold only whitespace
// and escape sequences.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(ansi.Strip(lines[start])) == "" {
		start++
	}
	for end > start && strings.TrimSpace(ansi.Strip(lines[end-1])) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
