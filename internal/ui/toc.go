package ui

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const tocZonePrefix = "toc:"

func tocZoneID(i int) string {
	return tocZonePrefix + strconv.Itoa(i)
}

func (m *Model) updateTOCContent() {
	if m.doc == nil {
		m.tocVP.SetContent("")
		return
	}
	width := max(m.tocVP.Width-m.tocVP.Style.GetHorizontalFrameSize(), 1)
	lines := make([]string, 0, len(m.doc.TOC)+2)
	lines = append(lines, m.styles.PanelTitle.Render(ansi.Truncate(m.doc.TOCTitle, width, "…")), "")
	for i, entry := range m.doc.TOC {
		text := "› " + entry.Title
		if entry.Nested {
			text = "  " + text
		}
		text = ansi.Truncate(text, width, "…")
		style := m.styles.TOCLine
		if entry.Active {
			style = m.styles.TOCActive
		}
		lines = append(lines, m.mark(tocZoneID(i), style.Render(text)))
	}
	m.tocVP.SetContent(strings.Join(lines, "\n"))
}

// jumpToHeading scrolls the content to the first rendered line carrying the
// title of the i-th contents entry.
func (m *Model) jumpToHeading(i int) bool {
	if m.doc == nil || i < 0 || i >= len(m.doc.TOC) {
		return false
	}
	title := m.doc.TOC[i].Title
	matches := findSearchMatches(m.page.Content, title)
	if len(matches) == 0 {
		slog.Debug("heading not found", "page", m.doc.Page.Slug(), "title", title)
		return false
	}
	m.contentVP.SetYOffset(headingLine(m.page.Content, title, matches))
	if m.layout().narrow {
		m.session.Sidebars.CloseRight()
		m.layoutPanels()
	}
	return true
}

// headingLine prefers a match whose line holds nothing but the title, which
// is how headings render, over mentions in running text.
func headingLine(content, title string, matches []int) int {
	lines := strings.Split(ansi.Strip(content), "\n")
	want := strings.ToLower(strings.TrimSpace(title))
	for _, line := range matches {
		if line >= len(lines) {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(lines[line]))
		text = strings.TrimSpace(strings.TrimLeft(text, "#"))
		if text == want {
			return line
		}
	}
	return matches[0]
}
