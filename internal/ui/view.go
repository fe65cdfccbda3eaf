package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/wikiview/internal/wiki"
)

const (
	logoText      = "◭ ArchWiki"
	footerLinks   = "Privacy Policy · Disclaimer · About This Wiki · Contribute"
	footerLicense = "Content License: GFDL © 2023 Arch Linux"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showHelp {
		title := m.styles.PanelTitle.Render("Keyboard shortcuts (? / esc to close)")
		overlay := m.styles.HelpBox.Render(title + "\n\n" + m.help.FullHelpView(m.keys.FullHelp()))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	out := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.bodyView(),
		m.footerView(),
		m.statusView(),
	)
	if m.zones != nil {
		return m.zones.Scan(out)
	}
	return out
}

func (m *Model) headerView() string {
	s := m.styles
	l := m.layout()

	icon := "☾"
	if m.session.Theme == wiki.ThemeDark {
		icon = "☀"
	}

	var left []string
	if l.narrow {
		left = append(left, m.mark(zoneMenu, s.HeaderIcon.Render("☰")))
	}
	left = append(left, s.Logo.Render(logoText))

	search := "⌕ Search the wiki..."
	if m.searchQuery != "" {
		search = "⌕ " + m.searchQuery
	}
	right := []string{m.mark(zoneSearch, s.HeaderLink.Render(search))}
	if !l.narrow {
		right = append(right, s.HeaderLink.Render("Main Page  Community  News"))
	}
	right = append(right, m.mark(zoneTheme, s.HeaderIcon.Render(icon)))
	if l.narrow {
		right = append(right, m.mark(zoneTOC, s.HeaderIcon.Render("≡")))
	}

	line := spread(m.width, strings.Join(left, " "), strings.Join(right, "  "))
	return s.Header.Width(m.width).Render(line)
}

func (m *Model) footerView() string {
	left := m.styles.Logo.Render("◭") + "  " + footerLinks
	line := spread(m.width, left, footerLicense)
	return m.styles.Footer.Width(m.width).Render(line)
}

func (m *Model) bodyView() string {
	l := m.layout()
	if !l.narrow {
		columns := []string{}
		if m.navRoot != nil {
			columns = append(columns, m.navVP.View())
		}
		columns = append(columns, m.contentVP.View(), m.tocVP.View())
		return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	}

	if !m.session.Sidebars.AnyOpen() {
		return m.contentVP.View()
	}

	var columns []string
	if l.left > 0 && m.navRoot != nil {
		columns = append(columns, m.navVP.View())
	}
	if rest := m.width - l.left - l.right; rest > 0 {
		backdrop := lipgloss.Place(rest, l.body, lipgloss.Left, lipgloss.Top, "",
			lipgloss.WithWhitespaceChars("░"),
			lipgloss.WithWhitespaceForeground(m.styles.Backdrop))
		columns = append(columns, m.mark(zoneBackdrop, backdrop))
	}
	if l.right > 0 {
		columns = append(columns, m.tocVP.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m *Model) statusView() string {
	var line string
	switch {
	case m.searchActive:
		line = m.styles.SearchBar.Render(m.searchInput.View())
	case m.err != nil:
		line = m.styles.Error.Render(m.err.Error())
	case m.searchQuery != "":
		line = m.styles.SearchBar.Render(m.searchStatusLine())
	default:
		line = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return ansi.Truncate(line, m.width, "…")
}

// spread places left and right on one line of the given width. When both
// do not fit, the right part is dropped.
func spread(width int, left, right string) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left, width, "")
	}
	return left + strings.Repeat(" ", gap) + right
}
