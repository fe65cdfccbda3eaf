package ui

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/wikiview/internal/tree"
	"github.com/kyaoi/wikiview/internal/wiki"
)

const navZonePrefix = "nav:"

type navLine struct {
	node  *tree.Node
	label string
}

func navZoneID(i int) string {
	return navZonePrefix + strconv.Itoa(i)
}

// refreshNav reveals the entry of the active page and selects it.
func (m *Model) refreshNav() {
	if m.navRoot == nil {
		return
	}
	active := m.navRoot.FindPage(m.session.Page.Slug())
	if active != nil {
		active.Reveal()
	}
	m.rebuildFlatNav()
	if idx := m.indexForNode(active); idx >= 0 {
		m.navSelection = idx
	} else {
		m.navSelection = clamp(m.navSelection, 0, max(len(m.flatNav)-1, 0))
	}
	m.updateNavContent()
}

func (m *Model) rebuildFlatNav() {
	if m.navRoot == nil {
		m.flatNav = nil
		return
	}
	visible := m.navRoot.Visible()
	lines := make([]navLine, 0, len(visible))
	for _, node := range visible {
		lines = append(lines, navLine{node: node, label: formatNavLabel(node)})
	}
	m.flatNav = lines
}

func (m *Model) updateNavContent() {
	if m.navRoot == nil {
		return
	}
	width := max(m.navVP.Width-m.navVP.Style.GetHorizontalFrameSize(), 1)
	active := m.session.Page.Slug()
	var builder strings.Builder
	for i, line := range m.flatNav {
		text := ansi.Truncate(line.label, width, "…")
		node := line.node
		var styled string
		switch {
		case i == m.navSelection && m.navFocus:
			styled = m.styles.NavSelected.Render(text)
		case node.IsSection():
			styled = m.styles.SectionTitle.Render(text)
		case node.Page != "" && node.Page == active:
			styled = m.styles.NavActive.Render(text)
		case node.Page == "" && !node.IsGroup():
			styled = m.styles.NavInert.Render(text)
		default:
			styled = m.styles.NavLine.Render(text)
		}
		builder.WriteString(m.mark(navZoneID(i), styled))
		if i < len(m.flatNav)-1 {
			builder.WriteByte('\n')
		}
	}
	m.navVP.SetContent(builder.String())
	m.ensureSelectionVisible()
}

func (m *Model) indexForNode(node *tree.Node) int {
	if node == nil {
		return -1
	}
	for i, line := range m.flatNav {
		if line.node == node {
			return i
		}
	}
	return -1
}

func (m *Model) ensureSelectionVisible() {
	if len(m.flatNav) == 0 || m.navVP.Height == 0 {
		return
	}
	if m.navSelection < m.navVP.YOffset {
		m.navVP.SetYOffset(m.navSelection)
		return
	}
	bottom := m.navVP.YOffset + m.navVP.Height - 1
	if m.navSelection > bottom {
		m.navVP.SetYOffset(m.navSelection - m.navVP.Height + 1)
	}
}

func (m *Model) moveNavSelection(delta int) {
	if len(m.flatNav) == 0 {
		return
	}
	m.navSelection = clamp(m.navSelection+delta, 0, len(m.flatNav)-1)
	m.updateNavContent()
}

func (m *Model) currentNavNode() *tree.Node {
	if m.navSelection < 0 || m.navSelection >= len(m.flatNav) {
		return nil
	}
	return m.flatNav[m.navSelection].node
}

func (m *Model) handleNavKey(key string) {
	switch key {
	case "j", "down":
		m.moveNavSelection(1)
	case "k", "up":
		m.moveNavSelection(-1)
	case "ctrl+d":
		m.moveNavSelection(max(1, m.navVP.Height/2))
	case "ctrl+u":
		m.moveNavSelection(-max(1, m.navVP.Height/2))
	case "ctrl+j":
		m.contentVP.ScrollDown(1)
	case "ctrl+k":
		m.contentVP.ScrollUp(1)
	case "ctrl+f":
		m.contentVP.ScrollDown(max(1, m.contentVP.Height/2))
	case "ctrl+b":
		m.contentVP.ScrollUp(max(1, m.contentVP.Height/2))
	case "l", "right", "enter":
		m.openOrDescend()
	case "h", "left":
		m.closeOrAscend()
	case "g":
		if m.pendingKey == "g" {
			m.pendingKey = ""
			if len(m.flatNav) > 0 {
				m.navSelection = 0
				m.updateNavContent()
			}
		} else {
			m.pendingKey = "g"
		}
		return
	case "G":
		if len(m.flatNav) > 0 {
			m.navSelection = len(m.flatNav) - 1
			m.updateNavContent()
		}
	}
	m.pendingKey = ""
}

func (m *Model) openOrDescend() {
	node := m.currentNavNode()
	if node == nil {
		return
	}
	if node.Collapsible() {
		if !node.Open {
			node.Open = true
			m.rebuildFlatNav()
			m.updateNavContent()
			return
		}
		m.moveNavSelection(1)
		return
	}
	m.openNavEntry(node)
}

func (m *Model) closeOrAscend() {
	node := m.currentNavNode()
	if node == nil {
		return
	}
	if node.Collapsible() && node.Open {
		m.setGroupOpen(node, false)
		return
	}
	if parent := node.Parent; parent != nil && parent.Collapsible() {
		m.setGroupOpen(parent, false)
	}
}

func (m *Model) setGroupOpen(node *tree.Node, open bool) {
	node.Open = open
	m.rebuildFlatNav()
	if idx := m.indexForNode(node); idx >= 0 {
		m.navSelection = idx
	} else {
		m.navSelection = clamp(m.navSelection, 0, max(len(m.flatNav)-1, 0))
	}
	m.updateNavContent()
}

// clickNav handles a mouse click on the i-th visible entry: groups toggle,
// page entries navigate and inert entries do nothing.
func (m *Model) clickNav(i int) {
	if i < 0 || i >= len(m.flatNav) {
		return
	}
	node := m.flatNav[i].node
	m.navSelection = i
	if node.Collapsible() {
		m.setGroupOpen(node, !node.Open)
		return
	}
	m.openNavEntry(node)
}

func (m *Model) openNavEntry(node *tree.Node) {
	if node.Page == "" {
		slog.Debug("inert navigation entry", "label", node.Label)
		m.updateNavContent()
		return
	}
	page, err := wiki.ParsePage(node.Page)
	if err != nil {
		m.err = err
		return
	}
	m.navigate(page)
}

func (m *Model) focusNav() {
	if m.navRoot == nil {
		return
	}
	if m.layout().narrow && !m.session.Sidebars.Left {
		m.session.Sidebars.ToggleLeft()
		m.layoutPanels()
	}
	m.navFocus = true
	m.updatePanelStyles()
	m.updateNavContent()
}

func (m *Model) blurNav() {
	m.navFocus = false
	m.updatePanelStyles()
	m.updateNavContent()
}

func (m *Model) updatePanelStyles() {
	color := m.styles.BlurBorder
	if m.navFocus {
		color = m.styles.FocusBorder
	}
	m.navVP.Style = panelStyle(color, false)
	m.tocVP.Style = panelStyle(m.styles.BlurBorder, true)
}

func formatNavLabel(node *tree.Node) string {
	if node.IsSection() {
		return strings.ToUpper(node.Label)
	}
	indent := strings.Repeat("  ", max(node.Depth()-2, 0))
	indicator := "  "
	if node.Collapsible() {
		if node.Open {
			indicator = "▾ "
		} else {
			indicator = "▸ "
		}
	}
	return indent + indicator + node.Label
}
