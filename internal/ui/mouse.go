package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/wikiview/internal/render"
)

const (
	zoneBackdrop = "backdrop"
	zoneMenu     = "menu"
	zoneTOC      = "toc"
	zoneTheme    = "theme"
	zoneSearch   = "search"
)

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		if m.session.Sidebars.AnyOpen() && m.layout().narrow {
			return nil
		}
		var cmd tea.Cmd
		m.contentVP, cmd = m.contentVP.Update(msg)
		return cmd
	}
	if m.zones == nil {
		return nil
	}
	hit := func(id string) bool {
		z := m.zones.Get(id)
		return z != nil && z.InBounds(msg)
	}

	switch {
	case hit(zoneTheme):
		return m.toggleTheme()
	case hit(zoneMenu) && m.layout().narrow:
		m.toggleLeft()
		return nil
	case hit(zoneTOC) && m.layout().narrow:
		m.toggleRight()
		return nil
	case hit(zoneSearch):
		return m.enterSearchMode()
	}

	if m.navVisible() {
		for i := range m.flatNav {
			if hit(navZoneID(i)) {
				m.clickNav(i)
				return nil
			}
		}
	}
	if m.tocVisible() && m.doc != nil {
		for i := range m.doc.TOC {
			if hit(tocZoneID(i)) {
				m.jumpToHeading(i)
				return nil
			}
		}
	}

	l := m.layout()
	if l.narrow && m.session.Sidebars.AnyOpen() {
		if hit(zoneBackdrop) {
			m.closeAll()
		}
		return nil
	}

	if m.doc == nil {
		return nil
	}
	for _, b := range m.doc.CodeBlocks() {
		if m.blockHeaderVisible(b.ID) && hit(render.CopyZoneID(b.ID)) {
			m.focusBlock(b.ID)
			return m.copyBlock(b.ID)
		}
	}
	return nil
}
