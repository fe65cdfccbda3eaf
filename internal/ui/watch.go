package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/wikiview/internal/wiki"
)

func (m *Model) waitForChange() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case page, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return pageChangedMsg{page: page}
		case err := <-w.Errors():
			return watchErrMsg{err: err}
		}
	}
}

func (m *Model) handlePageChanged(page wiki.Page) tea.Cmd {
	if m.library != nil {
		m.library.Invalidate(page)
	}
	slog.Debug("page file changed", "page", page.Slug())
	if page == m.session.Page {
		m.loadDocument()
		m.renderContent()
	}
	return m.waitForChange()
}
