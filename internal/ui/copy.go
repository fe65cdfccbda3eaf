package ui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/wikiview/internal/copystate"
)

func (m *Model) tracker(id string) *copystate.Tracker {
	tr, ok := m.copiers[id]
	if !ok {
		tr = copystate.New(id, m.clip, m.copyOpts...)
		m.copiers[id] = tr
	}
	return tr
}

// copyBlock starts copying the code block id. Feedback arrives through
// copystate messages.
func (m *Model) copyBlock(id string) tea.Cmd {
	if m.doc == nil {
		return nil
	}
	block, ok := m.doc.CodeBlock(id)
	if !ok {
		return nil
	}
	slog.Debug("copy requested", "block", id, "bytes", len(block.Text))
	return m.tracker(id).Copy(block.Text)
}

func (m *Model) handleCopyMsg(id string, msg tea.Msg) tea.Cmd {
	tr, ok := m.copiers[id]
	if !ok {
		return nil
	}
	changed, cmd := tr.Update(msg)
	if !changed {
		return cmd
	}
	if res, ok := msg.(copystate.ResultMsg); ok {
		if res.Err != nil {
			m.err = fmt.Errorf("copy failed: %w", res.Err)
			slog.Warn("clipboard write failed", "block", id, "error", res.Err)
		} else {
			m.err = nil
			slog.Info("copied code block", "block", id)
		}
	}
	m.renderContent()
	return cmd
}

// copyState reports the feedback state of block id.
func (m *Model) copyState(id string) copystate.State {
	if tr, ok := m.copiers[id]; ok {
		return tr.State()
	}
	return copystate.Idle
}

func (m *Model) focusBlock(id string) {
	if m.focusedBlock == id {
		return
	}
	m.focusedBlock = id
	m.renderContent()
}

// cycleBlock moves code block focus forward or backward, wrapping around,
// and scrolls the focused block into view.
func (m *Model) cycleBlock(delta int) {
	if m.doc == nil {
		return
	}
	blocks := m.doc.CodeBlocks()
	n := len(blocks)
	if n == 0 {
		return
	}
	idx := -1
	for i, b := range blocks {
		if b.ID == m.focusedBlock {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+delta)%n + n) % n
	}
	m.focusBlock(blocks[idx].ID)
	m.scrollToBlock(blocks[idx].ID)
}

func (m *Model) scrollToBlock(id string) {
	span, ok := m.page.Span(id)
	if !ok {
		return
	}
	top := m.contentVP.YOffset
	if span.Line < top || span.Line+span.Height > top+m.contentVP.Height {
		m.contentVP.SetYOffset(span.Line)
	}
}

// copyTarget is the focused block, or else the first block visible in the
// content viewport.
func (m *Model) copyTarget() string {
	if m.focusedBlock != "" {
		return m.focusedBlock
	}
	top := m.contentVP.YOffset
	for _, span := range m.page.Blocks {
		if span.Line+span.Height > top && span.Line < top+m.contentVP.Height {
			return span.ID
		}
	}
	return ""
}

// blockHeaderVisible reports whether the header row of block id, which holds
// its copy button, is inside the content viewport.
func (m *Model) blockHeaderVisible(id string) bool {
	span, ok := m.page.Span(id)
	if !ok {
		return false
	}
	line := span.Line + 1
	return line >= m.contentVP.YOffset && line < m.contentVP.YOffset+m.contentVP.Height
}
