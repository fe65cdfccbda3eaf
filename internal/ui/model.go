package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kyaoi/wikiview/internal/clipboard"
	"github.com/kyaoi/wikiview/internal/content"
	"github.com/kyaoi/wikiview/internal/copystate"
	"github.com/kyaoi/wikiview/internal/render"
	"github.com/kyaoi/wikiview/internal/tree"
	"github.com/kyaoi/wikiview/internal/wiki"
)

const (
	headerHeight        = 2
	footerHeight        = 2
	statusHeight        = 1
	minContentWidth     = 20
	minSidebarWidth     = 16
	defaultSidebarWidth = 28
	defaultNarrowWidth  = 110
)

// Model implements the Bubble Tea program for the wiki viewer.
type Model struct {
	session  *wiki.Session
	library  *content.Library
	doc      *content.Document
	page     render.Page
	renderer *render.Renderer
	styles   Styles
	keys     KeyMap
	help     help.Model
	zones    *zone.Manager

	contentVP viewport.Model
	navVP     viewport.Model
	tocVP     viewport.Model

	navRoot      *tree.Node
	flatNav      []navLine
	navSelection int
	navFocus     bool

	clip         clipboard.Writer
	copyOpts     []copystate.Option
	copiers      map[string]*copystate.Tracker
	focusedBlock string

	store   ThemeStore
	watcher *content.Watcher

	narrowWidth  int
	sidebarWidth int
	showHelp     bool
	pendingKey   string
	width        int
	height       int
	err          error

	searchInput   textinput.Model
	searchActive  bool
	searchQuery   string
	searchMatches []int
	searchIndex   int
}

type pageChangedMsg struct {
	page wiki.Page
}

type watchErrMsg struct {
	err error
}

type themeSavedMsg struct {
	theme wiki.Theme
	err   error
}

// NewModel constructs the viewer model with the provided initial state.
func NewModel(state State) *Model {
	session := state.Session
	if session == nil {
		session = wiki.NewSession(wiki.PageHome, wiki.ThemeDark)
	}
	narrow := state.NarrowWidth
	if narrow <= 0 {
		narrow = defaultNarrowWidth
	}
	side := state.SidebarWidth
	if side <= 0 {
		side = defaultSidebarWidth
	}
	delay := state.CopyFeedback
	if delay <= 0 {
		delay = copystate.DefaultDelay
	}

	contentVP := viewport.New(0, 0)
	contentVP.Style = contentStyle()
	contentVP.SetHorizontalStep(2)

	navVP := viewport.New(0, 0)
	navVP.MouseWheelEnabled = false

	tocVP := viewport.New(0, 0)
	tocVP.MouseWheelEnabled = false

	m := &Model{
		session:      session,
		library:      state.Library,
		styles:       StylesFor(session.Theme),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		zones:        state.Zone,
		contentVP:    contentVP,
		navVP:        navVP,
		tocVP:        tocVP,
		navRoot:      state.Nav,
		clip:         state.Clipboard,
		copyOpts:     []copystate.Option{copystate.WithDelay(delay), copystate.WithScheduler(state.CopyScheduler)},
		copiers:      make(map[string]*copystate.Tracker),
		store:        state.Store,
		watcher:      state.Watcher,
		narrowWidth:  narrow,
		sidebarWidth: side,
		searchIndex:  -1,
	}

	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.CharLimit = 256
	searchInput.Placeholder = "Search the wiki..."
	searchInput.CursorEnd()
	searchInput.Blur()
	m.searchInput = searchInput

	m.loadDocument()
	m.refreshNav()
	m.updatePanelStyles()
	return m
}

// Session returns the session the model mutates.
func (m *Model) Session() *wiki.Session { return m.session }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageChangedMsg:
		return m, m.handlePageChanged(msg.page)
	case watchErrMsg:
		m.err = fmt.Errorf("watching pages: %w", msg.err)
		slog.Warn("page watcher error", "error", msg.err)
		return m, m.waitForChange()
	case themeSavedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("saving theme: %w", msg.err)
			slog.Warn("failed to save theme", "theme", msg.theme.String(), "error", msg.err)
		}
		return m, nil
	case copystate.ResultMsg:
		return m, m.handleCopyMsg(msg.ID, msg)
	case copystate.ExpiredMsg:
		return m, m.handleCopyMsg(msg.ID, msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		if m.searchActive {
			switch msg.Type {
			case tea.KeyEnter:
				query := strings.TrimSpace(m.searchInput.Value())
				m.exitSearchMode()
				if query == "" {
					m.clearSearch()
					return m, nil
				}
				m.performSearch(query, true)
				return m, nil
			case tea.KeyEsc, tea.KeyCtrlC:
				m.exitSearchMode()
				return m, nil
			}
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}

		k := msg.String()
		if k != "g" {
			m.pendingKey = ""
		}

		if m.showHelp {
			m.pendingKey = ""
			switch k {
			case "q", "?", "esc":
				m.showHelp = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.FocusNav):
			m.focusNav()
			return m, nil
		case key.Matches(msg, m.keys.FocusContent):
			m.blurNav()
			return m, nil
		case key.Matches(msg, m.keys.ToggleNav):
			m.toggleLeft()
			return m, nil
		case key.Matches(msg, m.keys.ToggleTOC):
			m.toggleRight()
			return m, nil
		case key.Matches(msg, m.keys.CloseAll):
			if !m.session.Sidebars.AnyOpen() && m.searchQuery != "" {
				m.clearSearch()
				return m, nil
			}
			m.closeAll()
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			return m, m.toggleTheme()
		case key.Matches(msg, m.keys.Search):
			return m, m.enterSearchMode()
		case key.Matches(msg, m.keys.Home):
			m.navigate(wiki.PageHome)
			return m, nil
		case key.Matches(msg, m.keys.NextBlock):
			m.cycleBlock(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevBlock):
			m.cycleBlock(-1)
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			id := m.copyTarget()
			if id == "" {
				return m, nil
			}
			m.focusBlock(id)
			return m, m.copyBlock(id)
		case key.Matches(msg, m.keys.NextMatch):
			if len(m.searchMatches) > 0 {
				m.nextSearchMatch()
				return m, nil
			}
		case key.Matches(msg, m.keys.PrevMatch):
			if len(m.searchMatches) > 0 {
				m.previousSearchMatch()
				return m, nil
			}
		}

		if m.navFocus && m.navVisible() {
			m.handleNavKey(k)
			return m, nil
		}

		if m.handleContentKey(k) {
			return m, nil
		}

		var cmd tea.Cmd
		m.contentVP, cmd = m.contentVP.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.contentVP, cmd = m.contentVP.Update(msg)
	return m, cmd
}

func (m *Model) handleContentKey(key string) bool {
	switch key {
	case "j", "down":
		m.contentVP.ScrollDown(1)
	case "k", "up":
		m.contentVP.ScrollUp(1)
	case "ctrl+d":
		m.contentVP.HalfPageDown()
	case "ctrl+u":
		m.contentVP.HalfPageUp()
	case "h":
		m.contentVP.ScrollLeft(max(2, m.contentVP.Width/6))
	case "l":
		m.contentVP.ScrollRight(max(2, m.contentVP.Width/6))
	case "g":
		if m.pendingKey == "g" {
			m.contentVP.GotoTop()
			m.pendingKey = ""
		} else {
			m.pendingKey = "g"
		}
		return true
	case "G":
		m.pendingKey = ""
		m.contentVP.GotoBottom()
	default:
		return false
	}
	m.pendingKey = ""
	return true
}

// layout describes the outer widths of the three columns for the current
// terminal size. In the narrow layout the content spans the full width and
// open sidebars are drawn over it.
type layout struct {
	narrow  bool
	left    int
	content int
	right   int
	body    int
}

func (m *Model) layout() layout {
	l := layout{
		narrow: m.width < m.narrowWidth,
		body:   max(m.height-headerHeight-footerHeight-statusHeight, 1),
	}
	side := clamp(m.sidebarWidth, minSidebarWidth, max(m.width/2, minSidebarWidth))
	if l.narrow {
		l.content = m.width
		if m.session.Sidebars.Left {
			l.left = min(side, m.width)
		}
		if m.session.Sidebars.Right {
			l.right = min(side, m.width-l.left)
		}
		return l
	}
	l.left, l.right = side, side
	l.content = max(m.width-2*side, minContentWidth)
	return l
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	prevWrap := m.wrapWidth()
	m.width = width
	m.height = height
	m.help.Width = max(width-8, 10)
	m.layoutPanels()

	if m.renderer == nil || m.wrapWidth() != prevWrap {
		m.rebuildRenderer()
	}
}

func (m *Model) layoutPanels() {
	l := m.layout()
	m.contentVP.Width = l.content
	m.contentVP.Height = l.body
	m.navVP.Width = l.left
	m.navVP.Height = l.body
	m.tocVP.Width = l.right
	m.tocVP.Height = l.body
	m.updateNavContent()
	m.updateTOCContent()
	m.ensureSelectionVisible()
}

func (m *Model) wrapWidth() int {
	return max(m.contentVP.Width-m.contentVP.Style.GetHorizontalFrameSize(), 0)
}

func (m *Model) rebuildRenderer() {
	r, err := render.New(m.wrapWidth(), m.session.Theme)
	if err != nil {
		m.err = err
		return
	}
	m.renderer = r
	m.renderContent()
}

// renderContent re-renders the active document and keeps the scroll
// position.
func (m *Model) renderContent() {
	if m.renderer == nil || m.doc == nil {
		return
	}
	states := make(map[string]render.BlockState)
	for _, b := range m.doc.CodeBlocks() {
		st := render.BlockState{Focused: b.ID == m.focusedBlock}
		if tr, ok := m.copiers[b.ID]; ok && tr.State() == copystate.Copied {
			st.Copied = true
		}
		states[b.ID] = st
	}
	page, err := m.renderer.Document(m.doc, states, m.mark)
	if err != nil {
		m.err = err
		slog.Error("render failed", "page", m.doc.Page.Slug(), "error", err)
		return
	}
	offset := m.contentVP.YOffset
	m.page = page
	m.contentVP.SetContent(page.Content)
	m.contentVP.SetYOffset(offset)
	m.onContentChanged()
}

func (m *Model) loadDocument() {
	if m.library == nil {
		return
	}
	doc, err := m.library.Document(m.session.Page)
	if err != nil {
		m.err = err
		slog.Error("failed to load page", "page", m.session.Page.Slug(), "error", err)
		return
	}
	m.doc = doc
	if _, ok := doc.CodeBlock(m.focusedBlock); !ok {
		m.focusedBlock = ""
	}
	m.updateTOCContent()
}

func (m *Model) navigate(page wiki.Page) {
	slog.Info("navigate", "from", m.session.Page.Slug(), "to", page.Slug())
	m.session.Navigate(page)
	m.focusedBlock = ""
	m.clearSearch()
	m.loadDocument()
	m.renderContent()
	m.contentVP.GotoTop()
	m.refreshNav()
	if m.layout().narrow {
		m.blurNav()
	}
	m.layoutPanels()
}

func (m *Model) navVisible() bool {
	return m.navRoot != nil && (!m.layout().narrow || m.session.Sidebars.Left)
}

func (m *Model) tocVisible() bool {
	return !m.layout().narrow || m.session.Sidebars.Right
}

func (m *Model) toggleLeft() {
	m.session.Sidebars.ToggleLeft()
	if m.layout().narrow {
		if m.session.Sidebars.Left {
			m.focusNav()
		} else {
			m.blurNav()
		}
	}
	m.layoutPanels()
}

func (m *Model) toggleRight() {
	m.session.Sidebars.ToggleRight()
	m.layoutPanels()
}

func (m *Model) closeAll() {
	m.session.Sidebars.CloseAll()
	if m.layout().narrow {
		m.blurNav()
	}
	m.layoutPanels()
}

func (m *Model) toggleTheme() tea.Cmd {
	theme := m.session.ToggleTheme()
	slog.Info("theme toggled", "theme", theme.String())
	m.styles = StylesFor(theme)
	m.updatePanelStyles()
	m.updateNavContent()
	m.updateTOCContent()
	if m.width > 0 {
		m.rebuildRenderer()
	}
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		return themeSavedMsg{theme: theme, err: store.SaveTheme(theme)}
	}
}

func (m *Model) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(id, s)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
