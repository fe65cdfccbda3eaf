package ui

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/wikiview/internal/clipboard"
	"github.com/kyaoi/wikiview/internal/content"
	"github.com/kyaoi/wikiview/internal/copystate"
	"github.com/kyaoi/wikiview/internal/tree"
	"github.com/kyaoi/wikiview/internal/wiki"
)

type themeRecorder struct {
	saved []wiki.Theme
	err   error
}

func (r *themeRecorder) SaveTheme(t wiki.Theme) error {
	r.saved = append(r.saved, t)
	return r.err
}

// pendingTicks collects expiry callbacks instead of sleeping.
type pendingTicks struct {
	fns []func(time.Time) tea.Msg
}

func (p *pendingTicks) schedule(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	p.fns = append(p.fns, fn)
	return func() tea.Msg { return nil }
}

func newTestModel(t *testing.T, page wiki.Page, w clipboard.Writer, ticks *pendingTicks) *Model {
	t.Helper()
	nav, err := tree.Build(tree.DefaultMenu())
	if err != nil {
		t.Fatalf("nav: %v", err)
	}
	state := State{
		Session:   wiki.NewSession(page, wiki.ThemeDark),
		Library:   content.NewLibrary(content.Embedded()),
		Nav:       nav,
		Clipboard: w,
	}
	if ticks != nil {
		state.CopyScheduler = ticks.schedule
	}
	return NewModel(state)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var last tea.Cmd
	for _, msg := range msgs {
		_, last = m.Update(msg)
	}
	return last
}

func navIndex(t *testing.T, m *Model, label string) int {
	t.Helper()
	for i, line := range m.flatNav {
		if line.node.Label == label {
			return i
		}
	}
	t.Fatalf("nav entry %q not visible", label)
	return -1
}

func TestNewModelStartsOnSessionPage(t *testing.T) {
	m := newTestModel(t, wiki.PageArticle, nil, nil)
	if m.doc == nil || m.doc.Title != "Systemd" {
		t.Fatalf("document not loaded: %+v", m.doc)
	}
	if got := m.flatNav[m.navSelection].node.Page; got != "article" {
		t.Fatalf("selection on %q, want the active page", got)
	}
}

func TestNavigateFromTreeClosesLeftSidebar(t *testing.T) {
	m := newTestModel(t, wiki.PageHome, nil, nil)
	send(m, tea.WindowSizeMsg{Width: 80, Height: 30}, runes("t"))
	if !m.session.Sidebars.Left || !m.navFocus {
		t.Fatalf("t should open and focus the navigation on narrow layouts")
	}

	m.navSelection = navIndex(t, m, "Systemd")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.session.Page != wiki.PageArticle {
		t.Fatalf("page = %v, want article", m.session.Page)
	}
	if m.session.Sidebars.Left {
		t.Fatalf("left sidebar should close after navigation")
	}
	if m.navFocus {
		t.Fatalf("focus should return to the content")
	}
}

func TestCollapsedGroupOpensOnClick(t *testing.T) {
	m := newTestModel(t, wiki.PageHome, nil, nil)
	send(m, tea.WindowSizeMsg{Width: 140, Height: 40})

	idx := navIndex(t, m, "System")
	for _, line := range m.flatNav {
		if line.node.Label == "Pacman" {
			t.Fatalf("Pacman should be hidden while System is closed")
		}
	}
	m.clickNav(idx)
	m.clickNav(navIndex(t, m, "Pacman"))
	if m.session.Page != wiki.PagePackages {
		t.Fatalf("page = %v, want pacman", m.session.Page)
	}
}

func TestInertEntryKeepsPage(t *testing.T) {
	m := newTestModel(t, wiki.PageHome, nil, nil)
	send(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	m.clickNav(navIndex(t, m, "Random page"))
	if m.session.Page != wiki.PageHome {
		t.Fatalf("inert entry changed the page to %v", m.session.Page)
	}
}

func TestEscClosesBothSidebars(t *testing.T) {
	m := newTestModel(t, wiki.PageHome, nil, nil)
	send(m, tea.WindowSizeMsg{Width: 80, Height: 30}, runes("t"), runes("T"))
	if !m.session.Sidebars.Left || !m.session.Sidebars.Right {
		t.Fatalf("both sidebars should be open: %+v", m.session.Sidebars)
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "░") {
		t.Fatalf("backdrop missing from narrow overlay view")
	}

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.session.Sidebars.AnyOpen() {
		t.Fatalf("esc should close both sidebars: %+v", m.session.Sidebars)
	}
}

func TestToggleRightTwiceRestores(t *testing.T) {
	m := newTestModel(t, wiki.PageHome, nil, nil)
	send(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	before := m.session.Sidebars
	send(m, runes("T"), runes("T"))
	if m.session.Sidebars != before {
		t.Fatalf("sidebars = %+v, want %+v", m.session.Sidebars, before)
	}
}

func TestWideLayoutShowsBothPanels(t *testing.T) {
	m := newTestModel(t, wiki.PageArticle, nil, nil)
	send(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	view := ansi.Strip(m.View())
	for _, want := range []string{"NAVIGATION", "Unit Files", "› Service Units", "ArchWiki", "GFDL"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if strings.Contains(view, "░") {
		t.Fatalf("wide layout should not draw a backdrop")
	}
}

func TestThemeToggleSavesPreference(t *testing.T) {
	store := &themeRecorder{}
	m := newTestModel(t, wiki.PageHome, nil, nil)
	m.store = store
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	cmd := send(m, runes("d"))
	if m.session.Theme != wiki.ThemeLight {
		t.Fatalf("theme = %v, want light", m.session.Theme)
	}
	if m.renderer.Theme() != wiki.ThemeLight {
		t.Fatalf("renderer not rebuilt for the new theme")
	}
	if cmd == nil {
		t.Fatalf("expected a save command")
	}
	send(m, cmd())
	if len(store.saved) != 1 || store.saved[0] != wiki.ThemeLight {
		t.Fatalf("saved = %v", store.saved)
	}
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
}

func TestThemeSaveFailureIsReported(t *testing.T) {
	m := newTestModel(t, wiki.PageHome, nil, nil)
	m.store = &themeRecorder{err: errors.New("read-only")}
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	cmd := send(m, runes("d"))
	send(m, cmd())
	if m.err == nil || !strings.Contains(m.err.Error(), "read-only") {
		t.Fatalf("err = %v", m.err)
	}
}

func TestCopyShowsFeedbackUntilExpiry(t *testing.T) {
	var copied []string
	w := clipboard.WriterFunc(func(s string) error {
		copied = append(copied, s)
		return nil
	})
	ticks := &pendingTicks{}
	m := newTestModel(t, wiki.PageArticle, w, ticks)
	send(m, tea.WindowSizeMsg{Width: 120, Height: 60})

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedBlock != "article-code-1" {
		t.Fatalf("focused = %q", m.focusedBlock)
	}
	cmd := send(m, runes("y"))
	if cmd == nil {
		t.Fatalf("expected copy command")
	}
	send(m, cmd())

	if len(copied) != 1 || !strings.HasPrefix(copied[0], "[Unit]\nDescription=My custom startup script") {
		t.Fatalf("clipboard got %q", copied)
	}
	if m.copyState("article-code-1") != copystate.Copied {
		t.Fatalf("state = %v, want copied", m.copyState("article-code-1"))
	}
	if !strings.Contains(ansi.Strip(m.page.Content), "Copied!") {
		t.Fatalf("rendered page lacks the Copied! label")
	}

	if len(ticks.fns) != 1 {
		t.Fatalf("expected one scheduled expiry, got %d", len(ticks.fns))
	}
	send(m, ticks.fns[0](time.Now()))
	if m.copyState("article-code-1") != copystate.Idle {
		t.Fatalf("state after expiry = %v", m.copyState("article-code-1"))
	}
	if strings.Contains(ansi.Strip(m.page.Content), "Copied!") {
		t.Fatalf("Copied! label should be gone after expiry")
	}
}

func TestRecopyIgnoresFirstExpiry(t *testing.T) {
	w := clipboard.WriterFunc(func(string) error { return nil })
	ticks := &pendingTicks{}
	m := newTestModel(t, wiki.PageArticle, w, ticks)
	send(m, tea.WindowSizeMsg{Width: 120, Height: 60}, tea.KeyMsg{Type: tea.KeyTab})

	send(m, send(m, runes("y"))())
	send(m, send(m, runes("y"))())
	if len(ticks.fns) != 2 {
		t.Fatalf("expected two scheduled expiries, got %d", len(ticks.fns))
	}
	send(m, ticks.fns[0](time.Now()))
	if m.copyState("article-code-1") != copystate.Copied {
		t.Fatalf("first expiry must not reset a newer copy")
	}
	send(m, ticks.fns[1](time.Now()))
	if m.copyState("article-code-1") != copystate.Idle {
		t.Fatalf("second expiry should reset the block")
	}
}

func TestCopyFailureShowsError(t *testing.T) {
	w := clipboard.WriterFunc(func(string) error { return errors.New("no clipboard") })
	m := newTestModel(t, wiki.PageArticle, w, &pendingTicks{})
	send(m, tea.WindowSizeMsg{Width: 120, Height: 60}, tea.KeyMsg{Type: tea.KeyTab})
	send(m, send(m, runes("c"))())

	if m.copyState("article-code-1") != copystate.Idle {
		t.Fatalf("failed copy must stay idle")
	}
	if m.err == nil || !strings.Contains(m.err.Error(), "no clipboard") {
		t.Fatalf("err = %v", m.err)
	}
	if !strings.Contains(ansi.Strip(m.statusView()), "copy failed") {
		t.Fatalf("status line should show the failure")
	}
}

func TestTabCyclesCodeBlocks(t *testing.T) {
	m := newTestModel(t, wiki.PageArticle, nil, nil)
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	blocks := m.doc.CodeBlocks()
	if len(blocks) < 2 {
		t.Fatalf("article should have two code blocks")
	}
	send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedBlock != blocks[1].ID {
		t.Fatalf("focused = %q, want %q", m.focusedBlock, blocks[1].ID)
	}
	send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedBlock != blocks[0].ID {
		t.Fatalf("tab should wrap to the first block, got %q", m.focusedBlock)
	}
	send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedBlock != blocks[len(blocks)-1].ID {
		t.Fatalf("shift+tab should wrap to the last block, got %q", m.focusedBlock)
	}
}

func TestFindInPage(t *testing.T) {
	m := newTestModel(t, wiki.PageArticle, nil, nil)
	send(m, tea.WindowSizeMsg{Width: 120, Height: 20}, runes("/"))
	if !m.searchActive {
		t.Fatalf("/ should open the find bar")
	}
	send(m, runes("WantedBy"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.searchActive {
		t.Fatalf("enter should close the find bar")
	}
	if len(m.searchMatches) == 0 {
		t.Fatalf("expected matches for WantedBy")
	}
	if !strings.Contains(m.searchStatusLine(), "(1/") {
		t.Fatalf("status = %q", m.searchStatusLine())
	}

	send(m, runes("/"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes("zzzz-nothing"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.err == nil {
		t.Fatalf("missing match should be reported")
	}
}

func TestJumpToHeading(t *testing.T) {
	m := newTestModel(t, wiki.PageArticle, nil, nil)
	send(m, tea.WindowSizeMsg{Width: 140, Height: 15})
	last := len(m.doc.TOC) - 1
	if !m.jumpToHeading(last) {
		t.Fatalf("heading %q not found", m.doc.TOC[last].Title)
	}
	if m.contentVP.YOffset == 0 {
		t.Fatalf("content did not scroll")
	}
}

func TestPageChangeReloadsActivePage(t *testing.T) {
	src := fstest.MapFS{
		"home.md": &fstest.MapFile{Data: []byte("# First\n\nbody\n")},
	}
	m := NewModel(State{
		Session: wiki.NewSession(wiki.PageHome, wiki.ThemeDark),
		Library: content.NewLibrary(src),
	})
	send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.doc.Title != "First" {
		t.Fatalf("title = %q", m.doc.Title)
	}

	src["home.md"] = &fstest.MapFile{Data: []byte("# Second\n\nbody\n")}
	send(m, pageChangedMsg{page: wiki.PageHome})
	if m.doc.Title != "Second" {
		t.Fatalf("title after change = %q", m.doc.Title)
	}
	if !strings.Contains(ansi.Strip(m.page.Content), "Second") {
		t.Fatalf("content not re-rendered")
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, wiki.PageHome, nil, nil)
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40}, runes("?"))
	if !strings.Contains(ansi.Strip(m.View()), "Keyboard shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Fatalf("esc should close help")
	}
}

func TestFormatNavLabel(t *testing.T) {
	root, err := tree.Build(tree.DefaultMenu())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	tests := []struct {
		path string
		want string
	}{
		{"Navigation", "NAVIGATION"},
		{"Navigation/Main page", "  Main page"},
		{"Categories/Installation", "▾ Installation"},
		{"Categories/System", "▸ System"},
		{"Categories/Installation/Systemd", "    Systemd"},
	}
	for _, tt := range tests {
		node := root
		for _, part := range strings.Split(tt.path, "/") {
			node = node.ChildByLabel(part)
			if node == nil {
				t.Fatalf("%s: missing", tt.path)
			}
		}
		if got := formatNavLabel(node); got != tt.want {
			t.Errorf("formatNavLabel(%s) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
