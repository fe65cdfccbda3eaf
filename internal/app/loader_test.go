package app

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/goleak"

	"github.com/kyaoi/wikiview/internal/config"
	"github.com/kyaoi/wikiview/internal/wiki"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.PrefsPath = filepath.Join(t.TempDir(), "prefs.yaml")
	cfg.Clipboard = "osc52"
	return cfg
}

func TestLoadInitialStateDefaults(t *testing.T) {
	cfg := testConfig(t)
	cfg.StartPage = "article"

	state, cleanup, err := LoadInitialState(cfg)
	if err != nil {
		t.Fatalf("LoadInitialState: %v", err)
	}
	defer cleanup()

	if state.Session.Page != wiki.PageArticle || state.Session.Theme != wiki.ThemeDark {
		t.Fatalf("session = %+v", state.Session)
	}
	if state.Session.Sidebars.AnyOpen() {
		t.Fatalf("sidebars should start closed")
	}
	if state.Watcher != nil {
		t.Fatalf("no watcher expected without a content dir")
	}
	if state.Nav == nil || state.Nav.FindPage("pacman") == nil {
		t.Fatalf("navigation tree missing pages")
	}
	if _, err := state.Library.Document(wiki.PageArticle); err != nil {
		t.Fatalf("library: %v", err)
	}
}

func TestLoadInitialStateUsesSavedTheme(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.PrefsPath, []byte("theme: light\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	state, cleanup, err := LoadInitialState(cfg)
	if err != nil {
		t.Fatalf("LoadInitialState: %v", err)
	}
	defer cleanup()
	if state.Session.Theme != wiki.ThemeLight {
		t.Fatalf("theme = %v, want the saved light theme", state.Session.Theme)
	}
}

func TestLoadInitialStateStartsWatcher(t *testing.T) {
	cfg := testConfig(t)
	cfg.ContentDir = t.TempDir()

	state, cleanup, err := LoadInitialState(cfg)
	if err != nil {
		t.Fatalf("LoadInitialState: %v", err)
	}
	if state.Watcher == nil {
		t.Fatalf("expected a watcher for the content dir")
	}
	cleanup()
}

func TestLoadInitialStateMissingContentDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.ContentDir = filepath.Join(t.TempDir(), "absent")
	if _, _, err := LoadInitialState(cfg); err == nil {
		t.Fatalf("expected an error for a missing content dir")
	}
}

func TestLoadNavOverride(t *testing.T) {
	dir := t.TempDir()
	menu := "sections:\n  - label: Only\n    children:\n      - label: Pacman\n        page: pacman\n"
	if err := os.WriteFile(filepath.Join(dir, "nav.yaml"), []byte(menu), 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := LoadNav(dir)
	if err != nil {
		t.Fatalf("LoadNav: %v", err)
	}
	if len(root.Children) != 1 || root.Children[0].Label != "Only" {
		t.Fatalf("override not applied: %+v", root.Children)
	}
}

func TestLoadNavRejectsUnknownPage(t *testing.T) {
	dir := t.TempDir()
	menu := "sections:\n  - label: Bad\n    children:\n      - label: X\n        page: nowhere\n"
	if err := os.WriteFile(filepath.Join(dir, "nav.yaml"), []byte(menu), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadNav(dir); err == nil {
		t.Fatalf("expected an error for an unknown page slug")
	}
}
