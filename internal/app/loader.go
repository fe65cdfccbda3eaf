package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kyaoi/wikiview/internal/clipboard"
	"github.com/kyaoi/wikiview/internal/config"
	"github.com/kyaoi/wikiview/internal/content"
	"github.com/kyaoi/wikiview/internal/prefs"
	"github.com/kyaoi/wikiview/internal/tree"
	"github.com/kyaoi/wikiview/internal/ui"
	"github.com/kyaoi/wikiview/internal/wiki"
)

// navFile is the optional navigation override inside the content directory.
const navFile = "nav.yaml"

// LoadInitialState prepares the UI state described by cfg. The returned
// cleanup stops the page watcher, if one was started.
func LoadInitialState(cfg *config.Config) (ui.State, func(), error) {
	noop := func() {}

	src, err := content.NewSource(cfg.ContentDir)
	if err != nil {
		return ui.State{}, noop, err
	}
	library := content.NewLibrary(src)

	nav, err := LoadNav(cfg.ContentDir)
	if err != nil {
		return ui.State{}, noop, err
	}

	writer, err := clipboard.New(cfg.Clipboard)
	if err != nil {
		return ui.State{}, noop, err
	}

	store := prefs.NewStore(cfg.PrefsPath)
	theme := store.Theme(cfg.InitialTheme())
	session := wiki.NewSession(cfg.Page(), theme)

	state := ui.State{
		Session:      session,
		Library:      library,
		Nav:          nav,
		Clipboard:    writer,
		CopyFeedback: cfg.CopyFeedback,
		Store:        store,
		NarrowWidth:  cfg.NarrowWidth,
		SidebarWidth: cfg.SidebarWidth,
	}

	cleanup := noop
	if cfg.Watch && cfg.ContentDir != "" {
		w, err := content.Watch(cfg.ContentDir)
		if err != nil {
			slog.Warn("page watcher disabled", "dir", cfg.ContentDir, "error", err)
		} else {
			state.Watcher = w
			cleanup = func() {
				if err := w.Close(); err != nil {
					slog.Warn("closing page watcher", "error", err)
				}
			}
		}
	}

	slog.Info("initial state loaded",
		"page", session.Page.Slug(),
		"theme", theme.String(),
		"content_dir", cfg.ContentDir,
		"watch", state.Watcher != nil,
		"clipboard", cfg.Clipboard,
	)
	return state, cleanup, nil
}

// LoadNav returns the navigation tree, read from nav.yaml in dir when that
// file exists and from the built-in menu otherwise.
func LoadNav(dir string) (*tree.Node, error) {
	menu := tree.DefaultMenu()
	if dir != "" {
		path := filepath.Join(dir, navFile)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			menu, err = tree.ParseMenu(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return tree.Build(menu)
}
