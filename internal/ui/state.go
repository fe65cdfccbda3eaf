package ui

import (
	"time"

	zone "github.com/lrstanley/bubblezone"

	"github.com/kyaoi/wikiview/internal/clipboard"
	"github.com/kyaoi/wikiview/internal/content"
	"github.com/kyaoi/wikiview/internal/copystate"
	"github.com/kyaoi/wikiview/internal/tree"
	"github.com/kyaoi/wikiview/internal/wiki"
)

// ThemeStore persists the theme after each toggle.
type ThemeStore interface {
	SaveTheme(wiki.Theme) error
}

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Session      *wiki.Session
	Library      *content.Library
	Nav          *tree.Node
	Clipboard    clipboard.Writer
	CopyFeedback time.Duration
	// CopyScheduler replaces tea.Tick for copy feedback expiry when set.
	CopyScheduler copystate.Scheduler
	Store        ThemeStore
	Watcher      *content.Watcher
	Zone         *zone.Manager
	NarrowWidth  int
	SidebarWidth int
}
