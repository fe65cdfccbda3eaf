package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings of the viewer.
type KeyMap struct {
	Quit         key.Binding
	Help         key.Binding
	FocusNav     key.Binding
	FocusContent key.Binding
	ToggleNav    key.Binding
	ToggleTOC    key.Binding
	CloseAll     key.Binding
	Theme        key.Binding
	Search       key.Binding
	NextMatch    key.Binding
	PrevMatch    key.Binding
	NextBlock    key.Binding
	PrevBlock    key.Binding
	Copy         key.Binding
	Home         key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		FocusNav:     key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "focus navigation")),
		FocusContent: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "focus content")),
		ToggleNav:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle navigation")),
		ToggleTOC:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "toggle contents")),
		CloseAll:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close sidebars")),
		Theme:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "light/dark theme")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find in page")),
		NextMatch:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch:    key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous match")),
		NextBlock:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next code block")),
		PrevBlock:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous code block")),
		Copy:         key.NewBinding(key.WithKeys("y", "c"), key.WithHelp("y/c", "copy code block")),
		Home:         key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "main page")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.ToggleNav, k.ToggleTOC, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusNav, k.FocusContent, k.ToggleNav, k.ToggleTOC, k.CloseAll, k.Home},
		{k.NextBlock, k.PrevBlock, k.Copy, k.Search, k.NextMatch, k.PrevMatch},
		{k.Theme, k.Help, k.Quit},
	}
}
