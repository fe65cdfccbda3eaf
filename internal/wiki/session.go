// Package wiki holds the UI session state: the active page, the theme and
// the two sidebar flags.
package wiki

// Sidebars tracks the open/closed flags of the navigation (left) and table
// of contents (right) panels. The flags are independent; both may be open.
type Sidebars struct {
	Left  bool
	Right bool
}

func (s *Sidebars) ToggleLeft()  { s.Left = !s.Left }
func (s *Sidebars) ToggleRight() { s.Right = !s.Right }
func (s *Sidebars) CloseLeft()   { s.Left = false }
func (s *Sidebars) CloseRight()  { s.Right = false }

// CloseAll closes both panels. Used by the backdrop dismiss gesture.
func (s *Sidebars) CloseAll() {
	s.Left = false
	s.Right = false
}

// AnyOpen reports whether at least one panel is open.
func (s Sidebars) AnyOpen() bool {
	return s.Left || s.Right
}

// Session is the single owner of mutable UI state. The root model holds one
// and hands it to the views that need it.
type Session struct {
	Page     Page
	Theme    Theme
	Sidebars Sidebars
}

// NewSession starts on the given page and theme with both panels closed.
func NewSession(page Page, theme Theme) *Session {
	return &Session{Page: page, Theme: theme}
}

// Navigate selects a page and always closes the left panel afterwards.
func (s *Session) Navigate(page Page) {
	s.Page = page
	s.Sidebars.CloseLeft()
}

// ToggleTheme flips the theme and returns the new value.
func (s *Session) ToggleTheme() Theme {
	s.Theme = s.Theme.Toggle()
	return s.Theme
}
