package wiki

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPage is returned when a slug does not name a page.
var ErrUnknownPage = errors.New("unknown page")

// Page selects which static document is displayed.
type Page int

const (
	PageHome Page = iota
	PageArticle
	PageCommunity
	PageInstallation
	PagePackages
)

var pageSlugs = [...]string{
	PageHome:         "home",
	PageArticle:      "article",
	PageCommunity:    "community",
	PageInstallation: "installation",
	PagePackages:     "pacman",
}

// Pages returns every page in navigation order.
func Pages() []Page {
	return []Page{PageHome, PageArticle, PageCommunity, PageInstallation, PagePackages}
}

// Slug returns the stable identifier used by content files and the CLI.
func (p Page) Slug() string {
	if p < 0 || int(p) >= len(pageSlugs) {
		return ""
	}
	return pageSlugs[p]
}

func (p Page) String() string {
	if s := p.Slug(); s != "" {
		return s
	}
	return fmt.Sprintf("Page(%d)", int(p))
}

// ParsePage maps a slug back to its page.
func ParsePage(slug string) (Page, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for i, s := range pageSlugs {
		if s == slug {
			return Page(i), nil
		}
	}
	return PageHome, fmt.Errorf("%w: %q", ErrUnknownPage, slug)
}
