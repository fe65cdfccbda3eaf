// Package content provides the static wiki pages. Pages ship embedded in the
// binary and may be overridden by markdown files in a directory.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kyaoi/wikiview/internal/wiki"
)

// ErrUnknownPage is returned for pages that have no source file.
var ErrUnknownPage = errors.New("page not found")

//go:embed pages/*.md
var embedded embed.FS

// Embedded returns the built-in pages, one <slug>.md file per page.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "pages")
	if err != nil {
		panic(err)
	}
	return sub
}

// Overlay serves files from upper and falls back to lower when upper does
// not have them.
func Overlay(upper, lower fs.FS) fs.FS {
	return overlayFS{upper: upper, lower: lower}
}

type overlayFS struct {
	upper fs.FS
	lower fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if o.upper != nil {
		f, err := o.upper.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return o.lower.Open(name)
}

// NewSource returns the embedded pages, overlaid with dir when it is set.
func NewSource(dir string) (fs.FS, error) {
	if dir == "" {
		return Embedded(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", dir)
	}
	return Overlay(os.DirFS(dir), Embedded()), nil
}

// Library parses pages on first use and caches the result. It is owned by
// the UI loop and is not safe for concurrent use.
type Library struct {
	src   fs.FS
	cache map[wiki.Page]*Document
}

// NewLibrary creates a library reading <slug>.md files from src.
func NewLibrary(src fs.FS) *Library {
	return &Library{
		src:   src,
		cache: make(map[wiki.Page]*Document),
	}
}

// Document returns the parsed page.
func (l *Library) Document(page wiki.Page) (*Document, error) {
	if doc, ok := l.cache[page]; ok {
		return doc, nil
	}
	if page.Slug() == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}
	data, err := fs.ReadFile(l.src, page.Slug()+".md")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPage, page.Slug())
		}
		return nil, fmt.Errorf("reading %s: %w", page.Slug(), err)
	}
	doc, err := Parse(page, data)
	if err != nil {
		return nil, err
	}
	l.cache[page] = doc
	return doc, nil
}

// Invalidate drops the cached copy of page so the next read reparses it.
func (l *Library) Invalidate(page wiki.Page) {
	delete(l.cache, page)
}
