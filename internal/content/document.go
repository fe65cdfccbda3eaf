package content

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/kyaoi/wikiview/internal/wiki"
)

// BlockKind distinguishes the pieces a page is assembled from.
type BlockKind int

const (
	BlockMarkdown BlockKind = iota
	BlockCode
	BlockCallout
)

// CalloutKind selects the icon and colour of a callout box.
type CalloutKind int

const (
	CalloutNote CalloutKind = iota
	CalloutTip
	CalloutWarning
)

func (c CalloutKind) String() string {
	switch c {
	case CalloutTip:
		return "tip"
	case CalloutWarning:
		return "warning"
	default:
		return "note"
	}
}

var calloutKinds = map[string]CalloutKind{
	"note":    CalloutNote,
	"tip":     CalloutTip,
	"warning": CalloutWarning,
}

// Block is one renderable piece of a page. Text holds markdown for
// BlockMarkdown and BlockCallout, and the literal sample for BlockCode.
type Block struct {
	Kind     BlockKind
	ID       string
	Title    string
	Language string
	Callout  CalloutKind
	Text     string
}

// TOCEntry is one line of the table of contents sidebar.
type TOCEntry struct {
	Title  string `yaml:"title"`
	Nested bool   `yaml:"nested"`
	Active bool   `yaml:"active"`
}

// Document is a parsed page.
type Document struct {
	Page     wiki.Page
	Title    string
	TOCTitle string
	TOC      []TOCEntry
	Blocks   []Block
}

// CodeBlocks returns the code blocks in page order.
func (d *Document) CodeBlocks() []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.Kind == BlockCode {
			out = append(out, b)
		}
	}
	return out
}

// CodeBlock looks up a code block by ID.
func (d *Document) CodeBlock(id string) (Block, bool) {
	for _, b := range d.Blocks {
		if b.Kind == BlockCode && b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

type meta struct {
	Title    string     `yaml:"title"`
	TOCTitle string     `yaml:"toc_title"`
	TOC      []TOCEntry `yaml:"toc"`
}

var titleAttr = regexp.MustCompile(`title="([^"]*)"`)

// Parse splits a page into markdown, code and callout blocks. Top-level
// fences whose info string starts with note, tip or warning become callouts;
// every other fence becomes a code block with a copy button.
func Parse(page wiki.Page, src []byte) (*Document, error) {
	var m meta
	body, err := frontmatter.Parse(bytes.NewReader(src), &m)
	if err != nil {
		return nil, fmt.Errorf("parsing front matter of %s: %w", page.Slug(), err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(body))

	doc := &Document{
		Page:     page,
		Title:    m.Title,
		TOCTitle: m.TOCTitle,
		TOC:      m.TOC,
	}

	var headings []TOCEntry
	cursor := 0
	codeCount := 0
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(nodeText(node, body))
			if node.Level == 1 && doc.Title == "" {
				doc.Title = title
			}
			if node.Level == 2 || node.Level == 3 {
				headings = append(headings, TOCEntry{Title: title, Nested: node.Level == 3})
			}
		case *ast.FencedCodeBlock:
			start, end, ok := fenceBounds(node, body)
			if !ok {
				continue
			}
			doc.appendMarkdown(body[cursor:start])
			block := fenceBlock(node, body)
			if block.Kind == BlockCode {
				codeCount++
				block.ID = fmt.Sprintf("%s-code-%d", page.Slug(), codeCount)
			}
			doc.Blocks = append(doc.Blocks, block)
			cursor = end
		}
	}
	doc.appendMarkdown(body[cursor:])

	if doc.Title == "" {
		doc.Title = page.Slug()
	}
	if len(doc.TOC) == 0 {
		doc.TOC = headings
	}
	if doc.TOCTitle == "" {
		doc.TOCTitle = "Contents"
	}
	return doc, nil
}

func (d *Document) appendMarkdown(src []byte) {
	if len(bytes.TrimSpace(src)) == 0 {
		return
	}
	d.Blocks = append(d.Blocks, Block{Kind: BlockMarkdown, Text: string(src)})
}

func fenceBlock(n *ast.FencedCodeBlock, src []byte) Block {
	var info string
	if n.Info != nil {
		info = strings.TrimSpace(string(n.Info.Segment.Value(src)))
	}
	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(src))
	}
	body := strings.TrimSuffix(code.String(), "\n")

	word, rest, _ := strings.Cut(info, " ")
	if kind, ok := calloutKinds[strings.ToLower(word)]; ok {
		title := strings.TrimSpace(rest)
		if title == "" {
			title = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
		return Block{Kind: BlockCallout, Callout: kind, Title: title, Text: body}
	}

	title := word
	if match := titleAttr.FindStringSubmatch(info); match != nil {
		title = match[1]
	}
	if title == "" {
		title = "Code"
	}
	return Block{Kind: BlockCode, Title: title, Language: word, Text: body}
}

// fenceBounds returns the byte range of a fenced block including its opening
// and closing fence lines.
func fenceBounds(n *ast.FencedCodeBlock, src []byte) (int, int, bool) {
	lines := n.Lines()
	var anchor int
	switch {
	case n.Info != nil:
		anchor = n.Info.Segment.Start
	case lines.Len() > 0:
		anchor = lines.At(0).Start - 1
	default:
		return 0, 0, false
	}
	if anchor < 0 || anchor > len(src) {
		return 0, 0, false
	}
	start := bytes.LastIndexByte(src[:anchor], '\n') + 1

	var p int
	if lines.Len() > 0 {
		p = lines.At(lines.Len() - 1).Stop
	} else {
		p = anchor
	}
	if p > 0 && p <= len(src) && src[p-1] != '\n' {
		p = lineEnd(src, p)
	}
	if p >= len(src) {
		return start, len(src), true
	}
	closing := strings.TrimSpace(string(src[p:lineEnd(src, p)]))
	if strings.HasPrefix(closing, "```") || strings.HasPrefix(closing, "~~~") {
		return start, lineEnd(src, p), true
	}
	return start, p, true
}

// lineEnd returns the index just past the newline ending the line at p.
func lineEnd(src []byte, p int) int {
	if i := bytes.IndexByte(src[p:], '\n'); i >= 0 {
		return p + i + 1
	}
	return len(src)
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
			continue
		}
		b.WriteString(nodeText(c, src))
	}
	return b.String()
}
