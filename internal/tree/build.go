package tree

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kyaoi/wikiview/internal/wiki"
)

//go:embed nav.yaml
var defaultNav []byte

// Item is the YAML form of a navigation entry.
type Item struct {
	Label    string `yaml:"label"`
	Page     string `yaml:"page,omitempty"`
	Open     *bool  `yaml:"open,omitempty"`
	Children []Item `yaml:"children,omitempty"`
}

// Menu is the navigation configuration: a list of sections.
type Menu struct {
	Sections []Item `yaml:"sections"`
}

// ParseMenu decodes a YAML navigation file.
func ParseMenu(data []byte) (Menu, error) {
	var m Menu
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Menu{}, fmt.Errorf("parsing navigation: %w", err)
	}
	return m, nil
}

// DefaultMenu returns the built-in navigation.
func DefaultMenu() Menu {
	m, err := ParseMenu(defaultNav)
	if err != nil {
		panic(err)
	}
	return m
}

// Build constructs the navigation tree. Every page reference must name a
// known page. Groups start open unless configured otherwise.
func Build(menu Menu) (*Node, error) {
	root := NewRoot()
	for _, section := range menu.Sections {
		if err := addItem(root, section); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func addItem(parent *Node, item Item) error {
	if item.Label == "" {
		return fmt.Errorf("navigation entry under %q has no label", parent.Path())
	}
	var slug string
	if item.Page != "" {
		page, err := wiki.ParsePage(item.Page)
		if err != nil {
			return fmt.Errorf("navigation entry %q: %w", item.Label, err)
		}
		slug = page.Slug()
	}
	node := &Node{
		Label: item.Label,
		Page:  slug,
		Open:  item.Open == nil || *item.Open,
	}
	parent.AddChild(node)
	for _, child := range item.Children {
		if err := addItem(node, child); err != nil {
			return err
		}
	}
	return nil
}
