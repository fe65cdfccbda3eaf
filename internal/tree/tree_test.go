package tree

import (
	"errors"
	"testing"

	"github.com/kyaoi/wikiview/internal/wiki"
)

func TestDefaultMenuLinksEveryPage(t *testing.T) {
	root, err := Build(DefaultMenu())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, p := range wiki.Pages() {
		if root.FindPage(p.Slug()) == nil {
			t.Fatalf("no navigation entry for %s", p)
		}
	}
	if len(root.Children) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(root.Children))
	}
}

func TestVisibleHonoursOpenGroups(t *testing.T) {
	root, err := Build(DefaultMenu())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	pacman := root.FindPage("pacman")
	system := pacman.Parent
	if system.Open {
		t.Fatalf("System group should start closed")
	}
	if contains(root.Visible(), pacman) {
		t.Fatalf("entry inside closed group is visible")
	}
	if !contains(root.Visible(), system) {
		t.Fatalf("closed group itself should be visible")
	}

	pacman.Reveal()
	if !contains(root.Visible(), pacman) {
		t.Fatalf("Reveal did not open parent group")
	}
}

func TestNodeKinds(t *testing.T) {
	root, err := Build(DefaultMenu())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	nav := root.ChildByLabel("Navigation")
	if nav == nil || !nav.IsSection() || nav.Collapsible() {
		t.Fatalf("Navigation should be a non-collapsible section")
	}
	install := root.ChildByLabel("Categories").ChildByLabel("Installation")
	if install == nil || !install.Collapsible() || install.Depth() != 2 {
		t.Fatalf("Installation should be a collapsible group at depth 2")
	}
	if got := install.ChildByLabel("Systemd").Path(); got != "Categories/Installation/Systemd" {
		t.Fatalf("Path = %q", got)
	}
	inert := nav.ChildByLabel("Recent changes")
	if inert == nil || inert.Page != "" || inert.IsGroup() {
		t.Fatalf("Recent changes should be an inert entry")
	}
}

func TestBuildRejectsUnknownPage(t *testing.T) {
	menu, err := ParseMenu([]byte("sections:\n  - label: A\n    children:\n      - label: B\n        page: nowhere\n"))
	if err != nil {
		t.Fatalf("ParseMenu: %v", err)
	}
	if _, err := Build(menu); !errors.Is(err, wiki.ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}

	if _, err := Build(Menu{Sections: []Item{{}}}); err == nil {
		t.Fatalf("expected error for missing label")
	}
	if _, err := ParseMenu([]byte("sections: [")); err == nil {
		t.Fatalf("expected YAML error")
	}
}

func contains(nodes []*Node, n *Node) bool {
	for _, node := range nodes {
		if node == n {
			return true
		}
	}
	return false
}
