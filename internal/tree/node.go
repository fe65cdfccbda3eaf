package tree

// Node represents a single entry in the navigation tree. Sections sit
// directly under the root and are always expanded; groups below them can be
// opened and closed. Entries without a page are shown but do nothing.
type Node struct {
	Label    string
	Page     string
	Open     bool
	Parent   *Node
	Children []*Node
}

// NewRoot creates the (hidden) root node.
func NewRoot() *Node {
	return &Node{Open: true}
}

// AddChild appends child and links it back to n.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// ChildByLabel returns the child node with the given label if it exists.
func (n *Node) ChildByLabel(label string) *Node {
	for _, child := range n.Children {
		if child.Label == label {
			return child
		}
	}
	return nil
}

// IsGroup reports whether the node has children.
func (n *Node) IsGroup() bool {
	return len(n.Children) > 0
}

// IsSection reports whether the node is a top-level section title.
func (n *Node) IsSection() bool {
	return n.Parent != nil && n.Parent.Parent == nil
}

// Collapsible reports whether the user may open and close the node.
func (n *Node) Collapsible() bool {
	return n.IsGroup() && !n.IsSection() && n.Parent != nil
}

// Depth is the distance from the root.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Path returns the labels from the first section down to n, joined by '/'.
func (n *Node) Path() string {
	if n.Parent == nil {
		return ""
	}
	parent := n.Parent.Path()
	if parent == "" {
		return n.Label
	}
	return parent + "/" + n.Label
}

// FindPage returns the first entry linking to page, or nil.
func (n *Node) FindPage(page string) *Node {
	if n.Page == page && page != "" {
		return n
	}
	for _, child := range n.Children {
		if found := child.FindPage(page); found != nil {
			return found
		}
	}
	return nil
}

// Visible returns the nodes shown when the tree is rendered: every section
// and its children, descending into groups only when they are open. The
// root itself is not included.
func (n *Node) Visible() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(node *Node) {
		for _, child := range node.Children {
			out = append(out, child)
			if child.IsSection() || child.Open {
				walk(child)
			}
		}
	}
	walk(n)
	return out
}

// Reveal opens every group on the way to node.
func (n *Node) Reveal() {
	for p := n.Parent; p != nil; p = p.Parent {
		p.Open = true
	}
}
