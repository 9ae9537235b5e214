package domain

import (
	"slices"
	"strings"
)

// TreeNode represents a node in the notes tree for navigation
type TreeNode struct {
	Entry      Entry
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// IsRoot reports whether n is the synthetic root returned by BuildTree
func (n *TreeNode) IsRoot() bool {
	return n.Parent == nil && n.Entry.ID == ""
}

// BuildTree nests a flat entry list under a synthetic root using ParentID.
// Entries whose parent is not in the list are attached to the root.
func BuildTree(entries []Entry) *TreeNode {
	root := &TreeNode{
		Entry:      Entry{Title: "Notes", IsFolder: true},
		IsExpanded: true,
	}

	nodes := make(map[string]*TreeNode, len(entries))
	for _, e := range entries {
		nodes[e.ID] = &TreeNode{Entry: e}
	}

	for _, e := range entries {
		node := nodes[e.ID]
		parent := root
		if e.ParentID != nil {
			if p, ok := nodes[*e.ParentID]; ok && p.Entry.IsFolder {
				parent = p
			}
		}
		node.Parent = parent
		parent.Children = append(parent.Children, node)
	}

	root.sortChildren()
	return root
}

// sortChildren orders folders before notes, then by title
func (n *TreeNode) sortChildren() {
	slices.SortFunc(n.Children, func(a, b *TreeNode) int {
		if a.Entry.IsFolder != b.Entry.IsFolder {
			if a.Entry.IsFolder {
				return -1
			}
			return 1
		}
		if c := strings.Compare(strings.ToLower(a.Entry.Title), strings.ToLower(b.Entry.Title)); c != 0 {
			return c
		}
		return strings.Compare(a.Entry.ID, b.Entry.ID)
	})
	for _, c := range n.Children {
		c.sortChildren()
	}
}

// Nest returns the top-level entries with Children populated recursively
func Nest(entries []Entry) []Entry {
	return BuildTree(entries).nested()
}

func (n *TreeNode) nested() []Entry {
	if len(n.Children) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(n.Children))
	for _, c := range n.Children {
		e := c.Entry
		e.Children = c.nested()
		out = append(out, e)
	}
	return out
}

// Find returns the node with the given id, or nil
func (n *TreeNode) Find(id string) *TreeNode {
	if n.Entry.ID == id && !n.IsRoot() {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}
