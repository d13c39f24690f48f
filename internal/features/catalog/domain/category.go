package domain

import (
	"bytes"
	"strconv"
)

// CategoryID tolerates the backend emitting ids as numbers or numeric
// strings. Anything else decodes to zero, which BuildTree treats as an
// invalid row and filters out.
type CategoryID int

// UnmarshalJSON accepts 12, "12", null and invalid values. It never
// fails; invalid input yields the zero id.
func (c *CategoryID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil || n < 0 {
		*c = 0
		return nil
	}
	*c = CategoryID(n)
	return nil
}

// Valid reports whether the id identifies a real category.
func (c CategoryID) Valid() bool {
	return c > 0
}

// Category is a flat category row as the backend returns it.
type Category struct {
	ID           CategoryID  `json:"id"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Description  string      `json:"description,omitempty"`
	ParentID     *CategoryID `json:"parent_id"`
	ProductCount int         `json:"product_count,omitempty"`
}

// CategoryNode is a category with its resolved children.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

// BuildTree turns a flat category list into a forest. Two passes: first
// every valid row gets a node, then each node attaches to its parent.
// Rows with invalid ids are skipped. A node whose parent id does not
// resolve is dropped entirely rather than promoted to a root, so a
// partially synced list never shows a subtree in the wrong place.
// Sibling order follows input order.
func BuildTree(categories []Category) []*CategoryNode {
	nodes := make(map[CategoryID]*CategoryNode, len(categories))
	ordered := make([]*CategoryNode, 0, len(categories))

	for _, cat := range categories {
		if !cat.ID.Valid() {
			continue
		}
		node := &CategoryNode{Category: cat, Children: []*CategoryNode{}}
		nodes[cat.ID] = node
		ordered = append(ordered, node)
	}

	roots := make([]*CategoryNode, 0, len(ordered))
	for _, node := range ordered {
		if node.ParentID == nil || !node.ParentID.Valid() {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*node.ParentID]
		if !ok || parent == node {
			// Orphaned or self-referencing rows are dropped.
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// Flatten walks the forest depth-first and returns the flat rows. It is
// the inverse of BuildTree for well-formed input.
func Flatten(roots []*CategoryNode) []Category {
	out := make([]Category, 0, len(roots))
	var walk func(nodes []*CategoryNode)
	walk = func(nodes []*CategoryNode) {
		for _, node := range nodes {
			out = append(out, node.Category)
			walk(node.Children)
		}
	}
	walk(roots)
	return out
}
