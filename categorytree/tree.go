// Package categorytree turns the flat category list into the nested forest
// used by hierarchical navigation and category pickers. It performs no I/O.
package categorytree

import (
	"sort"

	"rentatool-backend/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Node wraps a category with its resolved children.
type Node struct {
	models.Category
	Children []*Node `json:"children"`
}

// FlatNode is one entry of the depth-annotated pre-order flattening, used
// for indentation in selection widgets. Roots have depth 0.
type FlatNode struct {
	Node  *Node
	Depth int
}

// Build assembles the forest from a flat list. A category whose parentId is
// unset or does not resolve to a known category becomes a root. Sibling
// lists at every level are ordered by name under Polish case-insensitive
// collation. Categories on a cyclic parent chain are unreachable from any
// root and are dropped rather than recursed into.
func Build(categories []models.Category) []*Node {
	nodes := make(map[string]*Node, len(categories))
	for i := range categories {
		nodes[categories[i].ID] = &Node{Category: categories[i], Children: []*Node{}}
	}

	roots := []*Node{}
	for i := range categories {
		node := nodes[categories[i].ID]
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortSiblings(collate.New(language.Polish, collate.IgnoreCase), roots)
	return roots
}

func sortSiblings(c *collate.Collator, nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return c.CompareString(nodes[i].Name, nodes[j].Name) < 0
	})
	for _, n := range nodes {
		sortSiblings(c, n.Children)
	}
}

// Flatten produces the pre-order traversal of the forest with each node's
// depth. The input must come from Build; hand-built graphs with cycles are
// not supported.
func Flatten(tree []*Node) []FlatNode {
	out := []FlatNode{}
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			out = append(out, FlatNode{Node: n, Depth: depth})
			walk(n.Children, depth+1)
		}
	}
	walk(tree, 0)
	return out
}
