package ui

import (
	"strings"

	"github.com/jesspatton/arctree/tree"
)

// DisplayNode is one row of the explorer.
type DisplayNode struct {
	Node        *tree.Node
	DisplayName string
	Depth       int
	// Path is the full slash separated path from the root.
	Path string
}

// flattenNodes lists the tree in pre-order, one row per node below the root.
// Chains are already merged by compression, so rows map one to one onto
// nodes.
func flattenNodes(b *tree.Builder) []DisplayNode {
	nodes := []DisplayNode{}
	if b == nil {
		return nodes
	}

	_ = b.Walk(tree.VisitorFunc(func(n *tree.Node, depth int) error {
		name := n.ID()
		if n.Type() == tree.Directory {
			name += "/"
		}
		nodes = append(nodes, DisplayNode{
			Node:        n,
			DisplayName: name,
			Depth:       depth,
			Path:        n.Path(),
		})
		return nil
	}))
	return nodes
}

// matchNodes returns the indexes of the rows whose name contains query,
// ignoring case.
func matchNodes(nodes []DisplayNode, query string) []int {
	matches := []int{}
	if query == "" {
		return matches
	}
	lowerQuery := strings.ToLower(query)
	for i, node := range nodes {
		if strings.Contains(strings.ToLower(node.DisplayName), lowerQuery) {
			matches = append(matches, i)
		}
	}
	return matches
}

// highlightMatches wraps every case-insensitive occurrence of query in name
// with render.
func highlightMatches(name, query string, render func(string) string) string {
	if query == "" {
		return name
	}
	lowerName := strings.ToLower(name)
	lowerQuery := strings.ToLower(query)
	if len(lowerName) != len(name) {
		// case folding changed byte offsets, indexes would not line up
		return name
	}

	var sb strings.Builder
	lastIdx := 0
	for {
		idx := strings.Index(lowerName[lastIdx:], lowerQuery)
		if idx == -1 {
			sb.WriteString(name[lastIdx:])
			break
		}
		idx += lastIdx
		sb.WriteString(name[lastIdx:idx])
		sb.WriteString(render(name[idx : idx+len(lowerQuery)]))
		lastIdx = idx + len(lowerQuery)
	}
	return sb.String()
}
