// Package tree builds a nested file tree from flat path entries.
package tree

import (
	"errors"
	"strings"

	"github.com/thatbeautifuldream/local-first-explorer/internal/fs"
)

// ErrMultipleRoots is returned when entries span more than one top-level
// segment. The directory scanner guarantees a single shared segment, so
// this only fires on malformed input.
var ErrMultipleRoots = errors.New("entries span multiple top-level segments")

// Node types.
const (
	TypeFile      = "file"
	TypeDirectory = "directory"
)

// Node represents a file or directory in the tree. Directory children are
// unique by name and keep first-seen order.
type Node struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Path     string  `json:"path"`
	Children []*Node `json:"children,omitempty"`
}

// Build produces a single rooted tree from flat entries. Entries are
// processed in slice order: for every path segment except the last, a
// directory child is found or created by name; the last segment becomes a
// file leaf holding the full original path. An empty slice yields a nil
// tree.
func Build(entries []fs.Entry) (*Node, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	// Synthetic root, discarded once its single child is extracted
	root := &Node{Type: TypeDirectory}

	for _, e := range entries {
		segments := strings.Split(e.Path, "/")
		node := root
		for i, seg := range segments[:len(segments)-1] {
			node = node.childDir(seg, strings.Join(segments[:i+1], "/"))
		}
		node.Children = append(node.Children, &Node{
			Name: segments[len(segments)-1],
			Type: TypeFile,
			Path: e.Path,
		})
	}

	if len(root.Children) > 1 {
		return nil, ErrMultipleRoots
	}
	return root.Children[0], nil
}

// childDir finds an existing child by name or appends a new directory
// child. Matching is by name only, so two paths sharing a prefix resolve
// to the same node.
func (n *Node) childDir(name, path string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	c := &Node{Name: name, Type: TypeDirectory, Path: path}
	n.Children = append(n.Children, c)
	return c
}

// Walk visits every node depth-first using an explicit stack, so deep
// trees cannot grow the call stack.
func Walk(root *Node, fn func(*Node)) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Find returns the node with the given path, or nil.
func Find(root *Node, path string) *Node {
	if root == nil {
		return nil
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Path == path {
			return n
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return nil
}

// CountFiles returns the number of file leaves in the tree.
func CountFiles(root *Node) int {
	count := 0
	Walk(root, func(n *Node) {
		if n.Type == TypeFile {
			count++
		}
	})
	return count
}
