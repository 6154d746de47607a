package review

import (
	"sort"
	"strings"

	"github.com/zjrosen/vibekanban/internal/diff"
)

// Node is a directory or file in the file tree.
type Node struct {
	Name     string // last path component
	Path     string // display path from the root
	IsDir    bool
	Expanded bool
	Children []*Node // dirs first, then files, alphabetically
	Parent   *Node
	File     *diff.File // nil for directories
	Depth    int
}

// Tree holds the changed files of a workspace as a collapsible tree.
type Tree struct {
	Root []*Node

	byPath     map[string]*Node
	flattened  []*Node
	cacheValid bool
}

// NewTree builds a tree from files keyed by their display path. All
// directories start expanded; directories named in collapsed stay closed.
func NewTree(files []diff.File, multiRepo bool, collapsed map[string]bool) *Tree {
	t := &Tree{byPath: make(map[string]*Node)}
	for i := range files {
		t.add(files[i].DisplayPath(multiRepo), &files[i], collapsed)
	}
	sortNodes(t.Root)
	return t
}

func (t *Tree) add(path string, file *diff.File, collapsed map[string]bool) {
	parts := strings.Split(path, "/")

	var parent *Node
	current := ""
	for i, part := range parts[:len(parts)-1] {
		if current == "" {
			current = part
		} else {
			current += "/" + part
		}
		if existing, ok := t.byPath[current]; ok && existing.IsDir {
			parent = existing
			continue
		}
		dir := &Node{
			Name:     part,
			Path:     current,
			IsDir:    true,
			Expanded: !collapsed[current],
			Parent:   parent,
			Depth:    i,
		}
		t.byPath[current] = dir
		t.attach(parent, dir)
		parent = dir
	}

	leaf := &Node{
		Name:   parts[len(parts)-1],
		Path:   path,
		File:   file,
		Parent: parent,
		Depth:  len(parts) - 1,
	}
	t.byPath[path] = leaf
	t.attach(parent, leaf)
	t.cacheValid = false
}

func (t *Tree) attach(parent, n *Node) {
	if parent == nil {
		t.Root = append(t.Root, n)
		return
	}
	parent.Children = append(parent.Children, n)
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].IsDir != nodes[j].IsDir {
			return nodes[i].IsDir
		}
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
	for _, n := range nodes {
		if n.IsDir {
			sortNodes(n.Children)
		}
	}
}

// Visible returns the nodes shown with the current expansion state.
func (t *Tree) Visible() []*Node {
	if t.cacheValid {
		return t.flattened
	}
	flat := make([]*Node, 0, len(t.byPath))
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			flat = append(flat, n)
			if n.IsDir && n.Expanded {
				walk(n.Children)
			}
		}
	}
	walk(t.Root)
	t.flattened = flat
	t.cacheValid = true
	return t.flattened
}

// Files returns every file in tree display order, ignoring collapse state.
// This is the order of the diff pane.
func (t *Tree) Files() []*diff.File {
	var out []*diff.File
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.IsDir {
				walk(n.Children)
				continue
			}
			out = append(out, n.File)
		}
	}
	walk(t.Root)
	return out
}

// Paths returns the display paths of Files.
func (t *Tree) Paths() []string {
	var out []string
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.IsDir {
				walk(n.Children)
				continue
			}
			out = append(out, n.Path)
		}
	}
	walk(t.Root)
	return out
}

// Node returns the node at path.
func (t *Tree) Node(path string) (*Node, bool) {
	n, ok := t.byPath[path]
	return n, ok
}

// Toggle flips a directory's expansion. Files are left alone.
func (t *Tree) Toggle(n *Node) bool {
	if n == nil || !n.IsDir {
		return false
	}
	n.Expanded = !n.Expanded
	t.cacheValid = false
	return true
}

// SetExpanded sets a directory's expansion and reports whether it changed.
func (t *Tree) SetExpanded(n *Node, expanded bool) bool {
	if n == nil || !n.IsDir || n.Expanded == expanded {
		return false
	}
	n.Expanded = expanded
	t.cacheValid = false
	return true
}

// SetAllExpanded expands or collapses every directory.
func (t *Tree) SetAllExpanded(expanded bool) {
	for _, n := range t.byPath {
		if n.IsDir {
			n.Expanded = expanded
		}
	}
	t.cacheValid = false
}

// Collapsed returns the paths of collapsed directories, for carrying the
// expansion state across a reload.
func (t *Tree) Collapsed() map[string]bool {
	out := make(map[string]bool)
	for p, n := range t.byPath {
		if n.IsDir && !n.Expanded {
			out[p] = true
		}
	}
	return out
}

// VisibleIndex returns the row of path, or of its closest visible ancestor
// when a collapsed directory hides it.
func (t *Tree) VisibleIndex(path string) (int, bool) {
	n, ok := t.byPath[path]
	if !ok {
		return 0, false
	}
	visible := t.Visible()
	for ; n != nil; n = n.Parent {
		for i, v := range visible {
			if v == n {
				return i, true
			}
		}
	}
	return 0, false
}

// Stats sums additions and deletions below n.
func (n *Node) Stats() (additions, deletions int) {
	if !n.IsDir {
		if n.File != nil {
			return n.File.Additions, n.File.Deletions
		}
		return 0, 0
	}
	for _, c := range n.Children {
		a, d := c.Stats()
		additions += a
		deletions += d
	}
	return additions, deletions
}

// Contains reports whether path is n or below it.
func (n *Node) Contains(path string) bool {
	return path == n.Path || (n.IsDir && strings.HasPrefix(path, n.Path+"/"))
}
