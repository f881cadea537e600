package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// ErrCompressed is returned by Add once the tree has been compressed.
// Combined labels no longer match single path segments.
var ErrCompressed = errors.New("tree: builder already compressed")

// Entry is one enumerated artifact: the directory segments leading to it and,
// for a File, the file name as the last segment.
type Entry struct {
	Segments []string
	Type     Type
}

// NewEntry splits a slash separated path into an Entry. Empty segments are
// dropped, so "a//b/" and "a/b" are the same entry.
func NewEntry(path string, typ Type) Entry {
	return Entry{Segments: SplitPath(path), Type: typ}
}

// SplitPath splits a slash separated path, dropping empty segments.
func SplitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// Stats counts the nodes below the root.
type Stats struct {
	Files       int
	Directories int
}

// Builder builds a path tree below a private synthetic root.
type Builder struct {
	root       *Node
	compressed bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{root: NewRoot()}
}

// Build inserts entries in order into a new Builder. The tree is not
// compressed.
func Build(entries []Entry) (*Builder, error) {
	b := NewBuilder()
	for _, e := range entries {
		if _, err := b.Add(e.Segments, e.Type); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Root returns the synthetic root.
func (b *Builder) Root() *Node { return b.root }

// Add inserts one entry and returns the node reached by its last segment.
// Shared prefixes resolve to the nodes already in the tree. Missing
// intermediate segments are created as directories and the last one with
// typ. A node that already exists keeps the type it was created with.
func (b *Builder) Add(segments []string, typ Type) (*Node, error) {
	if b.compressed {
		return nil, ErrCompressed
	}
	if !typ.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidType, typ)
	}
	for _, s := range segments {
		if s == "" || strings.Contains(s, "/") {
			return nil, fmt.Errorf("%w: %q in %q", ErrInvalidSegment, s, strings.Join(segments, "/"))
		}
	}
	if len(segments) == 0 {
		if typ == File {
			return nil, fmt.Errorf("%w: file entry without a name", ErrInvalidSegment)
		}
		return b.root, nil
	}

	node := b.root
	for depth, id := range segments {
		if child, ok := node.FindChild(id); ok {
			node = child
			continue
		}
		childType := Directory
		if depth == len(segments)-1 {
			childType = typ
		}
		child, err := node.AddChild(id, childType)
		if err != nil {
			return nil, err
		}
		node = child
	}
	return node, nil
}

// AddPath is Add for a slash separated path.
func (b *Builder) AddPath(path string, typ Type) (*Node, error) {
	return b.Add(SplitPath(path), typ)
}

// Compress merges every directory that holds no file directly into its
// parent. Its children take its place under combined labels, so the chain
// src -> main -> java -> com holding only directories becomes one node
// "src/main/java/com". Empty directories and the root are kept. Compressing
// an already compressed tree changes nothing.
//
// Compress checks every combined label before it changes anything, so a
// failed call leaves the tree as it was. Once it succeeds, Add is rejected
// with ErrCompressed.
func (b *Builder) Compress() error {
	if err := checkCompress(b.root); err != nil {
		return err
	}
	compress(b.root)
	b.compressed = true
	return nil
}

// placement is a node that survives compression and the label it will carry.
type placement struct {
	node *Node
	id   string
}

// placements returns the nodes that take n's place in its parent, labelled
// id and "<id>/<child>" for the children of a mergeable n. Merged nodes are
// appended to dropped when it is not nil. Nothing is modified.
func placements(n *Node, id string, dropped *[]*Node) []placement {
	if !mergeable(n) {
		return []placement{{node: n, id: id}}
	}
	if dropped != nil {
		*dropped = append(*dropped, n)
	}
	var out []placement
	for el := n.children.Front(); el != nil; el = el.Next() {
		out = append(out, placements(el.Value, id+"/"+el.Value.id, dropped)...)
	}
	return out
}

// checkCompress fails with ErrDuplicateChild if compressing n would give two
// siblings the same label.
func checkCompress(n *Node) error {
	seen := make(map[string]bool, n.children.Len())
	for el := n.children.Front(); el != nil; el = el.Next() {
		for _, p := range placements(el.Value, el.Value.id, nil) {
			if seen[p.id] {
				return fmt.Errorf("%w: %q under %q", ErrDuplicateChild, p.id, n.Path())
			}
			seen[p.id] = true
			if err := checkCompress(p.node); err != nil {
				return err
			}
		}
	}
	return nil
}

// compress rebuilds n's children in order, replacing each mergeable child
// with the nodes that survive it. checkCompress must have passed.
func compress(n *Node) {
	var (
		kept    []placement
		dropped []*Node
	)
	for el := n.children.Front(); el != nil; el = el.Next() {
		kept = append(kept, placements(el.Value, el.Value.id, &dropped)...)
	}
	for _, d := range dropped {
		d.parent = nil
		d.children = orderedmap.NewOrderedMap[string, *Node]()
	}

	children := orderedmap.NewOrderedMap[string, *Node]()
	for _, p := range kept {
		p.node.id = p.id
		p.node.parent = n
		children.Set(p.id, p.node)
	}
	n.children = children

	for _, p := range kept {
		compress(p.node)
	}
}

func mergeable(n *Node) bool {
	return !n.root && n.typ == Directory && n.Len() > 0 && !n.HasFileChild()
}

// Walk visits every node below the root in pre-order. The root's direct
// children are at depth 0.
func (b *Builder) Walk(v Visitor) error {
	if b == nil || b.root == nil {
		return ErrNilNode
	}
	if v == nil {
		return ErrNilVisitor
	}
	return b.root.acceptChildren(v, 0)
}

// Stats counts the files and directories currently in the tree.
func (b *Builder) Stats() Stats {
	var s Stats
	_ = b.Walk(VisitorFunc(func(n *Node, _ int) error {
		switch n.Type() {
		case File:
			s.Files++
		case Directory:
			s.Directories++
		}
		return nil
	}))
	return s
}
