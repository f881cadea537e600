package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

var (
	ErrNilNode        = errors.New("tree: nil node")
	ErrNilVisitor     = errors.New("tree: nil visitor")
	ErrDuplicateChild = errors.New("tree: duplicate child id")
	ErrInvalidSegment = errors.New("tree: invalid path segment")
	ErrInvalidType    = errors.New("tree: invalid node type")
	ErrRootImmutable  = errors.New("tree: root cannot be moved or relabelled")
	ErrCycle          = errors.New("tree: node cannot be moved below itself")

	// ErrSkipChildren may be returned by a Visitor to skip the children of
	// the node it was called with. Accept never returns it.
	ErrSkipChildren = errors.New("tree: skip children")
)

// Type tags a node as a file or a directory.
type Type int

const (
	// Unknown is only carried by the synthetic root.
	Unknown Type = iota
	// Directory is a node that may hold files and other directories.
	Directory
	// File is a leaf artifact.
	File
)

func (t Type) String() string {
	switch t {
	case Directory:
		return "directory"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

func (t Type) valid() bool {
	return t == Directory || t == File
}

// Node is a named element of a path tree. Children keep first-seen order
// and are unique by id.
type Node struct {
	id       string
	typ      Type
	root     bool
	parent   *Node
	children *orderedmap.OrderedMap[string, *Node]
}

// NewRoot creates the synthetic root of a tree. It has no id and is never
// relabelled, moved or merged.
func NewRoot() *Node {
	return &Node{
		root:     true,
		children: orderedmap.NewOrderedMap[string, *Node](),
	}
}

func newNode(id string, typ Type) *Node {
	return &Node{
		id:       id,
		typ:      typ,
		children: orderedmap.NewOrderedMap[string, *Node](),
	}
}

// ID returns the node label. Compressed nodes carry a combined label such as
// "com/example/app".
func (n *Node) ID() string { return n.id }

// Type returns the type the node was created with.
func (n *Node) Type() Type { return n.typ }

// Parent returns the owning node, or nil for the root and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether n is the synthetic root.
func (n *Node) IsRoot() bool { return n.root }

// Len returns the number of direct children.
func (n *Node) Len() int { return n.children.Len() }

// Children returns a snapshot of the direct children in order. Mutating the
// tree does not affect a slice that was already returned.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, n.children.Len())
	for el := n.children.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// IsLast reports whether n is the last child of its parent.
func (n *Node) IsLast() bool {
	if n.parent == nil {
		return true
	}
	back := n.parent.children.Back()
	return back != nil && back.Value == n
}

// FindChild returns the direct child labelled id.
func (n *Node) FindChild(id string) (*Node, bool) {
	return n.children.Get(id)
}

// HasFileChild reports whether at least one direct child is a File.
func (n *Node) HasFileChild() bool {
	for el := n.children.Front(); el != nil; el = el.Next() {
		if el.Value.typ == File {
			return true
		}
	}
	return false
}

// AddChild appends a new child labelled id and returns it.
func (n *Node) AddChild(id string, typ Type) (*Node, error) {
	if id == "" || strings.Contains(id, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSegment, id)
	}
	if !typ.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidType, typ)
	}
	if _, ok := n.children.Get(id); ok {
		return nil, fmt.Errorf("%w: %q under %q", ErrDuplicateChild, id, n.Path())
	}
	child := newNode(id, typ)
	n.attach(child)
	return child, nil
}

// Adopt moves child to the end of n's children, removing it from its
// previous parent first. Adopting an existing child moves it to the end.
func (n *Node) Adopt(child *Node) error {
	if child == nil {
		return ErrNilNode
	}
	if child.root {
		return ErrRootImmutable
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return fmt.Errorf("%w: %q", ErrCycle, child.id)
		}
	}
	if existing, ok := n.children.Get(child.id); ok && existing != child {
		return fmt.Errorf("%w: %q under %q", ErrDuplicateChild, child.id, n.Path())
	}
	child.detach()
	n.attach(child)
	return nil
}

// SetID relabels n in place, keeping its position among its siblings.
func (n *Node) SetID(id string) error {
	if n.root {
		return ErrRootImmutable
	}
	if id == "" {
		return fmt.Errorf("%w: %q", ErrInvalidSegment, id)
	}
	if id == n.id {
		return nil
	}
	p := n.parent
	if p == nil {
		n.id = id
		return nil
	}
	if _, ok := p.children.Get(id); ok {
		return fmt.Errorf("%w: %q under %q", ErrDuplicateChild, id, p.Path())
	}

	// orderedmap has no rename, rebuild it with the new key in place
	next := orderedmap.NewOrderedMap[string, *Node]()
	for el := p.children.Front(); el != nil; el = el.Next() {
		key := el.Key
		if el.Value == n {
			key = id
		}
		next.Set(key, el.Value)
	}
	p.children = next
	n.id = id
	return nil
}

// Path returns the slash-joined labels from the root down to n.
func (n *Node) Path() string {
	var parts []string
	for p := n; p != nil && !p.root; p = p.parent {
		parts = append(parts, p.id)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Accept walks n and its descendants in pre-order, n at depth 0.
func (n *Node) Accept(v Visitor) error {
	if n == nil {
		return ErrNilNode
	}
	if v == nil {
		return ErrNilVisitor
	}
	return n.accept(v, 0)
}

func (n *Node) accept(v Visitor, depth int) error {
	err := v.Visit(n, depth)
	if errors.Is(err, ErrSkipChildren) {
		return nil
	}
	if err != nil {
		return err
	}
	return n.acceptChildren(v, depth+1)
}

func (n *Node) acceptChildren(v Visitor, depth int) error {
	for _, child := range n.Children() {
		if err := child.accept(v, depth); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) attach(child *Node) {
	child.parent = n
	n.children.Set(child.id, child)
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	n.parent.children.Delete(n.id)
	n.parent = nil
}
