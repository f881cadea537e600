package tree

// Visitor is called once per node during a pre-order walk.
type Visitor interface {
	Visit(node *Node, depth int) error
}

// VisitorFunc adapts a plain function to a Visitor.
type VisitorFunc func(node *Node, depth int) error

// Visit calls f(node, depth).
func (f VisitorFunc) Visit(node *Node, depth int) error {
	return f(node, depth)
}
