package scene

import (
	"strings"
)

// Node is a named scene object that owns components and child nodes.
type Node struct {
	name       string
	inactive   bool
	destroyed  bool
	parent     *Node
	components []any
	children   []*Node
}

// attachable is implemented by components that want to know their node.
type attachable interface {
	attach(n *Node)
}

// NewNode creates an active node owning components.
func NewNode(name string, components ...any) *Node {
	n := &Node{name: name}
	for _, c := range components {
		n.AddComponent(c)
	}
	return n
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Path returns the slash-separated names from the root to n.
func (n *Node) Path() string {
	parts := []string{n.name}
	for p := n.parent; p != nil; p = p.parent {
		parts = append(parts, p.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Parent returns the parent node, nil for roots.
func (n *Node) Parent() *Node { return n.parent }

// Active reports the node's own active flag.
func (n *Node) Active() bool { return !n.inactive }

// SetActive sets the node's own active flag.
func (n *Node) SetActive(active bool) { n.inactive = !active }

// ActiveInHierarchy reports whether n and all its ancestors are active.
func (n *Node) ActiveInHierarchy() bool {
	for p := n; p != nil; p = p.parent {
		if p.inactive {
			return false
		}
	}
	return true
}

// Alive reports whether the node was not destroyed.
func (n *Node) Alive() bool { return !n.destroyed }

// Describe returns the node path.
func (n *Node) Describe() string { return n.Path() }

// AddComponent attaches c to the node. Nil components are ignored.
func (n *Node) AddComponent(c any) *Node {
	if c == nil {
		return n
	}
	if a, ok := c.(attachable); ok {
		a.attach(n)
	}
	n.components = append(n.components, c)
	return n
}

// AddChild moves child under n.
func (n *Node) AddChild(child *Node) *Node {
	if child == nil || child == n {
		return n
	}
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
	return n
}

// Components returns the node's components in attach order.
func (n *Node) Components() []any { return n.components }

// Nodes returns the child nodes in attach order.
func (n *Node) Nodes() []*Node { return n.children }

// Children returns the components followed by the child nodes.
func (n *Node) Children() []any {
	out := make([]any, 0, len(n.components)+len(n.children))
	out = append(out, n.components...)
	for _, c := range n.children {
		out = append(out, c)
	}
	return out
}

// Find returns the descendant at the slash-separated path relative to n.
func (n *Node) Find(path string) *Node {
	cur := n
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		var next *Node
		for _, c := range cur.children {
			if c.name == part && !c.destroyed {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// destroy marks n, its components and its descendants destroyed.
func (n *Node) destroy() {
	n.destroyed = true
	for _, c := range n.components {
		if d, ok := c.(interface{ Destroy() }); ok {
			d.Destroy()
		}
	}
	for _, c := range n.children {
		c.destroy()
	}
}
