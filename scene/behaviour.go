package scene

// Behaviour is embedded by components that live on a node. It tracks the
// owning node and destruction for registry liveness filtering.
type Behaviour struct {
	node      *Node
	destroyed bool
}

func (b *Behaviour) attach(n *Node) { b.node = n }

// Node returns the owning node, nil before the component is attached.
func (b *Behaviour) Node() *Node { return b.node }

// Alive reports whether neither the component nor its node was destroyed.
func (b *Behaviour) Alive() bool {
	if b.destroyed {
		return false
	}
	return b.node == nil || b.node.Alive()
}

// Destroy marks the component destroyed. The node keeps it until the node
// itself is destroyed.
func (b *Behaviour) Destroy() { b.destroyed = true }

// Listener receives events broadcast by Scene.Notify.
type Listener interface {
	OnEvent(event string)
}
