package scene

import (
	"fmt"
	"sort"

	"github.com/kbukum/dock/component"
	"github.com/kbukum/dock/host"
	"github.com/kbukum/dock/logger"
)

// Prefab builds a fresh node tree for Instantiate.
type Prefab func() (*Node, error)

// Scene is an in-memory host: a forest of nodes plus named prefabs.
type Scene struct {
	name      string
	roots     []*Node
	prefabs   map[string]Prefab
	listeners []host.Notifier
	log       *logger.Logger
}

var _ host.Host = (*Scene)(nil)

// New creates an empty scene.
func New(name string) *Scene {
	return &Scene{
		name:    name,
		prefabs: make(map[string]Prefab),
		log:     logger.Get("scene"),
	}
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Add appends root nodes, detaching them from any previous parent.
func (s *Scene) Add(nodes ...*Node) *Scene {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		n.detach()
		s.roots = append(s.roots, n)
	}
	return s
}

// Roots returns the live root nodes.
func (s *Scene) Roots() []*Node { return s.roots }

// Children returns the root nodes, making the scene a composite.
func (s *Scene) Children() []any {
	out := make([]any, len(s.roots))
	for i, r := range s.roots {
		out[i] = r
	}
	return out
}

// Find returns the node at a slash-separated path from the roots.
func (s *Scene) Find(path string) *Node {
	for _, r := range s.roots {
		if path == r.name {
			return r
		}
		if len(path) > len(r.name) && path[:len(r.name)+1] == r.name+"/" {
			if n := r.Find(path[len(r.name)+1:]); n != nil {
				return n
			}
		}
	}
	return nil
}

// LiveObjects returns every live node and component, inactive ones
// included, depth-first in scene order.
func (s *Scene) LiveObjects() ([]any, error) {
	var out []any
	component.Walk(s, func(obj any) bool {
		if obj == any(s) {
			return true
		}
		if !component.IsAlive(obj) {
			return false
		}
		out = append(out, obj)
		return true
	})
	return out, nil
}

// RegisterPrefab makes p available to Instantiate under name.
func (s *Scene) RegisterPrefab(name string, p Prefab) {
	s.prefabs[name] = p
}

// Prefabs returns the sorted prefab names.
func (s *Scene) Prefabs() []string {
	names := make([]string, 0, len(s.prefabs))
	for name := range s.prefabs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instantiate builds a node from template and attaches it. Template is a
// prefab name, a Prefab, or an unattached *Node. The first placement, if
// any, chooses the parent node and overrides the name. A nil parent, typed
// or not, places the node at the root.
func (s *Scene) Instantiate(template any, placement ...host.Placement) (any, error) {
	node, err := s.build(template)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("scene: template %v produced no node", template)
	}

	var p host.Placement
	if len(placement) > 0 {
		p = placement[0]
	}
	if p.Name != "" {
		node.name = p.Name
	}
	switch parent := p.Parent.(type) {
	case nil:
		s.roots = append(s.roots, node)
	case *Node:
		if parent == nil {
			s.roots = append(s.roots, node)
			break
		}
		if !parent.Alive() {
			return nil, fmt.Errorf("scene: parent %s is destroyed", parent.Path())
		}
		parent.AddChild(node)
	default:
		return nil, fmt.Errorf("scene: parent must be *scene.Node, got %T", p.Parent)
	}

	s.log.Debug("node instantiated", logger.Fields("path", node.Path()))
	return node, nil
}

func (s *Scene) build(template any) (*Node, error) {
	switch t := template.(type) {
	case string:
		p, ok := s.prefabs[t]
		if !ok {
			return nil, fmt.Errorf("scene: prefab %q not found", t)
		}
		return p()
	case Prefab:
		return t()
	case func() (*Node, error):
		return t()
	case *Node:
		if t.parent != nil || s.isRoot(t) {
			return nil, fmt.Errorf("scene: node %s is already placed", t.Path())
		}
		return t, nil
	default:
		return nil, fmt.Errorf("scene: unsupported template %T", template)
	}
}

func (s *Scene) isRoot(n *Node) bool {
	for _, r := range s.roots {
		if r == n {
			return true
		}
	}
	return false
}

// Destroy destroys n with its components and descendants and removes it
// from the scene. Registries still holding them see dead candidates.
func (s *Scene) Destroy(n *Node) {
	if n == nil || n.destroyed {
		return
	}
	n.destroy()
	if n.parent != nil {
		n.detach()
	} else {
		for i, r := range s.roots {
			if r == n {
				s.roots = append(s.roots[:i:i], s.roots[i+1:]...)
				break
			}
		}
	}
	s.log.Debug("node destroyed", logger.Fields("name", n.name))
}

// Listen adds a notifier that receives every broadcast event after the
// scene's components.
func (s *Scene) Listen(n host.Notifier) {
	s.listeners = append(s.listeners, n)
}

// Notify delivers event to every live Listener component, then to the
// registered notifiers.
func (s *Scene) Notify(event string) {
	objects, _ := s.LiveObjects()
	delivered := 0
	for _, obj := range objects {
		if l, ok := obj.(Listener); ok {
			l.OnEvent(event)
			delivered++
		}
	}
	for _, l := range s.listeners {
		l.Notify(event)
	}
	s.log.Debug("event broadcast", logger.Fields(
		logger.FieldEvent, event,
		logger.FieldCount, delivered,
	))
}
