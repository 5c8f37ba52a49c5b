package scene

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// File is the YAML form of a scene.
type File struct {
	Name    string    `yaml:"name"`
	Nodes   []NodeDef `yaml:"nodes"`
	Prefabs []NodeDef `yaml:"prefabs,omitempty"`
}

// NodeDef describes a node and its subtree.
type NodeDef struct {
	Name string `yaml:"name"`
	// Active defaults to true.
	Active     *bool          `yaml:"active,omitempty"`
	Components []ComponentDef `yaml:"components,omitempty"`
	Children   []NodeDef      `yaml:"children,omitempty"`
}

// ComponentDef names a component factory and its parameters.
type ComponentDef struct {
	Type string    `yaml:"type"`
	With yaml.Node `yaml:"with,omitempty"`
}

// LoadFile reads and builds the scene at path.
func LoadFile(path string, factories *Factories) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: reading %s: %w", path, err)
	}
	s, err := Parse(data, factories)
	if err != nil {
		return nil, fmt.Errorf("scene: loading %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from YAML.
func Parse(data []byte, factories *Factories) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scene: parsing: %w", err)
	}
	return Build(&f, factories)
}

// Build creates the scene described by f. Every prefab is built once to
// surface definition errors at load time.
func Build(f *File, factories *Factories) (*Scene, error) {
	if factories == nil {
		factories = NewFactories()
	}
	if f.Name == "" {
		return nil, fmt.Errorf("scene: name is required")
	}
	s := New(f.Name)

	for i := range f.Nodes {
		n, err := buildNode(&f.Nodes[i], factories)
		if err != nil {
			return nil, err
		}
		s.Add(n)
	}

	for i := range f.Prefabs {
		def := f.Prefabs[i]
		if def.Name == "" {
			return nil, fmt.Errorf("scene: prefab %d has no name", i)
		}
		if _, dup := s.prefabs[def.Name]; dup {
			return nil, fmt.Errorf("scene: duplicate prefab %q", def.Name)
		}
		if _, err := buildNode(&def, factories); err != nil {
			return nil, fmt.Errorf("scene: prefab %q: %w", def.Name, err)
		}
		s.RegisterPrefab(def.Name, func() (*Node, error) {
			return buildNode(&def, factories)
		})
	}
	return s, nil
}

func buildNode(def *NodeDef, factories *Factories) (*Node, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("scene: node without name")
	}
	n := NewNode(def.Name)
	if def.Active != nil {
		n.SetActive(*def.Active)
	}
	for _, cd := range def.Components {
		c, err := factories.build(cd)
		if err != nil {
			return nil, fmt.Errorf("scene: node %q: %w", def.Name, err)
		}
		n.AddComponent(c)
	}
	for i := range def.Children {
		child, err := buildNode(&def.Children[i], factories)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}
