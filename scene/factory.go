package scene

import (
	"fmt"
	"sort"
)

// Factory builds a component. decode fills v from the component's `with`
// parameters and is a no-op when none were given.
type Factory func(decode func(v any) error) (any, error)

// Factories maps component type names to factories.
type Factories struct {
	factories map[string]Factory
}

// NewFactories creates an empty factory registry.
func NewFactories() *Factories {
	return &Factories{factories: make(map[string]Factory)}
}

// Register adds a factory under name, replacing any previous one.
func (f *Factories) Register(name string, fn Factory) *Factories {
	f.factories[name] = fn
	return f
}

// Get returns the factory registered under name.
func (f *Factories) Get(name string) (Factory, bool) {
	fn, ok := f.factories[name]
	return fn, ok
}

// List returns the sorted factory names.
func (f *Factories) List() []string {
	names := make([]string, 0, len(f.factories))
	for name := range f.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Type returns a factory that allocates a new T and decodes parameters
// into it.
//
//	factories.Register("health", scene.Type[Health]())
func Type[T any]() Factory {
	return func(decode func(v any) error) (any, error) {
		v := new(T)
		if err := decode(v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func (f *Factories) build(def ComponentDef) (any, error) {
	fn, ok := f.factories[def.Type]
	if !ok {
		return nil, fmt.Errorf("scene: unknown component type %q", def.Type)
	}
	decode := func(v any) error {
		if def.With.Kind == 0 {
			return nil
		}
		if err := def.With.Decode(v); err != nil {
			return fmt.Errorf("scene: component %q params: %w", def.Type, err)
		}
		return nil
	}
	c, err := fn(decode)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("scene: factory %q returned nil", def.Type)
	}
	return c, nil
}
