// Package scene is an in-memory reference host for dock.
//
// A Scene is a forest of named Nodes. Each node owns its components (any
// Go value, usually a pointer to a struct embedding Behaviour) and its
// child nodes. The scene provides the three host collaborators a
// lifecycle.Controller needs:
//
//   - LiveObjects enumerates every live node and component, active or not.
//   - Instantiate builds a node from a registered prefab and attaches it.
//   - Notify broadcasts an event to every component implementing Listener.
//
// Scenes can be described in YAML and built with a component Factories
// registry:
//
//	name: demo
//	nodes:
//	  - name: player
//	    components:
//	      - type: health
//	        with: {max: 100}
//	prefabs:
//	  - name: enemy
//	    components:
//	      - type: brain
//
// A Scene is driven from one goroutine, like the engine main thread it
// stands in for.
package scene
