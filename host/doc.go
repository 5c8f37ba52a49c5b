// Package host defines the collaborator contracts dock needs from the
// engine it is embedded in.
//
// dock never walks a scene or inspects loaded code on its own. Every live
// object, every instantiation, every broadcast and every piece of type
// metadata is reached through the interfaces declared here:
//
//   - LiveObjectSource: the pool of host-managed objects, inactive ones included
//   - Instantiator: creates an object from a template
//   - Notifier: fire-and-forget broadcast to all host objects
//   - TypeUniverse: modules, their declared types and bindable members
//
// The scene package provides an in-memory reference host; the catalog
// package provides an explicit TypeUniverse.
package host
