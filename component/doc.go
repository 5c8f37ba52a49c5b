// Package component defines the object-model contracts dock relies on.
//
// Host objects optionally implement these interfaces:
//
//   - Composite: owns child objects bound together with it
//   - Liveness: reports whether the object has been destroyed
//   - Describable: self-reports a display name for summaries and snapshots
package component
