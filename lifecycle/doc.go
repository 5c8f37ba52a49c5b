// Package lifecycle drives dock through its host's lifecycle.
//
// A Controller owns the member index and the role registry. It rebuilds the
// index from the type universe, rescans the host's live objects into the
// registry, and binds every object at the points the host calls it: scene
// load (Initialize, ReloadCandidates), manual registration
// (RegisterCandidate, Bind) and object creation (Instantiate).
//
//	ctl, err := lifecycle.New(scene, cat, lifecycle.WithWiring(cfg.Wiring))
//	if err != nil {
//	    return err
//	}
//	defer ctl.Shutdown()
//	if err := ctl.Initialize(); err != nil {
//	    return err
//	}
//
// States move Uninitialized → TypesLoaded → Ready; Shutdown moves to the
// terminal Disposed state. Only one controller may be active per process.
//
// The controller is not safe for concurrent use: the host calls it from
// its main thread.
package lifecycle
