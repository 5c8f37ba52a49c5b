// Package inspect serves a read-only HTTP view of a dock controller.
//
// The controller is driven from the host's main thread, so handlers never
// touch it. A Store holds the latest published snapshot and health; a
// lifecycle hook republishes them after every candidate reload:
//
//	store := inspect.NewStore()
//	ctl.OnReady(store.Publish)
//	srv := inspect.New(cfg.Inspector, store, log)
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Routes:
//
//	GET /health        controller health
//	GET /snapshot      full snapshot
//	GET /roles         roles with their candidates
//	GET /roles/:role   one role, matched by type name
//	GET /types         bindable types with their requests
//	GET /issues        requests that can not be bound
package inspect
