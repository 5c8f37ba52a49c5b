// Package catalog is an explicit TypeUniverse built from compile-time
// declarations.
//
// Modules declare which types are roles and which types own members to be
// bound. Members are struct fields carrying a `dock` tag; package-level
// variables are declared as static members of an owning type.
//
//	cat := catalog.New()
//	game := cat.Module("game")
//	catalog.Role[Logger](game)
//	catalog.Bindable[Consumer](game)
//	game.Static(reflect.TypeFor[Consumer](), "DefaultLog", &DefaultLog)
//
//	type Consumer struct {
//	    Log   Logger   `dock:""`
//	    Sinks []Logger `dock:""`
//	}
//
// A field tagged `dock:"-"` is ignored.
package catalog
