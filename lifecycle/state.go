package lifecycle

// State is the controller lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateTypesLoaded
	StateReady
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateTypesLoaded:
		return "types_loaded"
	case StateReady:
		return "ready"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
