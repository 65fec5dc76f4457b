// Package state defines the engine lifecycle states.
package state

// Lifecycle represents where the engine is in its load → run → terminate life.
type Lifecycle int

const (
	StateUnloaded Lifecycle = iota
	StateLoaded
	StateRunning
	StateTerminated
)

// String returns the string representation of the lifecycle state
func (s Lifecycle) String() string {
	switch s {
	case StateUnloaded:
		return "Unloaded"
	case StateLoaded:
		return "Loaded"
	case StateRunning:
		return "Running"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// CanTransition reports whether moving from s to next is allowed.
// Loaded → Loaded is a reload; nothing leaves Terminated.
func (s Lifecycle) CanTransition(next Lifecycle) bool {
	switch s {
	case StateUnloaded:
		return next == StateLoaded
	case StateLoaded:
		return next == StateLoaded || next == StateRunning
	case StateRunning:
		return next == StateTerminated
	default:
		return false
	}
}
