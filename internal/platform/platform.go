// Package platform declares the narrow contracts between the engine core and
// the windowing/input/clock layer underneath it.
package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/younwookim/simian/internal/render"
)

// DefaultFPS is the target frame rate when none is configured
const DefaultFPS = 60

// ErrQuit is returned by a FrameHandler to end the loop cleanly.
// Drivers translate it into a nil return from Loop.
var ErrQuit = errors.New("quit requested")

// ErrNotOpen is returned by Loop when Open was not called first
var ErrNotOpen = errors.New("driver not opened")

// ErrInvalidSize is returned by Open for a non-positive size
var ErrInvalidSize = errors.New("invalid window size")

// Size is a window or surface size in pixels
type Size struct {
	W int
	H int
}

// Valid reports whether both dimensions are positive
func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// EventKind classifies platform events
type EventKind int

const (
	EventQuit EventKind = iota
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "Quit"
	case EventResize:
		return "Resize"
	default:
		return "Unknown"
	}
}

// Event is one entry from the platform event queue
type Event struct {
	Kind    EventKind
	Payload any
}

// QuitEvent returns the event that terminates the loop
func QuitEvent() Event {
	return Event{Kind: EventQuit}
}

// FrameHandler receives the per-frame calls from a Driver, in this order:
// HandleEvents, Update, Draw.
type FrameHandler interface {
	// HandleEvents returns ErrQuit to stop the loop.
	HandleEvents(events []Event) error
	Update(dt float64) error
	Draw(batch *render.Batch) error
}

// Driver owns the window and the platform's main loop.
type Driver interface {
	// Open prepares the window with the given title and size.
	Open(title string, size Size) error

	// Loop calls h once per frame at targetFPS until h returns ErrQuit
	// (nil is returned), ctx is cancelled (nil is returned), or any other
	// error occurs (it is returned).
	Loop(ctx context.Context, targetFPS int, h FrameHandler) error
}

// Clock measures frame time and paces the loop.
type Clock interface {
	// Tick waits out the rest of the frame budget for targetFPS and returns
	// the time elapsed since the previous Tick (zero on the first call).
	Tick(targetFPS int) time.Duration
}
