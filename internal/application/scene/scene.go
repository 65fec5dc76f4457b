// Package scene defines the Scene contract and the manager that owns the
// registry of named scenes.
//
// Each game screen (menu, playing, game over, etc.) implements Scene. The
// engine never talks to a scene directly: every per-frame call goes through
// Manager, which guarantees that exactly one scene is current and that a
// frame's update and draw always reach the same scene.
package scene

import "github.com/younwookim/simian/internal/render"

// Scene represents a named game screen.
type Scene interface {
	// Name is the key the scene is registered under.
	Name() string

	// Update updates the scene state.
	// dt is the measured time since the previous frame, in seconds.
	// Returning an error halts the game loop.
	Update(dt float64) error

	// Draw adds the scene's renderables to the frame batch.
	Draw(batch *render.Batch) error

	// OnEnter is called each time this scene becomes current.
	OnEnter() error

	// OnExit is called when another scene replaces this one.
	// The scene instance stays registered and may be entered again.
	OnExit() error
}

// Director is what a scene may ask of the engine that runs it.
type Director interface {
	// SetNextScene queues a switch at the next frame boundary.
	SetNextScene(name string) error

	// Quit ends the loop after the current frame.
	Quit()
}
