package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/younwookim/simian/internal/render"
)

var (
	ErrUnknownScene   = errors.New("unknown scene")
	ErrInvalidScene   = errors.New("invalid scene")
	ErrSceneInUse     = errors.New("scene is current or pending")
	ErrNoCurrentScene = errors.New("no current scene")
)

// SwitchFunc observes scene switches. from is empty for the first switch.
type SwitchFunc func(from, to string)

// Manager owns the scene registry and forwards per-frame calls to the current scene.
type Manager struct {
	scenes   map[string]Scene
	order    []string
	current  Scene
	pending  string
	onSwitch SwitchFunc
}

// NewManager creates an empty manager
func NewManager() *Manager {
	return &Manager{
		scenes: make(map[string]Scene),
	}
}

// OnSwitch registers an observer called after every completed switch
func (m *Manager) OnSwitch(fn SwitchFunc) {
	m.onSwitch = fn
}

// Add registers scenes by name. A name that is already registered is
// replaced, unless it belongs to the current or pending scene. Either all
// scenes of the call are registered or none are.
func (m *Manager) Add(scenes ...Scene) error {
	seen := make(map[string]struct{}, len(scenes))
	for _, s := range scenes {
		if s == nil {
			return fmt.Errorf("%w: nil scene", ErrInvalidScene)
		}
		name := s.Name()
		if name == "" {
			return fmt.Errorf("%w: %T has an empty name", ErrInvalidScene, s)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q given twice", ErrInvalidScene, name)
		}
		seen[name] = struct{}{}
		if m.inUse(name) {
			return fmt.Errorf("%w: %q", ErrSceneInUse, name)
		}
	}

	for _, s := range scenes {
		name := s.Name()
		if _, ok := m.scenes[name]; !ok {
			m.order = append(m.order, name)
		}
		m.scenes[name] = s
	}
	return nil
}

func (m *Manager) inUse(name string) bool {
	if m.pending == name {
		return true
	}
	return m.current != nil && m.current.Name() == name
}

// Get returns the scene registered under name
func (m *Manager) Get(name string) (Scene, bool) {
	s, ok := m.scenes[name]
	return s, ok
}

// Names returns the registered names in registration order
func (m *Manager) Names() []string {
	return slices.Clone(m.order)
}

// Current returns the current scene, or nil before the first load
func (m *Manager) Current() Scene {
	return m.current
}

// CurrentName returns the current scene's name, or "" before the first load
func (m *Manager) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// Pending returns the queued scene name, or "" if none
func (m *Manager) Pending() string {
	return m.pending
}

// LoadScene makes name current immediately. A pending transition is dropped
// only when the switch succeeds.
func (m *Manager) LoadScene(name string) error {
	next, ok := m.scenes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	queued := m.pending
	if err := m.switchTo(next); err != nil {
		return err
	}
	m.dropPending(queued)
	return nil
}

// SetNextScene queues name to become current at the start of the next Update.
// The name is validated now so errors surface at the call site.
func (m *Manager) SetNextScene(name string) error {
	if _, ok := m.scenes[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	m.pending = name
	return nil
}

// Update performs a queued transition, then updates the current scene only.
func (m *Manager) Update(dt float64) error {
	if m.pending != "" {
		queued := m.pending
		if err := m.switchTo(m.scenes[queued]); err != nil {
			return err
		}
		m.dropPending(queued)
	}
	if m.current == nil {
		return ErrNoCurrentScene
	}
	if err := m.current.Update(dt); err != nil {
		return fmt.Errorf("failed to update scene %s: %w", m.current.Name(), err)
	}
	return nil
}

// Draw lets the current scene populate the batch
func (m *Manager) Draw(batch *render.Batch) error {
	if m.current == nil {
		return ErrNoCurrentScene
	}
	if err := m.current.Draw(batch); err != nil {
		return fmt.Errorf("failed to draw scene %s: %w", m.current.Name(), err)
	}
	return nil
}

// switchTo exits the current scene and enters next. next becomes current only
// once its OnEnter succeeds; otherwise the previous scene is entered again.
func (m *Manager) switchTo(next Scene) error {
	prev := m.current
	if prev == next {
		return nil
	}

	from := ""
	if prev != nil {
		from = prev.Name()
		if err := prev.OnExit(); err != nil {
			return fmt.Errorf("failed to exit scene %s: %w", from, err)
		}
	}

	if err := next.OnEnter(); err != nil {
		err = fmt.Errorf("failed to enter scene %s: %w", next.Name(), err)
		return m.restore(prev, err)
	}
	m.current = next

	if m.onSwitch != nil {
		m.onSwitch(from, next.Name())
	}
	return nil
}

// restore re-enters prev after next failed to enter. If prev cannot be
// re-entered either, no scene is current.
func (m *Manager) restore(prev Scene, cause error) error {
	if prev == nil {
		return cause
	}
	if err := prev.OnEnter(); err != nil {
		m.current = nil
		return errors.Join(cause, fmt.Errorf("failed to re-enter scene %s: %w", prev.Name(), err))
	}
	return cause
}

// dropPending clears the queued name unless a hook queued a different one
func (m *Manager) dropPending(queued string) {
	if m.pending == queued {
		m.pending = ""
	}
}
