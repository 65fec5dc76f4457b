package scene

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/younwookim/simian/internal/domain/object"
	"github.com/younwookim/simian/internal/domain/vec"
	"github.com/younwookim/simian/internal/render"
)

// Base is a named container of game objects.
//
// Objects update and draw in insertion order; inactive objects are skipped
// in both phases. Objects added or removed during Update take effect from
// the next frame. Concrete scenes embed *Base and override the hooks they need.
type Base struct {
	name    string
	objects []object.GameObject
}

var _ Scene = (*Base)(nil)

// NewBase creates a scene holding objs in order
func NewBase(name string, objs ...object.GameObject) *Base {
	return &Base{
		name:    name,
		objects: slices.Clone(objs),
	}
}

// Name implements Scene
func (b *Base) Name() string {
	return b.name
}

// Add appends objects after validating them
func (b *Base) Add(objs ...object.GameObject) error {
	for _, o := range objs {
		if err := object.Validate(o); err != nil {
			return fmt.Errorf("scene %s: %w", b.name, err)
		}
	}
	b.objects = append(b.objects, objs...)
	return nil
}

// Remove drops the object with the given id. It reports whether one was found.
func (b *Base) Remove(id uuid.UUID) bool {
	i := slices.IndexFunc(b.objects, func(o object.GameObject) bool {
		return o.ID() == id
	})
	if i < 0 {
		return false
	}
	b.objects = slices.Delete(b.objects, i, i+1)
	return true
}

// RemoveInactive drops every inactive object and returns how many were removed
func (b *Base) RemoveInactive() int {
	before := len(b.objects)
	b.objects = slices.DeleteFunc(b.objects, func(o object.GameObject) bool {
		return !o.Active()
	})
	return before - len(b.objects)
}

// Clear drops all objects
func (b *Base) Clear() {
	clear(b.objects)
	b.objects = b.objects[:0]
}

// Objects returns the objects in insertion order
func (b *Base) Objects() []object.GameObject {
	return b.objects
}

// Len returns the number of objects
func (b *Base) Len() int {
	return len(b.objects)
}

// Spawn clones prototype, moves the clone to at and adds it
func (b *Base) Spawn(prototype object.GameObject, at vec.Vec2) (object.GameObject, error) {
	c, err := object.Clone(prototype)
	if err != nil {
		return nil, fmt.Errorf("scene %s: failed to spawn: %w", b.name, err)
	}
	c.SetPosition(at)
	b.objects = append(b.objects, c)
	return c, nil
}

// Update updates every active object
func (b *Base) Update(dt float64) error {
	for _, o := range slices.Clone(b.objects) {
		if !o.Active() {
			continue
		}
		if err := object.Update(o, dt); err != nil {
			return fmt.Errorf("scene %s: failed to update object %s: %w", b.name, o.ID(), err)
		}
	}
	return nil
}

// Draw draws every active object in insertion order
func (b *Base) Draw(batch *render.Batch) error {
	for _, o := range b.objects {
		if !o.Active() {
			continue
		}
		if err := object.Draw(o, batch); err != nil {
			return fmt.Errorf("scene %s: failed to draw object %s: %w", b.name, o.ID(), err)
		}
	}
	return nil
}

// OnEnter is a no-op by default
func (b *Base) OnEnter() error {
	return nil
}

// OnExit is a no-op by default
func (b *Base) OnExit() error {
	return nil
}
