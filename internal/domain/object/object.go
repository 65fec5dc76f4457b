// Package object defines the GameObject contract every game entity implements.
//
// Concrete entities embed Base for identity, position and the active flag, and
// override Update and Draw as needed. Base intentionally has no Clone method:
// each concrete type must return a real, independent copy of itself so that a
// clone never aliases the original or loses its concrete type.
package object

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/younwookim/simian/internal/domain/vec"
	"github.com/younwookim/simian/internal/render"
)

// ErrInvalidObject is returned when an operation is invoked on a malformed object
var ErrInvalidObject = errors.New("invalid game object")

// GameObject is the polymorphic surface of every entity in a scene.
type GameObject interface {
	// ID is unique per instance. Clones get a fresh ID.
	ID() uuid.UUID

	Position() vec.Vec2
	// SetPosition replaces the stored position wholesale.
	SetPosition(p vec.Vec2)

	Active() bool
	SetActive(active bool)

	// Update is called once per frame with the elapsed seconds since the previous frame.
	Update(dt float64) error

	// Draw adds this object's renderables to the frame batch.
	Draw(batch *render.Batch) error

	// Clone returns a new, independent object of the same concrete type
	// with the same field values.
	Clone() GameObject
}

// Base carries the state shared by every game object.
// Embed it by value and construct it with NewBase.
type Base struct {
	id       uuid.UUID
	position vec.Vec2
	active   bool
}

// NewBase creates an active base at the given position with a fresh ID
func NewBase(pos vec.Vec2) Base {
	return Base{
		id:       uuid.New(),
		position: pos,
		active:   true,
	}
}

// ID implements GameObject
func (b *Base) ID() uuid.UUID {
	return b.id
}

// Position implements GameObject
func (b *Base) Position() vec.Vec2 {
	return b.position
}

// SetPosition implements GameObject
func (b *Base) SetPosition(p vec.Vec2) {
	b.position = p
}

// Active implements GameObject
func (b *Base) Active() bool {
	return b.active
}

// SetActive implements GameObject
func (b *Base) SetActive(active bool) {
	b.active = active
}

// Update is a no-op by default
func (b *Base) Update(_ float64) error {
	return nil
}

// Draw is a no-op by default
func (b *Base) Draw(_ *render.Batch) error {
	return nil
}

// Fork returns a copy of the base state under a new ID.
// Concrete Clone implementations use it for their embedded Base.
func (b *Base) Fork() Base {
	return Base{
		id:       uuid.New(),
		position: b.position,
		active:   b.active,
	}
}

// Basic is the minimal concrete game object: a position and an active flag.
type Basic struct {
	Base
}

var _ GameObject = (*Basic)(nil)

// New creates a Basic object at the origin
func New() *Basic {
	return NewAt(vec.Zero())
}

// NewAt creates a Basic object at p
func NewAt(p vec.Vec2) *Basic {
	return &Basic{Base: NewBase(p)}
}

// Clone implements GameObject
func (o *Basic) Clone() GameObject {
	return &Basic{Base: o.Fork()}
}

// Validate reports whether o is usable: non-nil, constructed with an ID,
// and at a finite position.
func Validate(o GameObject) error {
	if isNil(o) {
		return fmt.Errorf("%w: nil object", ErrInvalidObject)
	}
	if o.ID() == uuid.Nil {
		return fmt.Errorf("%w: %T has no id (construct it with NewBase)", ErrInvalidObject, o)
	}
	if !o.Position().IsFinite() {
		return fmt.Errorf("%w: %s has non-finite position %s", ErrInvalidObject, o.ID(), o.Position())
	}
	return nil
}

// Clone validates o, clones it and checks the clone is a distinct instance.
func Clone(o GameObject) (GameObject, error) {
	if err := Validate(o); err != nil {
		return nil, err
	}

	c := o.Clone()
	if isNil(c) {
		return nil, fmt.Errorf("%w: %T.Clone returned nil", ErrInvalidObject, o)
	}
	if sameInstance(o, c) {
		return nil, fmt.Errorf("%w: %T.Clone returned the original instance", ErrInvalidObject, o)
	}
	if c.ID() == o.ID() {
		return nil, fmt.Errorf("%w: %T.Clone kept the original id %s", ErrInvalidObject, o, o.ID())
	}
	return c, nil
}

// Update validates o and advances it by dt
func Update(o GameObject, dt float64) error {
	if err := Validate(o); err != nil {
		return err
	}
	return o.Update(dt)
}

// Draw validates o and lets it fill the batch
func Draw(o GameObject, batch *render.Batch) error {
	if err := Validate(o); err != nil {
		return err
	}
	return o.Draw(batch)
}

func isNil(o GameObject) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func sameInstance(a, b GameObject) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Pointer || vb.Kind() != reflect.Pointer {
		return false
	}
	return va.Pointer() == vb.Pointer()
}
