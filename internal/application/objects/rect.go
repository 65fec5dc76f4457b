// Package objects provides reusable game objects built on object.Base.
package objects

import (
	"image/color"

	"github.com/younwookim/simian/internal/domain/object"
	"github.com/younwookim/simian/internal/domain/vec"
	"github.com/younwookim/simian/internal/render"
)

// Rect is a solid rectangle whose top-left corner is the object's position.
type Rect struct {
	object.Base

	W, H  float64
	Color color.Color
}

var _ object.GameObject = (*Rect)(nil)

// NewRect creates a rectangle at p
func NewRect(p vec.Vec2, w, h float64, clr color.Color) *Rect {
	return &Rect{
		Base:  object.NewBase(p),
		W:     w,
		H:     h,
		Color: clr,
	}
}

// Draw implements object.GameObject
func (r *Rect) Draw(batch *render.Batch) error {
	p := r.Position()
	batch.Add(render.Rect{
		X:     float32(p.X),
		Y:     float32(p.Y),
		W:     float32(r.W),
		H:     float32(r.H),
		Color: r.Color,
	})
	return nil
}

// Center returns the midpoint of the rectangle
func (r *Rect) Center() vec.Vec2 {
	return r.Position().Add(vec.New(r.W/2, r.H/2))
}

// Clone implements object.GameObject
func (r *Rect) Clone() object.GameObject {
	c := *r
	c.Base = r.Fork()
	return &c
}
