package playing

import (
	"image/color"

	"github.com/younwookim/simian/internal/application/objects"
	"github.com/younwookim/simian/internal/domain/object"
	"github.com/younwookim/simian/internal/domain/vec"
	"github.com/younwookim/simian/internal/render"
)

// streak is how many seconds of travel the drawn tail covers
const streak = 0.05

// Spark is a short-lived particle that drifts and then deactivates
type Spark struct {
	objects.Rect

	Velocity vec.Vec2
	TTL      float64 // seconds left
}

var _ object.GameObject = (*Spark)(nil)

// NewSpark creates a spark prototype
func NewSpark(size float64, clr color.Color, ttl float64) *Spark {
	return &Spark{
		Rect: *objects.NewRect(vec.Zero(), size, size, clr),
		TTL:  ttl,
	}
}

// Draw renders the spark as a short streak behind its head
func (s *Spark) Draw(batch *render.Batch) error {
	head := s.Position()
	tail := head.Sub(s.Velocity.Scale(streak))
	batch.Add(render.Line{
		X0:    float32(tail.X),
		Y0:    float32(tail.Y),
		X1:    float32(head.X),
		Y1:    float32(head.Y),
		Width: float32(s.W),
		Color: s.Color,
	})
	return nil
}

// Update implements object.GameObject
func (s *Spark) Update(dt float64) error {
	s.SetPosition(s.Position().Add(s.Velocity.Scale(dt)))
	s.TTL -= dt
	if s.TTL <= 0 {
		s.SetActive(false)
	}
	return nil
}

// Clone implements object.GameObject
func (s *Spark) Clone() object.GameObject {
	c := *s
	c.Base = s.Fork()
	return &c
}
