package object

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/simian/internal/domain/vec"
	"github.com/younwookim/simian/internal/render"
)

// mover is a subtype with extra state, including a slice that must be deep-copied
type mover struct {
	Base
	velocity vec.Vec2
	trail    []vec.Vec2
	updates  int
}

func newMover(p, v vec.Vec2) *mover {
	return &mover{Base: NewBase(p), velocity: v}
}

func (m *mover) Update(dt float64) error {
	m.updates++
	m.trail = append(m.trail, m.Position())
	m.SetPosition(m.Position().Add(m.velocity.Scale(dt)))
	return nil
}

func (m *mover) Draw(batch *render.Batch) error {
	p := m.Position()
	batch.Add(render.Rect{X: float32(p.X), Y: float32(p.Y), W: 1, H: 1})
	return nil
}

func (m *mover) Clone() GameObject {
	c := *m
	c.Base = m.Fork()
	c.trail = append([]vec.Vec2(nil), m.trail...)
	return &c
}

// aliasing reproduces the broken "clone returns self" behaviour
type aliasing struct {
	Base
}

func (a *aliasing) Clone() GameObject { return a }

// sameID copies but forgets to fork the base
type sameID struct {
	Base
}

func (s *sameID) Clone() GameObject {
	c := *s
	return &c
}

type nilClone struct {
	Base
}

func (n *nilClone) Clone() GameObject { return nil }

func TestNew_DefaultsToOrigin(t *testing.T) {
	o := New()

	assert.Equal(t, vec.Vec2{X: 0, Y: 0}, o.Position())
	assert.True(t, o.Active(), "objects start active")
	assert.NotEqual(t, uuid.Nil, o.ID())
}

func TestBase_SetPositionReplacesWholesale(t *testing.T) {
	o := NewAt(vec.New(1, 2))
	o.SetPosition(vec.New(5, 6))

	assert.Equal(t, vec.New(5, 6), o.Position())
}

func TestBase_DefaultHooksAreNoops(t *testing.T) {
	o := New()
	batch := render.NewBatch()

	require.NoError(t, o.Update(1.0/60.0))
	require.NoError(t, o.Draw(batch))
	assert.Equal(t, 0, batch.Len())
	assert.Equal(t, vec.Zero(), o.Position())
}

func TestBasic_Clone(t *testing.T) {
	o := NewAt(vec.New(3, 4))
	o.SetActive(false)

	c, err := Clone(o)
	require.NoError(t, err)

	clone, ok := c.(*Basic)
	require.True(t, ok, "clone keeps the concrete type")
	assert.NotSame(t, o, clone)
	assert.NotEqual(t, o.ID(), clone.ID())
	assert.Equal(t, o.Position(), clone.Position())
	assert.Equal(t, o.Active(), clone.Active())

	clone.SetPosition(vec.New(9, 9))
	clone.SetActive(true)
	assert.Equal(t, vec.New(3, 4), o.Position(), "mutating the clone must not touch the original")
	assert.False(t, o.Active())
}

func TestSubtype_CloneIsIndependent(t *testing.T) {
	m := newMover(vec.New(0, 0), vec.New(60, 0))
	require.NoError(t, m.Update(1.0/60.0))

	c, err := Clone(m)
	require.NoError(t, err)

	clone, ok := c.(*mover)
	require.True(t, ok)
	assert.Equal(t, m.Position(), clone.Position())
	assert.Equal(t, m.velocity, clone.velocity)
	assert.Equal(t, m.trail, clone.trail)

	require.NoError(t, clone.Update(1.0/60.0))
	assert.Equal(t, vec.New(1, 0), m.Position())
	assert.Equal(t, vec.New(2, 0), clone.Position())
	assert.Len(t, m.trail, 1, "clone must not share the trail backing array")
	assert.Len(t, clone.trail, 2)
}

func TestClone_RejectsBrokenImplementations(t *testing.T) {
	tests := []struct {
		name string
		obj  GameObject
	}{
		{"nil object", nil},
		{"typed nil", (*Basic)(nil)},
		{"returns self", &aliasing{Base: NewBase(vec.Zero())}},
		{"keeps id", &sameID{Base: NewBase(vec.Zero())}},
		{"returns nil", &nilClone{Base: NewBase(vec.Zero())}},
		{"zero base", &Basic{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Clone(tt.obj)
			assert.ErrorIs(t, err, ErrInvalidObject)
		})
	}
}

func TestValidate_NonFinitePosition(t *testing.T) {
	o := NewAt(vec.New(math.NaN(), 0))

	assert.ErrorIs(t, Validate(o), ErrInvalidObject)
	assert.ErrorIs(t, Update(o, 0.016), ErrInvalidObject)
	assert.ErrorIs(t, Draw(o, render.NewBatch()), ErrInvalidObject)
}

func TestUpdateAndDraw_Delegate(t *testing.T) {
	m := newMover(vec.Zero(), vec.New(0, 30))
	batch := render.NewBatch()

	require.NoError(t, Update(m, 0.5))
	require.NoError(t, Draw(m, batch))

	assert.Equal(t, 1, m.updates)
	assert.Equal(t, vec.New(0, 15), m.Position())
	assert.Equal(t, 1, batch.Len())
}
