package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/simian/internal/domain/object"
	"github.com/younwookim/simian/internal/domain/vec"
	"github.com/younwookim/simian/internal/render"
)

// counter counts hook calls and can spawn into its scene mid-update
type counter struct {
	object.Base
	updates int
	draws   int
	onUpd   func()
}

func newCounter() *counter {
	return &counter{Base: object.NewBase(vec.Zero())}
}

func (c *counter) Update(_ float64) error {
	c.updates++
	if c.onUpd != nil {
		c.onUpd()
	}
	return nil
}

func (c *counter) Draw(batch *render.Batch) error {
	c.draws++
	batch.Add(render.Rect{X: float32(c.Position().X)})
	return nil
}

func (c *counter) Clone() object.GameObject {
	cp := *c
	cp.Base = c.Fork()
	cp.updates, cp.draws = 0, 0
	return &cp
}

func TestBase_ImplementsScene(t *testing.T) {
	var _ Scene = (*Base)(nil)
}

func TestBase_UpdateAndDrawSkipInactive(t *testing.T) {
	a, b := newCounter(), newCounter()
	b.SetActive(false)
	s := NewBase("play", a, b)

	require.NoError(t, s.Update(0.016))
	require.NoError(t, s.Draw(render.NewBatch()))

	assert.Equal(t, 1, a.updates)
	assert.Equal(t, 1, a.draws)
	assert.Equal(t, 0, b.updates)
	assert.Equal(t, 0, b.draws)
}

func TestBase_DrawOrderIsInsertionOrder(t *testing.T) {
	s := NewBase("play")
	for i := range 3 {
		c := newCounter()
		c.SetPosition(vec.New(float64(i), 0))
		require.NoError(t, s.Add(c))
	}
	batch := render.NewBatch()

	require.NoError(t, s.Draw(batch))

	require.Equal(t, 3, batch.Len())
	for i, item := range batch.Items() {
		assert.Equal(t, float32(i), item.(render.Rect).X)
	}
}

func TestBase_AddValidates(t *testing.T) {
	s := NewBase("play")

	assert.ErrorIs(t, s.Add(nil), object.ErrInvalidObject)
	assert.ErrorIs(t, s.Add(&object.Basic{}), object.ErrInvalidObject)
	assert.Equal(t, 0, s.Len())
}

func TestBase_SpawnDuringUpdateStartsNextFrame(t *testing.T) {
	s := NewBase("play")
	spawner := newCounter()
	spawned := 0
	spawner.onUpd = func() {
		if spawned == 0 {
			_, err := s.Spawn(newCounter(), vec.New(5, 5))
			require.NoError(t, err)
			spawned++
		}
	}
	require.NoError(t, s.Add(spawner))

	require.NoError(t, s.Update(0.016))
	require.Equal(t, 2, s.Len())
	child := s.Objects()[1].(*counter)
	assert.Equal(t, 0, child.updates, "spawned objects join from the next frame")
	assert.Equal(t, vec.New(5, 5), child.Position())

	require.NoError(t, s.Update(0.016))
	assert.Equal(t, 1, child.updates)
}

func TestBase_Spawn_ClonesPrototype(t *testing.T) {
	s := NewBase("play")
	proto := newCounter()

	a, err := s.Spawn(proto, vec.New(1, 1))
	require.NoError(t, err)
	b, err := s.Spawn(proto, vec.New(2, 2))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, proto.ID(), a.ID())
	assert.Equal(t, vec.Zero(), proto.Position(), "prototype is untouched")
}

func TestBase_RemoveAndClear(t *testing.T) {
	a, b, c := newCounter(), newCounter(), newCounter()
	s := NewBase("play", a, b, c)

	assert.True(t, s.Remove(b.ID()))
	assert.False(t, s.Remove(b.ID()))
	assert.Equal(t, []object.GameObject{a, c}, s.Objects())

	a.SetActive(false)
	assert.Equal(t, 1, s.RemoveInactive())
	assert.Equal(t, []object.GameObject{c}, s.Objects())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestBase_HooksDefaultToNoop(t *testing.T) {
	s := NewBase("menu")

	assert.Equal(t, "menu", s.Name())
	assert.NoError(t, s.OnEnter())
	assert.NoError(t, s.OnExit())
}
