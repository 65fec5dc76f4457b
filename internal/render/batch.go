// Package render holds the ordered draw batch that scenes and objects fill each frame.
//
// A Batch collects Renderables during the draw phase and presents them to the
// screen in the order they were added, so draw order is deterministic and
// equals insertion order within the frame.
package render

import "github.com/hajimehoshi/ebiten/v2"

// Renderable is anything that can paint itself onto a target image.
type Renderable interface {
	Render(dst *ebiten.Image)
}

// RenderFunc adapts a plain function to Renderable
type RenderFunc func(dst *ebiten.Image)

// Render calls f(dst)
func (f RenderFunc) Render(dst *ebiten.Image) {
	f(dst)
}

// Batch is an ordered collection of renderables for one frame.
type Batch struct {
	items []Renderable
}

// NewBatch creates an empty batch
func NewBatch() *Batch {
	return &Batch{
		items: make([]Renderable, 0, 64),
	}
}

// Add appends renderables in order. Nil entries are ignored.
func (b *Batch) Add(rs ...Renderable) {
	for _, r := range rs {
		if r == nil {
			continue
		}
		b.items = append(b.items, r)
	}
}

// Len returns the number of queued renderables
func (b *Batch) Len() int {
	return len(b.items)
}

// Items returns the queued renderables in insertion order
func (b *Batch) Items() []Renderable {
	return b.items
}

// Reset empties the batch, keeping its capacity
func (b *Batch) Reset() {
	clear(b.items)
	b.items = b.items[:0]
}

// Present renders every item onto dst in insertion order
func (b *Batch) Present(dst *ebiten.Image) {
	for _, r := range b.items {
		r.Render(dst)
	}
}
