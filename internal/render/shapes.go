package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Rect is a filled axis-aligned rectangle
type Rect struct {
	X, Y, W, H float32
	Color      color.Color
}

// Render implements Renderable
func (r Rect) Render(dst *ebiten.Image) {
	vector.DrawFilledRect(dst, r.X, r.Y, r.W, r.H, r.Color, false)
}

// Line is a stroked segment
type Line struct {
	X0, Y0, X1, Y1 float32
	Width          float32
	Color          color.Color
}

// Render implements Renderable
func (l Line) Render(dst *ebiten.Image) {
	vector.StrokeLine(dst, l.X0, l.Y0, l.X1, l.Y1, l.Width, l.Color, false)
}

// Text draws a single line of text with its top-left corner at X, Y
type Text struct {
	Message   string
	Face      text.Face
	X, Y      float64
	Color     color.Color
	Underline bool
}

// Render implements Renderable
func (t Text) Render(dst *ebiten.Image) {
	if t.Face == nil || t.Message == "" {
		return
	}
	clr := t.Color
	if clr == nil {
		clr = color.White
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(t.X, t.Y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, t.Message, t.Face, op)

	if t.Underline {
		m := t.Face.Metrics()
		w := text.Advance(t.Message, t.Face)
		y := float32(t.Y + m.HAscent + 2)
		vector.StrokeLine(dst, float32(t.X), y, float32(t.X+w), y, 1, clr, false)
	}
}

// DebugText prints with ebiten's built-in debug font
type DebugText struct {
	Message string
	X, Y    int
}

// Render implements Renderable
func (d DebugText) Render(dst *ebiten.Image) {
	ebitenutil.DebugPrintAt(dst, d.Message, d.X, d.Y)
}
