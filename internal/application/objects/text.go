package objects

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/younwookim/simian/internal/domain/object"
	"github.com/younwookim/simian/internal/domain/vec"
	"github.com/younwookim/simian/internal/infrastructure/fonts"
	"github.com/younwookim/simian/internal/render"
	"golang.org/x/image/font"
)

// FaceSource resolves font names to faces. *fonts.Library implements it.
type FaceSource interface {
	Face(name string, size float64, style fonts.Style) (text.Face, error)
	XFace(name string, size float64, style fonts.Style) (font.Face, error)
}

// Text is a game object that renders a single line of text at its position.
type Text struct {
	object.Base

	message   string
	size      float64
	font      string
	style     fonts.Style
	underline bool
	color     color.Color
	faces     FaceSource
}

var _ object.GameObject = (*Text)(nil)

// TextOption configures a Text at construction
type TextOption func(*Text)

// WithColor sets the text color (white by default)
func WithColor(c color.Color) TextOption {
	return func(t *Text) {
		t.color = c
	}
}

// WithPosition places the text
func WithPosition(p vec.Vec2) TextOption {
	return func(t *Text) {
		t.SetPosition(p)
	}
}

// WithFaces overrides the font library (fonts.Default() otherwise)
func WithFaces(src FaceSource) TextOption {
	return func(t *Text) {
		t.faces = src
	}
}

// NewText creates a text object. An empty font name selects fonts.DefaultFamily.
// The font is resolved lazily, so an unknown name surfaces on Draw or Measure.
func NewText(message string, size float64, fontName string, opts ...TextOption) *Text {
	if fontName == "" {
		fontName = fonts.DefaultFamily
	}
	t := &Text{
		Base:    object.NewBase(vec.Zero()),
		message: message,
		size:    size,
		font:    fontName,
		color:   color.White,
		faces:   fonts.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Text) Message() string           { return t.message }
func (t *Text) SetMessage(message string) { t.message = message }
func (t *Text) Size() float64             { return t.size }
func (t *Text) Font() string              { return t.font }
func (t *Text) Bold() bool                { return t.style.Bold }
func (t *Text) SetBold(bold bool)         { t.style.Bold = bold }
func (t *Text) Italic() bool              { return t.style.Italic }
func (t *Text) SetItalic(italic bool)     { t.style.Italic = italic }
func (t *Text) Underline() bool           { return t.underline }
func (t *Text) SetUnderline(on bool)      { t.underline = on }
func (t *Text) Color() color.Color        { return t.color }
func (t *Text) SetColor(c color.Color)    { t.color = c }

// Measure returns the rendered width and height in pixels
func (t *Text) Measure() (int, int, error) {
	face, err := t.faces.XFace(t.font, t.size, t.style)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to resolve face for text %q: %w", t.message, err)
	}
	w, h := fonts.Measure(face, t.message)
	return w, h, nil
}

// Draw adds the text at the object's position
func (t *Text) Draw(batch *render.Batch) error {
	face, err := t.faces.Face(t.font, t.size, t.style)
	if err != nil {
		return fmt.Errorf("failed to resolve face for text %q: %w", t.message, err)
	}
	p := t.Position()
	batch.Add(render.Text{
		Message:   t.message,
		Face:      face,
		X:         p.X,
		Y:         p.Y,
		Color:     t.color,
		Underline: t.underline,
	})
	return nil
}

// Clone implements object.GameObject
func (t *Text) Clone() object.GameObject {
	c := *t
	c.Base = t.Fork()
	return &c
}
