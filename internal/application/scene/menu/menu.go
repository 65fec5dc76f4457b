// Package menu provides the title screen.
package menu

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/simian/internal/application/objects"
	"github.com/younwookim/simian/internal/application/scene"
	"github.com/younwookim/simian/internal/domain/vec"
	"github.com/younwookim/simian/internal/infrastructure/input"
	"github.com/younwookim/simian/internal/platform"
	"github.com/younwookim/simian/internal/render"
)

const (
	Name      = "menu"
	PlayScene = "play"

	blinkPeriod = 0.5 // seconds the prompt stays on or off
)

var (
	colorBG     = color.RGBA{16, 16, 32, 255}
	colorTitle  = color.RGBA{255, 215, 0, 255}
	colorPrompt = color.RGBA{200, 200, 200, 255}
)

// Menu shows the title and waits for Enter
type Menu struct {
	*scene.Base

	director scene.Director
	keyboard *input.Keyboard
	bounds   platform.Size

	title  *objects.Text
	prompt *objects.Text
	blink  float64
}

var _ scene.Scene = (*Menu)(nil)

// New creates the menu for a screen of the given size
func New(director scene.Director, keyboard *input.Keyboard, bounds platform.Size, title string) *Menu {
	m := &Menu{
		Base:     scene.NewBase(Name),
		director: director,
		keyboard: keyboard,
		bounds:   bounds,
		title:    objects.NewText(title, 32, "", objects.WithColor(colorTitle)),
		prompt:   objects.NewText("press ENTER to play, ESC to quit", 14, "", objects.WithColor(colorPrompt)),
	}
	m.title.SetBold(true)
	m.title.SetUnderline(true)
	// Both texts are freshly built and non-nil, so Add cannot fail.
	_ = m.Add(m.title, m.prompt)
	m.layout()
	return m
}

// Title returns the title text object
func (m *Menu) Title() *objects.Text {
	return m.title
}

// Prompt returns the blinking prompt
func (m *Menu) Prompt() *objects.Text {
	return m.prompt
}

// OnEnter restarts the prompt blink
func (m *Menu) OnEnter() error {
	m.blink = 0
	m.prompt.SetActive(true)
	return nil
}

// Update handles Enter and Escape and blinks the prompt
func (m *Menu) Update(dt float64) error {
	switch {
	case m.keyboard.IsJustPressed(ebiten.KeyEnter):
		return m.director.SetNextScene(PlayScene)
	case m.keyboard.IsJustPressed(ebiten.KeyEscape):
		m.director.Quit()
		return nil
	}

	m.blink += dt
	for m.blink >= blinkPeriod {
		m.blink -= blinkPeriod
		m.prompt.SetActive(!m.prompt.Active())
	}
	return m.Base.Update(dt)
}

// Draw clears the background, then draws the texts
func (m *Menu) Draw(batch *render.Batch) error {
	batch.Add(render.Rect{W: float32(m.bounds.W), H: float32(m.bounds.H), Color: colorBG})
	return m.Base.Draw(batch)
}

// layout centers the texts horizontally. Measuring failures leave them at x=0.
func (m *Menu) layout() {
	center := func(t *objects.Text, y float64) {
		x := 0.0
		if w, _, err := t.Measure(); err == nil {
			x = float64(m.bounds.W-w) / 2
		}
		t.SetPosition(vec.New(x, y))
	}
	center(m.title, float64(m.bounds.H)/3)
	center(m.prompt, float64(m.bounds.H)*2/3)
}
