// Package playing provides the demo gameplay scene: a box moved with the
// arrow keys that throws sparks.
package playing

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/simian/internal/application/objects"
	"github.com/younwookim/simian/internal/application/scene"
	"github.com/younwookim/simian/internal/domain/vec"
	"github.com/younwookim/simian/internal/infrastructure/input"
	"github.com/younwookim/simian/internal/platform"
	"github.com/younwookim/simian/internal/render"
)

// Name is the key the scene registers under
const Name = "play"

// MenuScene is where Escape returns to
const MenuScene = "menu"

const (
	playerSize  = 16
	playerSpeed = 120.0 // pixels per second
	sparkSize   = 3
	sparkSpeed  = 90.0
	sparkTTL    = 0.75
	goldenAngle = 2.399963229728653 // radians
)

// Colors for rendering
var (
	colorBG     = color.RGBA{26, 26, 46, 255}
	colorPlayer = color.RGBA{100, 200, 100, 255}
	colorSpark  = color.RGBA{255, 215, 0, 255}
	colorHUD    = color.RGBA{200, 200, 200, 255}
)

// Playing is the main gameplay scene
type Playing struct {
	*scene.Base

	director scene.Director
	keyboard *input.Keyboard
	bounds   platform.Size

	player *objects.Rect
	spark  *Spark // prototype, never added to the scene
	hud    *objects.Text
	thrown int
}

var _ scene.Scene = (*Playing)(nil)

// New creates the scene for a screen of the given size
func New(director scene.Director, keyboard *input.Keyboard, bounds platform.Size) *Playing {
	p := &Playing{
		Base:     scene.NewBase(Name),
		director: director,
		keyboard: keyboard,
		bounds:   bounds,
		player:   objects.NewRect(vec.Zero(), playerSize, playerSize, colorPlayer),
		spark:    NewSpark(sparkSize, colorSpark, sparkTTL),
		hud:      objects.NewText("", 12, "gomono", objects.WithColor(colorHUD), objects.WithPosition(vec.New(4, 4))),
	}
	// Objects are always valid here; Add only rejects nil or broken ones.
	_ = p.Add(p.player, p.hud)
	p.resetPlayer()
	return p
}

// Player returns the player box
func (p *Playing) Player() *objects.Rect {
	return p.player
}

// Sparks returns the live sparks in spawn order
func (p *Playing) Sparks() []*Spark {
	var out []*Spark
	for _, o := range p.Objects() {
		if s, ok := o.(*Spark); ok {
			out = append(out, s)
		}
	}
	return out
}

// OnEnter places the player in the middle of the screen
func (p *Playing) OnEnter() error {
	p.resetPlayer()
	return nil
}

// OnExit drops every spark
func (p *Playing) OnExit() error {
	for _, s := range p.Sparks() {
		p.Remove(s.ID())
	}
	p.thrown = 0
	return nil
}

// Update moves the player, throws sparks and advances every object
func (p *Playing) Update(dt float64) error {
	kb := p.keyboard
	if kb.IsJustPressed(ebiten.KeyEscape) {
		return p.director.SetNextScene(MenuScene)
	}

	dir := vec.Zero()
	if kb.IsPressed(ebiten.KeyArrowLeft) {
		dir = dir.Add(vec.New(-1, 0))
	}
	if kb.IsPressed(ebiten.KeyArrowRight) {
		dir = dir.Add(vec.New(1, 0))
	}
	if kb.IsPressed(ebiten.KeyArrowUp) {
		dir = dir.Add(vec.New(0, -1))
	}
	if kb.IsPressed(ebiten.KeyArrowDown) {
		dir = dir.Add(vec.New(0, 1))
	}
	pos := p.player.Position().Add(dir.Normalize().Scale(playerSpeed * dt))
	p.player.SetPosition(p.clamp(pos))

	if kb.IsRepeated(ebiten.KeySpace) {
		if err := p.throwSpark(); err != nil {
			return err
		}
	}

	if err := p.Base.Update(dt); err != nil {
		return err
	}
	p.RemoveInactive()

	p.hud.SetMessage(fmt.Sprintf("sparks: %d", len(p.Sparks())))
	return nil
}

// Draw clears the background, then draws objects in insertion order
func (p *Playing) Draw(batch *render.Batch) error {
	batch.Add(render.Rect{W: float32(p.bounds.W), H: float32(p.bounds.H), Color: colorBG})
	return p.Base.Draw(batch)
}

func (p *Playing) throwSpark() error {
	at := p.player.Center().Sub(vec.New(sparkSize/2.0, sparkSize/2.0))
	o, err := p.Spawn(p.spark, at)
	if err != nil {
		return err
	}
	angle := float64(p.thrown) * goldenAngle
	o.(*Spark).Velocity = vec.New(math.Cos(angle), math.Sin(angle)).Scale(sparkSpeed)
	p.thrown++
	return nil
}

func (p *Playing) resetPlayer() {
	p.player.SetPosition(vec.New(
		float64(p.bounds.W-playerSize)/2,
		float64(p.bounds.H-playerSize)/2,
	))
}

func (p *Playing) clamp(pos vec.Vec2) vec.Vec2 {
	maxX := float64(p.bounds.W - playerSize)
	maxY := float64(p.bounds.H - playerSize)
	return vec.New(math.Max(0, math.Min(pos.X, maxX)), math.Max(0, math.Min(pos.Y, maxY)))
}
