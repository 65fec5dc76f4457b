// Package window drives the frame loop with an ebiten window.
package window

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/simian/internal/infrastructure/clock"
	"github.com/younwookim/simian/internal/infrastructure/logging"
	"github.com/younwookim/simian/internal/platform"
	"github.com/younwookim/simian/internal/render"
)

// Driver implements platform.Driver on top of ebiten.RunGame
type Driver struct {
	scale  int
	clock  platform.Clock
	logger *log.Logger

	title  string
	size   platform.Size
	opened bool
}

var _ platform.Driver = (*Driver)(nil)

// Option configures a Driver
type Option func(*Driver)

// WithScale sets window pixels per logical pixel
func WithScale(scale int) Option {
	return func(d *Driver) {
		if scale > 0 {
			d.scale = scale
		}
	}
}

// WithClock sets the clock used to measure dt
func WithClock(c platform.Clock) Option {
	return func(d *Driver) {
		d.clock = c
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// New creates an ebiten driver
func New(opts ...Option) *Driver {
	d := &Driver{
		scale:  1,
		clock:  clock.NewReal(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open configures the ebiten window
func (d *Driver) Open(title string, size platform.Size) error {
	if !size.Valid() {
		return fmt.Errorf("%w: %s", platform.ErrInvalidSize, size)
	}
	d.title = title
	d.size = size

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(size.W*d.scale, size.H*d.scale)
	ebiten.SetWindowClosingHandled(true)
	d.opened = true

	d.logger.Info("window opened", "title", title, "size", size, "scale", d.scale)
	return nil
}

// Loop runs ebiten until the handler quits or ctx is cancelled. ebiten paces
// the loop at targetFPS ticks per second.
func (d *Driver) Loop(ctx context.Context, targetFPS int, h platform.FrameHandler) error {
	if !d.opened {
		return platform.ErrNotOpen
	}
	if targetFPS <= 0 {
		targetFPS = platform.DefaultFPS
	}
	ebiten.SetTPS(targetFPS)

	g := &game{
		ctx:   ctx,
		h:     h,
		clock: d.clock,
		size:  d.size,
		batch: render.NewBatch(),
	}
	g.lastW, g.lastH = ebiten.WindowSize()

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// game adapts a platform.FrameHandler to ebiten.Game
type game struct {
	ctx   context.Context
	h     platform.FrameHandler
	clock platform.Clock
	size  platform.Size
	batch *render.Batch

	events       []platform.Event
	lastW, lastH int
	drawErr      error
}

// Update polls events, measures dt and updates the handler.
// Implements ebiten.Game interface.
func (g *game) Update() error {
	return g.update(g.poll())
}

func (g *game) update(events []platform.Event) error {
	// ebiten.Game.Draw cannot fail, so draw errors surface here.
	if g.drawErr != nil {
		return g.drawErr
	}

	if err := g.h.HandleEvents(events); err != nil {
		return terminate(err)
	}

	// ebiten paces ticks itself; the clock only measures.
	dt := g.clock.Tick(0).Seconds()
	if err := g.h.Update(dt); err != nil {
		return terminate(err)
	}
	return nil
}

// Draw collects the handler's renderables and presents them.
// Implements ebiten.Game interface.
func (g *game) Draw(screen *ebiten.Image) {
	if g.drawErr != nil {
		return
	}
	g.batch.Reset()
	if err := g.h.Draw(g.batch); err != nil {
		g.drawErr = err
		return
	}
	g.batch.Present(screen)
}

// Layout returns the logical screen size.
// Implements ebiten.Game interface.
func (g *game) Layout(_, _ int) (int, int) {
	return g.size.W, g.size.H
}

func (g *game) poll() []platform.Event {
	g.events = g.events[:0]
	if ebiten.IsWindowBeingClosed() || g.ctx.Err() != nil {
		g.events = append(g.events, platform.QuitEvent())
	}

	if w, h := ebiten.WindowSize(); w != g.lastW || h != g.lastH {
		g.lastW, g.lastH = w, h
		g.events = append(g.events, platform.Event{Kind: platform.EventResize, Payload: platform.Size{W: w, H: h}})
	}
	return g.events
}

func terminate(err error) error {
	if errors.Is(err, platform.ErrQuit) {
		return ebiten.Termination
	}
	return err
}
