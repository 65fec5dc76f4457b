// Package headless runs the frame loop without a window. It is used by tests,
// replays and the -headless flag.
package headless

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/younwookim/simian/internal/infrastructure/clock"
	"github.com/younwookim/simian/internal/infrastructure/logging"
	"github.com/younwookim/simian/internal/platform"
	"github.com/younwookim/simian/internal/render"
)

// EventSource supplies the events for a frame
type EventSource interface {
	Poll(frame int) []platform.Event
}

// Script is an EventSource keyed by frame index
type Script map[int][]platform.Event

func (s Script) Poll(frame int) []platform.Event {
	return s[frame]
}

// Presenter receives every finished frame
type Presenter interface {
	Present(frame int, batch *render.Batch)
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(frame int, batch *render.Batch)

func (f PresenterFunc) Present(frame int, batch *render.Batch) {
	f(frame, batch)
}

// Driver implements platform.Driver with no window
type Driver struct {
	clock     platform.Clock
	events    EventSource
	presenter Presenter
	maxFrames int
	logger    *log.Logger

	title  string
	size   platform.Size
	opened bool
	frames int
}

var _ platform.Driver = (*Driver)(nil)

// Option configures a Driver
type Option func(*Driver)

// WithClock sets the frame clock. The default is a fixed 60 FPS step.
func WithClock(c platform.Clock) Option {
	return func(d *Driver) {
		d.clock = c
	}
}

// WithEvents sets the scripted event source
func WithEvents(src EventSource) Option {
	return func(d *Driver) {
		d.events = src
	}
}

// WithPresenter receives each frame's batch
func WithPresenter(p Presenter) Option {
	return func(d *Driver) {
		d.presenter = p
	}
}

// WithMaxFrames stops the loop after n frames. n <= 0 runs until quit.
func WithMaxFrames(n int) Option {
	return func(d *Driver) {
		d.maxFrames = n
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// New creates a headless driver
func New(opts ...Option) *Driver {
	d := &Driver{
		clock:  clock.NewFixedFPS(platform.DefaultFPS),
		events: Script(nil),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open records the title and size
func (d *Driver) Open(title string, size platform.Size) error {
	if !size.Valid() {
		return fmt.Errorf("%w: %s", platform.ErrInvalidSize, size)
	}
	d.title = title
	d.size = size
	d.opened = true
	d.logger.Debug("headless surface opened", "title", title, "size", size)
	return nil
}

// Loop runs poll, tick, update, draw and present for each frame
func (d *Driver) Loop(ctx context.Context, targetFPS int, h platform.FrameHandler) error {
	if !d.opened {
		return platform.ErrNotOpen
	}

	batch := render.NewBatch()
	var events []platform.Event
	for frame := 0; d.maxFrames <= 0 || frame < d.maxFrames; frame++ {
		events = events[:0]
		if ctx.Err() != nil {
			events = append(events, platform.QuitEvent())
		}
		events = append(events, d.events.Poll(frame)...)

		if err := h.HandleEvents(events); err != nil {
			return quitOrErr(err)
		}

		dt := d.clock.Tick(targetFPS).Seconds()
		if err := h.Update(dt); err != nil {
			return quitOrErr(err)
		}

		batch.Reset()
		if err := h.Draw(batch); err != nil {
			return err
		}
		if d.presenter != nil {
			d.presenter.Present(frame, batch)
		}
		d.frames++
	}
	d.logger.Debug("headless frame limit reached", "frames", d.frames)
	return nil
}

// Frames returns the number of completed frames
func (d *Driver) Frames() int {
	return d.frames
}

// Title returns the title passed to Open
func (d *Driver) Title() string {
	return d.title
}

// Size returns the size passed to Open
func (d *Driver) Size() platform.Size {
	return d.size
}

func quitOrErr(err error) error {
	if errors.Is(err, platform.ErrQuit) {
		return nil
	}
	return err
}
