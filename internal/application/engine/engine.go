// Package engine owns the game loop: it wires the scene manager, keyboard and
// platform driver together and drives them frame by frame.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/simian/internal/application/scene"
	"github.com/younwookim/simian/internal/application/state"
	"github.com/younwookim/simian/internal/infrastructure/config"
	"github.com/younwookim/simian/internal/infrastructure/input"
	"github.com/younwookim/simian/internal/infrastructure/logging"
	"github.com/younwookim/simian/internal/infrastructure/window"
	"github.com/younwookim/simian/internal/platform"
	"github.com/younwookim/simian/internal/render"
)

var (
	ErrAlreadyCreated = errors.New("engine already created")
	ErrNotLoaded      = errors.New("engine not loaded")
	ErrRunning        = errors.New("engine is running")
	ErrTerminated     = errors.New("engine terminated")
	ErrInvalidSize    = errors.New("invalid window size")
	ErrNoInitialScene = errors.New("no initial scene")
)

var (
	instanceMu sync.Mutex
	instance   *Engine
)

// Engine is the process-wide game engine. Create it once with New.
type Engine struct {
	driver   platform.Driver
	keyboard *input.Keyboard
	logger   *log.Logger
	cfg      *config.Config
	updates  <-chan *config.Config

	state  state.Lifecycle
	scenes *scene.Manager
	title  string
	size   platform.Size
	frame  int
	quit   bool
}

var (
	_ platform.FrameHandler = (*Engine)(nil)
	_ scene.Director        = (*Engine)(nil)
)

// Option configures the Engine
type Option func(*Engine)

// WithDriver sets the platform driver. The default opens an ebiten window.
func WithDriver(d platform.Driver) Option {
	return func(e *Engine) {
		e.driver = d
	}
}

// WithKeyboard sets the keyboard. The default reads ebiten.
func WithKeyboard(k *input.Keyboard) Option {
	return func(e *Engine) {
		e.keyboard = k
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithConfig sets the engine configuration
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithConfigUpdates sets a channel of reloaded configs, applied between frames
func WithConfigUpdates(ch <-chan *config.Config) Option {
	return func(e *Engine) {
		e.updates = ch
	}
}

// New creates the engine. Only one engine may exist per process; later calls
// return ErrAlreadyCreated.
func New(opts ...Option) (*Engine, error) {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance != nil {
		return nil, ErrAlreadyCreated
	}

	e := &Engine{
		logger: logging.Default(),
		cfg:    config.Default(),
		state:  state.StateUnloaded,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.driver == nil {
		e.driver = window.New(window.WithScale(e.cfg.Window.Scale), window.WithLogger(e.logger))
	}
	if e.keyboard == nil {
		e.keyboard = input.NewKeyboard(input.EbitenKeys{})
	}
	e.applyConfig(e.cfg)

	instance = e
	return e, nil
}

// Instance returns the engine created by New, or nil
func Instance() *Engine {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	return instance
}

// Load prepares a fresh scene manager for the named game. Loading again
// before Run discards every registered scene.
func (e *Engine) Load(gameName string, windowSize platform.Size) error {
	switch e.state {
	case state.StateRunning:
		return ErrRunning
	case state.StateTerminated:
		return ErrTerminated
	}
	if !windowSize.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidSize, windowSize)
	}
	if e.state == state.StateLoaded {
		e.logger.Warn("reloading engine, registered scenes are discarded", "scenes", e.scenes.Names())
	}

	e.scenes = scene.NewManager()
	e.scenes.OnSwitch(func(from, to string) {
		e.logger.Debug("scene switched", "from", from, "to", to)
	})
	e.keyboard.Reset()
	e.title = gameName
	e.size = windowSize
	e.frame = 0
	e.quit = false

	return e.transition(state.StateLoaded)
}

// AddScene registers scenes with the manager
func (e *Engine) AddScene(scenes ...scene.Scene) error {
	if err := e.requireLoaded(); err != nil {
		return err
	}
	return e.scenes.Add(scenes...)
}

// SetInitialScene makes name the current scene before Run
func (e *Engine) SetInitialScene(name string) error {
	if err := e.requireLoaded(); err != nil {
		return err
	}
	if e.state == state.StateRunning {
		return ErrRunning
	}
	return e.scenes.LoadScene(name)
}

// SetNextScene queues a switch to name at the start of the next update
func (e *Engine) SetNextScene(name string) error {
	if err := e.requireLoaded(); err != nil {
		return err
	}
	return e.scenes.SetNextScene(name)
}

// Quit ends the loop at the start of the next frame
func (e *Engine) Quit() {
	e.quit = true
}

// Run opens the window and blocks in the frame loop. A quit request or a
// cancelled ctx returns nil; any update or draw error is returned. Either
// way the engine ends Terminated.
func (e *Engine) Run(ctx context.Context) error {
	switch e.state {
	case state.StateUnloaded:
		return ErrNotLoaded
	case state.StateRunning:
		return ErrRunning
	case state.StateTerminated:
		return ErrTerminated
	}
	if e.scenes.Current() == nil {
		return ErrNoInitialScene
	}

	if err := e.driver.Open(e.title, e.size); err != nil {
		return fmt.Errorf("failed to open window: %w", err)
	}
	if err := e.transition(state.StateRunning); err != nil {
		return err
	}

	err := e.driver.Loop(ctx, e.cfg.Loop.FPS, e)
	if terr := e.transition(state.StateTerminated); terr != nil {
		return errors.Join(err, terr)
	}
	if err != nil {
		e.logger.Error("game loop halted", "frame", e.frame, "err", err)
		return fmt.Errorf("game loop: %w", err)
	}
	e.logger.Info("game loop finished", "frames", e.frame)
	return nil
}

// HandleEvents implements platform.FrameHandler
func (e *Engine) HandleEvents(events []platform.Event) error {
	for _, ev := range events {
		switch ev.Kind {
		case platform.EventQuit:
			e.logger.Info("quit event received")
			return platform.ErrQuit
		case platform.EventResize:
			e.logger.Debug("window resized", "size", ev.Payload)
		}
	}
	if e.quit {
		e.logger.Info("quit requested")
		return platform.ErrQuit
	}
	return nil
}

// Update implements platform.FrameHandler
func (e *Engine) Update(dt float64) error {
	e.drainConfigUpdates()
	e.keyboard.Update()
	return e.scenes.Update(dt)
}

// Draw implements platform.FrameHandler
func (e *Engine) Draw(batch *render.Batch) error {
	if err := e.scenes.Draw(batch); err != nil {
		return err
	}
	if e.cfg.Debug.Overlay {
		batch.Add(render.DebugText{
			Message: fmt.Sprintf("FPS: %0.1f TPS: %0.1f\nscene: %s", ebiten.ActualFPS(), ebiten.ActualTPS(), e.scenes.CurrentName()),
			X:       4,
			Y:       4,
		})
	}
	e.frame++
	return nil
}

// State returns the lifecycle state
func (e *Engine) State() state.Lifecycle {
	return e.state
}

// Scenes returns the scene manager, nil before Load
func (e *Engine) Scenes() *scene.Manager {
	return e.scenes
}

// Keyboard returns the keyboard scenes should read
func (e *Engine) Keyboard() *input.Keyboard {
	return e.keyboard
}

// Config returns the active configuration
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Title returns the game name given to Load
func (e *Engine) Title() string {
	return e.title
}

// WindowSize returns the size given to Load
func (e *Engine) WindowSize() platform.Size {
	return e.size
}

// Frame returns the number of completed frames
func (e *Engine) Frame() int {
	return e.frame
}

func (e *Engine) requireLoaded() error {
	switch e.state {
	case state.StateUnloaded:
		return ErrNotLoaded
	case state.StateTerminated:
		return ErrTerminated
	}
	return nil
}

func (e *Engine) transition(next state.Lifecycle) error {
	if !e.state.CanTransition(next) {
		return fmt.Errorf("invalid state transition %s -> %s", e.state, next)
	}
	e.logger.Info("engine state", "from", e.state, "to", next)
	e.state = next
	return nil
}

// drainConfigUpdates applies the newest reloaded config, if any
func (e *Engine) drainConfigUpdates() {
	if e.updates == nil {
		return
	}
	var latest *config.Config
drain:
	for {
		select {
		case cfg, ok := <-e.updates:
			if !ok {
				e.updates = nil
				break drain
			}
			latest = cfg
		default:
			break drain
		}
	}
	if latest != nil {
		e.applyConfig(latest)
		e.logger.Info("config applied", "log", latest.Log.Level, "overlay", latest.Debug.Overlay)
	}
}

// applyConfig applies the settings that can change while running.
// Window size, title and FPS are read once at Run.
func (e *Engine) applyConfig(cfg *config.Config) {
	e.cfg = cfg
	e.keyboard.SetRepeat(cfg.Input.KeyRepeat, cfg.Input.RepeatDelay, cfg.Input.RepeatInterval)
	if lvl, err := logging.ParseLevel(cfg.Log.Level); err == nil {
		e.logger.SetLevel(lvl)
	}
}
