package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/simian/internal/application/scene"
	"github.com/younwookim/simian/internal/application/state"
	"github.com/younwookim/simian/internal/infrastructure/clock"
	"github.com/younwookim/simian/internal/infrastructure/config"
	"github.com/younwookim/simian/internal/infrastructure/headless"
	"github.com/younwookim/simian/internal/infrastructure/input"
	"github.com/younwookim/simian/internal/infrastructure/logging"
	"github.com/younwookim/simian/internal/platform"
	"github.com/younwookim/simian/internal/render"
)

var size = platform.Size{W: 320, H: 240}

// mockScene is a test double for scene.Scene that logs into a shared trace
type mockScene struct {
	name      string
	trace     *[]string
	dts       []float64
	updateErr error
	drawErr   error
	onUpdate  func()
}

func (m *mockScene) Name() string { return m.name }

func (m *mockScene) Update(dt float64) error {
	*m.trace = append(*m.trace, m.name+".update")
	m.dts = append(m.dts, dt)
	if m.onUpdate != nil {
		m.onUpdate()
	}
	return m.updateErr
}

func (m *mockScene) Draw(_ *render.Batch) error {
	*m.trace = append(*m.trace, m.name+".draw")
	return m.drawErr
}

func (m *mockScene) OnEnter() error {
	*m.trace = append(*m.trace, m.name+".enter")
	return nil
}

func (m *mockScene) OnExit() error {
	*m.trace = append(*m.trace, m.name+".exit")
	return nil
}

func resetInstance() {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	instance = nil
}

// newEngine creates a fresh singleton on a headless driver
func newEngine(t *testing.T, driver platform.Driver, opts ...Option) *Engine {
	t.Helper()
	resetInstance()
	t.Cleanup(resetInstance)

	keys := input.KeySourceFunc(func(dst []ebiten.Key) []ebiten.Key { return dst })
	opts = append([]Option{
		WithDriver(driver),
		WithKeyboard(input.NewKeyboard(keys)),
		WithLogger(logging.Discard()),
	}, opts...)

	e, err := New(opts...)
	require.NoError(t, err)
	return e
}

func fixedDriver(frames int, opts ...headless.Option) *headless.Driver {
	opts = append([]headless.Option{
		headless.WithClock(clock.NewFixed(time.Second / 60)),
		headless.WithMaxFrames(frames),
		headless.WithLogger(logging.Discard()),
	}, opts...)
	return headless.New(opts...)
}

func TestNew_IsSingleton(t *testing.T) {
	e := newEngine(t, fixedDriver(1))
	assert.Same(t, e, Instance())

	_, err := New()
	assert.ErrorIs(t, err, ErrAlreadyCreated)
	assert.Same(t, e, Instance())
}

func TestEngine_Load(t *testing.T) {
	e := newEngine(t, fixedDriver(1))
	assert.Equal(t, state.StateUnloaded, e.State())
	assert.Nil(t, e.Scenes())

	err := e.Load("game", platform.Size{W: 0, H: 10})
	assert.ErrorIs(t, err, ErrInvalidSize)
	assert.Equal(t, state.StateUnloaded, e.State())

	require.NoError(t, e.Load("game", size))
	assert.Equal(t, state.StateLoaded, e.State())
	assert.Equal(t, "game", e.Title())
	assert.Equal(t, size, e.WindowSize())
	assert.NotNil(t, e.Scenes())
}

func TestEngine_ReloadDiscardsScenes(t *testing.T) {
	e := newEngine(t, fixedDriver(1))
	var trace []string

	require.NoError(t, e.Load("first", size))
	require.NoError(t, e.AddScene(&mockScene{name: "menu", trace: &trace}))
	require.NoError(t, e.SetInitialScene("menu"))

	require.NoError(t, e.Load("second", size))
	assert.Equal(t, "second", e.Title())
	assert.Empty(t, e.Scenes().Names())
	assert.ErrorIs(t, e.Run(context.Background()), ErrNoInitialScene)
}

func TestEngine_InvalidReloadKeepsScenes(t *testing.T) {
	var out bytes.Buffer
	e := newEngine(t, fixedDriver(1), WithLogger(logging.New(&out, log.DebugLevel)))
	var trace []string

	require.NoError(t, e.Load("first", size))
	require.NoError(t, e.AddScene(&mockScene{name: "menu", trace: &trace}))

	assert.ErrorIs(t, e.Load("second", platform.Size{}), ErrInvalidSize)
	assert.Equal(t, "first", e.Title())
	assert.Equal(t, []string{"menu"}, e.Scenes().Names())
	assert.NotContains(t, out.String(), "discarded")
}

func TestEngine_RequiresLoad(t *testing.T) {
	e := newEngine(t, fixedDriver(1))
	var trace []string

	assert.ErrorIs(t, e.AddScene(&mockScene{name: "menu", trace: &trace}), ErrNotLoaded)
	assert.ErrorIs(t, e.SetInitialScene("menu"), ErrNotLoaded)
	assert.ErrorIs(t, e.SetNextScene("menu"), ErrNotLoaded)
	assert.ErrorIs(t, e.Run(context.Background()), ErrNotLoaded)
}

func TestEngine_UnknownScene(t *testing.T) {
	e := newEngine(t, fixedDriver(1))
	require.NoError(t, e.Load("game", size))

	assert.ErrorIs(t, e.SetInitialScene("missing"), scene.ErrUnknownScene)
	assert.ErrorIs(t, e.SetNextScene("missing"), scene.ErrUnknownScene)
	assert.Equal(t, "", e.Scenes().CurrentName())
}

func TestEngine_RunAlternatesUpdateAndDraw(t *testing.T) {
	const frames = 5
	driver := fixedDriver(frames)
	e := newEngine(t, driver)

	var trace []string
	menu := &mockScene{name: "menu", trace: &trace}
	require.NoError(t, e.Load("game", size))
	require.NoError(t, e.AddScene(menu))
	require.NoError(t, e.SetInitialScene("menu"))
	trace = nil

	require.NoError(t, e.Run(context.Background()))

	require.Len(t, trace, 2*frames)
	for i := 0; i < frames; i++ {
		assert.Equal(t, "menu.update", trace[2*i])
		assert.Equal(t, "menu.draw", trace[2*i+1])
	}
	for _, dt := range menu.dts {
		assert.InDelta(t, 1.0/60.0, dt, 1e-9)
	}
	assert.Equal(t, frames, e.Frame())
	assert.Equal(t, "game", driver.Title())
	assert.Equal(t, size, driver.Size())
	assert.Equal(t, state.StateTerminated, e.State())
}

func TestEngine_TerminatedIsFinal(t *testing.T) {
	e := newEngine(t, fixedDriver(1))
	var trace []string
	require.NoError(t, e.Load("game", size))
	require.NoError(t, e.AddScene(&mockScene{name: "menu", trace: &trace}))
	require.NoError(t, e.SetInitialScene("menu"))
	require.NoError(t, e.Run(context.Background()))

	assert.ErrorIs(t, e.Run(context.Background()), ErrTerminated)
	assert.ErrorIs(t, e.Load("game", size), ErrTerminated)
	assert.ErrorIs(t, e.AddScene(&mockScene{name: "x", trace: &trace}), ErrTerminated)
	assert.Equal(t, state.StateTerminated, e.State())
}

func TestEngine_MenuToPlay(t *testing.T) {
	e := newEngine(t, fixedDriver(3))

	var trace []string
	menu := &mockScene{name: "menu", trace: &trace}
	play := &mockScene{name: "play", trace: &trace}
	menu.onUpdate = func() {
		require.NoError(t, e.SetNextScene("play"))
		// still menu until the next frame boundary
		assert.Equal(t, "menu", e.Scenes().CurrentName())
	}

	require.NoError(t, e.Load("game", size))
	require.NoError(t, e.AddScene(menu, play))
	require.NoError(t, e.SetInitialScene("menu"))
	require.NoError(t, e.Run(context.Background()))

	assert.Equal(t, []string{
		"menu.enter",
		"menu.update", "menu.draw",
		"menu.exit", "play.enter", "play.update", "play.draw",
		"play.update", "play.draw",
	}, trace)
}

func TestEngine_QuitEventStopsCleanly(t *testing.T) {
	driver := fixedDriver(0, headless.WithEvents(headless.Script{
		2: {platform.QuitEvent()},
	}))
	e := newEngine(t, driver)

	var trace []string
	require.NoError(t, e.Load("game", size))
	require.NoError(t, e.AddScene(&mockScene{name: "menu", trace: &trace}))
	require.NoError(t, e.SetInitialScene("menu"))

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 2, e.Frame())
	assert.Equal(t, state.StateTerminated, e.State())
}

func TestEngine_QuitRequestFromScene(t *testing.T) {
	e := newEngine(t, fixedDriver(0))

	var trace []string
	menu := &mockScene{name: "menu", trace: &trace}
	menu.onUpdate = e.Quit

	require.NoError(t, e.Load("game", size))
	require.NoError(t, e.AddScene(menu))
	require.NoError(t, e.SetInitialScene("menu"))

	require.NoError(t, e.Run(context.Background()))
	// the requesting frame still completes
	assert.Equal(t, 1, e.Frame())
}

func TestEngine_ContextCancelStopsCleanly(t *testing.T) {
	e := newEngine(t, fixedDriver(0))

	ctx, cancel := context.WithCancel(context.Background())
	var trace []string
	menu := &mockScene{name: "menu", trace: &trace}
	menu.onUpdate = cancel

	require.NoError(t, e.Load("game", size))
	require.NoError(t, e.AddScene(menu))
	require.NoError(t, e.SetInitialScene("menu"))

	require.NoError(t, e.Run(ctx))
	assert.Equal(t, 1, e.Frame())
}

func TestEngine_ErrorsHaltAndPropagate(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name  string
		scene func(trace *[]string) *mockScene
		frame int
	}{
		{"update", func(tr *[]string) *mockScene { return &mockScene{name: "menu", trace: tr, updateErr: boom} }, 0},
		{"draw", func(tr *[]string) *mockScene { return &mockScene{name: "menu", trace: tr, drawErr: boom} }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, fixedDriver(10))
			var trace []string
			require.NoError(t, e.Load("game", size))
			require.NoError(t, e.AddScene(tt.scene(&trace)))
			require.NoError(t, e.SetInitialScene("menu"))

			err := e.Run(context.Background())
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, tt.frame, e.Frame())
			assert.Equal(t, state.StateTerminated, e.State())
		})
	}
}

func TestEngine_OpenFailureKeepsLoaded(t *testing.T) {
	e := newEngine(t, openFails{})
	var trace []string
	require.NoError(t, e.Load("game", size))
	require.NoError(t, e.AddScene(&mockScene{name: "menu", trace: &trace}))
	require.NoError(t, e.SetInitialScene("menu"))

	err := e.Run(context.Background())
	assert.ErrorIs(t, err, errOpen)
	assert.Equal(t, state.StateLoaded, e.State())
}

var errOpen = errors.New("no display")

type openFails struct{}

func (openFails) Open(string, platform.Size) error { return errOpen }

func (openFails) Loop(context.Context, int, platform.FrameHandler) error { return nil }

func TestEngine_AppliesConfigUpdates(t *testing.T) {
	updates := make(chan *config.Config, 2)
	cfg := config.Default()
	cfg.Input.KeyRepeat = false

	e := newEngine(t, fixedDriver(2), WithConfig(cfg), WithConfigUpdates(updates))
	assert.False(t, e.Keyboard().RepeatEnabled())

	var trace []string
	menu := &mockScene{name: "menu", trace: &trace}
	require.NoError(t, e.Load("game", size))
	require.NoError(t, e.AddScene(menu))
	require.NoError(t, e.SetInitialScene("menu"))

	stale := config.Default()
	stale.Log.Level = "warn"
	fresh := config.Default()
	fresh.Input.KeyRepeat = true
	fresh.Log.Level = "debug"
	updates <- stale
	updates <- fresh
	close(updates)

	require.NoError(t, e.Run(context.Background()))
	assert.Same(t, fresh, e.Config())
	assert.True(t, e.Keyboard().RepeatEnabled())
}
