// Package input tracks keyboard state frame by frame.
package input

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeySource reports the keys held down in the current frame
type KeySource interface {
	AppendPressed(dst []ebiten.Key) []ebiten.Key
}

// EbitenKeys reads the live ebiten keyboard
type EbitenKeys struct{}

func (EbitenKeys) AppendPressed(dst []ebiten.Key) []ebiten.Key {
	return inpututil.AppendPressedKeys(dst)
}

// KeySourceFunc adapts a function to KeySource
type KeySourceFunc func(dst []ebiten.Key) []ebiten.Key

func (f KeySourceFunc) AppendPressed(dst []ebiten.Key) []ebiten.Key {
	return f(dst)
}

// Default repeat timing, in frames
const (
	DefaultRepeatDelay    = 30
	DefaultRepeatInterval = 4
)

// Keyboard keeps per-key held durations. Update must be called once per frame
// before any query.
type Keyboard struct {
	src      KeySource
	held     map[ebiten.Key]int // frames held, 1 on the press frame
	released map[ebiten.Key]bool
	scratch  []ebiten.Key

	repeat   bool
	delay    int
	interval int
}

// KeyboardOption configures a Keyboard
type KeyboardOption func(*Keyboard)

// WithRepeat sets key repeat timing
func WithRepeat(enabled bool, delay, interval int) KeyboardOption {
	return func(k *Keyboard) {
		k.SetRepeat(enabled, delay, interval)
	}
}

// NewKeyboard creates a keyboard over src. A nil src reads ebiten.
func NewKeyboard(src KeySource, opts ...KeyboardOption) *Keyboard {
	if src == nil {
		src = EbitenKeys{}
	}
	k := &Keyboard{
		src:      src,
		held:     make(map[ebiten.Key]int),
		released: make(map[ebiten.Key]bool),
		delay:    DefaultRepeatDelay,
		interval: DefaultRepeatInterval,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// SetSource swaps the key source, e.g. for replay. Held state is cleared.
func (k *Keyboard) SetSource(src KeySource) {
	k.src = src
	k.Reset()
}

// Reset forgets all key state
func (k *Keyboard) Reset() {
	clear(k.held)
	clear(k.released)
}

// SetRepeat enables or disables key repeat. Non-positive timings fall back
// to the defaults.
func (k *Keyboard) SetRepeat(enabled bool, delay, interval int) {
	if delay <= 0 {
		delay = DefaultRepeatDelay
	}
	if interval <= 0 {
		interval = DefaultRepeatInterval
	}
	k.repeat = enabled
	k.delay = delay
	k.interval = interval
}

// RepeatEnabled reports whether key repeat is on
func (k *Keyboard) RepeatEnabled() bool {
	return k.repeat
}

// Update advances one frame
func (k *Keyboard) Update() {
	k.scratch = k.src.AppendPressed(k.scratch[:0])
	// A key reported twice still counts one frame.
	slices.Sort(k.scratch)
	k.scratch = slices.Compact(k.scratch)

	clear(k.released)
	for key := range k.held {
		if !slices.Contains(k.scratch, key) {
			delete(k.held, key)
			k.released[key] = true
		}
	}
	for _, key := range k.scratch {
		k.held[key]++
	}
}

// IsPressed reports whether key is held this frame
func (k *Keyboard) IsPressed(key ebiten.Key) bool {
	return k.held[key] > 0
}

// IsJustPressed reports whether key went down this frame
func (k *Keyboard) IsJustPressed(key ebiten.Key) bool {
	return k.held[key] == 1
}

// IsJustReleased reports whether key went up this frame
func (k *Keyboard) IsJustReleased(key ebiten.Key) bool {
	return k.released[key]
}

// IsRepeated is true on the press frame, then every interval frames once the
// key has been held for delay frames. Without repeat it equals IsJustPressed.
func (k *Keyboard) IsRepeated(key ebiten.Key) bool {
	n := k.held[key]
	if n == 1 {
		return true
	}
	if !k.repeat || n <= k.delay {
		return false
	}
	return (n-k.delay-1)%k.interval == 0
}

// Duration returns how many frames key has been held, 0 if up
func (k *Keyboard) Duration(key ebiten.Key) int {
	return k.held[key]
}

// PressedKeys returns the held keys in ascending order
func (k *Keyboard) PressedKeys() []ebiten.Key {
	keys := make([]ebiten.Key, 0, len(k.held))
	for key := range k.held {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
