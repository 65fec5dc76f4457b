package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/simian/internal/infrastructure/logging"
	"github.com/younwookim/simian/internal/platform"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of engine.toml
type Config struct {
	Window WindowConfig `toml:"window"`
	Loop   LoopConfig   `toml:"loop"`
	Input  InputConfig  `toml:"input"`
	Log    LogConfig    `toml:"log"`
	Debug  DebugConfig  `toml:"debug"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Scale  int    `toml:"scale"` // Window pixels per logical pixel
}

type LoopConfig struct {
	FPS int `toml:"fps"`
}

// InputConfig configures keyboard repeat. Delay and interval are in frames.
type InputConfig struct {
	KeyRepeat      bool `toml:"key_repeat"`
	RepeatDelay    int  `toml:"repeat_delay"`
	RepeatInterval int  `toml:"repeat_interval"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type DebugConfig struct {
	Overlay bool `toml:"overlay"` // FPS/TPS and scene name in the corner
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Simian",
			Width:  640,
			Height: 480,
			Scale:  1,
		},
		Loop: LoopConfig{
			FPS: platform.DefaultFPS,
		},
		Input: InputConfig{
			KeyRepeat:      true,
			RepeatDelay:    30,
			RepeatInterval: 4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// WindowSize returns the logical screen size
func (c *Config) WindowSize() platform.Size {
	return platform.Size{W: c.Window.Width, H: c.Window.Height}
}

// Validate checks ranges and names
func (c *Config) Validate() error {
	if !c.WindowSize().Valid() {
		return fmt.Errorf("%w: window size %s", ErrInvalidConfig, c.WindowSize())
	}
	if c.Window.Scale < 1 {
		return fmt.Errorf("%w: window scale %d", ErrInvalidConfig, c.Window.Scale)
	}
	if c.Loop.FPS < 1 {
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.Loop.FPS)
	}
	if c.Input.KeyRepeat && (c.Input.RepeatDelay < 1 || c.Input.RepeatInterval < 1) {
		return fmt.Errorf("%w: key repeat delay %d / interval %d", ErrInvalidConfig, c.Input.RepeatDelay, c.Input.RepeatInterval)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
