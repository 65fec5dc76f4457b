package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/younwookim/simian/internal/application/engine"
	"github.com/younwookim/simian/internal/application/replay"
	"github.com/younwookim/simian/internal/application/scene/menu"
	"github.com/younwookim/simian/internal/application/scene/playing"
	"github.com/younwookim/simian/internal/infrastructure/clock"
	"github.com/younwookim/simian/internal/infrastructure/config"
	"github.com/younwookim/simian/internal/infrastructure/headless"
	"github.com/younwookim/simian/internal/infrastructure/input"
	"github.com/younwookim/simian/internal/infrastructure/logging"
	"github.com/younwookim/simian/internal/infrastructure/window"
	"github.com/younwookim/simian/internal/platform"
)

//go:embed configs
var configFS embed.FS

// options holds the command line flags
type options struct {
	configPath string
	headless   bool
	frames     int
	record     string
	replay     string
	logLevel   string
	watch      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to engine.toml (default: embedded config)")
	flag.BoolVar(&opts.headless, "headless", false, "Run without a window")
	flag.IntVar(&opts.frames, "frames", 0, "Stop after N frames in headless mode (0 = until quit or end of replay)")
	flag.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json, or -record auto)")
	flag.StringVar(&opts.replay, "replay", "", "Play input back from a recorded file")
	flag.StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the -config file when it changes")
	flag.Parse()

	logger := logging.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, opts, logger)
	stop()
	if err != nil {
		logger.Fatal("simian stopped", "err", err)
	}
}

func run(ctx context.Context, opts options, logger *log.Logger) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	initial := menu.Name
	var src input.KeySource = input.EbitenKeys{}
	var replayer *replay.Replayer
	if opts.replay != "" {
		data, err := replay.LoadReplay(opts.replay)
		if err != nil {
			return err
		}
		replayer = replay.NewReplayer(*data)
		src = replayer
		if data.Scene != "" {
			initial = data.Scene
		}
		logger.Info("replaying", "file", opts.replay, "frames", replayer.TotalFrames())
	}

	var recorder *replay.Recorder
	if opts.record == "auto" {
		opts.record = replay.GenerateFilename()
	}
	if opts.record != "" {
		recorder = replay.NewRecorder(src, cfg.Window.Title, initial)
		src = recorder
		logger.Info("recording enabled", "file", opts.record)
	}

	keyboard := input.NewKeyboard(src)

	var driver platform.Driver
	if opts.headless {
		frames := opts.frames
		if frames == 0 && replayer != nil {
			frames = replayer.TotalFrames()
		}
		driver = headless.New(
			headless.WithClock(clock.NewFixedFPS(cfg.Loop.FPS)),
			headless.WithMaxFrames(frames),
			headless.WithLogger(logger),
		)
	} else {
		driver = window.New(window.WithScale(cfg.Window.Scale), window.WithLogger(logger))
	}

	engineOpts := []engine.Option{
		engine.WithDriver(driver),
		engine.WithKeyboard(keyboard),
		engine.WithLogger(logger),
		engine.WithConfig(cfg),
	}
	if opts.watch {
		if opts.configPath == "" {
			logger.Warn("-watch needs -config, the embedded config cannot change")
		} else {
			w, err := config.Watch(ctx, opts.configPath, logger)
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()
			engineOpts = append(engineOpts, engine.WithConfigUpdates(w.Updates()))
		}
	}

	e, err := engine.New(engineOpts...)
	if err != nil {
		return err
	}
	size := cfg.WindowSize()
	if err := e.Load(cfg.Window.Title, size); err != nil {
		return err
	}
	if err := e.AddScene(
		menu.New(e, keyboard, size, cfg.Window.Title),
		playing.New(e, keyboard, size),
	); err != nil {
		return err
	}
	if err := e.SetInitialScene(initial); err != nil {
		return err
	}

	runErr := e.Run(ctx)

	if recorder != nil {
		recorder.Stop()
		if err := recorder.Save(opts.record); err != nil {
			logger.Error("failed to save replay", "file", opts.record, "err", err)
		} else {
			logger.Info("replay saved", "file", opts.record, "frames", recorder.FrameCount())
		}
	}
	return runErr
}

// loadConfig reads path, or the embedded engine.toml when path is empty
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			return nil, fmt.Errorf("failed to get config subfs: %w", err)
		}
		return config.NewFSLoader(fsys, "configs").Load()
	}
	return config.NewLoader(filepath.Dir(path)).LoadFile(filepath.Base(path))
}
