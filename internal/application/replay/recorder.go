package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/simian/internal/infrastructure/input"
)

// ErrEmpty is returned when saving a replay with no frames
var ErrEmpty = errors.New("no frames to save")

// Recorder wraps a key source and records what it reports each frame
type Recorder struct {
	src       input.KeySource
	data      ReplayData
	recording bool
}

// NewRecorder creates a recorder that reads from src
func NewRecorder(src input.KeySource, game, scene string) *Recorder {
	return &Recorder{
		src: src,
		data: ReplayData{
			Version:   Version,
			Game:      game,
			Scene:     scene,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // ~1 minute at 60fps
		},
		recording: true,
	}
}

// AppendPressed reads the wrapped source and records the frame
func (r *Recorder) AppendPressed(dst []ebiten.Key) []ebiten.Key {
	start := len(dst)
	dst = r.src.AppendPressed(dst)
	r.RecordFrame(dst[start:])
	return dst
}

// RecordFrame records a single frame's keys
func (r *Recorder) RecordFrame(keys []ebiten.Key) {
	if !r.recording {
		return
	}

	fi := FrameInput{F: len(r.data.Frames)}
	if len(keys) > 0 {
		fi.Keys = slices.Clone(keys)
		slices.Sort(fi.Keys)
	}
	r.data.Frames = append(r.data.Frames, fi)
}

// Data returns the recorded replay
func (r *Recorder) Data() ReplayData {
	return r.data
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrEmpty
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
