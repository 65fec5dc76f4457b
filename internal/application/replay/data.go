// Package replay records keyboard input frame by frame and plays it back.
package replay

import "github.com/hajimehoshi/ebiten/v2"

// Version is written into every saved replay
const Version = "1.0"

// FrameInput records the keys held during a single frame
type FrameInput struct {
	F    int          `json:"f"`              // Frame number
	Keys []ebiten.Key `json:"keys,omitempty"` // Held keys, by name
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Game      string       `json:"game"`
	Scene     string       `json:"scene"` // Initial scene
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
