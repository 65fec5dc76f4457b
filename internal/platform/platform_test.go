package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSize_Valid(t *testing.T) {
	tests := []struct {
		size     Size
		expected bool
	}{
		{Size{640, 480}, true},
		{Size{0, 480}, false},
		{Size{640, -1}, false},
		{Size{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.size.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.size.Valid())
		})
	}
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "Quit", EventQuit.String())
	assert.Equal(t, "Resize", EventResize.String())
	assert.Equal(t, "Unknown", EventKind(42).String())
}

func TestQuitEvent(t *testing.T) {
	assert.Equal(t, EventQuit, QuitEvent().Kind)
}
