package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValueIsOrigin(t *testing.T) {
	var v Vec2
	assert.Equal(t, Zero(), v)
	assert.Equal(t, 0.0, v.X)
	assert.Equal(t, 0.0, v.Y)
}

func TestVec2_Arithmetic(t *testing.T) {
	a := New(3, 4)
	b := New(1, -2)

	assert.Equal(t, New(4, 2), a.Add(b))
	assert.Equal(t, New(2, 6), a.Sub(b))
	assert.Equal(t, New(6, 8), a.Scale(2))
	assert.Equal(t, 5.0, a.Len())
	assert.InDelta(t, math.Sqrt(40), a.Dist(b), 1e-9)
}

func TestVec2_ValueSemantics(t *testing.T) {
	a := New(1, 1)
	b := a.Add(New(1, 0))

	assert.Equal(t, New(1, 1), a, "operations must not mutate the receiver")
	assert.Equal(t, New(2, 1), b)
}

func TestVec2_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Vec2
		expected Vec2
	}{
		{"axis", New(0, 5), New(0, 1)},
		{"diagonal", New(3, 4), New(0.6, 0.8)},
		{"zero stays zero", Zero(), Zero()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.InDelta(t, tt.expected.X, got.X, 1e-9)
			assert.InDelta(t, tt.expected.Y, got.Y, 1e-9)
		})
	}
}

func TestVec2_IsFinite(t *testing.T) {
	assert.True(t, New(1, 2).IsFinite())
	assert.False(t, New(math.NaN(), 0).IsFinite())
	assert.False(t, New(0, math.Inf(1)).IsFinite())
}

func TestVec2_String(t *testing.T) {
	assert.Equal(t, "(1.5, -2)", New(1.5, -2).String())
}
