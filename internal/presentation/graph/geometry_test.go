package graph

import (
	"math"
	"testing"

	"github.com/penwyp/go-consensus-timeline/internal/core/constants"
	"github.com/stretchr/testify/assert"
)

func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		name           string
		px, py         float64
		x1, y1, x2, y2 float64
		want           float64
	}{
		{name: "perpendicular to middle", px: 50, py: 4, x1: 0, y1: 0, x2: 100, y2: 0, want: 4},
		{name: "beyond start clamps", px: -3, py: 4, x1: 0, y1: 0, x2: 100, y2: 0, want: 5},
		{name: "beyond end clamps", px: 106, py: 8, x1: 0, y1: 0, x2: 100, y2: 0, want: 10},
		{name: "on the segment", px: 25, py: 25, x1: 0, y1: 0, x2: 50, y2: 50, want: 0},
		{name: "diagonal", px: 0, py: 10, x1: 0, y1: 0, x2: 10, y2: 10, want: math.Sqrt(50)},
		{name: "zero length", px: 3, py: 4, x1: 0, y1: 0, x2: 0, y2: 0, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentDistance(tt.px, tt.py, tt.x1, tt.y1, tt.x2, tt.y2)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestArrowheadHorizontal(t *testing.T) {
	lx, ly, rx, ry, ok := Arrowhead(0, 0, 100, 0)
	assert.True(t, ok)

	cos := math.Cos(constants.ArrowheadHalfAngle)
	sin := math.Sin(constants.ArrowheadHalfAngle)
	assert.InDelta(t, 100-8*cos, lx, 1e-9)
	assert.InDelta(t, -8*sin, ly, 1e-9)
	assert.InDelta(t, 100-8*cos, rx, 1e-9)
	assert.InDelta(t, 8*sin, ry, 1e-9)
}

func TestArrowheadGeometry(t *testing.T) {
	segments := [][4]float64{
		{0, 0, 30, 40},
		{200, 100, 20, 300},
		{5, 5, 5, -50},
	}

	for _, seg := range segments {
		x1, y1, x2, y2 := seg[0], seg[1], seg[2], seg[3]
		lx, ly, rx, ry, ok := Arrowhead(x1, y1, x2, y2)
		assert.True(t, ok)

		// wings are one head length from the tip
		assert.InDelta(t, constants.ArrowheadLength, math.Hypot(lx-x2, ly-y2), 1e-9)
		assert.InDelta(t, constants.ArrowheadLength, math.Hypot(rx-x2, ry-y2), 1e-9)

		// and open by twice the half angle
		a1 := math.Atan2(ly-y2, lx-x2)
		a2 := math.Atan2(ry-y2, rx-x2)
		opening := math.Abs(math.Remainder(a1-a2, 2*math.Pi))
		assert.InDelta(t, 2*constants.ArrowheadHalfAngle, opening, 1e-9)

		// the wings sit behind the tip, pointing back along the line
		back := math.Atan2(y1-y2, x1-x2)
		mid := math.Atan2((ly+ry)/2-y2, (lx+rx)/2-x2)
		assert.InDelta(t, 0, math.Remainder(back-mid, 2*math.Pi), 1e-9)
	}
}

func TestArrowheadTooShort(t *testing.T) {
	_, _, _, _, ok := Arrowhead(10, 10, 10.5, 10.5)
	assert.False(t, ok)
}
