package graph

import (
	"math"

	"github.com/penwyp/go-consensus-timeline/internal/core/constants"
)

// SegmentDistance is the distance from (px, py) to the segment (x1, y1)-(x2, y2)
func SegmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}

// Arrowhead returns the two wing points of a head at (x2, y2) pointing away
// from (x1, y1). ok is false when the segment is too short to orient.
func Arrowhead(x1, y1, x2, y2 float64) (lx, ly, rx, ry float64, ok bool) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length < constants.MinArrowLength {
		return 0, 0, 0, 0, false
	}

	ux, uy := dx/length, dy/length
	cos := math.Cos(constants.ArrowheadHalfAngle)
	sin := math.Sin(constants.ArrowheadHalfAngle)
	size := constants.ArrowheadLength

	lx = x2 - size*(ux*cos-uy*sin)
	ly = y2 - size*(ux*sin+uy*cos)
	rx = x2 - size*(ux*cos+uy*sin)
	ry = y2 - size*(-ux*sin+uy*cos)
	return lx, ly, rx, ry, true
}
