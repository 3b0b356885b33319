package graph

import (
	"math"

	"github.com/penwyp/go-consensus-timeline/internal/core/constants"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/core/scale"
)

// HitTest finds the element closest to the content-local point (x, y) within
// the hit threshold. Arrows are scanned before points and a candidate only
// replaces the current best when it is strictly closer.
func HitTest(sc *scale.Scales, arrows []model.Arrow, points []model.StateChangePoint, x, y float64) (model.ElementRef, float64, bool) {
	if sc == nil {
		return model.ElementRef{}, 0, false
	}

	var found model.ElementRef
	minDist := constants.HitThreshold

	for _, ar := range arrows {
		x1, y1, x2, y2, ok := arrowEndpoints(sc, ar)
		if !ok {
			continue
		}
		if d := SegmentDistance(x, y, x1, y1, x2, y2); d < minDist {
			minDist = d
			found = ar.Ref()
		}
	}

	for _, p := range points {
		cx, cy, ok := pointCenter(sc, p)
		if !ok {
			continue
		}
		if d := math.Hypot(x-cx, y-cy); d < minDist {
			minDist = d
			found = p.Ref()
		}
	}

	if found.IsZero() {
		return model.ElementRef{}, 0, false
	}
	return found, minDist, true
}
