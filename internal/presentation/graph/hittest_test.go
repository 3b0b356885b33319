package graph

import (
	"testing"

	"github.com/penwyp/go-consensus-timeline/internal/core/constants"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/core/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// one pixel per time unit, two nodes over 100px
func unitScales() *scale.Scales {
	return &scale.Scales{
		Time:        scale.NewTimeScale(0, 100, 0, 100),
		Nodes:       scale.NewNodeScale([]string{"N0", "N1"}, 0, 100, constants.BandPadding),
		InnerWidth:  100,
		InnerHeight: 100,
	}
}

func TestHitTestArrow(t *testing.T) {
	sc := unitScales()
	y0, _ := sc.Y("N0")
	arrows := []model.Arrow{{ID: 0, FromNode: "N0", ToNode: "N0", SendTime: 10, RecvTime: 90}}

	ref, dist, ok := HitTest(sc, arrows, nil, 50, y0+4)
	require.True(t, ok)
	assert.Equal(t, model.ElementRef{Kind: model.ElementArrow, ID: 0}, ref)
	assert.InDelta(t, 4, dist, 1e-9)

	// threshold is exclusive
	_, _, ok = HitTest(sc, arrows, nil, 50, y0+constants.HitThreshold)
	assert.False(t, ok)

	// distance is measured to the clamped segment, not the infinite line
	_, _, ok = HitTest(sc, arrows, nil, 99.5, y0+9.5)
	assert.False(t, ok)
}

func TestHitTestPoint(t *testing.T) {
	sc := unitScales()
	y1, _ := sc.Y("N1")
	points := []model.StateChangePoint{{ID: 0, Node: "N1", Timestamp: 30}}

	ref, dist, ok := HitTest(sc, nil, points, 33, y1+4)
	require.True(t, ok)
	assert.Equal(t, model.ElementRef{Kind: model.ElementPoint, ID: 0}, ref)
	assert.InDelta(t, 5, dist, 1e-9)
}

func TestHitTestArrowWinsTies(t *testing.T) {
	sc := unitScales()
	y0, _ := sc.Y("N0")
	arrows := []model.Arrow{{ID: 0, FromNode: "N0", ToNode: "N0", SendTime: 10, RecvTime: 90}}
	points := []model.StateChangePoint{{ID: 0, Node: "N0", Timestamp: 50}}

	ref, _, ok := HitTest(sc, arrows, points, 50, y0)
	require.True(t, ok)
	assert.Equal(t, model.ElementArrow, ref.Kind)

	ref, _, ok = HitTest(sc, arrows, points, 50, y0+3)
	require.True(t, ok)
	assert.Equal(t, model.ElementArrow, ref.Kind)
}

func TestHitTestStrictlyCloserPointWins(t *testing.T) {
	sc := unitScales()
	y0, _ := sc.Y("N0")
	arrows := []model.Arrow{{ID: 0, FromNode: "N0", ToNode: "N0", SendTime: 10, RecvTime: 45}}
	points := []model.StateChangePoint{{ID: 0, Node: "N0", Timestamp: 50}}

	ref, dist, ok := HitTest(sc, arrows, points, 50, y0)
	require.True(t, ok)
	assert.Equal(t, model.ElementRef{Kind: model.ElementPoint, ID: 0}, ref)
	assert.Equal(t, 0.0, dist)
}

func TestHitTestFirstArrowWinsExactTie(t *testing.T) {
	sc := unitScales()
	y0, _ := sc.Y("N0")
	arrows := []model.Arrow{
		{ID: 0, FromNode: "N0", ToNode: "N0", SendTime: 10, RecvTime: 90},
		{ID: 1, FromNode: "N0", ToNode: "N0", SendTime: 20, RecvTime: 80},
	}

	ref, _, ok := HitTest(sc, arrows, nil, 50, y0+2)
	require.True(t, ok)
	assert.Equal(t, 0, ref.ID)
}

func TestHitTestIdempotent(t *testing.T) {
	sc := unitScales()
	y0, _ := sc.Y("N0")
	y1, _ := sc.Y("N1")
	arrows := []model.Arrow{{ID: 0, FromNode: "N0", ToNode: "N1", SendTime: 10, RecvTime: 60}}
	points := []model.StateChangePoint{{ID: 0, Node: "N1", Timestamp: 62}}

	for _, pos := range [][2]float64{{35, (y0 + y1) / 2}, {61, y1}, {0, 0}} {
		r1, d1, ok1 := HitTest(sc, arrows, points, pos[0], pos[1])
		r2, d2, ok2 := HitTest(sc, arrows, points, pos[0], pos[1])
		assert.Equal(t, r1, r2)
		assert.Equal(t, d1, d2)
		assert.Equal(t, ok1, ok2)
	}
}

func TestHitTestWithoutScales(t *testing.T) {
	_, _, ok := HitTest(nil, []model.Arrow{{}}, nil, 0, 0)
	assert.False(t, ok)
}
