package scale

import (
	"testing"

	"github.com/penwyp/go-consensus-timeline/internal/core/constants"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeScaleApplyInvert(t *testing.T) {
	s := NewTimeScale(1000, 2000, 0, 500)

	assert.InDelta(t, 0, s.Apply(1000), 1e-9)
	assert.InDelta(t, 500, s.Apply(2000), 1e-9)
	assert.InDelta(t, 250, s.Apply(1500), 1e-9)

	for _, px := range []float64{0, 17.5, 250, 499} {
		assert.InDelta(t, px, s.Apply(s.Invert(px)), 1e-9)
	}
}

func TestTimeScaleDegenerate(t *testing.T) {
	s := NewTimeScale(10, 10, 0, 100)
	assert.Equal(t, 50.0, s.Apply(10))

	s = NewTimeScale(0, 100, 40, 40)
	assert.Equal(t, 50.0, s.Invert(40))
}

func TestNodeScaleBands(t *testing.T) {
	tests := []struct {
		name   string
		domain []string
		height float64
	}{
		{name: "single node", domain: []string{"N0"}, height: 500},
		{name: "five nodes", domain: []string{"N0", "N1", "N2", "N3", "N4"}, height: 500},
		{name: "small canvas", domain: []string{"a", "b"}, height: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewNodeScale(tt.domain, 0, tt.height, constants.BandPadding)

			require.Greater(t, s.Bandwidth(), 0.0)
			assert.InDelta(t, s.Step()*(1-constants.BandPadding), s.Bandwidth(), 1e-9)

			prev := -1.0
			for _, n := range tt.domain {
				y, ok := s.Position(n)
				require.True(t, ok)
				assert.Greater(t, y, prev)
				assert.GreaterOrEqual(t, y, 0.0)
				assert.LessOrEqual(t, y+s.Bandwidth(), tt.height+1e-9)
				prev = y
			}

			// outer padding is symmetric
			first, _ := s.Position(tt.domain[0])
			last, _ := s.Position(tt.domain[len(tt.domain)-1])
			assert.InDelta(t, first, tt.height-(last+s.Bandwidth()), 1e-9)
		})
	}
}

func TestNodeScaleUnknownNode(t *testing.T) {
	s := NewNodeScale([]string{"N0"}, 0, 100, constants.BandPadding)
	_, ok := s.Center("N9")
	assert.False(t, ok)
}

func TestBuildEmpty(t *testing.T) {
	s, ok := Build(nil, 800, 500)
	assert.False(t, ok)
	assert.Nil(t, s)
}

func TestBuildNoRoom(t *testing.T) {
	_, ok := Build(fixtures.SmallCluster(), 0, 500)
	assert.False(t, ok)
	_, ok = Build(fixtures.SmallCluster(), 800, -3)
	assert.False(t, ok)
}

func TestBuildDomainStrictlyContainsData(t *testing.T) {
	datasets := [][]model.Event{
		fixtures.SmallCluster(),
		{fixtures.StateChange("N2", model.StatePrevote, model.StatePrecommit, 500)},
		fixtures.Exchange("N0", "N1", model.MessageVote, 10, 1, 1679048123401, 1679048123450),
	}

	for _, events := range datasets {
		s, ok := Build(events, 800, 500)
		require.True(t, ok)

		minTime, maxTime, _ := model.TimeBounds(events)
		d0, d1 := s.Time.Domain()
		assert.Less(t, d0, float64(minTime))
		assert.Greater(t, d1, float64(maxTime))
		assert.Equal(t, float64(minTime-constants.DomainPadding), d0)
		assert.Equal(t, float64(maxTime+constants.DomainPadding), d1)

		r0, r1 := s.Time.Range()
		assert.Equal(t, 0.0, r0)
		assert.Equal(t, 800.0, r1)
	}
}

func TestNodeDomainSortedUnion(t *testing.T) {
	events := []model.Event{
		fixtures.Send("N3", "N1", model.MessageVote, 1, 1, 10),
		fixtures.Receive("N3", "N1", model.MessageVote, 1, 1, 12),
		fixtures.StateChange("N0", model.StateNewRound, model.StatePrevote, 14),
		fixtures.Send("N1", "N4", model.MessageBlockPart, 1, 1, 15),
		fixtures.StateChange("N3", model.StatePrevote, model.StatePrecommit, 20),
	}

	assert.Equal(t, []string{"N0", "N1", "N3", "N4"}, NodeDomain(events))

	s, ok := Build(events, 400, 300)
	require.True(t, ok)
	assert.Equal(t, []string{"N0", "N1", "N3", "N4"}, s.Nodes.Domain())
}

func TestInnerSize(t *testing.T) {
	w, h := InnerSize(1200, 600, constants.DefaultMargins)
	assert.Equal(t, 1070.0, w)
	assert.Equal(t, 500.0, h)
}

func TestScalesXY(t *testing.T) {
	s, ok := Build(fixtures.SmallCluster(), 1000, 500)
	require.True(t, ok)

	assert.InDelta(t, s.Time.Apply(1000), s.X(1000), 1e-9)
	y, ok := s.Y("N1")
	require.True(t, ok)
	top, _ := s.Nodes.Position("N1")
	assert.InDelta(t, top+s.Nodes.Bandwidth()/2, y, 1e-9)
}
