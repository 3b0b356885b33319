package window

import (
	"sync"
	"testing"

	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exchanges every second from 1000 to 61000
func minuteOfEvents() []model.Event {
	return fixtures.Window(1000, 60000, 1000)
}

func timestamps(events []model.Event) []int64 {
	ts := make([]int64, 0, len(events))
	for _, e := range events {
		ts = append(ts, e.Timestamp)
	}
	return ts
}

func TestParseQuickRange(t *testing.T) {
	tests := []struct {
		in      string
		want    QuickRange
		wantErr bool
	}{
		{in: "", want: RangeAll},
		{in: "ALL", want: RangeAll},
		{in: "5s", want: Range5s},
		{in: " 30s ", want: Range30s},
		{in: "60s", want: Range60s},
		{in: "1m", want: Range60s},
		{in: "2h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuickRange(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuickRangeSpanAndLabel(t *testing.T) {
	span, ok := Range30s.Span()
	assert.True(t, ok)
	assert.Equal(t, int64(30000), span)

	_, ok = RangeAll.Span()
	assert.False(t, ok)

	assert.Equal(t, "Last 1 minute", Range60s.Label())
	assert.Equal(t, "All", RangeAll.Label())
}

func TestStateManagerEmpty(t *testing.T) {
	sm := NewStateManager()

	assert.Empty(t, sm.Filtered())
	w := sm.CurrentWindow()
	assert.False(t, w.Valid)
	assert.Equal(t, "All", w.Label())

	sm.ApplyQuickRange(Range5s)
	assert.False(t, sm.CurrentWindow().Valid)
	assert.Equal(t, Range5s, sm.CurrentWindow().Quick)
}

func TestStateManagerLoadSelectsAll(t *testing.T) {
	sm := NewStateManager()
	events := minuteOfEvents()
	sm.SetEvents(events, 2)

	w := sm.CurrentWindow()
	require.True(t, w.Valid)
	assert.Equal(t, int64(1000), w.Start)
	assert.Equal(t, int64(60010), w.End)
	assert.Equal(t, ModeQuick, w.Mode)
	assert.Len(t, sm.Filtered(), len(events))
	assert.Equal(t, 2, sm.Skipped())
	assert.NotZero(t, sm.GetLastDataUpdate())
}

func TestStateManagerQuickRanges(t *testing.T) {
	tests := []struct {
		q         QuickRange
		wantStart int64
	}{
		{q: RangeAll, wantStart: 1000},
		{q: Range5s, wantStart: 55010},
		{q: Range30s, wantStart: 30010},
		{q: Range60s, wantStart: 10},
	}

	for _, tt := range tests {
		t.Run(string(tt.q), func(t *testing.T) {
			sm := NewStateManager()
			sm.SetEvents(minuteOfEvents(), 0)
			sm.ApplyQuickRange(tt.q)

			w := sm.CurrentWindow()
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, int64(60010), w.End)
			for _, ts := range timestamps(sm.Filtered()) {
				assert.GreaterOrEqual(t, ts, tt.wantStart)
				assert.LessOrEqual(t, ts, int64(60010))
			}
		})
	}
}

func TestStateManagerFilterIsInclusive(t *testing.T) {
	sm := NewStateManager()
	sm.SetEvents(fixtures.Exchange("N0", "N1", model.MessageVote, 1, 0, 100, 200), 0)

	require.NoError(t, sm.SetCustomRange("100", "200"))
	assert.Equal(t, []int64{100, 200}, timestamps(sm.Filtered()))

	require.NoError(t, sm.SetCustomRange("101", "199"))
	assert.Empty(t, sm.Filtered())
}

func TestStateManagerCustomRange(t *testing.T) {
	sm := NewStateManager()
	sm.SetEvents(minuteOfEvents(), 0)

	require.NoError(t, sm.SetCustomRange(" 5000", "9000 "))
	w := sm.CurrentWindow()
	assert.Equal(t, Window{Start: 5000, End: 9000, Valid: true, Mode: ModeCustom, Quick: RangeAll}, w)
	assert.Equal(t, "Custom", w.Label())

	filtered, total := sm.Counts()
	assert.Equal(t, len(sm.Filtered()), filtered)
	assert.Equal(t, 120, total)
	assert.Equal(t, []int64{5000, 5010, 6000, 6010, 7000, 7010, 8000, 8010, 9000}, timestamps(sm.Filtered()))
}

func TestStateManagerCustomRangeRejected(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{name: "non numeric start", start: "abc", end: "9000"},
		{name: "non numeric end", start: "5000", end: ""},
		{name: "trailing garbage", start: "5000ms", end: "9000"},
		{name: "equal", start: "5000", end: "5000"},
		{name: "reversed", start: "9000", end: "5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewStateManager()
			sm.SetEvents(minuteOfEvents(), 0)
			before := sm.CurrentWindow()

			err := sm.SetCustomRange(tt.start, tt.end)
			assert.ErrorIs(t, err, ErrInvalidRange)
			assert.Equal(t, before, sm.CurrentWindow())
		})
	}
}

func TestStateManagerBrushSelect(t *testing.T) {
	sm := NewStateManager()
	sm.SetEvents(minuteOfEvents(), 0)

	sm.BrushSelect(5000, 9000)
	w := sm.CurrentWindow()
	assert.Equal(t, int64(5000), w.Start)
	assert.Equal(t, int64(9000), w.End)
	assert.Equal(t, ModeBrush, w.Mode)
	assert.Equal(t, "Brush selection", w.Label())

	sm.BrushSelect(9000, 5000)
	assert.Equal(t, int64(5000), sm.CurrentWindow().Start)
}

func TestStateManagerReloadKeepsCustomWindow(t *testing.T) {
	sm := NewStateManager()
	sm.SetEvents(minuteOfEvents(), 0)
	require.NoError(t, sm.SetCustomRange("5000", "9000"))

	sm.SetEvents(fixtures.Window(1000, 120000, 1000), 0)
	w := sm.CurrentWindow()
	assert.Equal(t, int64(5000), w.Start)
	assert.Equal(t, int64(9000), w.End)
}

func TestStateManagerReloadFollowsQuickRange(t *testing.T) {
	sm := NewStateManager()
	sm.SetEvents(minuteOfEvents(), 0)
	sm.ApplyQuickRange(Range5s)

	sm.SetEvents(fixtures.Window(1000, 120000, 1000), 0)
	w := sm.CurrentWindow()
	assert.Equal(t, int64(120010), w.End)
	assert.Equal(t, int64(115010), w.Start)
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	sm := NewStateManager()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			sm.SetEvents(minuteOfEvents(), i)
			sm.ApplyQuickRange(QuickRanges[i%len(QuickRanges)])
		}(i)
		go func() {
			defer wg.Done()
			_ = sm.Filtered()
			_, _ = sm.Counts()
		}()
	}
	wg.Wait()
	assert.True(t, sm.CurrentWindow().Valid)
}
