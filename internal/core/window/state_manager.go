// Package window holds the full event stream and the selected time range.
package window

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/penwyp/go-consensus-timeline/internal/core/constants"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
)

// QuickRange is a preset time window measured back from the newest event
type QuickRange string

const (
	RangeAll QuickRange = "all"
	Range5s  QuickRange = "5s"
	Range30s QuickRange = "30s"
	Range60s QuickRange = "60s"
)

// QuickRanges lists the presets in display order
var QuickRanges = []QuickRange{RangeAll, Range5s, Range30s, Range60s}

// ErrInvalidRange is returned for a custom window that cannot be applied
var ErrInvalidRange = errors.New("invalid time range")

// ParseQuickRange accepts all, 5s, 30s, 60s and the 1m alias
func ParseQuickRange(s string) (QuickRange, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return RangeAll, nil
	case "5s":
		return Range5s, nil
	case "30s":
		return Range30s, nil
	case "60s", "1m":
		return Range60s, nil
	default:
		return "", fmt.Errorf("unknown range %q (want all, 5s, 30s or 60s)", s)
	}
}

// Span returns the window length in milliseconds; ok is false for RangeAll
func (q QuickRange) Span() (int64, bool) {
	switch q {
	case Range5s:
		return constants.QuickRange5Seconds, true
	case Range30s:
		return constants.QuickRange30Seconds, true
	case Range60s:
		return constants.QuickRange1Minute, true
	default:
		return 0, false
	}
}

// Label is the human readable name of the preset
func (q QuickRange) Label() string {
	switch q {
	case Range5s:
		return "Last 5 seconds"
	case Range30s:
		return "Last 30 seconds"
	case Range60s:
		return "Last 1 minute"
	default:
		return "All"
	}
}

// WindowMode tells how the current window was chosen
type WindowMode int

const (
	ModeQuick WindowMode = iota
	ModeCustom
	ModeBrush
)

func (m WindowMode) String() string {
	switch m {
	case ModeCustom:
		return "custom"
	case ModeBrush:
		return "brush"
	default:
		return "quick"
	}
}

// Window is a snapshot of the selected time range
type Window struct {
	Start int64
	End   int64
	// Valid is false until events are loaded
	Valid bool
	Mode  WindowMode
	Quick QuickRange
}

// Label describes the window for status lines
func (w Window) Label() string {
	switch w.Mode {
	case ModeCustom:
		return "Custom"
	case ModeBrush:
		return "Brush selection"
	default:
		return w.Quick.Label()
	}
}

// StateManager holds the full event stream and the selected time window.
// It is safe for concurrent use.
type StateManager struct {
	mu sync.RWMutex

	allEvents []model.Event
	skipped   int
	window    Window

	lastDataUpdate int64
}

// NewStateManager creates an empty state with the All preset selected
func NewStateManager() *StateManager {
	return &StateManager{
		allEvents: make([]model.Event, 0),
		window:    Window{Mode: ModeQuick, Quick: RangeAll},
	}
}

// SetEvents replaces the full stream. A preset window is recomputed against
// the new data; custom and brush windows are kept as they are.
func (sm *StateManager) SetEvents(events []model.Event, skipped int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.allEvents = events
	sm.skipped = skipped
	sm.lastDataUpdate = time.Now().Unix()

	if sm.window.Mode == ModeQuick || !sm.window.Valid {
		sm.applyQuickLocked(sm.window.Quick)
	}
}

// Skipped returns how many records of the last load were rejected
func (sm *StateManager) Skipped() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.skipped
}

// Filtered returns the events with start <= timestamp <= end. Without a
// window the full stream is returned.
func (sm *StateManager) Filtered() []model.Event {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.window.Valid {
		events := make([]model.Event, len(sm.allEvents))
		copy(events, sm.allEvents)
		return events
	}

	filtered := make([]model.Event, 0, len(sm.allEvents))
	for _, e := range sm.allEvents {
		if e.Timestamp >= sm.window.Start && e.Timestamp <= sm.window.End {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ApplyQuickRange selects a preset. With no events it only records the
// choice so the next load applies it.
func (sm *StateManager) ApplyQuickRange(q QuickRange) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.applyQuickLocked(q)
}

func (sm *StateManager) applyQuickLocked(q QuickRange) {
	if q == "" {
		q = RangeAll
	}
	minTime, maxTime, ok := model.TimeBounds(sm.allEvents)
	if !ok {
		sm.window = Window{Mode: ModeQuick, Quick: q}
		return
	}

	start := minTime
	if span, ok := q.Span(); ok {
		start = maxTime - span
	}
	sm.window = Window{Start: start, End: maxTime, Valid: true, Mode: ModeQuick, Quick: q}
}

// SetCustomRange parses decimal millisecond bounds. Non-numeric input or
// start >= end leaves the window unchanged and returns ErrInvalidRange.
func (sm *StateManager) SetCustomRange(startText, endText string) error {
	start, err := strconv.ParseInt(strings.TrimSpace(startText), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: start %q is not a number", ErrInvalidRange, startText)
	}
	end, err := strconv.ParseInt(strings.TrimSpace(endText), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: end %q is not a number", ErrInvalidRange, endText)
	}
	if start >= end {
		return fmt.Errorf("%w: start %d must be before end %d", ErrInvalidRange, start, end)
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.window = Window{Start: start, End: end, Valid: true, Mode: ModeCustom, Quick: sm.window.Quick}
	return nil
}

// BrushSelect applies a window chosen by dragging on the canvas
func (sm *StateManager) BrushSelect(start, end int64) {
	if start > end {
		start, end = end, start
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.window = Window{Start: start, End: end, Valid: true, Mode: ModeBrush, Quick: sm.window.Quick}
}

// CurrentWindow returns the selected window
func (sm *StateManager) CurrentWindow() Window {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.window
}

// Counts returns the filtered and total number of events
func (sm *StateManager) Counts() (filtered, total int) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	total = len(sm.allEvents)
	if !sm.window.Valid {
		return total, total
	}
	for _, e := range sm.allEvents {
		if e.Timestamp >= sm.window.Start && e.Timestamp <= sm.window.End {
			filtered++
		}
	}
	return filtered, total
}

// GetLastDataUpdate returns the unix time of the last successful load
func (sm *StateManager) GetLastDataUpdate() int64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.lastDataUpdate
}
