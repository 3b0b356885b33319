// Package formatter prints the arrows and state changes derived from an
// event window as a table, JSON, CSV or a summary.
package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/core/pairing"
)

// Report is the derived view of one time window
type Report struct {
	Start     int64                    `json:"start"`
	End       int64                    `json:"end"`
	Events    int                      `json:"events"`
	Skipped   int                      `json:"skipped"`
	Unmatched int                      `json:"unmatched_sends"`
	Arrows    []model.Arrow            `json:"arrows"`
	Points    []model.StateChangePoint `json:"state_changes"`
}

// NewReport pairs the events of a window
func NewReport(events []model.Event, start, end int64, skipped int) *Report {
	derived := pairing.Pair(events)
	return &Report{
		Start:     start,
		End:       end,
		Events:    len(events),
		Skipped:   skipped,
		Unmatched: derived.Unmatched,
		Arrows:    derived.Arrows,
		Points:    derived.Points,
	}
}

// Formatter writes a report
type Formatter interface {
	Format(report *Report) error
}

// Output formats accepted by New
const (
	OutputTable   = "table"
	OutputJSON    = "json"
	OutputCSV     = "csv"
	OutputSummary = "summary"
)

// New returns the formatter for output writing to w
func New(output string, w io.Writer) (Formatter, error) {
	switch output {
	case OutputTable, "":
		return NewTableFormatter(w), nil
	case OutputJSON:
		return NewJSONFormatter(w), nil
	case OutputCSV:
		return NewCSVFormatter(w), nil
	case OutputSummary:
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, json, csv or summary)", output)
	}
}
