package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/penwyp/go-consensus-timeline/internal/util"
)

// SummaryFormatter prints per-node and per-message-type statistics
type SummaryFormatter struct {
	w io.Writer
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

type nodeStats struct {
	sent     int
	received int
	changes  int
}

type typeStats struct {
	count      int
	total      int64
	maxLatency int64
}

func (s typeStats) avg() int64 {
	if s.count == 0 {
		return 0
	}
	return s.total / int64(s.count)
}

// Format writes the summary of report
func (f *SummaryFormatter) Format(report *Report) error {
	nodes := make(map[string]*nodeStats)
	node := func(name string) *nodeStats {
		if _, ok := nodes[name]; !ok {
			nodes[name] = &nodeStats{}
		}
		return nodes[name]
	}
	types := make(map[string]*typeStats)

	for _, a := range report.Arrows {
		node(a.FromNode).sent++
		node(a.ToNode).received++

		st, ok := types[a.MsgType]
		if !ok {
			st = &typeStats{}
			types[a.MsgType] = st
		}
		st.count++
		st.total += a.Latency()
		st.maxLatency = max(st.maxLatency, a.Latency())
	}
	for _, p := range report.Points {
		node(p.Node).changes++
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString("Consensus Timeline Summary\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	fmt.Fprintf(&b, "Window: %s\n", util.FormatRange(report.Start, report.End))
	if report.Events > 0 {
		fmt.Fprintf(&b, "Wall clock: %s to %s UTC\n", util.FormatTimestamp(report.Start), util.FormatTimestamp(report.End))
	}
	b.WriteString("\n")

	if report.Events == 0 {
		b.WriteString("No events in window\n\n")
		b.WriteString(strings.Repeat("=", 60) + "\n")
		_, err := io.WriteString(f.w, b.String())
		return err
	}

	b.WriteString("Events:\n")
	fmt.Fprintf(&b, "  Total: %s\n", util.FormatNumber(report.Events))
	fmt.Fprintf(&b, "  Messages: %d\n", len(report.Arrows))
	fmt.Fprintf(&b, "  State changes: %d\n", len(report.Points))
	fmt.Fprintf(&b, "  Unmatched sends: %d\n", report.Unmatched)
	if report.Skipped > 0 {
		fmt.Fprintf(&b, "  Skipped records: %d\n", report.Skipped)
	}
	b.WriteString("\n")

	if len(nodes) > 0 {
		b.WriteString("Nodes:\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, name := range sortedKeys(nodes) {
			s := nodes[name]
			fmt.Fprintf(&b, "  %s sent %d, received %d, state changes %d\n",
				util.PadRight(name, 6), s.sent, s.received, s.changes)
		}
		b.WriteString("\n")
	}

	if len(types) > 0 {
		b.WriteString("Message latency:\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, name := range sortedKeys(types) {
			s := types[name]
			fmt.Fprintf(&b, "  %s count %d, avg %s, max %s\n",
				util.PadRight(name, 10), s.count, util.FormatMillis(s.avg()), util.FormatMillis(s.maxLatency))
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("=", 60) + "\n")
	_, err := io.WriteString(f.w, b.String())
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
