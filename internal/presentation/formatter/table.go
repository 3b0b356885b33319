package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-consensus-timeline/internal/util"
)

type column struct {
	header string
	// numeric columns are right-aligned
	numeric bool
}

var arrowColumns = []column{
	{"ID", true}, {"From", false}, {"To", false}, {"Type", false},
	{"Height", true}, {"Round", true}, {"Send", true}, {"Recv", true}, {"Latency", true},
}

var pointColumns = []column{
	{"ID", true}, {"Node", false}, {"Time", true}, {"Transition", false},
	{"Height", true}, {"Round", true},
}

type TableFormatter struct {
	w   io.Writer
	err error
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w}
}

func (f *TableFormatter) Format(report *Report) error {
	f.err = nil

	f.printf("Window: %s\n", util.FormatRange(report.Start, report.End))
	f.printf("Events: %d, arrows: %d, state changes: %d, unmatched sends: %d, skipped records: %d\n\n",
		report.Events, len(report.Arrows), len(report.Points), report.Unmatched, report.Skipped)

	arrowRows := make([][]string, 0, len(report.Arrows))
	for _, a := range report.Arrows {
		arrowRows = append(arrowRows, []string{
			strconv.Itoa(a.ID),
			a.FromNode,
			a.ToNode,
			a.MsgType,
			strconv.FormatInt(a.Height, 10),
			strconv.FormatInt(a.Round, 10),
			strconv.FormatInt(a.SendTime, 10),
			strconv.FormatInt(a.RecvTime, 10),
			util.FormatMillis(a.Latency()),
		})
	}
	f.printf("Messages\n")
	f.printTable(arrowColumns, arrowRows)

	pointRows := make([][]string, 0, len(report.Points))
	for _, p := range report.Points {
		pointRows = append(pointRows, []string{
			strconv.Itoa(p.ID),
			p.Node,
			strconv.FormatInt(p.Timestamp, 10),
			p.PrevState + " → " + p.NextState,
			strconv.FormatInt(p.Height, 10),
			strconv.FormatInt(p.Round, 10),
		})
	}
	f.printf("\nState changes\n")
	f.printTable(pointColumns, pointRows)

	return f.err
}

func (f *TableFormatter) printTable(columns []column, rows [][]string) {
	widths := calculateColumnWidths(columns, rows)

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.header
	}

	f.printBorder(widths, "top")
	f.printRow(columns, headers, widths, true)
	f.printBorder(widths, "middle")
	if len(rows) == 0 {
		empty := make([]string, len(columns))
		empty[0] = "-"
		f.printRow(columns, empty, widths, false)
	}
	for _, row := range rows {
		f.printRow(columns, row, widths, false)
	}
	f.printBorder(widths, "bottom")
}

// calculateColumnWidths determines the width of each column based on content
func calculateColumnWidths(columns []column, rows [][]string) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = util.GetDisplayWidth(c.header)
	}
	for _, row := range rows {
		for i, value := range row {
			widths[i] = max(widths[i], util.GetDisplayWidth(value))
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	segments := make([]string, len(widths))
	for i, width := range widths {
		segments[i] = strings.Repeat("─", width+2)
	}
	f.printf("%s%s%s\n", left, strings.Join(segments, middle), right)
}

// printRow prints a row; headers are always left-aligned
func (f *TableFormatter) printRow(columns []column, values []string, widths []int, header bool) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		if columns[i].numeric && !header {
			b.WriteString(" " + util.PadLeft(value, widths[i]) + " │")
		} else {
			b.WriteString(" " + util.PadRight(value, widths[i]) + " │")
		}
	}
	f.printf("%s\n", b.String())
}

func (f *TableFormatter) printf(format string, args ...any) {
	if f.err != nil {
		return
	}
	_, f.err = fmt.Fprintf(f.w, format, args...)
}
