package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeaders = []string{
	"kind", "id", "from", "to", "message_type",
	"height", "round", "start", "end", "prev_state", "next_state",
}

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

// Format writes one record per arrow followed by one per state change.
// A state change fills from with its node and uses its timestamp as both
// start and end.
func (f *CSVFormatter) Format(report *Report) error {
	w := csv.NewWriter(f.w)

	if err := w.Write(csvHeaders); err != nil {
		return err
	}

	for _, a := range report.Arrows {
		record := []string{
			"arrow",
			strconv.Itoa(a.ID),
			a.FromNode,
			a.ToNode,
			a.MsgType,
			strconv.FormatInt(a.Height, 10),
			strconv.FormatInt(a.Round, 10),
			strconv.FormatInt(a.SendTime, 10),
			strconv.FormatInt(a.RecvTime, 10),
			"",
			"",
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	for _, p := range report.Points {
		ts := strconv.FormatInt(p.Timestamp, 10)
		record := []string{
			"state_change",
			strconv.Itoa(p.ID),
			p.Node,
			"",
			"",
			strconv.FormatInt(p.Height, 10),
			strconv.FormatInt(p.Round, 10),
			ts,
			ts,
			p.PrevState,
			p.NextState,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
