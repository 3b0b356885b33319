package util

import (
	"fmt"
	"time"
)

// FormatNumber abbreviates large counts: 999, 1.5K, 2.5M
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// FormatMillis renders a millisecond span: 20ms, 1.50s, 2m05s
func FormatMillis(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	switch {
	case ms < 1000:
		return fmt.Sprintf("%s%dms", sign, ms)
	case ms < 60*1000:
		return fmt.Sprintf("%s%.2fs", sign, float64(ms)/1000)
	default:
		d := time.Duration(ms) * time.Millisecond
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%s%dm%02ds", sign, minutes, seconds)
	}
}

// FormatTimestamp renders epoch milliseconds as a UTC wall-clock time
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("15:04:05.000")
}

// FormatRange renders a window as "start..end (span)"
func FormatRange(start, end int64) string {
	return fmt.Sprintf("%d..%d (%s)", start, end, FormatMillis(end-start))
}
