package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// GetDisplayWidth returns the number of terminal columns text occupies
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces to width columns, truncating with an
// ellipsis when it does not fit.
func PadRight(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if GetDisplayWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	return runewidth.FillRight(text, width)
}

// PadLeft right-aligns text in width columns
func PadLeft(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if GetDisplayWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	return runewidth.FillLeft(text, width)
}

// CenterText centers text within the given width
func CenterText(text string, width int) string {
	w := GetDisplayWidth(text)
	if w >= width {
		return runewidth.Truncate(text, width, "")
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-padding-w)
}
