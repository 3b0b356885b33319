package util

import (
	"math"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal size fallbacks when stdout is not a terminal
const (
	DefaultTerminalWidth  = 120
	DefaultTerminalHeight = 40

	// referenceCellWidth is the pixel width of a cell at ratio 1
	referenceCellWidth = 8.0
	maxPixelRatio      = 4.0
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalSize returns the columns and rows of the terminal behind f,
// falling back to defaults when f is not a terminal.
func TerminalSize(f *os.File) (int, int) {
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return DefaultTerminalWidth, DefaultTerminalHeight
	}
	return cols, rows
}

// PixelRatio estimates the device pixel ratio from the terminal's reported
// pixel size. Terminals that do not report pixels yield 1.
func PixelRatio(f *os.File) float64 {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 1
	}
	return pixelRatioFromWinsize(ws.Col, ws.Xpixel)
}

func pixelRatioFromWinsize(cols, xpixel uint16) float64 {
	if cols == 0 || xpixel == 0 {
		return 1
	}
	cellWidth := float64(xpixel) / float64(cols)
	ratio := math.Round(cellWidth/referenceCellWidth*2) / 2
	return math.Max(1, math.Min(maxPixelRatio, ratio))
}
