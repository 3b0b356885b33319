package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// Logical pixels covered by one terminal cell
	CellWidth  = 4.0
	CellHeight = 8.0
	// Each cell shows two stacked backing pixels, so the ratio is uniform
	CellRatio = 1 / CellWidth

	upperHalfBlock = '▀'
)

type glyph struct {
	r        rune
	fg       color.Color
	bg       color.Color
	set      bool
	trailing bool // right half of a wide rune
}

// CellSurface is a terminal canvas. Shapes are rasterized at one pixel per
// column and two per row and shown as truecolor half blocks; text is kept in
// a separate cell overlay so it stays legible.
type CellSurface struct {
	*RasterSurface
	cols    int
	rows    int
	overlay [][]glyph
}

// NewCellSurface creates a surface covering cols×rows terminal cells
func NewCellSurface(cols, rows int, opts ...RasterOption) (*CellSurface, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("invalid cell grid %dx%d", cols, rows)
	}
	opts = append([]RasterOption{WithMinLineWidth(1)}, opts...)
	raster, err := NewRasterSurface(int(float64(cols)*CellWidth), int(float64(rows)*CellHeight), CellRatio, opts...)
	if err != nil {
		return nil, err
	}
	s := &CellSurface{
		RasterSurface: raster,
		cols:          cols,
		rows:          rows,
	}
	s.resetOverlay()
	return s, nil
}

// CellFactory returns a Factory producing CellSurfaces. The requested
// logical size is rounded down to whole cells.
func CellFactory(opts ...RasterOption) Factory {
	return func(width, height int, _ float64) (Surface, error) {
		return NewCellSurface(int(float64(width)/CellWidth), int(float64(height)/CellHeight), opts...)
	}
}

// Grid returns the number of columns and rows
func (s *CellSurface) Grid() (int, int) {
	return s.cols, s.rows
}

// ResetTransform always maps logical pixels onto the cell grid; the
// requested ratio is ignored.
func (s *CellSurface) ResetTransform(float64) {
	s.RasterSurface.ResetTransform(CellRatio)
}

func (s *CellSurface) resetOverlay() {
	s.overlay = make([][]glyph, s.rows)
	for i := range s.overlay {
		s.overlay[i] = make([]glyph, s.cols)
	}
}

func (s *CellSurface) Clear() {
	s.RasterSurface.Clear()
	s.resetOverlay()
}

func (s *CellSurface) FillText(text string, x, y float64) {
	dx, dy := s.DevicePoint(x, y)
	align, baseline := s.TextStyle()

	width := runewidth.StringWidth(text)
	col := int(math.Floor(dx))
	switch align {
	case AlignCenter:
		col -= width / 2
	case AlignRight:
		col -= width
	}

	// two backing pixels per row
	var row int
	switch baseline {
	case BaselineTop, BaselineMiddle:
		row = int(math.Floor(dy / 2))
	default:
		row = int(math.Floor((dy - 1) / 2))
	}

	s.put(col, row, text, s.FillColor(), nil)
}

// Overlay writes lines of text starting at the given cell, on top of
// everything painted so far. A nil bg keeps the pixels underneath.
func (s *CellSurface) Overlay(col, row int, lines []string, fg, bg color.Color) {
	for i, line := range lines {
		s.put(col, row+i, line, fg, bg)
	}
}

func (s *CellSurface) put(col, row int, text string, fg, bg color.Color) {
	if row < 0 || row >= s.rows {
		return
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= 0 && col+w <= s.cols {
			s.overlay[row][col] = glyph{r: r, fg: fg, bg: bg, set: true}
			for k := 1; k < w; k++ {
				s.overlay[row][col+k] = glyph{set: true, trailing: true}
			}
		}
		col += w
	}
}

func (s *CellSurface) pixel(x, y int) color.RGBA {
	return color.RGBAModel.Convert(s.Image().At(x, y)).(color.RGBA)
}

// Lines renders every row as a string of ANSI truecolor escapes
func (s *CellSurface) Lines() []string {
	lines := make([]string, s.rows)
	for row := 0; row < s.rows; row++ {
		var b strings.Builder
		var lastFg, lastBg color.RGBA
		first := true

		for col := 0; col < s.cols; col++ {
			g := s.overlay[row][col]
			if g.trailing {
				continue
			}

			top := s.pixel(col, row*2)
			bottom := s.pixel(col, row*2+1)

			var fg, bg color.RGBA
			r := upperHalfBlock
			if g.set {
				r = g.r
				fg = color.RGBAModel.Convert(g.fg).(color.RGBA)
				if g.bg != nil {
					bg = color.RGBAModel.Convert(g.bg).(color.RGBA)
				} else {
					bg = blend(top, bottom)
				}
			} else {
				fg, bg = top, bottom
			}

			if first || fg != lastFg {
				fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm", fg.R, fg.G, fg.B)
			}
			if first || bg != lastBg {
				fmt.Fprintf(&b, "\033[48;2;%d;%d;%dm", bg.R, bg.G, bg.B)
			}
			lastFg, lastBg, first = fg, bg, false
			b.WriteRune(r)
		}
		b.WriteString("\033[0m")
		lines[row] = b.String()
	}
	return lines
}

// String renders the whole grid
func (s *CellSurface) String() string {
	return strings.Join(s.Lines(), "\n")
}

// Text returns the overlay text of a row with untouched cells as spaces
func (s *CellSurface) Text(row int) string {
	if row < 0 || row >= s.rows {
		return ""
	}
	var b strings.Builder
	for _, g := range s.overlay[row] {
		switch {
		case g.trailing:
		case g.set:
			b.WriteRune(g.r)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func blend(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
		A: 0xff,
	}
}
