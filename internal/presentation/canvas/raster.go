package canvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error
)

func loadMono() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
	})
	return monoFont, monoErr
}

type rasterState struct {
	fill     color.Color
	stroke   color.Color
	width    float64
	fontSize float64
	align    TextAlign
	baseline TextBaseline
}

// RasterSurface paints into an in-memory RGBA image through gg.
// The backing store is the logical size multiplied by the pixel ratio.
type RasterSurface struct {
	dc         *gg.Context
	width      float64
	height     float64
	ratio      float64
	background color.Color
	// Lower bound for stroke widths in device pixels
	minLineWidth float64

	state rasterState
	stack []rasterState
	faces map[float64]font.Face
	font  *truetype.Font
}

// RasterOption customizes a RasterSurface
type RasterOption func(*RasterSurface)

// WithBackground sets the color Clear paints with
func WithBackground(c color.Color) RasterOption {
	return func(s *RasterSurface) {
		s.background = c
	}
}

// WithMinLineWidth keeps thin strokes visible on low-resolution backing stores
func WithMinLineWidth(w float64) RasterOption {
	return func(s *RasterSurface) {
		s.minLineWidth = w
	}
}

// NewRasterSurface creates a surface of width×height logical pixels
func NewRasterSurface(width, height int, ratio float64, opts ...RasterOption) (*RasterSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("invalid pixel ratio %v", ratio)
	}

	f, err := loadMono()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	pw := int(math.Ceil(float64(width) * ratio))
	ph := int(math.Ceil(float64(height) * ratio))
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}

	s := &RasterSurface{
		dc:         gg.NewContext(pw, ph),
		width:      float64(width),
		height:     float64(height),
		ratio:      ratio,
		background: color.Black,
		state: rasterState{
			fill:     color.Black,
			stroke:   color.Black,
			width:    1,
			fontSize: 10,
		},
		faces: make(map[float64]font.Face),
		font:  f,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.applyLineWidth()
	s.applyFont()
	return s, nil
}

// RasterFactory returns a Factory producing RasterSurfaces
func RasterFactory(opts ...RasterOption) Factory {
	return func(width, height int, ratio float64) (Surface, error) {
		return NewRasterSurface(width, height, ratio, opts...)
	}
}

func (s *RasterSurface) Size() (float64, float64) { return s.width, s.height }
func (s *RasterSurface) Ratio() float64           { return s.ratio }

// Image returns the backing store
func (s *RasterSurface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the backing store as PNG
func (s *RasterSurface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

func (s *RasterSurface) ResetTransform(ratio float64) {
	s.dc.Identity()
	s.dc.Scale(ratio, ratio)
}

func (s *RasterSurface) Translate(x, y float64) {
	s.dc.Translate(x, y)
}

func (s *RasterSurface) Save() {
	s.dc.Push()
	s.stack = append(s.stack, s.state)
}

func (s *RasterSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.dc.Pop()
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.applyLineWidth()
	s.applyFont()
}

func (s *RasterSurface) Clear() {
	s.dc.Push()
	s.dc.Identity()
	s.dc.SetColor(s.background)
	s.dc.Clear()
	s.dc.Pop()
}

func (s *RasterSurface) SetFillColor(c color.Color)   { s.state.fill = c }
func (s *RasterSurface) SetStrokeColor(c color.Color) { s.state.stroke = c }

func (s *RasterSurface) SetLineWidth(w float64) {
	s.state.width = w
	s.applyLineWidth()
}

func (s *RasterSurface) SetFont(size float64) {
	s.state.fontSize = size
	s.applyFont()
}

func (s *RasterSurface) SetTextAlign(a TextAlign)       { s.state.align = a }
func (s *RasterSurface) SetTextBaseline(b TextBaseline) { s.state.baseline = b }

// gg strokes in device pixels, so the logical width is scaled here
func (s *RasterSurface) applyLineWidth() {
	w := s.state.width * s.ratio
	if w < s.minLineWidth {
		w = s.minLineWidth
	}
	s.dc.SetLineWidth(w)
}

// gg draws glyphs untransformed, so faces are sized in device pixels
func (s *RasterSurface) applyFont() {
	size := s.state.fontSize * s.ratio
	if size < 1 {
		size = 1
	}
	face, ok := s.faces[size]
	if !ok {
		face = truetype.NewFace(s.font, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		s.faces[size] = face
	}
	s.dc.SetFontFace(face)
}

// FillRect fills a rectangle. Any open path is consumed.
func (s *RasterSurface) FillRect(x, y, w, h float64) {
	s.dc.ClearPath()
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetColor(s.state.fill)
	s.dc.Fill()
}

func (s *RasterSurface) BeginPath()          { s.dc.ClearPath() }
func (s *RasterSurface) MoveTo(x, y float64) { s.dc.MoveTo(x, y) }
func (s *RasterSurface) LineTo(x, y float64) { s.dc.LineTo(x, y) }
func (s *RasterSurface) ClosePath()          { s.dc.ClosePath() }

func (s *RasterSurface) Arc(x, y, r, start, end float64) {
	s.dc.DrawArc(x, y, r, start, end)
}

func (s *RasterSurface) Stroke() {
	s.dc.SetColor(s.state.stroke)
	s.dc.Stroke()
}

func (s *RasterSurface) Fill() {
	s.dc.SetColor(s.state.fill)
	s.dc.Fill()
}

func (s *RasterSurface) FillText(text string, x, y float64) {
	dx, dy := s.dc.TransformPoint(x, y)

	var ax, ay float64
	switch s.state.align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	switch s.state.baseline {
	case BaselineTop:
		ay = 1
	case BaselineMiddle:
		ay = 0.5
	}

	s.dc.Push()
	s.dc.Identity()
	s.dc.SetColor(s.state.fill)
	s.dc.DrawStringAnchored(text, dx, dy, ax, ay)
	s.dc.Pop()
}

// DevicePoint maps a logical point through the current transform
func (s *RasterSurface) DevicePoint(x, y float64) (float64, float64) {
	return s.dc.TransformPoint(x, y)
}

// FillColor returns the current fill color
func (s *RasterSurface) FillColor() color.Color {
	return s.state.fill
}

// TextStyle returns the current text anchors
func (s *RasterSurface) TextStyle() (TextAlign, TextBaseline) {
	return s.state.align, s.state.baseline
}
