// Package canvas provides the 2D drawing surfaces the timeline is painted on.
//
// Surface mirrors the subset of an HTML canvas 2D context that the renderer
// uses. Coordinates are logical pixels; each implementation maps them onto its
// own backing store through the ratio passed to ResetTransform.
package canvas

import (
	"image/color"
	"math"
)

// FullCircle is the end angle of a complete arc
const FullCircle = 2 * math.Pi

// TextAlign is the horizontal anchor of FillText
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

func (a TextAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// TextBaseline is the vertical anchor of FillText
type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineMiddle
)

func (b TextBaseline) String() string {
	switch b {
	case BaselineTop:
		return "top"
	case BaselineMiddle:
		return "middle"
	default:
		return "alphabetic"
	}
}

// Surface is a drawing target with a path-based 2D API
type Surface interface {
	// Size returns the logical size of the surface
	Size() (width, height float64)
	// Ratio returns the device pixel ratio of the backing store
	Ratio() float64

	// ResetTransform replaces the current transform with a uniform scale
	ResetTransform(ratio float64)
	Translate(x, y float64)
	Save()
	Restore()

	// Clear wipes the whole backing store
	Clear()

	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	SetFont(size float64)
	SetTextAlign(a TextAlign)
	SetTextBaseline(b TextBaseline)

	FillRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Arc(x, y, r, start, end float64)
	Stroke()
	Fill()

	FillText(text string, x, y float64)
}

// Factory acquires a surface of the given logical size and pixel ratio
type Factory func(width, height int, ratio float64) (Surface, error)
