package constants

import "math"

// Margins around the content area of the canvas, in logical pixels
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins are shared by every renderer of the timeline
var DefaultMargins = Margins{Top: 50, Right: 50, Bottom: 50, Left: 80}

const (
	// Pointer distance under which an element counts as hovered
	HitThreshold = 10.0

	ArrowheadLength    = 8.0
	ArrowheadHalfAngle = math.Pi / 7
	// Arrowheads are skipped for segments shorter than this
	MinArrowLength = 1.0

	PointRadius = 5.0

	// Fraction of the band step left empty between and around node bands
	BandPadding = 0.3

	// Tooltip offset from the pointer
	TooltipOffset = 10.0

	// Node labels sit this far left of the content area
	NodeLabelGap = 10.0
	// State labels sit this far below the content area
	StateLabelGap = 2.0

	LabelFontSize = 12.0
)
