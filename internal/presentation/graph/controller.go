// Package graph is the interactive timeline canvas: it derives arrows and
// points from the windowed events, keeps the scales in sync with the canvas
// size, paints frames and turns pointer input into highlights and brush
// selections.
package graph

import (
	"math"

	"github.com/penwyp/go-consensus-timeline/internal/core/constants"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/core/pairing"
	"github.com/penwyp/go-consensus-timeline/internal/core/scale"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/canvas"
	"github.com/penwyp/go-consensus-timeline/internal/util"
)

// BrushHandler receives a committed time selection
type BrushHandler func(start, end int64)

// Controller owns every piece of canvas state. It is not safe for
// concurrent use; hosts drive it from a single UI goroutine.
type Controller struct {
	factory       canvas.Factory
	margins       constants.Margins
	onBrushSelect BrushHandler

	events    []model.Event
	arrows    []model.Arrow
	points    []model.StateChangePoint
	unmatched int

	width   int
	height  int
	ratio   float64
	surface canvas.Surface
	scales  *scale.Scales

	highlight model.ElementRef
	tooltip   Tooltip
	brush     Brush

	frames int
}

// Option configures a Controller
type Option func(*Controller)

// WithMargins overrides the default margins
func WithMargins(m constants.Margins) Option {
	return func(c *Controller) {
		c.margins = m
	}
}

// WithBrushHandler registers the receiver of brush selections
func WithBrushHandler(h BrushHandler) Option {
	return func(c *Controller) {
		c.onBrushSelect = h
	}
}

// NewController creates a controller that draws on surfaces from factory
func NewController(factory canvas.Factory, opts ...Option) *Controller {
	c := &Controller{
		factory: factory,
		margins: constants.DefaultMargins,
		ratio:   1,
		arrows:  make([]model.Arrow, 0),
		points:  make([]model.StateChangePoint, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetData replaces the windowed events, rebuilds the derived arrays and
// scales and repaints.
func (c *Controller) SetData(events []model.Event) {
	c.events = events

	result := pairing.Pair(events)
	c.arrows = result.Arrows
	c.points = result.Points
	c.unmatched = result.Unmatched

	// derived elements carry no identity across recomputation
	c.highlight = model.ElementRef{}
	c.tooltip = Tooltip{}

	c.rebuildScales()
	c.Redraw()
}

// Resize reacts to a new canvas size or pixel ratio. The surface is
// reacquired; a failure is logged and retried on the next resize.
func (c *Controller) Resize(width, height int, ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	if width != c.width || height != c.height || ratio != c.ratio {
		c.surface = nil
	}
	c.width, c.height, c.ratio = width, height, ratio

	c.rebuildScales()
	c.Redraw()
}

func (c *Controller) acquireSurface() {
	c.surface = nil
	if c.factory == nil || c.width <= 0 || c.height <= 0 {
		return
	}
	surface, err := c.factory(c.width, c.height, c.ratio)
	if err != nil {
		util.LogWarnf("canvas: surface unavailable for %dx%d@%.2f: %v", c.width, c.height, c.ratio, err)
		return
	}
	c.surface = surface
}

func (c *Controller) rebuildScales() {
	innerWidth, innerHeight := scale.InnerSize(float64(c.width), float64(c.height), c.margins)
	sc, ok := scale.Build(c.events, innerWidth, innerHeight)
	if !ok {
		c.scales = nil
		return
	}
	c.scales = sc
}

// Redraw paints a full frame. It reports false when the frame was skipped
// because there is no surface or no data.
func (c *Controller) Redraw() bool {
	if c.surface == nil && c.width > 0 && c.height > 0 {
		c.acquireSurface()
	}

	frame := Frame{
		Scales:    c.scales,
		Arrows:    c.arrows,
		Points:    c.points,
		Highlight: c.highlight,
		Margins:   c.margins,
		Ratio:     c.ratio,
	}
	if r, ok := c.brush.Range(); ok {
		frame.Brush = &r
	}

	if !Render(c.surface, frame) {
		return false
	}
	c.frames++
	return true
}

func (c *Controller) local(x, y float64) (float64, float64) {
	return x - c.margins.Left, y - c.margins.Top
}

// PointerMove handles motion at canvas-local (x, y). During a drag only the
// brush follows the pointer; otherwise the hovered element is highlighted.
func (c *Controller) PointerMove(x, y float64) {
	lx, ly := c.local(x, y)

	if c.brush.Move(lx) {
		c.highlight = model.ElementRef{}
		c.Redraw()
		return
	}
	if c.scales == nil {
		return
	}

	ref, _, ok := HitTest(c.scales, c.arrows, c.points, lx, ly)
	if ok {
		c.tooltip = c.describe(ref).at(x, y)
	} else {
		c.tooltip = Tooltip{}
	}

	if ref != c.highlight {
		c.highlight = ref
		c.Redraw()
	}
}

// PointerDown starts a brush drag and hides the hover state
func (c *Controller) PointerDown(x, y float64) {
	lx, _ := c.local(x, y)
	c.brush.Begin(lx)

	c.tooltip = Tooltip{}
	c.highlight = model.ElementRef{}
	c.Redraw()
}

// PointerUp commits the drag when it covers a non-empty pixel range. The
// release position is the end of the range even without a preceding move.
func (c *Controller) PointerUp(x, y float64) {
	if !c.brush.Active() {
		return
	}
	lx, _ := c.local(x, y)
	c.brush.Move(lx)
	r, commit := c.brush.End()

	if commit && c.scales != nil {
		start := int64(math.Floor(c.scales.Time.Invert(r.Min)))
		end := int64(math.Floor(c.scales.Time.Invert(r.Max)))
		util.LogDebugf("canvas: brush selected %d..%d (px %.1f..%.1f)", start, end, r.Min, r.Max)
		if c.onBrushSelect != nil {
			c.onBrushSelect(start, end)
		}
	}

	c.tooltip = Tooltip{}
	c.highlight = model.ElementRef{}
	c.Redraw()
}

// PointerLeave hides the tooltip and discards any drag in progress
func (c *Controller) PointerLeave() {
	c.tooltip = Tooltip{}
	c.brush.Cancel()
	c.highlight = model.ElementRef{}
	c.Redraw()
}

func (c *Controller) describe(ref model.ElementRef) Tooltip {
	switch ref.Kind {
	case model.ElementArrow:
		if ref.ID >= 0 && ref.ID < len(c.arrows) {
			return ArrowTooltip(c.arrows[ref.ID])
		}
	case model.ElementPoint:
		if ref.ID >= 0 && ref.ID < len(c.points) {
			return PointTooltip(c.points[ref.ID])
		}
	}
	return Tooltip{}
}

// Surface returns the current drawing surface, nil when unavailable
func (c *Controller) Surface() canvas.Surface { return c.surface }

// Scales returns the current scales, nil when there is nothing to draw
func (c *Controller) Scales() *scale.Scales { return c.scales }

// Arrows returns the derived arrows; callers must not modify them
func (c *Controller) Arrows() []model.Arrow { return c.arrows }

// Points returns the derived state-change points; callers must not modify them
func (c *Controller) Points() []model.StateChangePoint { return c.points }

// Unmatched returns how many sends in the window found no receive
func (c *Controller) Unmatched() int { return c.unmatched }

func (c *Controller) Highlight() model.ElementRef { return c.highlight }
func (c *Controller) Tooltip() Tooltip            { return c.tooltip }
func (c *Controller) Brushing() bool              { return c.brush.Active() }

// Frames counts the frames painted so far
func (c *Controller) Frames() int { return c.frames }

// Margins returns the margins around the content area
func (c *Controller) Margins() constants.Margins { return c.margins }
