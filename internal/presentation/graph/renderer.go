package graph

import (
	"github.com/penwyp/go-consensus-timeline/internal/core/constants"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/core/scale"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/canvas"
)

// Frame is everything one repaint needs
type Frame struct {
	Scales    *scale.Scales
	Arrows    []model.Arrow
	Points    []model.StateChangePoint
	Highlight model.ElementRef
	// Brush is the active drag selection in content-local pixels, nil when idle
	Brush   *BrushRange
	Margins constants.Margins
	Ratio   float64
}

// Render repaints the whole surface. Without scales nothing is drawn and
// false is returned.
func Render(s canvas.Surface, f Frame) bool {
	if s == nil || f.Scales == nil {
		return false
	}

	ratio := f.Ratio
	if ratio <= 0 {
		ratio = 1
	}
	s.ResetTransform(ratio)
	s.Clear()
	s.Translate(f.Margins.Left, f.Margins.Top)

	sc := f.Scales
	s.SetFillColor(BackgroundColor)
	s.FillRect(0, 0, sc.InnerWidth, sc.InnerHeight)

	s.SetLineWidth(1)
	s.SetFont(constants.LabelFontSize)

	drawStateGuides(s, sc, f.Points)
	drawNodeGuides(s, sc)
	drawArrows(s, sc, f.Arrows, f.Highlight)
	drawPoints(s, sc, f.Points, f.Highlight)

	if f.Brush != nil {
		s.Save()
		s.SetFillColor(BrushColor)
		s.FillRect(f.Brush.Min, 0, f.Brush.Max-f.Brush.Min, sc.InnerHeight)
		s.Restore()
	}
	return true
}

func drawStateGuides(s canvas.Surface, sc *scale.Scales, points []model.StateChangePoint) {
	s.SetStrokeColor(StateGuideColor)
	s.SetFillColor(StateLabelColor)
	s.SetTextAlign(canvas.AlignCenter)
	s.SetTextBaseline(canvas.BaselineTop)

	for _, p := range points {
		if !sc.Time.Contains(float64(p.Timestamp)) {
			continue
		}
		x := sc.X(p.Timestamp)
		s.BeginPath()
		s.MoveTo(x, 0)
		s.LineTo(x, sc.InnerHeight)
		s.Stroke()
		s.FillText(StateLabel(p), x, sc.InnerHeight+constants.StateLabelGap)
	}
}

func drawNodeGuides(s canvas.Surface, sc *scale.Scales) {
	s.SetStrokeColor(NodeGuideColor)
	s.SetFillColor(NodeLabelColor)
	s.SetTextAlign(canvas.AlignRight)
	s.SetTextBaseline(canvas.BaselineMiddle)

	for _, node := range sc.Nodes.Domain() {
		y, _ := sc.Y(node)
		s.BeginPath()
		s.MoveTo(0, y)
		s.LineTo(sc.InnerWidth, y)
		s.Stroke()
		s.FillText(node, -constants.NodeLabelGap, y)
	}
}

func drawArrows(s canvas.Surface, sc *scale.Scales, arrows []model.Arrow, highlight model.ElementRef) {
	for _, ar := range arrows {
		x1, y1, x2, y2, ok := arrowEndpoints(sc, ar)
		if !ok {
			continue
		}

		c := ArrowColor(ar.MsgType, ar.Ref() == highlight)
		s.SetStrokeColor(c)
		s.SetFillColor(c)

		s.BeginPath()
		s.MoveTo(x1, y1)
		s.LineTo(x2, y2)
		s.Stroke()

		if lx, ly, rx, ry, ok := Arrowhead(x1, y1, x2, y2); ok {
			s.BeginPath()
			s.MoveTo(x2, y2)
			s.LineTo(lx, ly)
			s.LineTo(rx, ry)
			s.ClosePath()
			s.Fill()
		}
	}
}

func drawPoints(s canvas.Surface, sc *scale.Scales, points []model.StateChangePoint, highlight model.ElementRef) {
	for _, p := range points {
		cx, cy, ok := pointCenter(sc, p)
		if !ok {
			continue
		}
		s.BeginPath()
		s.Arc(cx, cy, constants.PointRadius, 0, canvas.FullCircle)
		s.SetFillColor(PointFillColor(p.Ref() == highlight))
		s.Fill()
	}
}

func arrowEndpoints(sc *scale.Scales, ar model.Arrow) (x1, y1, x2, y2 float64, ok bool) {
	y1, ok1 := sc.Y(ar.FromNode)
	y2, ok2 := sc.Y(ar.ToNode)
	if !ok1 || !ok2 {
		return 0, 0, 0, 0, false
	}
	return sc.X(ar.SendTime), y1, sc.X(ar.RecvTime), y2, true
}

func pointCenter(sc *scale.Scales, p model.StateChangePoint) (float64, float64, bool) {
	y, ok := sc.Y(p.Node)
	if !ok {
		return 0, 0, false
	}
	return sc.X(p.Timestamp), y, true
}
