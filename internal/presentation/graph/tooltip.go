package graph

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/penwyp/go-consensus-timeline/internal/core/constants"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/canvas"
)

// Tooltip describes the hovered element. X and Y are canvas-local and
// already include the pointer offset.
type Tooltip struct {
	Visible bool
	X       float64
	Y       float64
	Title   string
	Lines   []string
}

// ArrowTooltip builds the description of a message arrow
func ArrowTooltip(a model.Arrow) Tooltip {
	return Tooltip{
		Title: "Message",
		Lines: []string{
			"msgType: " + a.MsgType,
			"from: " + a.FromNode,
			"to: " + a.ToNode,
			fmt.Sprintf("height: %d", a.Height),
			fmt.Sprintf("round: %d", a.Round),
			fmt.Sprintf("sendTime: %d", a.SendTime),
			fmt.Sprintf("recvTime: %d", a.RecvTime),
		},
	}
}

// PointTooltip builds the description of a state change
func PointTooltip(p model.StateChangePoint) Tooltip {
	return Tooltip{
		Title: "StateChange",
		Lines: []string{
			"node: " + p.Node,
			fmt.Sprintf("time: %d", p.Timestamp),
			p.PrevState + " → " + p.NextState,
		},
	}
}

func (t Tooltip) at(pointerX, pointerY float64) Tooltip {
	t.Visible = true
	t.X = pointerX + constants.TooltipOffset
	t.Y = pointerY + constants.TooltipOffset
	return t
}

// Text returns the title followed by the detail lines
func (t Tooltip) Text() []string {
	return append([]string{t.Title}, t.Lines...)
}

const (
	tooltipPadding    = 8.0
	tooltipLineHeight = 16.0
	// monospace advance at LabelFontSize
	tooltipCharWidth = 7.2
)

// DrawTooltip paints the tooltip box onto s in canvas-local coordinates,
// shifted left and up when it would leave the surface. Hosts without a
// separate overlay layer call it after Render.
func DrawTooltip(s canvas.Surface, t Tooltip, ratio float64) {
	if s == nil || !t.Visible {
		return
	}
	if ratio <= 0 {
		ratio = 1
	}

	lines := t.Text()
	longest := 0
	for _, line := range lines {
		longest = max(longest, utf8.RuneCountInString(line))
	}
	w := float64(longest)*tooltipCharWidth + 2*tooltipPadding
	h := float64(len(lines))*tooltipLineHeight + 2*tooltipPadding

	width, height := s.Size()
	x := math.Max(0, math.Min(t.X, width-w))
	y := math.Max(0, math.Min(t.Y, height-h))

	s.Save()
	s.ResetTransform(ratio)
	s.SetFillColor(TooltipBackground)
	s.FillRect(x, y, w, h)
	s.SetFillColor(TooltipForeground)
	s.SetFont(constants.LabelFontSize)
	s.SetTextAlign(canvas.AlignLeft)
	s.SetTextBaseline(canvas.BaselineTop)
	for i, line := range lines {
		s.FillText(line, x+tooltipPadding, y+tooltipPadding+float64(i)*tooltipLineHeight)
	}
	s.Restore()
}
