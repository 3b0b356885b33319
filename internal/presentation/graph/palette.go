package graph

import (
	"image/color"

	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/canvas"
)

// Colors of the dark timeline theme
var (
	BackgroundColor = canvas.MustHex("#222")
	StateGuideColor = canvas.MustHex("#444")
	StateLabelColor = canvas.MustHex("#aaa")
	NodeGuideColor  = canvas.MustHex("#555")
	NodeLabelColor  = canvas.MustHex("#ccc")
	VoteColor       = canvas.MustHex("#65AFFF")
	BlockPartColor  = canvas.MustHex("#6fbf6f")
	PointColor      = canvas.MustHex("#cf6679")
	HighlightColor  = canvas.MustHex("#ff9800")
	BrushColor      = canvas.RGBA(100, 100, 255, 0.3)

	TooltipForeground = canvas.MustHex("#eee")
	TooltipBackground = canvas.MustHex("#2d2d2d")
)

var stateAbbreviations = map[string]string{
	model.StatePrevote:   "PV",
	model.StatePrecommit: "PC",
	model.StateCommit:    "C",
	model.StateNewRound:  "NR",
}

// AbbreviateState shortens well-known consensus steps; others pass through
func AbbreviateState(state string) string {
	if abbr, ok := stateAbbreviations[state]; ok {
		return abbr
	}
	return state
}

// StateLabel is the "PV→PC" style label drawn under a state change
func StateLabel(p model.StateChangePoint) string {
	return AbbreviateState(p.PrevState) + "→" + AbbreviateState(p.NextState)
}

// ArrowColor picks the stroke color of an arrow
func ArrowColor(msgType string, highlighted bool) color.Color {
	if highlighted {
		return HighlightColor
	}
	if msgType == model.MessageBlockPart {
		return BlockPartColor
	}
	return VoteColor
}

// PointFillColor picks the fill color of a state-change marker
func PointFillColor(highlighted bool) color.Color {
	if highlighted {
		return HighlightColor
	}
	return PointColor
}
