package graph

import (
	"testing"

	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrowTooltip(t *testing.T) {
	tip := ArrowTooltip(model.Arrow{FromNode: "N0", ToNode: "N1", MsgType: "Vote", Height: 10, Round: 1, SendTime: 1000, RecvTime: 1020})
	assert.Equal(t, []string{
		"Message",
		"msgType: Vote",
		"from: N0",
		"to: N1",
		"height: 10",
		"round: 1",
		"sendTime: 1000",
		"recvTime: 1020",
	}, tip.Text())
	assert.False(t, tip.Visible)

	placed := tip.at(100, 40)
	assert.True(t, placed.Visible)
	assert.Equal(t, 110.0, placed.X)
	assert.Equal(t, 50.0, placed.Y)
}

func TestPointTooltip(t *testing.T) {
	tip := PointTooltip(model.StateChangePoint{Node: "N1", Timestamp: 1200, PrevState: "Prevote", NextState: "Precommit"})
	assert.Equal(t, []string{"StateChange", "node: N1", "time: 1200", "Prevote → Precommit"}, tip.Text())
}

func TestDrawTooltip(t *testing.T) {
	rec := canvas.NewRecorder(400, 300, 2)
	tip := PointTooltip(model.StateChangePoint{Node: "N1", Timestamp: 1200, PrevState: "Prevote", NextState: "Precommit"}).at(20, 30)

	DrawTooltip(rec, tip, 2)

	require.Equal(t, "save", rec.Ops[0].Name)
	assert.Equal(t, "resetTransform", rec.Ops[1].Name)
	assert.Equal(t, []float64{2}, rec.Ops[1].Args)
	assert.Equal(t, "restore", rec.Ops[len(rec.Ops)-1].Name)

	rects := rec.Find("fillRect")
	require.Len(t, rects, 1)
	assert.Equal(t, canvas.CSS(TooltipBackground), rects[0].Color)
	assert.Equal(t, 30.0, rects[0].Args[0])
	assert.Equal(t, 40.0, rects[0].Args[1])

	texts := rec.Find("fillText")
	require.Len(t, texts, 4)
	assert.Equal(t, "StateChange", texts[0].Text)
	assert.Equal(t, []float64{38, 48}, texts[0].Args)
	assert.Equal(t, "left/top", texts[0].Style)
	assert.Equal(t, 64.0, texts[1].Args[1])
}

func TestDrawTooltipStaysInside(t *testing.T) {
	rec := canvas.NewRecorder(200, 100, 1)
	tip := ArrowTooltip(model.Arrow{FromNode: "N0", ToNode: "N1", MsgType: "Vote"}).at(190, 90)

	DrawTooltip(rec, tip, 1)

	rect := rec.Find("fillRect")[0]
	x, y, w := rect.Args[0], rect.Args[1], rect.Args[2]
	assert.InDelta(t, 200, x+w, 1e-9)
	// taller than the surface: pinned to the top
	assert.Equal(t, 0.0, y)
}

func TestDrawTooltipHidden(t *testing.T) {
	rec := canvas.NewRecorder(200, 100, 1)
	DrawTooltip(rec, Tooltip{Title: "Message"}, 1)
	DrawTooltip(nil, Tooltip{Visible: true}, 1)
	assert.Empty(t, rec.Ops)
}
