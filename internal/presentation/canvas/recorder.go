package canvas

import "image/color"

// Op is one recorded drawing call
type Op struct {
	Name  string    `json:"op"`
	Args  []float64 `json:"args,omitempty"`
	Text  string    `json:"text,omitempty"`
	Color string    `json:"color,omitempty"`
	Style string    `json:"style,omitempty"`
}

// Recorder is a Surface that keeps the sequence of calls instead of pixels
type Recorder struct {
	width  float64
	height float64
	ratio  float64

	fill     color.Color
	stroke   color.Color
	align    TextAlign
	baseline TextBaseline
	stack    []recorderState

	Ops []Op
}

type recorderState struct {
	fill     color.Color
	stroke   color.Color
	align    TextAlign
	baseline TextBaseline
}

// NewRecorder creates a recorder of the given logical size
func NewRecorder(width, height int, ratio float64) *Recorder {
	return &Recorder{
		width:  float64(width),
		height: float64(height),
		ratio:  ratio,
		fill:   color.Black,
		stroke: color.Black,
	}
}

// RecorderFactory returns a Factory producing Recorders
func RecorderFactory() Factory {
	return func(width, height int, ratio float64) (Surface, error) {
		return NewRecorder(width, height, ratio), nil
	}
}

func (r *Recorder) record(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

func (r *Recorder) recordColored(name string, c color.Color, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args, Color: CSS(c)})
}

// Reset drops every recorded op
func (r *Recorder) Reset() {
	r.Ops = nil
}

// Count returns how many ops carry the given name
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Find returns the recorded ops with the given name
func (r *Recorder) Find(name string) []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Name == name {
			ops = append(ops, op)
		}
	}
	return ops
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }
func (r *Recorder) Ratio() float64           { return r.ratio }

func (r *Recorder) ResetTransform(ratio float64) { r.record("resetTransform", ratio) }
func (r *Recorder) Translate(x, y float64)       { r.record("translate", x, y) }

func (r *Recorder) Save() {
	r.stack = append(r.stack, recorderState{fill: r.fill, stroke: r.stroke, align: r.align, baseline: r.baseline})
	r.record("save")
}

func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		st := r.stack[n-1]
		r.stack = r.stack[:n-1]
		r.fill, r.stroke, r.align, r.baseline = st.fill, st.stroke, st.align, st.baseline
	}
	r.record("restore")
}

func (r *Recorder) Clear() { r.record("clear") }

func (r *Recorder) SetFillColor(c color.Color)   { r.fill = c }
func (r *Recorder) SetStrokeColor(c color.Color) { r.stroke = c }
func (r *Recorder) SetLineWidth(w float64)       { r.record("lineWidth", w) }
func (r *Recorder) SetFont(size float64)         { r.record("font", size) }
func (r *Recorder) SetTextAlign(a TextAlign)     { r.align = a }
func (r *Recorder) SetTextBaseline(b TextBaseline) {
	r.baseline = b
}

func (r *Recorder) FillRect(x, y, w, h float64) { r.recordColored("fillRect", r.fill, x, y, w, h) }

func (r *Recorder) BeginPath()          { r.record("beginPath") }
func (r *Recorder) MoveTo(x, y float64) { r.record("moveTo", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.record("lineTo", x, y) }
func (r *Recorder) ClosePath()          { r.record("closePath") }

func (r *Recorder) Arc(x, y, rad, start, end float64) {
	r.record("arc", x, y, rad, start, end)
}

func (r *Recorder) Stroke() { r.recordColored("stroke", r.stroke) }
func (r *Recorder) Fill()   { r.recordColored("fill", r.fill) }

func (r *Recorder) FillText(text string, x, y float64) {
	r.Ops = append(r.Ops, Op{
		Name:  "fillText",
		Args:  []float64{x, y},
		Text:  text,
		Color: CSS(r.fill),
		Style: r.align.String() + "/" + r.baseline.String(),
	})
}
