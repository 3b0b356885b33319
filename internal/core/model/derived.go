package model

// ElementKind distinguishes the interactive elements drawn on the canvas
type ElementKind int

const (
	ElementNone ElementKind = iota
	ElementArrow
	ElementPoint
)

func (k ElementKind) String() string {
	switch k {
	case ElementArrow:
		return "arrow"
	case ElementPoint:
		return "state_change"
	default:
		return "none"
	}
}

// ElementRef identifies one arrow or point of the current derived set.
// The zero value refers to nothing.
type ElementRef struct {
	Kind ElementKind
	ID   int
}

// IsZero reports whether the reference points at nothing
func (r ElementRef) IsZero() bool {
	return r.Kind == ElementNone
}

// Arrow is a matched send/receive pair
type Arrow struct {
	ID       int    `json:"id"`
	FromNode string `json:"from_node"`
	ToNode   string `json:"to_node"`
	MsgType  string `json:"msg_type"`
	Height   int64  `json:"height"`
	Round    int64  `json:"round"`
	SendTime int64  `json:"send_time"`
	RecvTime int64  `json:"recv_time"`
}

// Ref returns the stable reference of the arrow
func (a Arrow) Ref() ElementRef {
	return ElementRef{Kind: ElementArrow, ID: a.ID}
}

// Latency is the time the message spent in flight
func (a Arrow) Latency() int64 {
	return a.RecvTime - a.SendTime
}

// StateChangePoint marks a node's state transition
type StateChangePoint struct {
	ID        int    `json:"id"`
	Node      string `json:"node"`
	Timestamp int64  `json:"timestamp"`
	PrevState string `json:"prev_state"`
	NextState string `json:"next_state"`
	Height    int64  `json:"height,omitempty"`
	Round     int64  `json:"round,omitempty"`
}

// Ref returns the stable reference of the point
func (p StateChangePoint) Ref() ElementRef {
	return ElementRef{Kind: ElementPoint, ID: p.ID}
}
