package model

import (
	"errors"
	"fmt"
)

// EventType identifies the kind of a protocol event record
type EventType string

const (
	EventSend        EventType = "send_message"
	EventReceive     EventType = "receive_message"
	EventStateChange EventType = "state_change"
)

// Message types carried by send/receive events
const (
	MessageVote      = "Vote"
	MessageBlockPart = "BlockPart"
)

// Consensus steps seen in state_change events
const (
	StateNewRound  = "NewRound"
	StatePrevote   = "Prevote"
	StatePrecommit = "Precommit"
	StateCommit    = "Commit"
)

var (
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrMissingEndpoint   = errors.New("message event without from/to")
	ErrMissingMsgType    = errors.New("message event without message_type")
	ErrMissingNode       = errors.New("state change without node")
	ErrNegativeTimestamp = errors.New("negative timestamp")
)

// Event is a single record of the consensus event stream.
// Fields other than EventType and Timestamp are required per EventType.
type Event struct {
	EventType   EventType `json:"event_type" codec:"event_type"`
	Timestamp   int64     `json:"timestamp" codec:"timestamp"`
	From        string    `json:"from,omitempty" codec:"from,omitempty"`
	To          string    `json:"to,omitempty" codec:"to,omitempty"`
	MessageType string    `json:"message_type,omitempty" codec:"message_type,omitempty"`
	Height      int64     `json:"height,omitempty" codec:"height,omitempty"`
	Round       int64     `json:"round,omitempty" codec:"round,omitempty"`
	Node        string    `json:"node,omitempty" codec:"node,omitempty"`
	PrevState   string    `json:"prev_state,omitempty" codec:"prev_state,omitempty"`
	NextState   string    `json:"next_state,omitempty" codec:"next_state,omitempty"`
}

// IsMessage reports whether the event is a send or a receive
func (e Event) IsMessage() bool {
	return e.EventType == EventSend || e.EventType == EventReceive
}

// Validate checks that the fields required by the event type are present
func (e Event) Validate() error {
	if e.Timestamp < 0 {
		return ErrNegativeTimestamp
	}

	switch e.EventType {
	case EventSend, EventReceive:
		if e.From == "" || e.To == "" {
			return ErrMissingEndpoint
		}
		if e.MessageType == "" {
			return ErrMissingMsgType
		}
	case EventStateChange:
		if e.Node == "" {
			return ErrMissingNode
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, e.EventType)
	}
	return nil
}

// Nodes returns the node identifiers referenced by the event
func (e Event) Nodes() []string {
	nodes := make([]string, 0, 3)
	if e.From != "" {
		nodes = append(nodes, e.From)
	}
	if e.To != "" {
		nodes = append(nodes, e.To)
	}
	if e.Node != "" {
		nodes = append(nodes, e.Node)
	}
	return nodes
}

// TimeBounds returns the minimum and maximum timestamp of the events.
// ok is false for an empty slice.
func TimeBounds(events []Event) (minTime, maxTime int64, ok bool) {
	if len(events) == 0 {
		return 0, 0, false
	}
	minTime, maxTime = events[0].Timestamp, events[0].Timestamp
	for _, e := range events[1:] {
		if e.Timestamp < minTime {
			minTime = e.Timestamp
		}
		if e.Timestamp > maxTime {
			maxTime = e.Timestamp
		}
	}
	return minTime, maxTime, true
}
