package fixtures

import "github.com/penwyp/go-consensus-timeline/internal/core/model"

// Send builds a send_message event
func Send(from, to, msgType string, height, round, ts int64) model.Event {
	return model.Event{
		EventType:   model.EventSend,
		Timestamp:   ts,
		From:        from,
		To:          to,
		MessageType: msgType,
		Height:      height,
		Round:       round,
	}
}

// Receive builds a receive_message event
func Receive(from, to, msgType string, height, round, ts int64) model.Event {
	e := Send(from, to, msgType, height, round, ts)
	e.EventType = model.EventReceive
	return e
}

// StateChange builds a state_change event
func StateChange(node, prev, next string, ts int64) model.Event {
	return model.Event{
		EventType: model.EventStateChange,
		Timestamp: ts,
		Node:      node,
		PrevState: prev,
		NextState: next,
	}
}

// Exchange returns a matched send/receive pair
func Exchange(from, to, msgType string, height, round, sendTs, recvTs int64) []model.Event {
	return []model.Event{
		Send(from, to, msgType, height, round, sendTs),
		Receive(from, to, msgType, height, round, recvTs),
	}
}

// SmallCluster is a three node window with two exchanges and one state change
func SmallCluster() []model.Event {
	events := Exchange("N0", "N1", model.MessageVote, 10, 1, 1000, 1020)
	events = append(events, Exchange("N2", "N0", model.MessageBlockPart, 10, 1, 1100, 1150)...)
	events = append(events, StateChange("N1", model.StatePrevote, model.StatePrecommit, 1200))
	return events
}
