// Package pairing derives arrows and state-change points from raw events.
package pairing

import (
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/util"
)

// Result holds the derived structures for one event window
type Result struct {
	Arrows []model.Arrow
	Points []model.StateChangePoint
	// Sends without a later receive of the same key
	Unmatched int
}

type messageKey struct {
	from    string
	to      string
	msgType string
	height  int64
	round   int64
}

func keyOf(e model.Event) messageKey {
	return messageKey{
		from:    e.From,
		to:      e.To,
		msgType: e.MessageType,
		height:  e.Height,
		round:   e.Round,
	}
}

type pendingReceive struct {
	timestamp int64
	consumed  bool
}

// Pair matches every send with the first unconsumed receive sharing its
// (from, to, message_type, height, round) key and a strictly later timestamp.
// Candidates are tried in input order. Sends that find no partner are dropped.
func Pair(events []model.Event) Result {
	receives := make(map[messageKey][]*pendingReceive)
	for _, e := range events {
		if e.EventType == model.EventReceive {
			k := keyOf(e)
			receives[k] = append(receives[k], &pendingReceive{timestamp: e.Timestamp})
		}
	}

	result := Result{
		Arrows: make([]model.Arrow, 0),
		Points: make([]model.StateChangePoint, 0),
	}

	for _, e := range events {
		switch e.EventType {
		case model.EventSend:
			recv := firstLater(receives[keyOf(e)], e.Timestamp)
			if recv == nil {
				result.Unmatched++
				continue
			}
			recv.consumed = true
			result.Arrows = append(result.Arrows, model.Arrow{
				ID:       len(result.Arrows),
				FromNode: e.From,
				ToNode:   e.To,
				MsgType:  e.MessageType,
				Height:   e.Height,
				Round:    e.Round,
				SendTime: e.Timestamp,
				RecvTime: recv.timestamp,
			})
		case model.EventStateChange:
			result.Points = append(result.Points, model.StateChangePoint{
				ID:        len(result.Points),
				Node:      e.Node,
				Timestamp: e.Timestamp,
				PrevState: e.PrevState,
				NextState: e.NextState,
				Height:    e.Height,
				Round:     e.Round,
			})
		}
	}

	if result.Unmatched > 0 {
		util.LogDebugf("pairing: %d of %d sends unmatched", result.Unmatched, result.Unmatched+len(result.Arrows))
	}
	return result
}

func firstLater(candidates []*pendingReceive, after int64) *pendingReceive {
	for _, r := range candidates {
		if !r.consumed && r.timestamp > after {
			return r
		}
	}
	return nil
}
