// Package generator produces synthetic consensus event streams for demos
// and tests.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/penwyp/go-consensus-timeline/internal/core/model"
)

// Defaults of a generated run
const (
	DefaultNodes     = 5
	DefaultPairs     = 150
	DefaultStartTime = int64(1679048123401)

	minDelta        = 100
	deltaSpread     = 400
	minRecvDelay    = 1
	recvDelaySpread = 50
	minStateDelay   = 20
	stateDelaySpan  = 80
	minHeight       = 10
	heightSpread    = 11
	minRound        = 1
	roundSpread     = 5

	// DefaultStateChangeProbability is the chance of a state change after each exchange
	DefaultStateChangeProbability = 0.33
)

type transition struct {
	prev, next string
}

var transitions = []transition{
	{model.StatePrevote, model.StatePrecommit},
	{model.StateNewRound, model.StatePrevote},
	{model.StatePrecommit, model.StateCommit},
}

var messageTypes = []string{model.MessageVote, model.MessageBlockPart}

// Config controls a generated run
type Config struct {
	Nodes     int
	Pairs     int // 0 yields an empty stream
	Seed      int64 // 0 picks a time-based seed
	StartTime int64
	// StateChangeProbability in [0, 1]
	StateChangeProbability float64
}

// Validate fills defaults and rejects impossible settings
func (c *Config) Validate() error {
	if c.Nodes == 0 {
		c.Nodes = DefaultNodes
	}
	if c.StartTime == 0 {
		c.StartTime = DefaultStartTime
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	if c.Nodes < 2 {
		return fmt.Errorf("at least 2 nodes are needed to exchange messages, got %d", c.Nodes)
	}
	if c.Pairs < 0 {
		return fmt.Errorf("pairs must not be negative, got %d", c.Pairs)
	}
	if c.StartTime < 0 {
		return fmt.Errorf("start time must not be negative, got %d", c.StartTime)
	}
	if c.StateChangeProbability < 0 || c.StateChangeProbability > 1 {
		return fmt.Errorf("state change probability must be within [0, 1], got %g", c.StateChangeProbability)
	}
	return nil
}

// DefaultConfig mirrors the demo data set
func DefaultConfig() Config {
	return Config{
		Nodes:                  DefaultNodes,
		Pairs:                  DefaultPairs,
		StartTime:              DefaultStartTime,
		StateChangeProbability: DefaultStateChangeProbability,
	}
}

// NodeName returns the identifier of the i-th node
func NodeName(i int) string {
	return fmt.Sprintf("N%d", i)
}

// Generate produces Pairs send/receive exchanges between random distinct
// nodes, each optionally followed by a state change. The same seed always
// yields the same stream.
func Generate(cfg Config) ([]model.Event, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	nodes := make([]string, cfg.Nodes)
	for i := range nodes {
		nodes[i] = NodeName(i)
	}

	events := make([]model.Event, 0, cfg.Pairs*2+cfg.Pairs/3)
	current := cfg.StartTime

	for i := 0; i < cfg.Pairs; i++ {
		current += int64(rng.Intn(deltaSpread) + minDelta)

		from := rng.Intn(len(nodes))
		// pick among the other nodes so from != to without retrying
		to := rng.Intn(len(nodes) - 1)
		if to >= from {
			to++
		}

		msgType := messageTypes[rng.Intn(len(messageTypes))]
		height := int64(rng.Intn(heightSpread) + minHeight)
		round := int64(rng.Intn(roundSpread) + minRound)

		send := model.Event{
			EventType:   model.EventSend,
			Timestamp:   current,
			From:        nodes[from],
			To:          nodes[to],
			MessageType: msgType,
			Height:      height,
			Round:       round,
		}
		recv := send
		recv.EventType = model.EventReceive
		recv.Timestamp = current + int64(rng.Intn(recvDelaySpread)+minRecvDelay)
		events = append(events, send, recv)

		if rng.Float64() < cfg.StateChangeProbability {
			tr := transitions[rng.Intn(len(transitions))]
			events = append(events, model.Event{
				EventType: model.EventStateChange,
				Timestamp: current + int64(rng.Intn(stateDelaySpan)+minStateDelay),
				Node:      nodes[rng.Intn(len(nodes))],
				PrevState: tr.prev,
				NextState: tr.next,
				Height:    height,
				Round:     round,
			})
		}
	}

	return events, nil
}
