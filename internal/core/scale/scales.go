package scale

import (
	"sort"

	"github.com/penwyp/go-consensus-timeline/internal/core/constants"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
)

// Scales bundles the time and node mappings for one data window and canvas size
type Scales struct {
	Time        *TimeScale
	Nodes       *NodeScale
	InnerWidth  float64
	InnerHeight float64
}

// InnerSize returns the content area left after margins
func InnerSize(width, height float64, m constants.Margins) (float64, float64) {
	return width - m.Left - m.Right, height - m.Top - m.Bottom
}

// Build derives scales from the events and the content area.
// It reports false when there is nothing to draw: no events or no room.
func Build(events []model.Event, innerWidth, innerHeight float64) (*Scales, bool) {
	minTime, maxTime, ok := model.TimeBounds(events)
	if !ok || innerWidth <= 0 || innerHeight <= 0 {
		return nil, false
	}

	d0 := float64(minTime - constants.DomainPadding)
	d1 := float64(maxTime + constants.DomainPadding)

	return &Scales{
		Time:        NewTimeScale(d0, d1, 0, innerWidth),
		Nodes:       NewNodeScale(NodeDomain(events), 0, innerHeight, constants.BandPadding),
		InnerWidth:  innerWidth,
		InnerHeight: innerHeight,
	}, true
}

// NodeDomain returns the sorted, deduplicated node names referenced by the events
func NodeDomain(events []model.Event) []string {
	seen := make(map[string]struct{})
	for _, e := range events {
		for _, n := range e.Nodes() {
			seen[n] = struct{}{}
		}
	}

	nodes := make([]string, 0, len(seen))
	for n := range seen {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

// X maps a timestamp to a content-local x coordinate
func (s *Scales) X(timestamp int64) float64 {
	return s.Time.Apply(float64(timestamp))
}

// Y maps a node to the content-local y coordinate of its band center
func (s *Scales) Y(node string) (float64, bool) {
	return s.Nodes.Center(node)
}
