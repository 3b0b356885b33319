package scale

// NodeScale maps an ordered set of node names onto evenly spaced bands.
// Inner and outer padding are both expressed as a fraction of the step,
// and leftover space is split evenly on both sides.
type NodeScale struct {
	domain    []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewNodeScale lays out the domain over [r0, r1] with the given padding
func NewNodeScale(domain []string, r0, r1, padding float64) *NodeScale {
	s := &NodeScale{
		domain: append([]string(nil), domain...),
		index:  make(map[string]int, len(domain)),
	}
	for i, name := range s.domain {
		s.index[name] = i
	}

	n := float64(len(s.domain))
	divisor := n - padding + padding*2
	if divisor < 1 {
		divisor = 1
	}
	s.step = (r1 - r0) / divisor
	s.start = r0 + (r1-r0-s.step*(n-padding))*0.5
	s.bandwidth = s.step * (1 - padding)
	return s
}

// Position returns the top of the node's band
func (s *NodeScale) Position(node string) (float64, bool) {
	i, ok := s.index[node]
	if !ok {
		return 0, false
	}
	return s.start + s.step*float64(i), true
}

// Center returns the vertical middle of the node's band
func (s *NodeScale) Center(node string) (float64, bool) {
	y, ok := s.Position(node)
	if !ok {
		return 0, false
	}
	return y + s.bandwidth/2, true
}

// Bandwidth returns the height of each band
func (s *NodeScale) Bandwidth() float64 {
	return s.bandwidth
}

// Step returns the distance between the tops of adjacent bands
func (s *NodeScale) Step() float64 {
	return s.step
}

// Domain returns a copy of the ordered node names
func (s *NodeScale) Domain() []string {
	return append([]string(nil), s.domain...)
}
