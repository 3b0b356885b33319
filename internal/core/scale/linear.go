package scale

// TimeScale maps a continuous time domain linearly onto a pixel range
type TimeScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewTimeScale creates a linear scale from [d0, d1] onto [r0, r1]
func NewTimeScale(d0, d1, r0, r1 float64) *TimeScale {
	return &TimeScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Apply maps a domain value to pixels
func (s *TimeScale) Apply(t float64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (t-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Invert maps a pixel back to the domain
func (s *TimeScale) Invert(px float64) float64 {
	if s.r1 == s.r0 {
		return (s.d0 + s.d1) / 2
	}
	return s.d0 + (px-s.r0)/(s.r1-s.r0)*(s.d1-s.d0)
}

// Domain returns the domain bounds
func (s *TimeScale) Domain() (float64, float64) {
	return s.d0, s.d1
}

// Range returns the pixel bounds
func (s *TimeScale) Range() (float64, float64) {
	return s.r0, s.r1
}

// Contains reports whether t lies inside the domain
func (s *TimeScale) Contains(t float64) bool {
	return t >= s.d0 && t <= s.d1
}
