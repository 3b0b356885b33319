package constants

const (
	// Event timestamps are integer milliseconds
	MillisPerSecond = int64(1000)

	// Quick range look-backs, relative to the newest event
	QuickRange5Seconds  = 5 * MillisPerSecond
	QuickRange30Seconds = 30 * MillisPerSecond
	QuickRange1Minute   = 60 * MillisPerSecond

	// Padding added on both ends of the time domain, in time units
	DomainPadding = int64(50)
)
