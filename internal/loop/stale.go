package loop

// DefaultMaxStale is the number of consecutive updates without improvement before stopping.
const DefaultMaxStale = 50

// StaleDetector tracks consecutive updates with no best-fitness improvement.
type StaleDetector struct {
	maxStale   int
	staleCount int
	best       float64
	seeded     bool
}

// NewStaleDetector creates a detector that triggers after maxStale consecutive stale updates.
func NewStaleDetector(maxStale int) *StaleDetector {
	if maxStale <= 0 {
		maxStale = DefaultMaxStale
	}
	return &StaleDetector{maxStale: maxStale}
}

// Check compares best to the previous best. Returns true if the run should stop.
func (d *StaleDetector) Check(best float64) (abort bool, staleCount int) {
	if !d.seeded {
		d.best = best
		d.seeded = true
		return false, 0
	}

	if best > d.best {
		d.best = best
		d.staleCount = 0
	} else {
		d.staleCount++
	}

	return d.staleCount >= d.maxStale, d.staleCount
}

// MaxStale returns the configured threshold.
func (d *StaleDetector) MaxStale() int {
	return d.maxStale
}
