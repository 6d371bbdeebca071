package histogram

// Accumulator is the mutable per-bin count buffer maintained across
// window transitions. It is created once per computation and reused for
// every window; the engine is its only mutator, so no locking is needed.
//
// Bin indices outside [0, bins) are skipped rather than erroring, but
// every skip is counted so callers can surface the discrepancy.
type Accumulator struct {
	counts  []uint64
	dropped uint64
}

// NewAccumulator creates a zeroed accumulator with the given bin count.
func NewAccumulator(bins int) *Accumulator {
	return &Accumulator{
		counts: make([]uint64, bins),
	}
}

// Increment adds 1 to each bin named in indices.
func (a *Accumulator) Increment(indices []int) {
	for _, idx := range indices {
		if idx < 0 || idx >= len(a.counts) {
			a.dropped++
			continue
		}

		a.counts[idx]++
	}
}

// Decrement subtracts 1 from each bin named in indices. Applying
// Decrement after Increment with the same indices restores the
// accumulator exactly.
func (a *Accumulator) Decrement(indices []int) {
	for _, idx := range indices {
		if idx < 0 || idx >= len(a.counts) {
			a.dropped++
			continue
		}

		a.counts[idx]--
	}
}

// CopyInto snapshots the current counts into dst, which must have
// length equal to the bin count.
func (a *Accumulator) CopyInto(dst []uint64) {
	copy(dst, a.counts)
}

// Dropped returns how many indices were skipped as out of range.
func (a *Accumulator) Dropped() uint64 {
	return a.dropped
}

// Count fully scans a binned slice and returns its histogram. This is
// the from-scratch counterpart of the differential update; the engine
// uses it to seed each chunk's first window.
func Count(binned []int, bins int) []uint64 {
	acc := NewAccumulator(bins)
	acc.Increment(binned)

	return acc.counts
}
