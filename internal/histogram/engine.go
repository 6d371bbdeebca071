// Package histogram computes histograms over every window of a strided
// sliding window, using a differential update: instead of re-binning
// all winLen elements per window, it removes the contribution of
// elements that left the window and adds the contribution of elements
// that entered it. Total work is O(winLen + numWindows*stride) versus
// the naive O(numWindows*winLen), and the output is integer-exact
// identical to recomputing every window from scratch.
package histogram

import "math"

// Options configures a sliding histogram computation.
type Options struct {
	// Bins is the number of histogram bins. Must be greater than 2.
	Bins int

	// WinLen is the window length in positions.
	WinLen int

	// Stride is the offset between consecutive windows.
	// Must be strictly less than WinLen.
	Stride int

	// NormalizeFromRange selects the binning variant. When false,
	// input values are assumed to lie in [0, 1]. When true, the input
	// is normalized by its observed min/max before binning.
	NormalizeFromRange bool

	// Workers splits the window range into that many contiguous
	// chunks computed in parallel. Each chunk re-seeds its first
	// window with a full scan, so the total extra work is
	// O(workers * WinLen). Values below 2 select the sequential path.
	Workers int
}

// Result is the output of a sliding histogram computation.
type Result struct {
	// Matrix holds one histogram column per window.
	Matrix *Matrix

	// Loci holds the 0-based start position of each window.
	Loci []int

	// Edges holds the Bins+1 bin boundary values.
	Edges []float64

	// Dropped counts contributions skipped because a bin index or a
	// buffer position fell out of range. Non-zero Dropped means some
	// columns sum to less than WinLen.
	Dropped uint64
}

// Compute runs the sliding histogram over input. It is pure and
// stateless between calls: all validation happens before any buffer is
// allocated, and the caller's input is never mutated.
func Compute(input []float64, opts Options) (*Result, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	if opts.Bins <= 2 {
		return nil, ErrBinCount
	}

	sched, err := NewSchedule(len(input), opts.WinLen, opts.Stride)
	if err != nil {
		return nil, err
	}

	// Single pass for finiteness and the value range.
	minVal, maxVal := input[0], input[0]
	for _, v := range input {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrNonFiniteInput
		}

		if v < minVal {
			minVal = v
		}

		if v > maxVal {
			maxVal = v
		}
	}

	var binner Binner
	if opts.NormalizeFromRange {
		rb, err := NewRangeBinner(opts.Bins, minVal, maxVal)
		if err != nil {
			return nil, err
		}

		binner = rb
	} else {
		binner = NewUnitBinner(opts.Bins)
	}

	binned := make([]int, len(input))
	for i, v := range input {
		binned[i] = binner.Bin(v)
	}

	mat := NewMatrix(opts.Bins, sched.NumWindows)

	var dropped uint64
	if opts.Workers > 1 && sched.NumWindows > 1 {
		dropped = computeChunked(binned, sched, mat, opts.Workers)
	} else {
		dropped = slideRange(binned, sched, mat, 0, sched.NumWindows)
	}

	return &Result{
		Matrix:  mat,
		Loci:    sched.Loci(),
		Edges:   binner.Edges(),
		Dropped: dropped,
	}, nil
}

// slideRange fills matrix columns [first, last). It seeds the
// accumulator with a full scan of window first, then advances one
// window at a time: decrement the stride elements that left, increment
// the stride elements that entered, snapshot into the column. Column w
// is only correct once column w-1 has been processed; the recurrence
// is strictly sequential within the range.
func slideRange(binned []int, sched Schedule, mat *Matrix, first, last int) uint64 {
	acc := NewAccumulator(mat.Bins)

	start := sched.Locus(first)
	acc.Increment(binned[start : start+sched.WinLen])
	acc.CopyInto(mat.Column(first))

	var clipped uint64

	for w := first + 1; w < last; w++ {
		prev := sched.Locus(w - 1)

		depart, c1 := span(binned, prev, sched.Stride)
		arrive, c2 := span(binned, prev+sched.WinLen, sched.Stride)
		clipped += c1 + c2

		acc.Decrement(depart)
		acc.Increment(arrive)
		acc.CopyInto(mat.Column(w))
	}

	return acc.Dropped() + clipped
}

// span returns binned[start : start+n] clipped to the valid bounds of
// the buffer, plus how many positions were clipped away. All arithmetic
// is signed, so a start before the buffer cannot wrap around.
func span(binned []int, start, n int) ([]int, uint64) {
	var clipped uint64

	if start < 0 {
		under := -start
		if under > n {
			under = n
		}

		clipped += uint64(under)
		start += under
		n -= under
	}

	end := start + n
	if end > len(binned) {
		over := end - len(binned)
		if over > n {
			over = n
		}

		clipped += uint64(over)
		end -= over
	}

	if n <= 0 || start >= end {
		return nil, clipped
	}

	return binned[start:end], clipped
}
