package histogram

import "math"

// Binner maps a real value to an integer bin index in [0, bins).
// Values outside the binner's range may produce out-of-range indices;
// the accumulator drops those and reports them as a diagnostic count.
type Binner interface {
	// Bin returns the bin index for a value.
	Bin(v float64) int
	// Edges returns the bins+1 boundary values of the partition.
	Edges() []float64
}

// UnitBinner bins values assumed to lie in [0, 1] into equal-width bins.
// A value of exactly 1.0 is clamped into the top bin.
type UnitBinner struct {
	bins int
}

// NewUnitBinner creates a UnitBinner with the given bin count.
func NewUnitBinner(bins int) UnitBinner {
	return UnitBinner{bins: bins}
}

func (b UnitBinner) Bin(v float64) int {
	idx := int(math.Floor(v * float64(b.bins)))
	if idx == b.bins {
		idx = b.bins - 1
	}

	return idx
}

func (b UnitBinner) Edges() []float64 {
	edges := make([]float64, b.bins+1)
	for i := range edges {
		edges[i] = float64(i) / float64(b.bins)
	}

	return edges
}

// RangeBinner normalizes raw values by an observed [min, max] range
// before binning, so the bins span the full range of the input.
type RangeBinner struct {
	bins int
	min  float64
	span float64
}

// NewRangeBinner creates a RangeBinner for the given value range.
// A degenerate range (max == min) cannot be normalized and is rejected.
func NewRangeBinner(bins int, minVal, maxVal float64) (RangeBinner, error) {
	if maxVal == minVal {
		return RangeBinner{}, ErrDegenerateRange
	}

	return RangeBinner{
		bins: bins,
		min:  minVal,
		span: maxVal - minVal,
	}, nil
}

func (b RangeBinner) Bin(v float64) int {
	norm := (v - b.min) / b.span

	idx := int(math.Floor(norm * float64(b.bins)))
	if idx == b.bins {
		idx = b.bins - 1
	}

	return idx
}

func (b RangeBinner) Edges() []float64 {
	edges := make([]float64, b.bins+1)
	for i := range edges {
		edges[i] = b.min + b.span*float64(i)/float64(b.bins)
	}

	return edges
}
