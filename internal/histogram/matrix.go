package histogram

// Matrix is a dense bins x windows count matrix stored column-major in
// a single contiguous buffer, one column per window. It is fully
// allocated before the sliding loop starts.
type Matrix struct {
	Bins    int
	Windows int

	data []uint64
}

// NewMatrix allocates a zeroed bins x windows matrix.
func NewMatrix(bins, windows int) *Matrix {
	return &Matrix{
		Bins:    bins,
		Windows: windows,
		data:    make([]uint64, bins*windows),
	}
}

// Column returns the histogram of window w as a mutable view into the
// underlying buffer.
func (m *Matrix) Column(w int) []uint64 {
	return m.data[w*m.Bins : (w+1)*m.Bins]
}

// At returns the count of bin b in window w.
func (m *Matrix) At(b, w int) uint64 {
	return m.data[w*m.Bins+b]
}

// Data returns the raw column-major buffer.
func (m *Matrix) Data() []uint64 {
	return m.data
}
