package histogram

// Schedule describes the placement of sliding windows over a sequence
// of length N: NumWindows windows of WinLen positions, each offset by
// Stride from the previous one. All positions are 0-based.
type Schedule struct {
	N          int
	WinLen     int
	Stride     int
	NumWindows int
}

// NewSchedule validates the window configuration and computes the
// number of windows: floor((N - winLen) / stride) + 1.
func NewSchedule(n, winLen, stride int) (Schedule, error) {
	if winLen <= 0 || winLen > n {
		return Schedule{}, ErrWindowLength
	}

	if stride <= 0 || stride >= winLen {
		return Schedule{}, ErrStride
	}

	num := (n-winLen)/stride + 1
	if num <= 0 {
		return Schedule{}, ErrWindowLength
	}

	return Schedule{
		N:          n,
		WinLen:     winLen,
		Stride:     stride,
		NumWindows: num,
	}, nil
}

// Locus returns the start position of window w.
func (s Schedule) Locus(w int) int {
	return w * s.Stride
}

// Loci returns the start positions of all windows.
func (s Schedule) Loci() []int {
	loci := make([]int, s.NumWindows)
	for w := range loci {
		loci[w] = s.Locus(w)
	}

	return loci
}
