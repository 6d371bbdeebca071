package histogram

import "errors"

// Argument validation errors. All are detected before any buffer is
// allocated; callers can match them with errors.Is.
var (
	ErrEmptyInput      = errors.New("input is empty")
	ErrNonFiniteInput  = errors.New("input contains non-finite values")
	ErrBinCount        = errors.New("bin count must be greater than 2")
	ErrStride          = errors.New("stride must be positive and less than window length")
	ErrWindowLength    = errors.New("window length must be positive and not exceed input length")
	ErrDegenerateRange = errors.New("value range is degenerate (min equals max)")
)
