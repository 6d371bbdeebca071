package signal

import "math"

// Summary holds one-pass statistics of a signal.
type Summary struct {
	Count     int
	Min       float64
	Max       float64
	Mean      float64
	NonFinite int
}

// Summarize computes a Summary in a single pass. Min, Max and Mean are
// taken over the finite samples only.
func Summarize(values []float64) Summary {
	s := Summary{Count: len(values)}

	var (
		sum    float64
		finite int
	)

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.NonFinite++
			continue
		}

		if finite == 0 {
			s.Min, s.Max = v, v
		} else {
			if v < s.Min {
				s.Min = v
			}

			if v > s.Max {
				s.Max = v
			}
		}

		sum += v
		finite++
	}

	if finite > 0 {
		s.Mean = sum / float64(finite)
	}

	return s
}
