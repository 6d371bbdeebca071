package histogram

import "golang.org/x/sync/errgroup"

// computeChunked partitions the window range into contiguous chunks and
// runs the sequential recurrence independently within each. Every chunk
// owns its own accumulator and its own slice of matrix columns, so no
// two goroutines share mutable state. The cost is one extra full-scan
// seed per chunk.
func computeChunked(binned []int, sched Schedule, mat *Matrix, workers int) uint64 {
	if workers > sched.NumWindows {
		workers = sched.NumWindows
	}

	chunk := (sched.NumWindows + workers - 1) / workers
	drops := make([]uint64, workers)

	var g errgroup.Group

	for i := 0; i < workers; i++ {
		first := i * chunk
		if first >= sched.NumWindows {
			break
		}

		last := first + chunk
		if last > sched.NumWindows {
			last = sched.NumWindows
		}

		g.Go(func() error {
			drops[i] = slideRange(binned, sched, mat, first, last)

			return nil
		})
	}

	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()

	var total uint64
	for _, d := range drops {
		total += d
	}

	return total
}
