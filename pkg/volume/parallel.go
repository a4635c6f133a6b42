package volume

import (
	"runtime"
	"sync"
)

// parallelFor runs body(i) for every i in [0, n), distributing the
// range across a fixed worker pool (at most runtime.NumCPU() workers,
// each over one contiguous index range) rather than one goroutine per
// index. body must write only to index i's own output
// slot: callers are responsible for any per-index isolation.
func parallelFor(n int, body func(i int)) {
	if n <= 0 {
		return
	}
	numWorkers := runtime.NumCPU()
	if numWorkers > n {
		numWorkers = n
	}

	var wg sync.WaitGroup
	chunk := (n + numWorkers - 1) / numWorkers
	for w := 0; w < numWorkers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				body(i)
			}
		}(start, end)
	}
	wg.Wait()
}
