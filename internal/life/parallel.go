package life

import (
	"runtime"
	"sync"
)

const (
	// parallelCells is the board size from which Step splits into row bands.
	parallelCells = 256 * 256
	minBandRows   = 32
)

// parallelFor executes fn over [0, n) split into contiguous chunks of at
// least minChunk, one goroutine per chunk.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	workers = max(min(workers, n/minChunk), 1)

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
	}
	wg.Wait()
}
