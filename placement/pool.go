package placement

import (
	"sync"

	"github.com/okhramov/bulwark/grid"
)

// evalFn scores one candidate block. ok is false when the candidate is
// invalid (it disconnects spawn from core); nodes reports the search
// effort spent either way.
type evalFn func(block grid.Position) (cand candidate, nodes int, ok bool)

// fanOut evaluates every candidate block on a fixed pool of workers and
// reduces the results deterministically.
//
// Each worker keeps a local best and local counters; nothing is shared
// until the WaitGroup join barrier, after which the locals are merged in
// worker order. The winner therefore depends only on candidate ordering,
// not on scheduling.
func fanOut(blocks []grid.Position, workers int, eval evalFn) (best candidate, found bool, nodes int) {
	if workers > len(blocks) {
		workers = len(blocks)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan grid.Position, len(blocks))
	locals := make([]candidate, workers)
	spent := make([]int, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(slot int) {
			defer wg.Done()
			for block := range jobs {
				c, n, ok := eval(block)
				spent[slot] += n
				if ok && (locals[slot].path == nil || better(c, locals[slot])) {
					locals[slot] = c
				}
			}
		}(i)
	}

	for _, b := range blocks {
		jobs <- b
	}
	close(jobs)
	wg.Wait()

	for _, n := range spent {
		nodes += n
	}
	best, found = merge(locals)

	return best, found, nodes
}
