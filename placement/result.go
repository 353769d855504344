package placement

import "github.com/okhramov/bulwark/grid"

// Plan is the aggregated outcome of one placement search run: the best
// committed obstruction layout, the path it forces, and how the run ended.
type Plan struct {
	// Blocks is the committed obstruction layout.
	Blocks grid.ObstructionSet

	// Path is the attacker path found under Blocks, spawn to core inclusive.
	Path []grid.Position

	// Length is the number of edges of Path.
	Length int

	// Baseline is the path length before any obstruction was placed.
	Baseline int

	// Iterations counts committed placements.
	Iterations int

	// Evaluations counts candidate layouts scored across the whole run.
	Evaluations int

	// Reason records why the run stopped.
	Reason StopReason
}

// Improvement returns the committed length gain over the baseline.
func (p *Plan) Improvement() int {
	return p.Length - p.Baseline
}

// candidate is one scored obstruction layout: the newly added block plus
// the path evaluation against the extended set. Invalid candidates
// (disconnecting layouts) are never constructed.
type candidate struct {
	block  grid.Position
	path   []grid.Position
	length int
}

// better reports whether a should win the reduction against b: greater
// length first, then ascending block position. b may be the zero
// candidate (nil path), which always loses.
func better(a, b candidate) bool {
	if b.path == nil {
		return true
	}
	if a.length != b.length {
		return a.length > b.length
	}

	return a.block.Less(b.block)
}

// merge reduces per-worker local bests into the iteration winner,
// scanning in worker order. The outcome depends only on the candidate
// ordering rules, never on worker finish order.
func merge(locals []candidate) (candidate, bool) {
	var best candidate
	found := false
	for _, c := range locals {
		if c.path == nil {
			continue
		}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}

	return best, found
}
