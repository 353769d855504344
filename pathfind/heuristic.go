package pathfind

import "github.com/okhramov/bulwark/grid"

// scanner performs repeated core-reachability probes over one (grid,
// obstruction set) pair. Scratch buffers are stamped with a generation
// counter instead of being cleared, so each probe costs O(cells visited)
// with no per-call allocation.
type scanner struct {
	g     *grid.Grid
	obs   grid.ObstructionSet
	mark  []int
	gen   int
	queue []int
}

func newScanner(g *grid.Grid, obs grid.ObstructionSet) *scanner {
	total := g.Width() * g.Height()

	return &scanner{
		g:     g,
		obs:   obs,
		mark:  make([]int, total),
		queue: make([]int, 0, total),
	}
}

// reachesCore reports whether any Core is reachable from start, walking
// only cells that are traversable under the scanner's obstructions, not
// flagged in visited, and not equal to the hypothetically occupied cell
// index extra (-1 for none). start itself must satisfy those conditions.
func (s *scanner) reachesCore(start grid.Position, visited []bool, extra int) bool {
	s.gen++
	s.queue = s.queue[:0]

	si := s.g.Index(start)
	s.mark[si] = s.gen
	s.queue = append(s.queue, si)

	for qi := 0; qi < len(s.queue); qi++ {
		u := s.queue[qi]
		up := s.g.PositionAt(u)
		if s.g.TileAt(up) == grid.Core {
			return true
		}
		for _, v := range s.g.Neighbors(up) {
			vi := s.g.Index(v)
			if vi == extra || s.mark[vi] == s.gen || visited[vi] || !s.g.Traversable(v, s.obs) {
				continue
			}
			s.mark[vi] = s.gen
			s.queue = append(s.queue, vi)
		}
	}

	return false
}

// ordered returns the traversable, unvisited neighbors of pos ranked for
// expansion:
//
//  1. Neighbors from which no Core remains reachable are dropped — a
//     branch through them can never complete, so exploring them only
//     burns budget.
//  2. Remaining neighbors are penalized when stepping onto them would
//     cut some sibling neighbor of pos off from every Core (the
//     one-step look-ahead against isolating a region).
//  3. Unpenalized neighbors come first; within each class the grid's
//     fixed offset order already ascends (row, column).
func (w *walker) ordered(pos grid.Position, visited []bool) []grid.Position {
	nbrs := w.g.Neighbors(pos)

	free := make([]grid.Position, 0, len(nbrs))
	for _, q := range nbrs {
		if visited[w.g.Index(q)] || !w.g.Traversable(q, w.obs) {
			continue
		}
		free = append(free, q)
	}

	var preferred, penalized []grid.Position
	for _, q := range free {
		if !w.scan.reachesCore(q, visited, -1) {
			continue // dead move
		}
		qi := w.g.Index(q)
		isolating := false
		for _, m := range free {
			if m == q {
				continue
			}
			if !w.scan.reachesCore(m, visited, qi) {
				isolating = true
				break
			}
		}
		if isolating {
			penalized = append(penalized, q)
		} else {
			preferred = append(preferred, q)
		}
	}

	return append(preferred, penalized...)
}
