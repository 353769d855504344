package pathfind

import (
	"sort"

	"github.com/okhramov/bulwark/grid"
)

// Shortest finds an unweighted shortest path from any of the given start
// positions to the nearest Core, walking only cells traversable under obs.
// When no starts are given, every Spawn position seeds the search.
// Returns the position sequence inclusive of both endpoints, or ErrNoPath
// when every start is cut off from every Core.
//
// The search is deterministic: sources are seeded in ascending (row,
// column) order and neighbors expand in the grid's fixed offset order.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for parent links and the queue.
func Shortest(g *grid.Grid, obs grid.ObstructionSet, from ...grid.Position) ([]grid.Position, error) {
	if g == nil {
		return nil, ErrGridNil
	}
	if len(from) == 0 {
		from = g.Spawns()
	}

	// Seed the queue with traversable sources in ascending order.
	sources := make([]grid.Position, 0, len(from))
	for _, p := range from {
		if g.InBounds(p) && g.Traversable(p, obs) {
			sources = append(sources, p)
		}
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Less(sources[j]) })

	total := g.Width() * g.Height()
	parent := make([]int, total)
	for i := range parent {
		parent[i] = -1
	}

	queue := make([]int, 0, total)
	for _, p := range sources {
		i := g.Index(p)
		if parent[i] == -1 {
			parent[i] = i // roots point at themselves
			queue = append(queue, i)
		}
	}

	// Standard BFS; the first Core dequeued closes a minimal path.
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		up := g.PositionAt(u)
		if g.TileAt(up) == grid.Core {
			return reconstruct(g, parent, u), nil
		}
		for _, v := range g.Neighbors(up) {
			vi := g.Index(v)
			if parent[vi] == -1 && g.Traversable(v, obs) {
				parent[vi] = u
				queue = append(queue, vi)
			}
		}
	}

	return nil, ErrNoPath
}

// Reachable reports whether any Core can be reached from any of the given
// start positions (every Spawn when none are given) under obs.
func Reachable(g *grid.Grid, obs grid.ObstructionSet, from ...grid.Position) bool {
	_, err := Shortest(g, obs, from...)

	return err == nil
}

// reconstruct walks parent links from goal back to its root and reverses.
func reconstruct(g *grid.Grid, parent []int, goal int) []grid.Position {
	var rev []grid.Position
	for i := goal; ; i = parent[i] {
		rev = append(rev, g.PositionAt(i))
		if parent[i] == i {
			break
		}
	}
	out := make([]grid.Position, len(rev))
	for i := range rev {
		out[i] = rev[len(rev)-1-i]
	}

	return out
}
