// Package pathfind searches a grid for attacker paths between Spawn and
// Core tiles. It provides:
//
//   - Longest: a budgeted longest-simple-path search over an explicit
//     frame stack, with connectivity-aware neighbor ordering
//   - Shortest: an unweighted BFS shortest path, also used as the
//     fallback when the longest-path budget expires before any path
//     completes
//   - Reachable: a BFS connectivity predicate
//
// Exact longest simple path is NP-hard, so Longest is an anytime search:
// it returns the best path found within its budget and flags the result
// as Exhausted when cut short. Given identical inputs and node budgets
// the result is identical across runs.
package pathfind

import (
	"time"

	"github.com/okhramov/bulwark/grid"
)

// walker encapsulates mutable state of one longest-path search.
type walker struct {
	g    *grid.Grid
	obs  grid.ObstructionSet
	opts Options
	scan *scanner

	deadline time.Time // zero when no TimeLimit is set

	nodes     int
	exhausted bool
	best      []grid.Position
}

// frame is one entry of the explicit search stack: a position on the
// current path plus a cursor over its ranked neighbors. nbrs == nil marks
// a frame that has not been expanded yet.
type frame struct {
	pos  grid.Position
	nbrs []grid.Position
	next int
}

// Longest finds the longest simple path it can from any Spawn to any
// Core under the given obstructions, within the configured budget.
// The search is pure: the grid and obstruction set are only read.
//
// Returns ErrNoPath when every Spawn is disconnected from every Core —
// otherwise a valid Path is always returned, falling back to the BFS
// shortest path if the budget expired before any branch completed.
//
// Search order: spawns ascend (row, column); neighbors expand in the
// heuristic rank of ordered(); equal-length results keep the
// lexicographically smaller position sequence.
//
// Complexity: worst case exponential in free cells, bounded by
// NodeBudget frames; each expansion runs O(d²·W·H) reachability probes.
func Longest(g *grid.Grid, obs grid.ObstructionSet, opts ...Option) (*Result, error) {
	// 1. Validate input.
	if g == nil {
		return nil, ErrGridNil
	}

	// 2. Apply options.
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	w := &walker{g: g, obs: obs, opts: o, scan: newScanner(g, obs)}
	if o.TimeLimit > 0 {
		w.deadline = time.Now().Add(o.TimeLimit)
	}

	// 3. Connectivity precheck: a spawn must reach a core at all.
	noVisits := make([]bool, g.Width()*g.Height())
	connected := false
	for _, s := range g.Spawns() {
		if w.scan.reachesCore(s, noVisits, -1) {
			connected = true
			break
		}
	}
	if !connected {
		return nil, ErrNoPath
	}

	// 4. Depth-first backtracking from each spawn origin.
	for _, s := range g.Spawns() {
		w.search(s)
		if w.exhausted {
			break
		}
	}

	// 5. Budget expired before any branch completed: fall back to the
	//    shortest path so a valid result always accompanies exhaustion.
	if len(w.best) == 0 {
		fallback, err := Shortest(g, obs)
		if err != nil {
			return nil, err // unreachable given the precheck
		}
		w.best = fallback
	}

	return &Result{
		Path:          w.best,
		Length:        len(w.best) - 1,
		NodesExpanded: w.nodes,
		Exhausted:     w.exhausted,
	}, nil
}

// search runs the explicit-stack DFS from one spawn origin. The stack
// bounds depth by available memory rather than call-stack depth, and the
// budget check interrupts cleanly between frames.
func (w *walker) search(origin grid.Position) {
	visited := make([]bool, w.g.Width()*w.g.Height())
	stack := make([]frame, 0, w.g.Width()*w.g.Height())
	path := make([]grid.Position, 0, w.g.Width()*w.g.Height())

	visited[w.g.Index(origin)] = true
	path = append(path, origin)
	stack = append(stack, frame{pos: origin})

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if f.nbrs == nil {
			// Budget and cancellation checks gate every new expansion.
			if w.spent() {
				w.exhausted = true
				return
			}
			w.nodes++

			// A core completes the path; do not extend beyond it.
			if w.g.TileAt(f.pos) == grid.Core {
				w.record(path)
				stack, path = w.backtrack(stack, path, visited)
				continue
			}
			f.nbrs = w.ordered(f.pos, visited)
		}

		if f.next >= len(f.nbrs) {
			stack, path = w.backtrack(stack, path, visited)
			continue
		}

		q := f.nbrs[f.next]
		f.next++
		visited[w.g.Index(q)] = true
		path = append(path, q)
		stack = append(stack, frame{pos: q})
	}
}

// spent reports whether the node budget, time limit, or context has run out.
func (w *walker) spent() bool {
	if w.opts.NodeBudget > 0 && w.nodes >= w.opts.NodeBudget {
		return true
	}
	if !w.deadline.IsZero() && time.Now().After(w.deadline) {
		return true
	}
	select {
	case <-w.opts.Ctx.Done():
		return true
	default:
		return false
	}
}

// record keeps path if it beats the best completed path so far: greater
// length wins, equal length keeps the lexicographically smaller sequence.
func (w *walker) record(path []grid.Position) {
	if len(path) < len(w.best) {
		return
	}
	if len(path) == len(w.best) && grid.ComparePaths(path, w.best) >= 0 {
		return
	}
	w.best = append(w.best[:0:0], path...) // copy; path keeps mutating
}

// backtrack unwinds one frame, releasing its position for other branches.
func (w *walker) backtrack(stack []frame, path []grid.Position, visited []bool) ([]frame, []grid.Position) {
	last := path[len(path)-1]
	visited[w.g.Index(last)] = false

	return stack[:len(stack)-1], path[:len(path)-1]
}
