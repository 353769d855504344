// Package placement searches for the obstruction layout that maximizes
// the attacker path length on a grid. It implements greedy iterative
// improvement: starting from the unobstructed baseline, each iteration
// scores every single-block extension of the committed layout in
// parallel, commits the best valid one, and repeats until no candidate
// improves, the block limit is hit, or the effort budget runs out.
//
// Candidate evaluations within an iteration are mutually independent —
// each reads the shared immutable grid plus its own copy of the
// committed set extended by one position — so they fan out over a fixed
// worker pool with a deterministic reduction at the join barrier.
// Outer iterations are sequential: each depends on the previous commit.
package placement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okhramov/bulwark/grid"
	"github.com/okhramov/bulwark/pathfind"
)

// Search runs the placement search on g and returns the best committed
// Plan. Cancellation and budgets are checked only at iteration
// boundaries: a started iteration always finishes, so no partial
// candidate state is ever observed.
//
// Returns ErrBaselineUnreachable when no Spawn reaches any Core before
// any obstruction is placed. Deterministic for a fixed grid, block
// limit, and node budget, independent of Workers.
func Search(ctx context.Context, g *grid.Grid, opts ...Option) (*Plan, error) {
	// 1. Validate input and apply options.
	if g == nil {
		return nil, ErrGridNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if ctx == nil {
		ctx = context.Background()
	}

	eval := evaluator(g, o)

	// 2. Score the unobstructed baseline.
	committed := g.InitialBlocks()
	base, err := pathfind.Longest(g, committed, pathOpts(o)...)
	if err != nil {
		if errors.Is(err, pathfind.ErrNoPath) {
			return nil, fmt.Errorf("%w: %w", ErrBaselineUnreachable, err)
		}

		return nil, err
	}

	plan := &Plan{
		Blocks:   committed,
		Path:     base.Path,
		Length:   base.Length,
		Baseline: base.Length,
		Reason:   Converged,
	}

	var deadline time.Time
	if o.TimeLimit > 0 {
		deadline = time.Now().Add(o.TimeLimit)
	}
	spentNodes := base.NodesExpanded

	// 3. Greedy iterations: one committed block each.
	for {
		// Budget and limit checks happen only here, between iterations.
		if stopped(ctx, deadline, o, spentNodes) {
			plan.Reason = BudgetExhausted

			return plan, nil
		}
		if o.MaxBlocks > 0 && committed.Len() >= o.MaxBlocks {
			plan.Reason = BlockLimitReached

			return plan, nil
		}

		// Candidates: every unobstructed Empty cell, in row-major order.
		blocks := openEmpties(g, committed)
		if len(blocks) == 0 {
			plan.Reason = Converged

			return plan, nil
		}

		best, found, nodes := fanOut(blocks, o.Workers, func(b grid.Position) (candidate, int, bool) {
			return eval(committed, b)
		})
		spentNodes += nodes
		plan.Evaluations += len(blocks)

		// No valid candidate strictly improves: local optimum.
		if !found || best.length <= plan.Length {
			plan.Reason = Converged

			return plan, nil
		}

		// 4. Commit the winner and seed the next iteration with it.
		committed = committed.With(best.block)
		plan.Blocks = committed
		plan.Path = best.path
		plan.Length = best.length
		plan.Iterations++

		if o.OnCommit != nil {
			o.OnCommit(Commit{
				Iteration:   plan.Iterations,
				Block:       best.block,
				Length:      best.length,
				Evaluations: len(blocks),
			})
		}
	}
}

// evaluator builds the per-candidate scoring function shared by all
// workers. Region safety, when enabled, precomputes the spawn regions
// once and rejects candidates that strand any of them.
func evaluator(g *grid.Grid, o Options) func(grid.ObstructionSet, grid.Position) (candidate, int, bool) {
	var regions [][]grid.Position
	if o.RegionSafety {
		regions = g.SpawnRegions()
	}

	popts := pathOpts(o)

	return func(committed grid.ObstructionSet, block grid.Position) (candidate, int, bool) {
		obs := committed.With(block)

		res, err := pathfind.Longest(g, obs, popts...)
		if err != nil {
			return candidate{}, 0, false // disconnecting layouts are invalid
		}
		for _, region := range regions {
			if !pathfind.Reachable(g, obs, region...) {
				return candidate{}, res.NodesExpanded, false
			}
		}

		return candidate{block: block, path: res.Path, length: res.Length}, res.NodesExpanded, true
	}
}

// pathOpts assembles the pathfind options for one evaluation.
func pathOpts(o Options) []pathfind.Option {
	opts := append([]pathfind.Option(nil), o.PathOptions...)
	if o.EvalNodeBudget > 0 {
		opts = append(opts, pathfind.WithNodeBudget(o.EvalNodeBudget))
	}

	return opts
}

// openEmpties lists every Empty cell not already committed, row-major.
func openEmpties(g *grid.Grid, committed grid.ObstructionSet) []grid.Position {
	empties := g.Empties()
	out := make([]grid.Position, 0, len(empties))
	for _, p := range empties {
		if !committed.Has(p) {
			out = append(out, p)
		}
	}

	return out
}

// stopped reports whether the global effort budget has run out.
func stopped(ctx context.Context, deadline time.Time, o Options, spentNodes int) bool {
	if o.NodeBudget > 0 && spentNodes >= o.NodeBudget {
		return true
	}
	if !deadline.IsZero() && time.Now().After(deadline) {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
