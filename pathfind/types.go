// Package pathfind defines types, options, and sentinel errors for the
// path search routines: budget controls, search diagnostics, and results.
package pathfind

import (
	"context"
	"errors"
	"time"

	"github.com/okhramov/bulwark/grid"
)

var (
	// ErrGridNil is returned when a nil *grid.Grid is passed to a search.
	ErrGridNil = errors.New("pathfind: grid is nil")

	// ErrNoPath indicates that every Spawn is cut off from every Core
	// under the given obstructions. For placement search this is a normal
	// outcome marking a candidate invalid, not a failure.
	ErrNoPath = errors.New("pathfind: no path from any spawn to any core")
)

// Option configures optional behavior of the longest-path search.
// Use with Longest(g, obs, opts...).
type Option func(*Options)

// Options holds configurable parameters for the longest-path search.
// The search is deterministic for a fixed grid, obstruction set, and
// node budget; a wall-clock limit trades that determinism for latency.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	// Cancellation is observed at frame boundaries and, like budget
	// exhaustion, yields the best path found so far rather than an error.
	Ctx context.Context

	// NodeBudget caps the number of expanded search frames. 0 means
	// unlimited. This is the deterministic budget: two runs with equal
	// budgets expand identical frames in identical order.
	NodeBudget int

	// TimeLimit bounds wall-clock search time. 0 disables the check.
	TimeLimit time.Duration
}

// DefaultOptions returns Options with a background context, no node
// budget, and no time limit.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		NodeBudget: 0,
		TimeLimit:  0,
	}
}

// WithContext returns an Option that sets the cancellation context.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithNodeBudget returns an Option capping expanded frames at n.
// Non-positive n means unlimited.
func WithNodeBudget(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.NodeBudget = n
		}
	}
}

// WithTimeLimit returns an Option bounding wall-clock search time.
// Non-positive d disables the limit.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.TimeLimit = d
		}
	}
}

// Result captures the outcome of one path search.
type Result struct {
	// Path is the position sequence from a Spawn to a Core, inclusive.
	Path []grid.Position

	// Length is the number of edges: len(Path) - 1.
	Length int

	// NodesExpanded counts search frames expanded before returning.
	NodesExpanded int

	// Exhausted reports that the budget (or context) cut the search
	// short, so Path is best-effort rather than the best the full
	// search would have found. It always accompanies a valid Path.
	Exhausted bool
}
