// Package placement defines types, options, and sentinel errors for the
// obstruction-placement search.
package placement

import (
	"errors"
	"runtime"
	"time"

	"github.com/okhramov/bulwark/grid"
	"github.com/okhramov/bulwark/pathfind"
)

var (
	// ErrGridNil is returned when a nil *grid.Grid is passed to Search.
	ErrGridNil = errors.New("placement: grid is nil")

	// ErrBaselineUnreachable is returned when no Spawn reaches any Core
	// before a single obstruction is placed; there is nothing meaningful
	// to report. It wraps pathfind.ErrNoPath.
	ErrBaselineUnreachable = errors.New("placement: spawn cannot reach core on the unobstructed map")
)

// StopReason explains why a placement search run ended.
type StopReason int

const (
	// Converged means no remaining valid candidate improved on the
	// committed length: a local optimum under the greedy rule.
	Converged StopReason = iota
	// BlockLimitReached means the configured obstruction count was hit.
	BlockLimitReached
	// BudgetExhausted means the global effort budget (nodes, wall clock,
	// or context) ran out; the result is best-effort, not converged.
	BudgetExhausted
)

// String returns a human-readable stop reason.
func (r StopReason) String() string {
	switch r {
	case Converged:
		return "converged"
	case BlockLimitReached:
		return "block limit reached"
	case BudgetExhausted:
		return "budget exhausted"
	default:
		return "StopReason(?)"
	}
}

// Commit describes one committed placement iteration, as passed to the
// OnCommit hook.
type Commit struct {
	// Iteration counts committed placements, starting at 1.
	Iteration int
	// Block is the position committed this iteration.
	Block grid.Position
	// Length is the path length after committing Block.
	Length int
	// Evaluations is the number of candidates scored this iteration.
	Evaluations int
}

// Option configures optional behavior of Search.
type Option func(*Options)

// Options holds configurable parameters for the placement search.
type Options struct {
	// MaxBlocks caps the number of placed obstructions. 0 means unbounded.
	MaxBlocks int

	// Workers sizes the candidate-evaluation pool. Defaults to the
	// hardware parallelism. The result never depends on the value.
	Workers int

	// NodeBudget is the global effort budget: the sum of search frames
	// expanded across all candidate evaluations. Checked at iteration
	// boundaries. 0 means unlimited.
	NodeBudget int

	// TimeLimit bounds the whole run's wall-clock time, checked at
	// iteration boundaries. 0 disables the check.
	TimeLimit time.Duration

	// EvalNodeBudget is the per-evaluation node budget forwarded to
	// pathfind.Longest. 0 means unlimited per evaluation.
	EvalNodeBudget int

	// PathOptions are extra options forwarded to every pathfind.Longest
	// call, applied before the per-evaluation budget.
	PathOptions []pathfind.Option

	// RegionSafety, when set, additionally rejects candidates that cut
	// any single spawn region off from every Core, even if some other
	// region still reaches one.
	RegionSafety bool

	// OnCommit, if non-nil, is invoked after each committed iteration.
	OnCommit func(Commit)
}

// DefaultOptions returns Options with hardware-sized workers, no block
// limit, and no budgets.
func DefaultOptions() Options {
	return Options{
		Workers: runtime.NumCPU(),
	}
}

// WithMaxBlocks returns an Option capping placed obstructions at n.
// Non-positive n means unbounded.
func WithMaxBlocks(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxBlocks = n
		}
	}
}

// WithWorkers returns an Option sizing the evaluation pool.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.Workers = n
		}
	}
}

// WithNodeBudget returns an Option capping total expanded search frames
// across the run. Non-positive n means unlimited.
func WithNodeBudget(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.NodeBudget = n
		}
	}
}

// WithTimeLimit returns an Option bounding the run's wall-clock time.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.TimeLimit = d
		}
	}
}

// WithEvalNodeBudget returns an Option capping each individual candidate
// evaluation at n expanded frames.
func WithEvalNodeBudget(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.EvalNodeBudget = n
		}
	}
}

// WithPathOptions returns an Option forwarding extra pathfind options to
// every evaluation.
func WithPathOptions(opts ...pathfind.Option) Option {
	return func(o *Options) {
		o.PathOptions = append(o.PathOptions, opts...)
	}
}

// WithRegionSafety returns an Option requiring every spawn region to keep
// a path to a Core, mirroring how layouts are validated in play: no entry
// zone may be walled off entirely.
func WithRegionSafety() Option {
	return func(o *Options) {
		o.RegionSafety = true
	}
}

// WithOnCommit returns an Option installing fn as the per-iteration hook.
func WithOnCommit(fn func(Commit)) Option {
	return func(o *Options) {
		o.OnCommit = fn
	}
}
