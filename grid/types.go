// Package grid defines core types, options, and sentinel errors
// for the grid subpackage of github.com/okhramov/bulwark.
package grid

import (
	"errors"
	"sort"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates input has no rows or no columns.
	ErrEmptyGrid = errors.New("grid: input must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrInvalidTile indicates a tile tag or value outside the six recognized categories.
	ErrInvalidTile = errors.New("grid: invalid tile")
	// ErrNotRegion indicates a region query for a tile category that does not form regions.
	ErrNotRegion = errors.New("grid: tile category does not form regions")
	// ErrNotEmptyTile indicates an obstruction placed on a non-Empty base tile.
	ErrNotEmptyTile = errors.New("grid: obstruction requires an Empty base tile")
	// ErrNoSpawn indicates a grid without any Spawn tile.
	ErrNoSpawn = errors.New("grid: no spawn tile present")
	// ErrNoCore indicates a grid without any Core tile.
	ErrNoCore = errors.New("grid: no core tile present")
)

// Tile is the category of a single grid cell.
// Block and Empty are the same underlying cell in two states: a Block is
// an Empty cell with an obstruction on it. The remaining categories are
// fixed for the lifetime of a map.
type Tile uint8

const (
	// Block is an Empty cell carrying a placed obstruction.
	Block Tile = iota
	// Core is the exit point attackers must reach. Traversable.
	Core
	// Empty is open ground; obstructions may be placed on it.
	Empty
	// Impass is never traversable and never buildable.
	Impass
	// Pass is traversable ground that cannot carry obstructions.
	Pass
	// Spawn is a traversable cell where attackers enter the map.
	Spawn

	tileCount
)

// tileTags maps each Tile to its canonical map-file tag.
var tileTags = [tileCount]string{"Block", "Core", "Empty", "Impass", "Pass", "Spawn"}

// ParseTile converts a map-file tag into a Tile.
// Returns ErrInvalidTile for unrecognized tags. Complexity: O(1).
func ParseTile(tag string) (Tile, error) {
	for t, s := range tileTags {
		if s == tag {
			return Tile(t), nil
		}
	}

	return 0, ErrInvalidTile
}

// String returns the canonical tag of t, or "Tile(n)" for out-of-range values.
func (t Tile) String() string {
	if t >= tileCount {
		return "Tile(?)"
	}

	return tileTags[t]
}

// Traversable reports whether attackers may walk over an unobstructed
// cell of this category. Block is not traversable: it is an obstructed
// Empty, and obstruction state is tracked in an ObstructionSet.
func (t Tile) Traversable() bool {
	switch t {
	case Pass, Spawn, Core, Empty:
		return true
	default:
		return false
	}
}

// Region reports whether contiguous cells of this category form a
// meaningful region (spawn areas and core areas do; ground does not).
func (t Tile) Region() bool {
	return t == Spawn || t == Core
}

// Position is an integer (row, column) pair keying one cell of a Grid.
type Position struct {
	Row, Col int
}

// Less reports whether p orders before q in ascending (row, column)
// order. This is the fixed ordering used for every deterministic
// tie-break in the repository.
func (p Position) Less(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}

	return p.Col < q.Col
}

// Adjacent reports whether p and q are 4-directionally adjacent.
func (p Position) Adjacent(q Position) bool {
	dr, dc := p.Row-q.Row, p.Col-q.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}

	return dr+dc == 1
}

// ComparePaths lexicographically compares two position sequences.
// Returns -1 if a < b, 0 if equal, +1 if a > b; shorter prefixes order first.
// Complexity: O(min(len(a), len(b))).
func ComparePaths(a, b []Position) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i].Less(b[i]) {
				return -1
			}

			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, W, E, S.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity, adding the four diagonals.
	Conn8
)

// Option configures optional Grid construction behavior.
// Use with New(rows, opts...).
type Option func(*gridOptions)

// gridOptions holds configurable construction parameters.
type gridOptions struct {
	conn Connectivity
}

// WithConnectivity returns an Option selecting 4- or 8-directional
// adjacency. The default is Conn4; Conn8 reconstructs diagonal movement.
func WithConnectivity(c Connectivity) Option {
	return func(o *gridOptions) {
		o.conn = c
	}
}

// ObstructionSet is a set of Positions carrying placed blocks.
// Every member must have base tile Empty on the grid it is used with.
// The zero value (nil) is a valid empty set.
type ObstructionSet map[Position]struct{}

// NewObstructionSet builds a set from the given positions.
func NewObstructionSet(ps ...Position) ObstructionSet {
	s := make(ObstructionSet, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}

	return s
}

// Has reports whether p is obstructed.
func (s ObstructionSet) Has(p Position) bool {
	_, ok := s[p]

	return ok
}

// Len returns the number of placed obstructions.
func (s ObstructionSet) Len() int {
	return len(s)
}

// With returns a copy of s extended with p. The receiver is unchanged,
// so concurrent readers of s never observe the extension.
func (s ObstructionSet) With(p Position) ObstructionSet {
	out := make(ObstructionSet, len(s)+1)
	for q := range s {
		out[q] = struct{}{}
	}
	out[p] = struct{}{}

	return out
}

// Positions returns the members in ascending (row, column) order.
// Complexity: O(n log n).
func (s ObstructionSet) Positions() []Position {
	out := make([]Position, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}
