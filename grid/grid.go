// Package grid models a rectangular tile layout as an immutable graph
// of 4- (or 8-) connected cells. It supports:
//
//   - Construction from tile rows with structural validation
//   - Traversability queries under an ObstructionSet
//   - Deterministic, row-major enumeration of spawn, core, and empty cells
//   - Separation of contiguous spawn/core regions
//
// A Block cell in the input collapses to an Empty base tile plus an entry
// in the grid's initial ObstructionSet; the base layout never records
// obstruction state.
package grid

// Grid is an immutable rectangular tile layout. Width and Height define
// dimensions; base tiles are stored row-major with Block collapsed to
// Empty. neighborOffsets is precomputed from the configured connectivity.
type Grid struct {
	width, height   int
	tiles           []Tile // row-major base tiles, len == width*height
	conn            Connectivity
	neighborOffsets [][2]int

	spawns, cores, empties []Position // ascending (row, col)
	initialBlocks          ObstructionSet
}

// New constructs a Grid from a non-empty, rectangular slice of tile rows.
// The input is copied, so later mutation of rows does not affect the Grid.
// Returns ErrEmptyGrid if rows has no rows or no columns,
// ErrNonRectangular if any row length differs, and ErrInvalidTile if a
// tile value is out of range. Complexity: O(W×H) time and memory.
func New(rows [][]Tile, opts ...Option) (*Grid, error) {
	// 1. Structural validation.
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}

	// 2. Apply options.
	o := gridOptions{conn: Conn4}
	for _, fn := range opts {
		fn(&o)
	}

	g := &Grid{
		width:           w,
		height:          h,
		tiles:           make([]Tile, w*h),
		conn:            o.conn,
		neighborOffsets: offsetsFor(o.conn),
		initialBlocks:   NewObstructionSet(),
	}

	// 3. Copy tiles, collapsing Block into "Empty with obstruction",
	//    and index the fixed cell categories in row-major order.
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			t := rows[r][c]
			if t >= tileCount {
				return nil, ErrInvalidTile
			}
			p := Position{Row: r, Col: c}
			if t == Block {
				t = Empty
				g.initialBlocks[p] = struct{}{}
			}
			g.tiles[g.Index(p)] = t
			switch t {
			case Spawn:
				g.spawns = append(g.spawns, p)
			case Core:
				g.cores = append(g.cores, p)
			case Empty:
				g.empties = append(g.empties, p)
			}
		}
	}

	return g, nil
}

// offsetsFor returns the neighbor offsets for the given connectivity,
// in the fixed order used by every traversal.
func offsetsFor(c Connectivity) [][2]int {
	if c == Conn8 {
		return [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	}

	return [][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Connectivity returns the configured adjacency mode.
func (g *Grid) Connectivity() Connectivity { return g.conn }

// InBounds reports whether p lies within the grid boundaries. Complexity: O(1).
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

// Index maps p to its row-major index: Row*Width + Col. Complexity: O(1).
func (g *Grid) Index(p Position) int {
	return p.Row*g.width + p.Col
}

// PositionAt converts a row-major index back to a Position. Complexity: O(1).
func (g *Grid) PositionAt(idx int) Position {
	return Position{Row: idx / g.width, Col: idx % g.width}
}

// TileAt returns the base tile at p. Block is never returned: obstructed
// cells report Empty, with obstruction state carried by an ObstructionSet.
func (g *Grid) TileAt(p Position) Tile {
	return g.tiles[g.Index(p)]
}

// Neighbors returns the in-bounds neighbors of p in the fixed offset
// order. Complexity: O(1).
func (g *Grid) Neighbors(p Position) []Position {
	out := make([]Position, 0, len(g.neighborOffsets))
	for _, d := range g.neighborOffsets {
		q := Position{Row: p.Row + d[0], Col: p.Col + d[1]}
		if g.InBounds(q) {
			out = append(out, q)
		}
	}

	return out
}

// Traversable reports whether attackers may occupy p under the given
// obstructions: base tile Pass, Spawn, or Core, or base tile Empty with
// no obstruction placed on it. Impass is never traversable.
func (g *Grid) Traversable(p Position, obs ObstructionSet) bool {
	switch g.TileAt(p) {
	case Pass, Spawn, Core:
		return true
	case Empty:
		return !obs.Has(p)
	default:
		return false
	}
}

// Spawns returns every Spawn position in ascending (row, column) order.
// The returned slice is shared; callers must not mutate it.
func (g *Grid) Spawns() []Position { return g.spawns }

// Cores returns every Core position in ascending (row, column) order.
func (g *Grid) Cores() []Position { return g.cores }

// Empties returns every Empty-base position in ascending (row, column)
// order, including cells obstructed by the initial block set.
func (g *Grid) Empties() []Position { return g.empties }

// InitialBlocks returns the obstructions present in the input layout
// (cells tagged Block). The returned set is shared; extend it with With.
func (g *Grid) InitialBlocks() ObstructionSet { return g.initialBlocks }

// RequireEndpoints verifies that at least one Spawn and one Core exist,
// the precondition for any meaningful search. Returns ErrNoSpawn or
// ErrNoCore otherwise.
func (g *Grid) RequireEndpoints() error {
	if len(g.spawns) == 0 {
		return ErrNoSpawn
	}
	if len(g.cores) == 0 {
		return ErrNoCore
	}

	return nil
}

// ValidateObstructions verifies that every member of obs sits on an
// Empty base tile. Returns ErrNotEmptyTile on the first violation.
// Complexity: O(n log n) for the deterministic scan order.
func (g *Grid) ValidateObstructions(obs ObstructionSet) error {
	for _, p := range obs.Positions() {
		if !g.InBounds(p) || g.TileAt(p) != Empty {
			return ErrNotEmptyTile
		}
	}

	return nil
}
