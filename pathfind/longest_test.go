package pathfind_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okhramov/bulwark/grid"
	"github.com/okhramov/bulwark/pathfind"
)

// corridor builds the single-row map Spawn-Empty-Core.
func corridor(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New([][]grid.Tile{{grid.Spawn, grid.Empty, grid.Core}})
	require.NoError(t, err)

	return g
}

// twoCorridors builds a 3x3 map with a short top route and a long route
// around an impassable center:
//
//	S E C
//	E # E
//	E E E
func twoCorridors(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New([][]grid.Tile{
		{grid.Spawn, grid.Empty, grid.Core},
		{grid.Empty, grid.Impass, grid.Empty},
		{grid.Empty, grid.Empty, grid.Empty},
	})
	require.NoError(t, err)

	return g
}

func TestLongest_NilGrid(t *testing.T) {
	_, err := pathfind.Longest(nil, grid.NewObstructionSet())
	assert.ErrorIs(t, err, pathfind.ErrGridNil)
}

func TestLongest_Corridor(t *testing.T) {
	res, err := pathfind.Longest(corridor(t), grid.NewObstructionSet())
	require.NoError(t, err)

	want := []grid.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}
	assert.Equal(t, want, res.Path)
	assert.Equal(t, 2, res.Length)
	assert.False(t, res.Exhausted)
	assert.Equal(t, 3, res.NodesExpanded)
}

func TestLongest_NoCore(t *testing.T) {
	g, err := grid.New([][]grid.Tile{{grid.Spawn}})
	require.NoError(t, err)

	_, err = pathfind.Longest(g, grid.NewObstructionSet())
	assert.ErrorIs(t, err, pathfind.ErrNoPath)
}

func TestLongest_Disconnected(t *testing.T) {
	obs := grid.NewObstructionSet(grid.Position{Row: 0, Col: 1})
	_, err := pathfind.Longest(corridor(t), obs)
	assert.ErrorIs(t, err, pathfind.ErrNoPath)
}

// TestLongest_PrefersLongRoute verifies that the unbudgeted search finds
// the detour around the center rather than the direct top corridor.
func TestLongest_PrefersLongRoute(t *testing.T) {
	res, err := pathfind.Longest(twoCorridors(t), grid.NewObstructionSet())
	require.NoError(t, err)

	want := []grid.Position{
		{Row: 0, Col: 0},
		{Row: 1, Col: 0},
		{Row: 2, Col: 0},
		{Row: 2, Col: 1},
		{Row: 2, Col: 2},
		{Row: 1, Col: 2},
		{Row: 0, Col: 2},
	}
	assert.Equal(t, want, res.Path)
	assert.Equal(t, 6, res.Length)
	assert.False(t, res.Exhausted)
}

// TestLongest_NodeBudget verifies anytime behavior: a budget of 3 frames
// is only enough to complete the short top corridor, and the result is
// flagged exhausted.
func TestLongest_NodeBudget(t *testing.T) {
	res, err := pathfind.Longest(twoCorridors(t), grid.NewObstructionSet(),
		pathfind.WithNodeBudget(3))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Length)
	assert.True(t, res.Exhausted)
	assert.Equal(t, 3, res.NodesExpanded)
}

// TestLongest_FallbackShortest verifies that when the budget expires
// before any branch completes, the BFS shortest path stands in so a valid
// path always accompanies exhaustion.
func TestLongest_FallbackShortest(t *testing.T) {
	// Obstructing the top corridor forces the detour, which cannot be
	// completed within 3 frames.
	obs := grid.NewObstructionSet(grid.Position{Row: 0, Col: 1})
	res, err := pathfind.Longest(twoCorridors(t), obs, pathfind.WithNodeBudget(3))
	require.NoError(t, err)

	assert.True(t, res.Exhausted)
	assert.Equal(t, 3, res.NodesExpanded)
	assert.Equal(t, 6, res.Length, "fallback must return the full detour")
	requireSimplePath(t, twoCorridors(t), obs, res.Path)
}

// TestLongest_SimplePath verifies the structural path invariants on an
// open field: endpoints, pairwise adjacency, no revisits, traversability.
func TestLongest_SimplePath(t *testing.T) {
	rows := make([][]grid.Tile, 5)
	for r := range rows {
		rows[r] = make([]grid.Tile, 5)
		for c := range rows[r] {
			rows[r][c] = grid.Empty
		}
	}
	rows[0][0] = grid.Spawn
	rows[4][4] = grid.Core
	g, err := grid.New(rows)
	require.NoError(t, err)

	obs := grid.NewObstructionSet(grid.Position{Row: 2, Col: 2})
	res, err := pathfind.Longest(g, obs, pathfind.WithNodeBudget(500))
	require.NoError(t, err)

	requireSimplePath(t, g, obs, res.Path)
	assert.GreaterOrEqual(t, res.Length, 8, "never worse than the shortest path")
}

// TestLongest_Deterministic verifies run-to-run stability under a fixed
// node budget.
func TestLongest_Deterministic(t *testing.T) {
	g := twoCorridors(t)
	obs := grid.NewObstructionSet(grid.Position{Row: 2, Col: 1})

	first, err := pathfind.Longest(g, obs, pathfind.WithNodeBudget(4))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := pathfind.Longest(g, obs, pathfind.WithNodeBudget(4))
		require.NoError(t, err)
		assert.Equal(t, first.Path, again.Path)
		assert.Equal(t, first.NodesExpanded, again.NodesExpanded)
		assert.Equal(t, first.Exhausted, again.Exhausted)
	}
}

func TestLongest_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := pathfind.Longest(twoCorridors(t), grid.NewObstructionSet(),
		pathfind.WithContext(ctx))
	require.NoError(t, err)

	assert.True(t, res.Exhausted)
	assert.Equal(t, 0, res.NodesExpanded)
	assert.Equal(t, 2, res.Length, "canceled search still falls back to the shortest path")
}

// requireSimplePath asserts that path is a valid simple spawn-to-core
// walk on g under obs.
func requireSimplePath(t *testing.T, g *grid.Grid, obs grid.ObstructionSet, path []grid.Position) {
	t.Helper()
	require.NotEmpty(t, path)
	require.Equal(t, grid.Spawn, g.TileAt(path[0]), "path must start on a Spawn")
	require.Equal(t, grid.Core, g.TileAt(path[len(path)-1]), "path must end on a Core")

	seen := make(map[grid.Position]bool, len(path))
	for i, p := range path {
		require.True(t, g.InBounds(p), "position %v out of bounds", p)
		require.True(t, g.Traversable(p, obs), "position %v not traversable", p)
		require.False(t, seen[p], "position %v revisited", p)
		seen[p] = true
		if i > 0 {
			require.True(t, path[i-1].Adjacent(p),
				"positions %v and %v not adjacent", path[i-1], p)
		}
	}
}
