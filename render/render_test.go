package render_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okhramov/bulwark/grid"
	"github.com/okhramov/bulwark/placement"
	"github.com/okhramov/bulwark/render"
)

func testPlan(t *testing.T) (*grid.Grid, *placement.Plan) {
	t.Helper()
	g, err := grid.New([][]grid.Tile{
		{grid.Spawn, grid.Empty, grid.Core},
		{grid.Empty, grid.Impass, grid.Empty},
		{grid.Empty, grid.Empty, grid.Empty},
	})
	require.NoError(t, err)

	plan := &placement.Plan{
		Blocks: grid.NewObstructionSet(grid.Position{Row: 0, Col: 1}),
		Path: []grid.Position{
			{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0},
			{Row: 2, Col: 1}, {Row: 2, Col: 2}, {Row: 1, Col: 2}, {Row: 0, Col: 2},
		},
		Length: 6,
	}

	return g, plan
}

func TestPNG(t *testing.T) {
	g, plan := testPlan(t)

	var buf bytes.Buffer
	require.NoError(t, render.PNG(&buf, g, plan))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3*16, img.Bounds().Dx())
	assert.Equal(t, 3*16+24, img.Bounds().Dy(), "caption strip below the grid")
}

func TestPNG_Options(t *testing.T) {
	g, plan := testPlan(t)

	var buf bytes.Buffer
	require.NoError(t, render.PNG(&buf, g, plan, render.WithScale(8), render.WithCaption(false)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3*8, img.Bounds().Dx())
	assert.Equal(t, 3*8, img.Bounds().Dy())
}

func TestPNG_ScaleFloor(t *testing.T) {
	g, plan := testPlan(t)

	var buf bytes.Buffer
	require.NoError(t, render.PNG(&buf, g, plan, render.WithScale(1), render.WithCaption(false)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3*16, img.Bounds().Dx(), "scales below 4 are ignored")
}
