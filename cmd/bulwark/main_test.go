package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okhramov/bulwark/mapfile"
)

const detourJSON = `{
	"name": "Detour",
	"grid": [
		["Spawn", "Empty", "Core"],
		["Empty", "Impass", "Empty"],
		["Empty", "Empty", "Empty"]
	]
}`

// writeMap drops a map document into a temp dir and returns its path.
func writeMap(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	return path
}

func TestRun_NoArgs(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, nil)

	var xe *exitError
	require.ErrorAs(t, err, &xe)
	assert.Equal(t, 1, xe.code)
}

func TestRun_Solve(t *testing.T) {
	path := writeMap(t, "detour.json", detourJSON)

	var out bytes.Buffer
	err := run(&out, []string{"-eval-node-budget", "3", path})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Detour: path length 6 (baseline 2, 1 blocks, converged)")
	assert.Contains(t, got, "S", "plan output must show the spawn")
	assert.Contains(t, got, "B", "plan output must show the committed block")
	assert.Contains(t, got, "*", "plan output must overlay the path")
}

func TestRun_Artifacts(t *testing.T) {
	path := writeMap(t, "detour.json", detourJSON)
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "plan.png")
	savePath := filepath.Join(dir, "solved.json")

	var out bytes.Buffer
	err := run(&out, []string{
		"-eval-node-budget", "3",
		"-png", pngPath,
		"-save", savePath,
		path,
	})
	require.NoError(t, err)

	info, err := os.Stat(pngPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	solved, err := mapfile.Load(savePath)
	require.NoError(t, err)
	assert.Equal(t, "Block", solved.Rows[0][1])
	require.NotEmpty(t, solved.ShortestPathLengths)
}

func TestRun_BaselineUnreachable(t *testing.T) {
	path := writeMap(t, "walled.json", `{
		"name": "Walled",
		"grid": [["Spawn", "Impass", "Core"]]
	}`)

	var out bytes.Buffer
	err := run(&out, []string{path})

	var xe *exitError
	require.ErrorAs(t, err, &xe)
	assert.Equal(t, 2, xe.code)
}

func TestRun_BadInputs(t *testing.T) {
	cases := []struct {
		name string
		src  string
		file string
	}{
		{"UnknownTag", `{"name": "x", "grid": [["Spawn", "Lava", "Core"]]}`, "bad.json"},
		{"NoSpawn", `{"name": "x", "grid": [["Empty", "Core"]]}`, "nospawn.json"},
		{"UnsupportedExt", "whatever", "map.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeMap(t, tc.file, tc.src)

			var out bytes.Buffer
			err := run(&out, []string{path})

			var xe *exitError
			require.ErrorAs(t, err, &xe)
			assert.Equal(t, 1, xe.code)
		})
	}
}
