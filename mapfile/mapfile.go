// Package mapfile loads and saves map documents. Two formats are
// supported, dispatched on file extension:
//
//   - .json — the canonical document: {"name": ..., "grid": [[tag,...]]}
//   - .hcl  — map "Name" { rows = [[tag, ...], ...] }
//
// Tags are validated against the six tile categories on load; solved
// layouts can be written back with blocks painted into the grid and
// per-region shortest path lengths annotated.
package mapfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okhramov/bulwark/grid"
	"github.com/okhramov/bulwark/pathfind"
	"github.com/okhramov/bulwark/placement"
)

// Load reads a map document from path, dispatching on its extension.
// Returns ErrUnsupportedFormat for extensions other than .json and .hcl.
func Load(path string) (*Map, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapfile: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return Decode(bytes.NewReader(src))
	case ".hcl":
		return DecodeHCL(path, src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Decode reads the canonical JSON document from r.
func Decode(r io.Reader) (*Map, error) {
	var m Map
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("mapfile: decode json: %w", err)
	}

	return &m, nil
}

// Encode writes m to w as indented JSON.
func Encode(w io.Writer, m *Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("mapfile: encode json: %w", err)
	}

	return nil
}

// Save writes m to path as JSON.
func Save(path string, m *Map) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mapfile: create %s: %w", path, err)
	}
	defer f.Close()

	return Encode(f, m)
}

// Grid validates the document's tile tags and builds the immutable grid.
// Block tags become Empty base tiles in the grid's initial obstruction
// set. Tag errors carry the offending row and column and wrap
// grid.ErrInvalidTile.
func (m *Map) Grid(opts ...grid.Option) (*grid.Grid, error) {
	rows := make([][]grid.Tile, len(m.Rows))
	for r, tags := range m.Rows {
		rows[r] = make([]grid.Tile, len(tags))
		for c, tag := range tags {
			t, err := grid.ParseTile(tag)
			if err != nil {
				return nil, fmt.Errorf("mapfile: row %d col %d: %q: %w", r, c, tag, err)
			}
			rows[r][c] = t
		}
	}

	return grid.New(rows, opts...)
}

// Annotate paints a solved plan back into the document: committed blocks
// replace their Empty tags, and ShortestPathLengths records the minimal
// attacker path length per spawn region under the solved layout (nil for
// a region with no remaining path, which region safety normally forbids).
func (m *Map) Annotate(g *grid.Grid, plan *placement.Plan) {
	for _, p := range plan.Blocks.Positions() {
		m.Rows[p.Row][p.Col] = grid.Block.String()
	}

	regions := g.SpawnRegions()
	m.ShortestPathLengths = make([]*int, len(regions))
	for i, region := range regions {
		path, err := pathfind.Shortest(g, plan.Blocks, region...)
		if err != nil {
			continue // leave nil: region is cut off
		}
		n := len(path) - 1
		m.ShortestPathLengths[i] = &n
	}
}
