// Package mapfile defines the on-disk map document and its sentinel errors.
package mapfile

import "errors"

var (
	// ErrUnsupportedFormat indicates a map file extension other than
	// .json or .hcl.
	ErrUnsupportedFormat = errors.New("mapfile: unsupported map file format")
	// ErrNoMapBlock indicates an HCL document without exactly one map block.
	ErrNoMapBlock = errors.New("mapfile: document must contain exactly one map block")
)

// Map is a map document: a display name plus a grid of tile tags.
// ShortestPathLengths, when present, annotates the minimal attacker path
// length per spawn region under the solved layout; a nil entry marks a
// region with no remaining path.
type Map struct {
	Name                string     `json:"name"`
	Rows                [][]string `json:"grid"`
	ShortestPathLengths []*int     `json:"shortest_path_length,omitempty"`
}
