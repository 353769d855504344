package grid

import "sort"

// Regions finds all contiguous groups of cells of the given region-forming
// category (Spawn or Core), using the grid's connectivity. Returns
// ErrNotRegion for any other category. Regions are ordered by their
// smallest member, and each region's positions ascend (row, column).
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (g *Grid) Regions(t Tile) ([][]Position, error) {
	if !t.Region() {
		return nil, ErrNotRegion
	}

	seen := make([]bool, g.width*g.height)
	var regions [][]Position

	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			p := Position{Row: r, Col: c}
			if g.TileAt(p) != t || seen[g.Index(p)] {
				continue
			}
			// BFS to collect one region.
			queue := []Position{p}
			seen[g.Index(p)] = true
			var region []Position
			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				region = append(region, u)
				for _, v := range g.Neighbors(u) {
					vi := g.Index(v)
					if g.TileAt(v) == t && !seen[vi] {
						seen[vi] = true
						queue = append(queue, v)
					}
				}
			}
			sort.Slice(region, func(i, j int) bool { return region[i].Less(region[j]) })
			regions = append(regions, region)
		}
	}

	return regions, nil
}

// SpawnRegions returns the contiguous spawn areas of the map.
// A map has one region per distinct attacker entry zone.
func (g *Grid) SpawnRegions() [][]Position {
	regions, _ := g.Regions(Spawn) // Spawn always forms regions
	return regions
}

// CoreRegions returns the contiguous core areas of the map.
func (g *Grid) CoreRegions() [][]Position {
	regions, _ := g.Regions(Core)
	return regions
}
