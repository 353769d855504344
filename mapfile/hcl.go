package mapfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// hclDocument is the HCL schema for a map file: a single labeled map
// block whose rows attribute holds the tile tag grid.
type hclDocument struct {
	Maps []hclMap `hcl:"map,block"`
}

type hclMap struct {
	Name string    `hcl:"name,label"`
	Rows cty.Value `hcl:"rows"`
}

// DecodeHCL parses an HCL map document:
//
//	map "Park" {
//	  rows = [
//	    ["Spawn", "Empty", "Core"],
//	  ]
//	}
//
// filename is used for diagnostics only. Tag validation happens later in
// (*Map).Grid; here only the document shape is enforced.
func DecodeHCL(filename string, src []byte) (*Map, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("mapfile: parse %s: %w", filename, diags)
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("mapfile: decode %s: %w", filename, diags)
	}
	if len(doc.Maps) != 1 {
		return nil, fmt.Errorf("%w: %s", ErrNoMapBlock, filename)
	}

	rows, err := tagRows(doc.Maps[0].Rows)
	if err != nil {
		return nil, fmt.Errorf("mapfile: %s: %w", filename, err)
	}

	return &Map{Name: doc.Maps[0].Name, Rows: rows}, nil
}

// tagRows converts the rows attribute value — a list of lists of strings —
// into the document's tag grid.
func tagRows(val cty.Value) ([][]string, error) {
	if val.IsNull() || !val.CanIterateElements() {
		return nil, fmt.Errorf("rows must be a list of tile tag rows")
	}

	var rows [][]string
	for it := val.ElementIterator(); it.Next(); {
		_, rowVal := it.Element()
		if rowVal.IsNull() || !rowVal.CanIterateElements() {
			return nil, fmt.Errorf("row %d must be a list of tile tags", len(rows))
		}
		var row []string
		for cells := rowVal.ElementIterator(); cells.Next(); {
			_, cell := cells.Element()
			str, err := convert.Convert(cell, cty.String)
			if err != nil || str.IsNull() {
				return nil, fmt.Errorf("row %d col %d: tile tag must be a string", len(rows), len(row))
			}
			row = append(row, str.AsString())
		}
		rows = append(rows, row)
	}

	return rows, nil
}
