// Package render draws a finished plan as a single PNG frame: the tile
// layout, the committed blocks, the attacker path overlay, and a caption
// with the resulting path length.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/freetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/okhramov/bulwark/grid"
	"github.com/okhramov/bulwark/placement"
)

// Palette, roughly matching the in-game reading of each category.
var (
	colEmpty  = color.RGBA{R: 0xd9, G: 0xd9, B: 0xc9, A: 0xff}
	colPass   = color.RGBA{R: 0xb0, G: 0xc4, B: 0xa8, A: 0xff}
	colImpass = color.RGBA{R: 0x3a, G: 0x3a, B: 0x3a, A: 0xff}
	colSpawn  = color.RGBA{R: 0xc0, G: 0x50, B: 0x40, A: 0xff}
	colCore   = color.RGBA{R: 0x40, G: 0x60, B: 0xc0, A: 0xff}
	colBlock  = color.RGBA{R: 0x70, G: 0x50, B: 0x30, A: 0xff}
	colPath   = color.RGBA{R: 0xe8, G: 0xb8, B: 0x30, A: 0xff}
	colText   = color.RGBA{A: 0xff}
)

const captionHeight = 24

// Option configures rendering.
type Option func(*options)

type options struct {
	scale   int
	caption bool
}

// WithScale returns an Option setting the cell edge length in pixels.
// Values below 4 are ignored; the default is 16.
func WithScale(px int) Option {
	return func(o *options) {
		if px >= 4 {
			o.scale = px
		}
	}
}

// WithCaption returns an Option toggling the length caption.
func WithCaption(show bool) Option {
	return func(o *options) {
		o.caption = show
	}
}

// PNG renders g with the plan's blocks and path into w.
func PNG(w io.Writer, g *grid.Grid, plan *placement.Plan, opts ...Option) error {
	o := options{scale: 16, caption: true}
	for _, fn := range opts {
		fn(&o)
	}

	width := g.Width() * o.scale
	height := g.Height() * o.scale
	if o.caption {
		height += captionHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colEmpty), image.Point{}, draw.Src)

	// Base tiles.
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			p := grid.Position{Row: r, Col: c}
			fillCell(img, p, o.scale, 0, tileColor(g.TileAt(p)))
		}
	}

	// Committed blocks, then the path inset on top.
	for _, p := range plan.Blocks.Positions() {
		fillCell(img, p, o.scale, 0, colBlock)
	}
	inset := o.scale / 4
	for _, p := range plan.Path {
		if t := g.TileAt(p); t == grid.Spawn || t == grid.Core {
			continue // keep endpoint markers readable
		}
		fillCell(img, p, o.scale, inset, colPath)
	}

	if o.caption {
		if err := caption(img, g.Height()*o.scale, fmt.Sprintf("path length %d (%s)", plan.Length, plan.Reason)); err != nil {
			return err
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}

	return nil
}

// tileColor maps a base tile to its fill color.
func tileColor(t grid.Tile) color.RGBA {
	switch t {
	case grid.Pass:
		return colPass
	case grid.Impass:
		return colImpass
	case grid.Spawn:
		return colSpawn
	case grid.Core:
		return colCore
	default:
		return colEmpty
	}
}

// fillCell paints the cell at p, optionally inset by a pixel margin.
func fillCell(img *image.RGBA, p grid.Position, scale, inset int, c color.RGBA) {
	rect := image.Rect(
		p.Col*scale+inset,
		p.Row*scale+inset,
		(p.Col+1)*scale-inset,
		(p.Row+1)*scale-inset,
	)
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// caption draws the summary line below the grid.
func caption(img *image.RGBA, top int, text string) error {
	fnt, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return fmt.Errorf("render: parse font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(fnt)
	ctx.SetFontSize(14)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(colText))

	if _, err := ctx.DrawString(text, freetype.Pt(4, top+17)); err != nil {
		return fmt.Errorf("render: draw caption: %w", err)
	}

	return nil
}
