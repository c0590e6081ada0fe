package tile

import (
	"image/color"

	"github.com/bodgit/metatiled/palette"
)

// Levels are the four gray levels, indexed by shade.
var Levels = [numShades]palette.Tone{
	{R: 0xff, G: 0xff, B: 0xff},
	{R: 0xaa, G: 0xaa, B: 0xaa},
	{R: 0x55, G: 0x55, B: 0x55},
	{R: 0x00, G: 0x00, B: 0x00},
}

// GrayPalette is Levels as a color.Palette.
var GrayPalette = color.Palette{Levels[0], Levels[1], Levels[2], Levels[3]}

// Gray is a tile stored as shade indices, 0 (white) to 3 (black).
type Gray [tilePixels]uint8

// Color recolors the tile using inv, the inverse of the shade map of the
// tile it was projected from. Shades missing from inv become white.
func (g *Gray) Color(inv map[uint8]palette.Tone) Tile {
	var t Tile
	for i, s := range g {
		if c, ok := inv[s]; ok {
			t[i] = c
		} else {
			t[i] = Levels[0]
		}
	}
	return t
}

// FlipX mirrors the tile horizontally.
func (g Gray) FlipX() Gray {
	var f Gray
	for y := 0; y < tileHeight; y++ {
		for x := 0; x < tileWidth; x++ {
			f[y*tileWidth+x] = g[y*tileWidth+tileWidth-1-x]
		}
	}
	return f
}

// FlipY mirrors the tile vertically.
func (g Gray) FlipY() Gray {
	var f Gray
	for y := 0; y < tileHeight; y++ {
		copy(f[y*tileWidth:(y+1)*tileWidth], g[(tileHeight-1-y)*tileWidth:])
	}
	return f
}

// Flip applies the given mirrors. Each mirror is its own inverse.
func (g Gray) Flip(x, y bool) Gray {
	if x {
		g = g.FlipX()
	}
	if y {
		g = g.FlipY()
	}
	return g
}

// Orientation is one of the four flip combinations.
type Orientation struct {
	FlipX, FlipY bool
}

// Orientations lists the flip combinations in the order they are tried:
// identity, flip x, flip y, flip x and y.
var Orientations = [4]Orientation{
	{false, false},
	{true, false},
	{false, true},
	{true, true},
}

// Variants returns the tile in each of Orientations.
func (g Gray) Variants() [4]Gray {
	var v [4]Gray
	for i, o := range Orientations {
		v[i] = g.Flip(o.FlipX, o.FlipY)
	}
	return v
}
