/*
Package tile implements the 8 by 8 tile and 32 by 32 metatile primitives.

A metatile is split into sixteen tiles on a 4 by 4 grid. A tile may use no
more than four distinct tones; each tone is mapped to a shade index 0-3 that
selects one of four gray levels when the tile is stored in 2bpp form.
*/
package tile

import (
	"fmt"
	"image"

	"github.com/bodgit/metatiled/palette"
	"github.com/pkg/errors"
)

const (
	tileWidth      = 8
	tileHeight     = tileWidth
	tilePixels     = tileWidth * tileHeight
	metatileWidth  = tileWidth * tileX
	metatileHeight = tileHeight * tileY
	tileX          = 4
	tileY          = 4
	numShades      = 4
)

const (
	// Size is the width and height of a tile in pixels
	Size = tileWidth

	// MetatileSize is the width and height of a metatile in pixels
	MetatileSize = metatileWidth

	// PerMetatile is the number of tiles in a metatile
	PerMetatile = tileX * tileY

	// PerRow is the number of tiles across a metatile
	PerRow = tileX

	// MaxTones is the most distinct tones a tile may use
	MaxTones = palette.NumTones
)

// ErrTooManyTones is returned when a tile uses more than MaxTones tones.
var ErrTooManyTones = errors.New("tile: more than 4 tones")

// Tile is the pixel content of an 8 by 8 tile in row-major order. It is
// comparable and can be used directly as a map key.
type Tile [tilePixels]palette.Tone

// Metatile is the pixel content of a 32 by 32 metatile in row-major order.
type Metatile [metatileWidth * metatileHeight]palette.Tone

// MetatileAt copies the metatile whose top-left pixel is at (x, y).
func MetatileAt(m image.Image, x, y int) Metatile {
	var mt Metatile
	for dy := 0; dy < metatileHeight; dy++ {
		for dx := 0; dx < metatileWidth; dx++ {
			mt[dy*metatileWidth+dx] = palette.FromColor(m.At(x+dx, y+dy))
		}
	}
	return mt
}

// Fill returns a metatile of a single tone.
func Fill(t palette.Tone) Metatile {
	var mt Metatile
	for i := range mt {
		mt[i] = t
	}
	return mt
}

// Tile returns the tile at column col and row row.
func (mt *Metatile) Tile(col, row int) Tile {
	var t Tile
	for y := 0; y < tileHeight; y++ {
		copy(t[y*tileWidth:(y+1)*tileWidth], mt[(row*tileHeight+y)*metatileWidth+col*tileWidth:])
	}
	return t
}

// Tiles returns all sixteen tiles in row-major order.
func (mt *Metatile) Tiles() [PerMetatile]Tile {
	var tiles [PerMetatile]Tile
	for i := range tiles {
		tiles[i] = mt.Tile(i%tileX, i/tileX)
	}
	return tiles
}

// Tones returns the distinct tones of the tile in canonical order.
func (t *Tile) Tones() []palette.Tone {
	seen := make(map[palette.Tone]struct{}, numShades)
	var tones []palette.Tone
	for _, p := range t {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			tones = append(tones, p)
		}
	}
	palette.Sort(tones)
	return tones
}

// ToneSet is Tones but fails with ErrTooManyTones if the tile uses more than
// MaxTones tones.
func (t *Tile) ToneSet() ([]palette.Tone, error) {
	tones := t.Tones()
	if len(tones) > MaxTones {
		return nil, errors.Wrapf(ErrTooManyTones, "found %d", len(tones))
	}
	return tones, nil
}

// ShadeMap maps each tone of a tile to its shade index.
type ShadeMap map[palette.Tone]uint8

// Invert returns the shade to tone mapping. If more than one tone maps to
// the same shade the first in canonical order wins.
func (m ShadeMap) Invert() map[uint8]palette.Tone {
	tones := make([]palette.Tone, 0, len(m))
	for t := range m {
		tones = append(tones, t)
	}
	palette.Sort(tones)

	inv := make(map[uint8]palette.Tone, len(m))
	for _, t := range tones {
		if _, ok := inv[m[t]]; !ok {
			inv[m[t]] = t
		}
	}
	return inv
}

func (m ShadeMap) String() string {
	tones := make([]palette.Tone, 0, len(m))
	for t := range m {
		tones = append(tones, t)
	}
	palette.Sort(tones)

	s := "{"
	for i, t := range tones {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:%d", t, m[t])
	}
	return s + "}"
}

// Gray returns the grayscale projection of the tile. Tones missing from m
// become shade 0 (white).
func (t *Tile) Gray(m ShadeMap) Gray {
	var g Gray
	for i, p := range t {
		g[i] = m[p]
	}
	return g
}
