package metatiled

import (
	"image"
	"image/draw"
	"io/ioutil"
	"log"
	"testing"

	"github.com/bodgit/metatiled/palette"
	"github.com/bodgit/metatiled/tile"
	"github.com/stretchr/testify/require"
)

// Tones of the "day" palette after scaling to 8-bit
var (
	dayWhite = palette.Tone{R: 222, G: 255, B: 222}
	dayLight = palette.Tone{R: 172, G: 172, B: 172}
	dayDark  = palette.Tone{R: 106, G: 106, B: 106}
	dayBlack = palette.Tone{R: 57, G: 57, B: 57}
	dayPink  = palette.Tone{R: 255, G: 156, B: 197}
)

// Tones matching no catalogue color together
var (
	white = palette.Tone{R: 0xff, G: 0xff, B: 0xff}
	light = palette.Tone{R: 0xaa, G: 0xaa, B: 0xaa}
	dark  = palette.Tone{R: 0x55, G: 0x55, B: 0x55}
	black = palette.Tone{R: 0x00, G: 0x00, B: 0x00}
)

func newTestMetaTiled() *MetaTiled {
	return New(palette.Builtin(), nil, log.New(ioutil.Discard, "", 0))
}

func dayPalette(t *testing.T) palette.Palette {
	p, ok := palette.Builtin().Find("day")
	require.True(t, ok)
	return p
}

// newMap returns a map of w by h metatiles filled with c
func newMap(w, h int, c palette.Tone) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w*tile.MetatileSize, h*tile.MetatileSize))
	draw.Draw(m, m.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return m
}

func fillRect(m draw.Image, r image.Rectangle, c palette.Tone) {
	draw.Draw(m, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// tileRect returns the bounds of tile (col, row) of the metatile at (mx, my)
func tileRect(mx, my, col, row int) image.Rectangle {
	x := mx*tile.MetatileSize + col*tile.Size
	y := my*tile.MetatileSize + row*tile.Size
	return image.Rect(x, y, x+tile.Size, y+tile.Size)
}

func setTile(m *image.RGBA, mx, my, col, row int, tl tile.Tile) {
	r := tileRect(mx, my, col, row)
	for i, p := range tl {
		m.Set(r.Min.X+i%tile.Size, r.Min.Y+i/tile.Size, p)
	}
}

func solid(c palette.Tone) tile.Tile {
	var tl tile.Tile
	for i := range tl {
		tl[i] = c
	}
	return tl
}

// column returns a tile of bg with column x set to fg
func column(x int, fg, bg palette.Tone) tile.Tile {
	tl := solid(bg)
	for y := 0; y < tile.Size; y++ {
		tl[y*tile.Size+x] = fg
	}
	return tl
}

// pattern returns a tile with the pixels of the bits set in k in fg
func pattern(k int, fg, bg palette.Tone) tile.Tile {
	tl := solid(bg)
	for i := range tl {
		if k>>uint(i)&1 == 1 {
			tl[i] = fg
		}
	}
	return tl
}

// monochrome returns a single metatile where every tile uses the four
// gray levels in vertical bands
func monochrome() *image.RGBA {
	m := newMap(1, 1, white)
	var tl tile.Tile
	for i := range tl {
		tl[i] = [...]palette.Tone{white, light, dark, black}[i%tile.Size/2]
	}
	for j := 0; j < tile.PerMetatile; j++ {
		setTile(m, 0, 0, j%tile.PerRow, j/tile.PerRow, tl)
	}
	return m
}

// patterned returns a map of n metatiles in a row holding 16n distinct
// black and white tiles, tile j of metatile i using pattern 16i+j+1
func patterned(n int) *image.RGBA {
	m := newMap(n, 1, white)
	for i := 0; i < n; i++ {
		for j := 0; j < tile.PerMetatile; j++ {
			setTile(m, i, 0, j%tile.PerRow, j/tile.PerRow, pattern(i*tile.PerMetatile+j+1, black, white))
		}
	}
	return m
}

// mirrored returns a single metatile where tile (0,0) has a dark left
// column, tile (1,0) is its horizontal mirror and the rest is blank
func mirrored() *image.RGBA {
	m := newMap(1, 1, dayWhite)
	setTile(m, 0, 0, 0, 0, column(0, dayBlack, dayWhite))
	setTile(m, 0, 0, 1, 0, column(tile.Size-1, dayBlack, dayWhite))
	return m
}
