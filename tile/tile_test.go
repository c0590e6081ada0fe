package tile

import (
	"image"
	"testing"

	"github.com/bodgit/metatiled/palette"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = palette.Tone{R: 0xff, G: 0xff, B: 0xff}
	light = palette.Tone{R: 0xc0, G: 0xc0, B: 0xc0}
	dark  = palette.Tone{R: 0x40, G: 0x40, B: 0x40}
	black = palette.Tone{R: 0x00, G: 0x00, B: 0x00}
	red   = palette.Tone{R: 0xff, G: 0x00, B: 0x00}
)

// metatile where every pixel encodes the tile it belongs to
func numbered() *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, MetatileSize, MetatileSize))
	for y := 0; y < MetatileSize; y++ {
		for x := 0; x < MetatileSize; x++ {
			m.Set(x, y, palette.Tone{R: uint8(x / Size), G: uint8(y / Size), B: 0})
		}
	}
	return m
}

func TestTiles(t *testing.T) {
	t.Parallel()
	mt := MetatileAt(numbered(), 0, 0)
	tiles := mt.Tiles()
	for i, tl := range tiles {
		want := palette.Tone{R: uint8(i % PerRow), G: uint8(i / PerRow), B: 0}
		for _, p := range tl {
			require.Equal(t, want, p, "tile %d", i)
		}
	}
	assert.Equal(t, tiles[6], mt.Tile(2, 1))
}

func TestMetatileAtOffset(t *testing.T) {
	t.Parallel()
	m := image.NewRGBA(image.Rect(0, 0, MetatileSize*2, MetatileSize))
	for x := MetatileSize; x < MetatileSize*2; x++ {
		for y := 0; y < MetatileSize; y++ {
			m.Set(x, y, red)
		}
	}
	assert.Equal(t, Fill(red), MetatileAt(m, MetatileSize, 0))
	assert.NotEqual(t, Fill(red), MetatileAt(m, 0, 0))
}

func checker(a, b palette.Tone) Tile {
	var tl Tile
	for i := range tl {
		if (i/Size+i%Size)%2 == 0 {
			tl[i] = a
		} else {
			tl[i] = b
		}
	}
	return tl
}

func TestToneSet(t *testing.T) {
	t.Parallel()
	tl := checker(black, white)
	tl[0] = dark
	tl[1] = light

	tones, err := tl.ToneSet()
	require.Nil(t, err)
	assert.Equal(t, []palette.Tone{white, light, dark, black}, tones)

	tl[2] = red
	_, err = tl.ToneSet()
	assert.True(t, errors.Is(err, ErrTooManyTones))
	assert.Len(t, tl.Tones(), 5)
}

func TestGrayRoundTrip(t *testing.T) {
	t.Parallel()
	tl := checker(black, white)
	tl[10] = light
	tl[20] = dark

	m := ShadeMap{white: 0, light: 1, dark: 2, black: 3}
	g := tl.Gray(m)
	assert.Equal(t, uint8(3), g[0])
	assert.Equal(t, uint8(0), g[1])
	assert.Equal(t, uint8(1), g[10])
	assert.Equal(t, uint8(2), g[20])
	assert.Equal(t, tl, g.Color(m.Invert()))
}

func TestGrayUndefined(t *testing.T) {
	t.Parallel()
	tl := checker(red, black)
	g := tl.Gray(ShadeMap{black: 3})
	assert.Equal(t, uint8(0), g[0])
	assert.Equal(t, uint8(3), g[1])

	c := g.Color(map[uint8]palette.Tone{3: black})
	assert.Equal(t, Levels[0], c[0])
}

func TestShadeMapInvert(t *testing.T) {
	t.Parallel()
	near := palette.Tone{R: 0x01, G: 0x01, B: 0x01}
	inv := ShadeMap{black: 3, near: 3, white: 0}.Invert()
	assert.Equal(t, map[uint8]palette.Tone{0: white, 3: near}, inv)
	assert.Equal(t, "{ffffff:0 010101:3 000000:3}", ShadeMap{black: 3, near: 3, white: 0}.String())
}

func TestFlip(t *testing.T) {
	t.Parallel()
	var g Gray
	g[0] = 1             // top-left
	g[Size-1] = 2        // top-right
	g[(Size-1)*Size] = 3 // bottom-left

	x := g.FlipX()
	assert.Equal(t, uint8(2), x[0])
	assert.Equal(t, uint8(1), x[Size-1])
	assert.Equal(t, uint8(3), x[Size*Size-1])

	y := g.FlipY()
	assert.Equal(t, uint8(3), y[0])
	assert.Equal(t, uint8(1), y[(Size-1)*Size])

	xy := g.Flip(true, true)
	assert.Equal(t, uint8(1), xy[Size*Size-1])
	assert.Equal(t, uint8(3), xy[Size-1])

	v := g.Variants()
	assert.Equal(t, [4]Gray{g, x, y, xy}, v)
	for i, o := range Orientations {
		assert.Equal(t, g, v[i].Flip(o.FlipX, o.FlipY))
	}
}
