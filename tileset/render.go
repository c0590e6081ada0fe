package tileset

import (
	"image"
	"image/draw"

	"github.com/bodgit/metatiled/tile"
	"github.com/disintegration/gift"
)

func bounds(n int) image.Rectangle {
	rows := (n + tilesPerRow - 1) / tilesPerRow
	if rows == 0 {
		rows = 1
	}
	return image.Rect(0, 0, pixelX, rows*tileHeight)
}

func origin(i int) (int, int) {
	return (i % tilesPerRow) * tileWidth, (i / tilesPerRow) * tileHeight
}

// Gray renders the tiles using the four gray levels. Unused space is white.
func Gray(tiles []tile.Gray) *image.Paletted {
	// Shade indices are palette indices, zero value is white
	m := image.NewPaletted(bounds(len(tiles)), tile.GrayPalette)
	for i, g := range tiles {
		ox, oy := origin(i)
		for y := 0; y < tileHeight; y++ {
			copy(m.Pix[m.PixOffset(ox, oy+y):], g[y*tileWidth:(y+1)*tileWidth])
		}
	}
	return m
}

// Color renders the tiles in their own tones. Unused space is white.
func Color(tiles []tile.Tile) *image.RGBA {
	m := image.NewRGBA(bounds(len(tiles)))
	draw.Draw(m, m.Bounds(), image.NewUniform(tile.Levels[0]), image.Point{}, draw.Src)
	for i, t := range tiles {
		ox, oy := origin(i)
		for j, p := range t {
			m.Set(ox+j%tileWidth, oy+j/tileWidth, p)
		}
	}
	return m
}

// Scale enlarges m by an integer factor without smoothing.
func Scale(m image.Image, factor int) image.Image {
	if factor <= 1 {
		return m
	}
	b := m.Bounds()
	g := gift.New(gift.Resize(b.Dx()*factor, b.Dy()*factor, gift.NearestNeighborResampling))
	dst := image.NewRGBA(g.Bounds(b))
	g.Draw(dst, m)
	return dst
}
