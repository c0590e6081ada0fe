package tileset

import (
	"io"

	"github.com/bodgit/metatiled/tile"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(tiles []tile.Gray) error {
	var tmp [bytesPerTile]byte
	for _, g := range tiles {
		for y := 0; y < tileHeight; y++ {
			var lo, hi byte
			for x := 0; x < tileWidth; x++ {
				s := g[y*tileWidth+x]
				lo = lo<<1 | s&shadeLowMask
				hi = hi<<1 | (s&shadeHighMask)>>1
			}
			tmp[y*bytesPerRow] = lo
			tmp[y*bytesPerRow+1] = hi
		}
		if _, err := e.w.Write(tmp[:]); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the tiles to w in 2bpp format.
func Encode(w io.Writer, tiles []tile.Gray) error {
	e := encoder{w: w}
	return e.encode(tiles)
}
