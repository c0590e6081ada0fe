package tileset

import (
	"errors"
	"io"

	"github.com/bodgit/metatiled/tile"
)

var errNotEnough = errors.New("tileset: not enough tile data")

type decoder struct {
	r     io.Reader
	tiles []tile.Gray

	tmp [bytesPerTile]byte
}

// readTile returns io.EOF only when no byte of a new tile could be read
func (d *decoder) readTile() error {
	n, err := io.ReadFull(d.r, d.tmp[:])
	switch {
	case err == io.EOF:
		return io.EOF
	case err == io.ErrUnexpectedEOF:
		return errNotEnough
	case err != nil:
		return err
	case n != bytesPerTile:
		return errNotEnough
	}

	var g tile.Gray
	for y := 0; y < tileHeight; y++ {
		lo, hi := d.tmp[y*bytesPerRow], d.tmp[y*bytesPerRow+1]
		for x := 0; x < tileWidth; x++ {
			bit := uint(tileWidth - 1 - x)
			g[y*tileWidth+x] = (lo>>bit)&1 | ((hi>>bit)&1)<<1
		}
	}
	d.tiles = append(d.tiles, g)
	return nil
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r
	for {
		if err := d.readTile(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Decode reads 2bpp tiles from r until EOF.
func Decode(r io.Reader) ([]tile.Gray, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return d.tiles, nil
}
