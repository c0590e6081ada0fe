package metatiled

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/bodgit/metatiled/palette"
	"github.com/bodgit/metatiled/tile"
	"github.com/bodgit/metatiled/tileset"
)

const (
	paletteMapLines   = 12
	paletteMapPerLine = 8
	paletteMapBank    = paletteMapLines * paletteMapPerLine
	paletteMapPadding = 16
)

// WriteBlocks writes the metatile index of every map position in raster
// order, one byte each.
func (r *Result) WriteBlocks(w io.Writer) error {
	b := make([]byte, len(r.Metatiles.Positions))
	for i, p := range r.Metatiles.Positions {
		b[i] = byte(p)
	}
	_, err := w.Write(b)
	return err
}

// MetatileBytes returns sixteen tile bytes per unique metatile. In
// compressed mode each byte is the compressed index within its bank.
func (r *Result) MetatileBytes() []byte {
	if r.Compressed != nil {
		b := make([]byte, len(r.Attributes))
		for i, a := range r.Attributes {
			b[i] = a.Tile()
		}
		return b
	}

	b := make([]byte, 0, r.Metatiles.Len()*tile.PerMetatile)
	for i := range r.Metatiles.Metatiles {
		for _, tl := range r.Metatiles.Metatiles[i].Tiles() {
			j, _ := r.Tiles.Index(tl)
			b = append(b, byte(r.Tiles.Encoded(j)))
		}
	}
	return b
}

// WriteMetatiles writes MetatileBytes.
func (r *Result) WriteMetatiles(w io.Writer) error {
	_, err := w.Write(r.MetatileBytes())
	return err
}

// WriteAttributes writes one attribute byte per metatile slot. It writes
// nothing unless the result is compressed.
func (r *Result) WriteAttributes(w io.Writer) error {
	b := make([]byte, len(r.Attributes))
	for i, a := range r.Attributes {
		b[i] = a.Byte()
	}
	_, err := w.Write(b)
	return err
}

// TileColors returns the color name of every output tile. The space tile
// is TEXT; in compressed mode a tile takes the color of the first tile
// merged into it.
func (r *Result) TileColors() []string {
	if r.Compressed != nil {
		colors := make([]string, len(r.Compressed.Tiles))
		seen := make([]bool, len(r.Compressed.Tiles))
		for _, tr := range r.Compressed.Transforms {
			if !seen[tr.Index] {
				colors[tr.Index], seen[tr.Index] = tr.Color, true
			}
		}
		return withSpaceName(colors, r.Compressed.Space)
	}

	colors := make([]string, len(r.Assignments))
	for i, a := range r.Assignments {
		colors[i] = a.Color
	}
	return withSpaceName(colors, r.Tiles.Space)
}

func withSpaceName(colors []string, space bool) []string {
	if !space {
		return colors
	}
	out := make([]string, 0, len(colors)+1)
	out = append(out, colors[:SpaceIndex]...)
	out = append(out, palette.Text)
	return append(out, colors[SpaceIndex:]...)
}

// SuppressPaletteMap reports whether the palette map should be omitted
// because no catalogue palette fits the image.
func (r *Result) SuppressPaletteMap() bool {
	return r.Monochrome
}

func writeTilepalBank(w io.Writer, bank int, colors []string) error {
	for i := 0; i < paletteMapLines; i++ {
		line := make([]string, paletteMapPerLine)
		for j := range line {
			if k := i*paletteMapPerLine + j; k < len(colors) {
				line[j] = colors[k]
			} else {
				line[j] = palette.Text
			}
		}
		if _, err := fmt.Fprintf(w, "\ttilepal %d, %s\n", bank, strings.Join(line, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// WritePaletteMap writes the color of every tile as tilepal lines: twelve
// lines for the first bank, a padding block, then twelve lines for the
// second bank starting at tile 96.
func (r *Result) WritePaletteMap(w io.Writer) error {
	colors := r.TileColors()
	bank0 := colors
	var bank1 []string
	if len(colors) > paletteMapBank {
		bank0, bank1 = colors[:paletteMapBank], colors[paletteMapBank:]
	}

	bw := bufio.NewWriter(w)
	if err := writeTilepalBank(bw, 0, bank0); err != nil {
		return err
	}
	fmt.Fprintf(bw, "\nrept %d\n    db $ff\nendr\n\n", paletteMapPadding)
	if err := writeTilepalBank(bw, 1, bank1); err != nil {
		return err
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}

// WriteCollisions writes the collisions of every unique metatile.
func (r *Result) WriteCollisions(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, c := range r.Collisions {
		if _, err := fmt.Fprintf(bw, "\ttilecoll %s ; %02x\n", strings.Join(c[:], ", "), i); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// GrayTiles returns the output tiles as shade indices.
func (r *Result) GrayTiles() []tile.Gray {
	if r.Compressed != nil {
		return r.Compressed.Entries()
	}
	grays := make([]tile.Gray, len(r.Tiles.Tiles))
	for i := range r.Tiles.Tiles {
		grays[i] = r.Tiles.Tiles[i].Gray(r.Assignments[i].Shades)
	}
	if !r.Tiles.Space {
		return grays
	}
	out := make([]tile.Gray, 0, len(grays)+1)
	out = append(out, grays[:SpaceIndex]...)
	out = append(out, tile.Gray{})
	return append(out, grays[SpaceIndex:]...)
}

// WriteTiles writes the output tiles in 2bpp format.
func (r *Result) WriteTiles(w io.Writer) error {
	return tileset.Encode(w, r.GrayTiles())
}

// Tileset renders the output tiles, 16 per row. In color mode compressed
// tiles are recolored with the first tile merged into them.
func (r *Result) Tileset(color bool) image.Image {
	if !color {
		return tileset.Gray(r.GrayTiles())
	}
	if r.Compressed == nil {
		return tileset.Color(r.Tiles.Entries())
	}

	tiles := make([]tile.Tile, len(r.Compressed.Tiles))
	seen := make([]bool, len(r.Compressed.Tiles))
	for i, tr := range r.Compressed.Transforms {
		if !seen[tr.Index] {
			tiles[tr.Index] = r.Compressed.Tiles[tr.Index].Color(r.Assignments[i].Shades.Invert())
			seen[tr.Index] = true
		}
	}
	return tileset.Color(withSpace(tiles, r.Compressed.Space, SpaceTile()))
}
