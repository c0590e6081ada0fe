package metatiled

import (
	"github.com/bodgit/metatiled/palette"
	"github.com/bodgit/metatiled/tile"
)

// Compressed tile tables reserve the space tile once they grow beyond this
const compressedSpaceThreshold = SpaceIndex

const (
	attrColorMask = 0x07
	attrBank      = 1 << 3
	attrFlipX     = 1 << 5
	attrFlipY     = 1 << 6
)

// Transform records how a unique tile is rebuilt from the compressed table.
type Transform struct {
	// Index into the compressed table, not accounting for the space tile
	Index        int
	FlipX, FlipY bool
	Color        string
}

// CompressedTable holds grayscale tiles that are pairwise distinct under
// horizontal and vertical mirroring, and one Transform per unique tile.
type CompressedTable struct {
	Tiles      []tile.Gray
	Transforms []Transform
	Space      bool
}

// Compress merges grayscale tiles that are mirror images of each other.
// Existing entries are scanned in insertion order and, for each, the
// variants in tile.Orientations order; the first match wins. Unmatched tiles
// are appended unflipped.
func Compress(grays []tile.Gray, colors []string) *CompressedTable {
	c := &CompressedTable{
		Transforms: make([]Transform, 0, len(grays)),
	}

	index := make(map[tile.Gray]int)
	for i, g := range grays {
		best, orientation := -1, tile.Orientation{}
		for k, v := range g.Variants() {
			if j, ok := index[v]; ok && (best < 0 || j < best) {
				best, orientation = j, tile.Orientations[k]
			}
		}

		if best < 0 {
			best = len(c.Tiles)
			index[g] = best
			c.Tiles = append(c.Tiles, g)
		}

		c.Transforms = append(c.Transforms, Transform{
			Index: best,
			FlipX: orientation.FlipX,
			FlipY: orientation.FlipY,
			Color: colors[i],
		})
	}

	c.Space = len(c.Tiles) > compressedSpaceThreshold

	return c
}

// Encoded returns the output index of compressed index i.
func (c *CompressedTable) Encoded(i int) int {
	return encodedIndex(i, c.Space)
}

// Len returns the number of output tiles including any space tile.
func (c *CompressedTable) Len() int {
	if c.Space {
		return len(c.Tiles) + 1
	}
	return len(c.Tiles)
}

// Entries returns the tiles in output order with a blank space tile
// inserted.
func (c *CompressedTable) Entries() []tile.Gray {
	if !c.Space {
		return append(c.Tiles[:0:0], c.Tiles...)
	}
	out := make([]tile.Gray, 0, len(c.Tiles)+1)
	out = append(out, c.Tiles[:SpaceIndex]...)
	out = append(out, tile.Gray{})
	return append(out, c.Tiles[SpaceIndex:]...)
}

// Rebuild reapplies the transform of unique tile i and recolors it with
// shades.
func (c *CompressedTable) Rebuild(i int, shades tile.ShadeMap) tile.Tile {
	tr := c.Transforms[i]
	g := c.Tiles[tr.Index].Flip(tr.FlipX, tr.FlipY)
	return g.Color(shades.Invert())
}

// Verify checks that every tile is reproduced exactly from its transform.
func (c *CompressedTable) Verify(tiles []tile.Tile, assignments []Assignment) error {
	for i := range tiles {
		if c.Rebuild(i, assignments[i].Shades) != tiles[i] {
			tr := c.Transforms[i]
			return &ConsistencyError{
				Tile:       i,
				Compressed: tr.Index,
				FlipX:      tr.FlipX,
				FlipY:      tr.FlipY,
			}
		}
	}
	return nil
}

// Attribute is the per-slot attribute of a metatile in compressed mode.
type Attribute struct {
	// Index is the output index of the compressed tile
	Index        int
	Color        int
	FlipX, FlipY bool
}

// Tile returns the tile byte, the index within its bank.
func (a Attribute) Tile() byte {
	return byte(a.Index % BankSize)
}

// Byte packs the attribute: bits 0-2 color, bit 3 bank, bit 5 flip x and
// bit 6 flip y.
func (a Attribute) Byte() byte {
	b := byte(a.Color) & attrColorMask
	if a.Index >= BankSize {
		b |= attrBank
	}
	if a.FlipX {
		b |= attrFlipX
	}
	if a.FlipY {
		b |= attrFlipY
	}
	return b
}

// DeriveAttributes returns sixteen attributes for every unique metatile.
// Each slot is resolved to the transform whose reapplication reproduces its
// pixels exactly.
func DeriveAttributes(mt *MetatileTable, tt *TileTable, assignments []Assignment, c *CompressedTable, p palette.Palette) ([]Attribute, error) {
	attrs := make([]Attribute, 0, mt.Len()*tile.PerMetatile)
	for i := range mt.Metatiles {
		for _, tl := range mt.Metatiles[i].Tiles() {
			j, ok := tt.Index(tl)
			if !ok || c.Rebuild(j, assignments[j].Shades) != tl {
				// Every slot tile was added to the table so this is
				// the same divergence Verify reports
				tr := Transform{Index: -1}
				if ok {
					tr = c.Transforms[j]
				}
				return nil, &ConsistencyError{Tile: j, Compressed: tr.Index, FlipX: tr.FlipX, FlipY: tr.FlipY}
			}

			tr := c.Transforms[j]
			attrs = append(attrs, Attribute{
				Index: c.Encoded(tr.Index),
				Color: p.Index(tr.Color),
				FlipX: tr.FlipX,
				FlipY: tr.FlipY,
			})
		}
	}
	return attrs, nil
}
