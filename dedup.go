package metatiled

import (
	"image"

	"github.com/bodgit/metatiled/palette"
	"github.com/bodgit/metatiled/tile"
)

const (
	// BankSize is the number of tiles addressable by one attribute bank
	BankSize = 128

	// SpaceIndex is reserved for the space glyph once a tile table grows
	// beyond its threshold
	SpaceIndex = 127

	// SpaceThreshold is the unique tile count above which the space tile
	// is reserved
	SpaceThreshold = 192

	// MaxTiles is the number of tile indices across both banks
	MaxTiles = 2 * BankSize

	// MaxMetatiles is the number of metatile indices a block byte holds,
	// the border included
	MaxMetatiles = 256
)

// SpaceTone fills the reserved space tile. It is never matched against
// image content.
var SpaceTone = palette.Tone{R: 0x00, G: 0xff, B: 0xff}

// SpaceTile is the placeholder stored at SpaceIndex.
func SpaceTile() tile.Tile {
	var t tile.Tile
	for i := range t {
		t[i] = SpaceTone
	}
	return t
}

// MetatileTable holds the unique metatiles of a map. Index 0 is a synthetic
// border metatile filled with the darkest tone of the image.
type MetatileTable struct {
	Metatiles []tile.Metatile
	// Origins holds the first source position of each metatile, counted
	// in metatiles; (-1, -1) for the border
	Origins []image.Point
	// Positions holds the table index of every source position in raster
	// order
	Positions []int
	// Width and Height of the map in metatiles
	Width, Height int
}

func checkDimensions(b image.Rectangle) error {
	if b.Dx() == 0 || b.Dy() == 0 || b.Dx()%tile.MetatileSize != 0 || b.Dy()%tile.MetatileSize != 0 {
		return &DimensionError{
			Width:  b.Dx(),
			Height: b.Dy(),
			Want:   "width and height must be non-zero multiples of 32",
		}
	}
	return nil
}

// distinctTones returns every tone of m in first-seen raster order
func distinctTones(m image.Image) []palette.Tone {
	b := m.Bounds()
	seen := make(map[palette.Tone]struct{})
	var tones []palette.Tone
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := palette.FromColor(m.At(x, y))
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				tones = append(tones, t)
			}
		}
	}
	return tones
}

// NewMetatileTable deduplicates the metatiles of m by exact pixel content.
// The border metatile is never matched against image content so every real
// metatile has an index of at least 1.
func NewMetatileTable(m image.Image) (*MetatileTable, error) {
	b := m.Bounds()
	if err := checkDimensions(b); err != nil {
		return nil, err
	}

	t := &MetatileTable{
		Metatiles: []tile.Metatile{tile.Fill(palette.Darkest(distinctTones(m)))},
		Origins:   []image.Point{{-1, -1}},
		Width:     b.Dx() / tile.MetatileSize,
		Height:    b.Dy() / tile.MetatileSize,
	}

	index := make(map[tile.Metatile]int)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			mt := tile.MetatileAt(m, b.Min.X+x*tile.MetatileSize, b.Min.Y+y*tile.MetatileSize)
			i, ok := index[mt]
			if !ok {
				i = len(t.Metatiles)
				index[mt] = i
				t.Metatiles = append(t.Metatiles, mt)
				t.Origins = append(t.Origins, image.Point{x, y})
			}
			t.Positions = append(t.Positions, i)
		}
	}

	return t, nil
}

// Len returns the number of unique metatiles including the border.
func (t *MetatileTable) Len() int {
	return len(t.Metatiles)
}

// location returns the location of tile (col, row) of metatile i
func (t *MetatileTable) location(i, col, row int) Location {
	return Location{
		Metatile: i,
		X:        t.Origins[i].X,
		Y:        t.Origins[i].Y,
		Col:      col,
		Row:      row,
	}
}

// TileTable holds the unique tiles of the unique metatiles in first-seen
// order.
type TileTable struct {
	Tiles []tile.Tile
	// Tones holds the canonical tone set of each tile
	Tones [][]palette.Tone
	// Origins holds where each tile was first found
	Origins []Location
	// Space is set once the space tile has been reserved at SpaceIndex
	Space bool

	index map[tile.Tile]int
	// set when a map metatile reuses the border tile
	borderShared bool
}

// Violation is a tile using more than four tones.
type Violation struct {
	Location
	Tones int
}

func collectTiles(mt *MetatileTable, strict bool) (*TileTable, []Violation, error) {
	t := &TileTable{
		index: make(map[tile.Tile]int),
	}

	var violations []Violation
	for i := range mt.Metatiles {
		for j, tl := range mt.Metatiles[i].Tiles() {
			if k, ok := t.index[tl]; ok {
				if i > 0 && k == 0 {
					t.borderShared = true
				}
				continue
			}

			l := mt.location(i, j%tile.PerRow, j/tile.PerRow)
			tones, err := tl.ToneSet()
			if err != nil {
				n := len(tl.Tones())
				if strict {
					return nil, nil, &ToneCountError{Location: l, Tones: n}
				}
				violations = append(violations, Violation{Location: l, Tones: n})
				tones = tl.Tones()
			}

			t.index[tl] = len(t.Tiles)
			t.Tiles = append(t.Tiles, tl)
			t.Tones = append(t.Tones, tones)
			t.Origins = append(t.Origins, l)
		}
	}

	t.Space = len(t.Tiles) > SpaceThreshold

	return t, violations, nil
}

// NewTileTable deduplicates the tiles of every unique metatile, scanning
// metatiles in table order and tiles in raster order. A tile with more than
// four tones fails with a *ToneCountError.
func NewTileTable(mt *MetatileTable) (*TileTable, error) {
	t, _, err := collectTiles(mt, true)
	return t, err
}

// ContentTones returns the tone sets of the tiles found in the map itself,
// leaving out the border tile unless the map uses it too.
func (t *TileTable) ContentTones() [][]palette.Tone {
	if t.borderShared || len(t.Tones) == 0 {
		return t.Tones
	}
	return t.Tones[1:]
}

// Index returns the table index of the tile, not accounting for the space
// tile.
func (t *TileTable) Index(tl tile.Tile) (int, bool) {
	i, ok := t.index[tl]
	return i, ok
}

// Encoded returns the output index of table index i. Once the space tile is
// reserved every index from SpaceIndex onwards moves up by one.
func (t *TileTable) Encoded(i int) int {
	return encodedIndex(i, t.Space)
}

func encodedIndex(i int, space bool) int {
	if space && i >= SpaceIndex {
		return i + 1
	}
	return i
}

// Len returns the number of output tiles including any space tile.
func (t *TileTable) Len() int {
	if t.Space {
		return len(t.Tiles) + 1
	}
	return len(t.Tiles)
}

// Entries returns the tiles in output order with the space tile inserted.
func (t *TileTable) Entries() []tile.Tile {
	return withSpace(t.Tiles, t.Space, SpaceTile())
}

func withSpace(tiles []tile.Tile, space bool, s tile.Tile) []tile.Tile {
	if !space {
		return append(tiles[:0:0], tiles...)
	}
	out := make([]tile.Tile, 0, len(tiles)+1)
	out = append(out, tiles[:SpaceIndex]...)
	out = append(out, s)
	return append(out, tiles[SpaceIndex:]...)
}
