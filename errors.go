package metatiled

import (
	"fmt"

	"github.com/bodgit/metatiled/palette"
	"github.com/bodgit/metatiled/tile"
	"github.com/pkg/errors"
)

var (
	errUnknownPalette = errors.New("metatiled: unknown palette")
	errNoLegend       = errors.New("metatiled: collision mask given without a collision legend")
)

// Location identifies a tile by the metatile it was first found in.
type Location struct {
	// Metatile is the index into the unique metatile table
	Metatile int
	// X and Y are the position of the metatile in the source map counted
	// in metatiles, or -1 for the synthetic border metatile
	X, Y int
	// Col and Row are the position of the tile within its metatile
	Col, Row int
}

func (l Location) String() string {
	if l.X < 0 {
		return fmt.Sprintf("tile (%d,%d) of border metatile", l.Col, l.Row)
	}
	return fmt.Sprintf("tile (%d,%d) of metatile %d at (%d,%d)", l.Col, l.Row, l.Metatile, l.X, l.Y)
}

// DimensionError is returned when an image is not a whole number of
// metatiles, or a mask does not match its map.
type DimensionError struct {
	Width, Height int
	Want          string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("metatiled: image is %dx%d, %s", e.Width, e.Height, e.Want)
}

// ToneCountError is returned when a tile uses more than four tones.
type ToneCountError struct {
	Location
	Tones int
}

func (e *ToneCountError) Error() string {
	return fmt.Sprintf("metatiled: %s has %d tones, no more than %d allowed", e.Location, e.Tones, tile.MaxTones)
}

// Unwrap allows errors.Is(err, tile.ErrTooManyTones).
func (e *ToneCountError) Unwrap() error {
	return tile.ErrTooManyTones
}

// UnresolvedColorError is returned when the tones of a tile match no color
// of the palette.
type UnresolvedColorError struct {
	Location
	Tones []palette.Tone
}

func (e *UnresolvedColorError) Error() string {
	return fmt.Sprintf("metatiled: %s uses tones %v matching no palette color", e.Location, e.Tones)
}

// ConsistencyError is returned when a tile cannot be reproduced from its
// compressed tile and flips. It signals diverging shade maps, never bad
// input.
type ConsistencyError struct {
	Tile         int
	Compressed   int
	FlipX, FlipY bool
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("metatiled: tile %d does not round trip through compressed tile %d (flip x %t, flip y %t)", e.Tile, e.Compressed, e.FlipX, e.FlipY)
}

// CapacityError is returned when tile indices no longer fit the output
// format.
type CapacityError struct {
	Tiles, Max int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("metatiled: %d tiles, no more than %d can be addressed", e.Tiles, e.Max)
}

// MetatileCapacityError is returned when the unique metatiles no longer
// fit the one byte indices of a block file.
type MetatileCapacityError struct {
	Metatiles, Max int
}

func (e *MetatileCapacityError) Error() string {
	return fmt.Sprintf("metatiled: %d metatiles, no more than %d can be addressed", e.Metatiles, e.Max)
}

// CollisionError is returned when a collision mask color is not in the
// legend.
type CollisionError struct {
	X, Y     int
	Quadrant int
	Tone     palette.Tone
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("metatiled: collision color %s of quadrant %d of metatile at (%d,%d) is not in the legend", e.Tone, e.Quadrant, e.X, e.Y)
}

// FileError records which map failed during a bulk conversion.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("metatiled: %s: %s", e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}
