/*
Package metatiled converts a tilemap image into the tile, metatile and
attribute data used by 2bpp tile hardware with a bank of eight palette
colors of four tones each.

The map is cut into 32 by 32 metatiles which are deduplicated, then each
unique metatile is cut into 8 by 8 tiles which are deduplicated in turn.
Every tile is assigned the first palette color matching all of its tones.
Optionally tiles that are mirror images of each other are merged and the
mirroring is recorded in per-tile attributes.
*/
package metatiled

import (
	"log"

	"github.com/bodgit/metatiled/palette"
)

// MetaTiled converts maps against a palette catalogue and an optional
// database of custom palettes.
type MetaTiled struct {
	catalogue palette.Catalogue
	db        *PaletteDB
	logger    *log.Logger
}

// New returns a MetaTiled using catalogue. db may be nil.
func New(catalogue palette.Catalogue, db *PaletteDB, logger *log.Logger) *MetaTiled {
	return &MetaTiled{
		catalogue: catalogue,
		db:        db,
		logger:    logger,
	}
}
