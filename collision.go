package metatiled

import (
	"image"
	"log"

	"github.com/bodgit/metatiled/palette"
	"github.com/bodgit/metatiled/tile"
)

const (
	quadrantSize = tile.MetatileSize / 2
	numQuadrants = 4
)

// Collisions holds a collision type per quadrant: top-left, top-right,
// bottom-left, bottom-right.
type Collisions [numQuadrants]string

// dominantTone returns the most frequent tone in r, the first seen in raster
// order on a tie
func dominantTone(m image.Image, r image.Rectangle) palette.Tone {
	counts := make(map[palette.Tone]int)
	var order []palette.Tone
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			t := palette.FromColor(m.At(x, y))
			if counts[t] == 0 {
				order = append(order, t)
			}
			counts[t]++
		}
	}

	var best palette.Tone
	for i, t := range order {
		if i == 0 || counts[t] > counts[best] {
			best = t
		}
	}
	return best
}

func lookupCollision(legend []palette.Collision, t palette.Tone) (string, bool) {
	for _, c := range legend {
		if palette.SameTone(c.Tone, t) {
			return c.Name, true
		}
	}
	return "", false
}

// MapCollisions reads the collision type of every unique metatile from a
// mask image the same size as the map. The first occurrence of a metatile
// decides its collisions; the border metatile takes the first legend entry.
func MapCollisions(mask image.Image, mt *MetatileTable, legend []palette.Collision, logger *log.Logger) ([]Collisions, error) {
	if len(legend) == 0 {
		return nil, errNoLegend
	}

	b := mask.Bounds()
	if b.Dx() != mt.Width*tile.MetatileSize || b.Dy() != mt.Height*tile.MetatileSize {
		return nil, &DimensionError{
			Width:  b.Dx(),
			Height: b.Dy(),
			Want:   "collision mask must match the map size",
		}
	}

	collisions := make([]Collisions, mt.Len())
	seen := make([]bool, mt.Len())

	for q := range collisions[0] {
		collisions[0][q] = legend[0].Name
	}
	seen[0] = true

	for pos, i := range mt.Positions {
		x, y := pos%mt.Width, pos/mt.Width

		var c Collisions
		for q := 0; q < numQuadrants; q++ {
			o := image.Pt(b.Min.X+x*tile.MetatileSize+q%2*quadrantSize, b.Min.Y+y*tile.MetatileSize+q/2*quadrantSize)
			t := dominantTone(mask, image.Rect(o.X, o.Y, o.X+quadrantSize, o.Y+quadrantSize))
			name, ok := lookupCollision(legend, t)
			if !ok {
				return nil, &CollisionError{X: x, Y: y, Quadrant: q, Tone: t}
			}
			c[q] = name
		}

		switch {
		case !seen[i]:
			collisions[i], seen[i] = c, true
		case collisions[i] != c:
			logger.Printf("Metatile %d at (%d,%d) has collisions %v, keeping %v\n", i, x, y, c, collisions[i])
		}
	}

	return collisions, nil
}
