package metatiled

import (
	"image"

	"github.com/bodgit/metatiled/palette"
	"github.com/bodgit/metatiled/tile"
	"github.com/pkg/errors"
)

// Auto selects the catalogue palette that best fits the image.
const Auto = "auto"

// Custom is the palette name reported for a descriptor palette.
const Custom = "custom"

// Options controls a conversion.
type Options struct {
	// Palette is a catalogue or database palette name, or Auto
	Palette string
	// Descriptor, if it has a palette, overrides Palette. Its collision
	// legend is used with Mask
	Descriptor *palette.Descriptor
	// Mask is an optional collision mask the same size as the map
	Mask image.Image
	// Compress merges mirrored tiles and derives attributes
	Compress bool
}

// Result holds every table built by a conversion.
type Result struct {
	PaletteName string
	// Palette is the selected palette after ROOF inference
	Palette palette.Palette
	// Monochrome is set when no catalogue palette fits the image
	Monochrome bool

	Metatiles   *MetatileTable
	Tiles       *TileTable
	Assignments []Assignment

	// Compressed and Attributes are only set in compressed mode
	Compressed *CompressedTable
	Attributes []Attribute

	// Collisions is only set when a mask was given
	Collisions []Collisions
}

type selection struct {
	name       string
	palette    palette.Palette
	monochrome bool
	legend     []palette.Collision
}

func (m *MetaTiled) defaultPalette() (palette.Palette, error) {
	if p, ok := m.catalogue.Find(palette.Default); ok {
		return p, nil
	}
	if len(m.catalogue) == 0 {
		return nil, errors.Wrap(errUnknownPalette, palette.Default)
	}
	return m.catalogue[0].Palette.Clone(), nil
}

func (m *MetaTiled) fromDescriptor(name string, d *palette.Descriptor) (*selection, error) {
	base, err := m.defaultPalette()
	if err != nil {
		return nil, err
	}
	p, err := d.Complete(base)
	if err != nil {
		return nil, err
	}
	return &selection{name: name, palette: p, legend: d.Collisions}, nil
}

func (m *MetaTiled) selectPalette(opts Options, toneSets [][]palette.Tone) (*selection, error) {
	if d := opts.Descriptor; d != nil && len(d.Palette) > 0 {
		return m.fromDescriptor(Custom, d)
	}

	var legend []palette.Collision
	if opts.Descriptor != nil {
		legend = opts.Descriptor.Collisions
	}

	name := opts.Palette
	if name == "" || name == Auto {
		detected, ok := DetectPalette(toneSets, m.catalogue)
		if !ok {
			m.logger.Println("No catalogue palette fits, treating image as monochrome")
			p, err := m.defaultPalette()
			if err != nil {
				return nil, err
			}
			return &selection{name: palette.Default, palette: p, monochrome: true, legend: legend}, nil
		}
		m.logger.Printf("Detected palette \"%s\"\n", detected)
		name = detected
	}

	if p, ok := m.catalogue.Find(name); ok {
		return &selection{name: name, palette: p, legend: legend}, nil
	}

	if m.db != nil {
		d, err := m.db.Find(name)
		if err != nil {
			return nil, err
		}
		if d != nil {
			s, err := m.fromDescriptor(name, d)
			if err != nil {
				return nil, err
			}
			if legend != nil {
				s.legend = legend
			}
			return s, nil
		}
	}

	return nil, errors.Wrap(errUnknownPalette, name)
}

// Convert deduplicates the metatiles and tiles of img and assigns every
// tile a palette color. Any palette violation is fatal.
func (m *MetaTiled) Convert(img image.Image, opts Options) (*Result, error) {
	mt, err := NewMetatileTable(img)
	if err != nil {
		return nil, err
	}
	m.logger.Printf("Unique metatiles: %d\n", mt.Len())
	if mt.Len() > MaxMetatiles {
		return nil, &MetatileCapacityError{Metatiles: mt.Len(), Max: MaxMetatiles}
	}

	tt, err := NewTileTable(mt)
	if err != nil {
		return nil, err
	}
	m.logger.Printf("Unique tiles: %d\n", len(tt.Tiles))

	s, err := m.selectPalette(opts, tt.ContentTones())
	if err != nil {
		return nil, err
	}

	p := s.palette
	if roof, ok := InferRoofColor(&p, tt.ContentTones()); ok {
		m.logger.Printf("Inferred %s color %v\n", palette.Roof, roof)
	}

	// The border tile only fails when a map tile sharing its tone does, so
	// prefer reporting the map tile
	var borderErr error
	assignments := make([]Assignment, len(tt.Tiles))
	for i, tones := range tt.Tones {
		a, ok := ResolveColor(p, tones)
		if !ok {
			err := &UnresolvedColorError{Location: tt.Origins[i], Tones: tones}
			if i == 0 && !tt.borderShared {
				borderErr = err
				continue
			}
			return nil, err
		}
		assignments[i] = a
		m.logger.Printf("Tile %d: %s %v\n", i, a.Color, a.Shades)
	}
	if borderErr != nil {
		return nil, borderErr
	}

	r := &Result{
		PaletteName: s.name,
		Palette:     p,
		Monochrome:  s.monochrome,
		Metatiles:   mt,
		Tiles:       tt,
		Assignments: assignments,
	}

	if tt.Space {
		m.logger.Printf("More than %d tiles, reserving tile %d for space\n", SpaceThreshold, SpaceIndex)
	}

	if opts.Compress {
		if err := m.compress(r); err != nil {
			return nil, err
		}
	} else if tt.Len() > MaxTiles {
		return nil, &CapacityError{Tiles: tt.Len(), Max: MaxTiles}
	}

	if opts.Mask != nil {
		if r.Collisions, err = MapCollisions(opts.Mask, mt, s.legend, m.logger); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (m *MetaTiled) compress(r *Result) error {
	grays := make([]tile.Gray, len(r.Tiles.Tiles))
	colors := make([]string, len(r.Tiles.Tiles))
	for i := range r.Tiles.Tiles {
		grays[i] = r.Tiles.Tiles[i].Gray(r.Assignments[i].Shades)
		colors[i] = r.Assignments[i].Color
	}

	c := Compress(grays, colors)
	if err := c.Verify(r.Tiles.Tiles, r.Assignments); err != nil {
		return err
	}
	m.logger.Printf("Compressed %d tiles to %d\n", len(grays), len(c.Tiles))

	if c.Len() > MaxTiles {
		return &CapacityError{Tiles: c.Len(), Max: MaxTiles}
	}
	if c.Space {
		m.logger.Printf("More than %d compressed tiles, reserving tile %d for space\n", compressedSpaceThreshold, SpaceIndex)
	}

	attrs, err := DeriveAttributes(r.Metatiles, r.Tiles, r.Assignments, c, r.Palette)
	if err != nil {
		return err
	}

	r.Compressed, r.Attributes = c, attrs
	return nil
}
