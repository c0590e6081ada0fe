package metatiled

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/metatiled/palette"
	"github.com/ericpauley/go-quantize/quantize"
)

// MaxTones is the number of tones a full palette can hold
const MaxTones = palette.NumColors * palette.NumTones

// Extraction is a palette recovered from the tile tone sets of a map.
type Extraction struct {
	Colors palette.Palette
	// Tones is the number of distinct tones in the image
	Tones int
	// Suggested is a reduced set of tones for images with more tones than
	// a palette can hold
	Suggested []palette.Tone
}

// TooMany reports whether more colors were found than fit alongside TEXT.
func (e *Extraction) TooMany() bool {
	return len(e.Colors) > palette.NumColors-1
}

// Descriptor returns the extracted colors as a descriptor.
func (e *Extraction) Descriptor() *palette.Descriptor {
	return &palette.Descriptor{Palette: e.Colors.Clone()}
}

func extractedName(i int) string {
	if i < palette.NumColors-1 {
		return palette.Names[i]
	}
	return fmt.Sprintf("COLOR%d", i)
}

// Extract builds a palette from the maximal tone sets of the tiles of img,
// naming them in palette order.
func (m *MetaTiled) Extract(img image.Image) (*Extraction, error) {
	mt, err := NewMetatileTable(img)
	if err != nil {
		return nil, err
	}

	tt, err := NewTileTable(mt)
	if err != nil {
		return nil, err
	}

	e := &Extraction{
		Tones: len(distinctTones(img)),
	}

	for i, tones := range MaximalToneSets(tt.Tones) {
		e.Colors = append(e.Colors, palette.Color{
			Name:  extractedName(i),
			Tones: append(tones[:0:0], tones...),
		})
	}

	if e.TooMany() {
		m.logger.Printf("Found %d colors, no more than %d fit\n", len(e.Colors), palette.NumColors-1)
	}

	if e.Tones > MaxTones {
		q := quantize.MedianCutQuantizer{}
		for _, c := range q.Quantize(make(color.Palette, 0, MaxTones), img) {
			e.Suggested = append(e.Suggested, palette.FromColor(c))
		}
		palette.Sort(e.Suggested)
		m.logger.Printf("Found %d tones, suggesting %d\n", e.Tones, len(e.Suggested))
	}

	return e, nil
}

// Reduce redraws m with no more than n colors.
func Reduce(m image.Image, n int) *image.Paletted {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}

	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return pm
}
