package metatiled

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/bodgit/metatiled/palette"
	"github.com/lucasb-eyer/go-colorful"
)

// Suggestion pairs a tone matching no palette color with the closest
// palette tone.
type Suggestion struct {
	Tone    palette.Tone
	Color   string
	Shade   int
	Nearest palette.Tone
	// Distance is measured in CIE L*a*b* space
	Distance float64
}

// Report is the result of analysing a map without converting it.
type Report struct {
	Width, Height int
	Colors        []palette.Tone
	Metatiles     int
	Tiles         int
	Violations    []Violation
	PaletteName   string
	Monochrome    bool
	Unmatched     []Suggestion
}

func colorfulTone(t palette.Tone) colorful.Color {
	return colorful.Color{
		R: float64(t.R) / 255,
		G: float64(t.G) / 255,
		B: float64(t.B) / 255,
	}
}

func nearestTone(p palette.Palette, t palette.Tone) Suggestion {
	s := Suggestion{Tone: t, Shade: -1, Distance: math.Inf(1)}
	want := colorfulTone(t)
	for _, c := range p {
		for i, u := range c.Tones {
			if d := want.DistanceLab(colorfulTone(u)); d < s.Distance {
				s.Color, s.Shade, s.Nearest, s.Distance = c.Name, i, u, d
			}
		}
	}
	return s
}

func matchesPalette(p palette.Palette, t palette.Tone) bool {
	for _, c := range p {
		if palette.Shade(t, c.Tones) >= 0 {
			return true
		}
	}
	return false
}

// Analyze reports the colors, tone violations and palette fit of img.
// Unlike Convert it carries on past tiles with too many tones so every
// problem is reported at once.
func (m *MetaTiled) Analyze(img image.Image, name string) (*Report, error) {
	mt, err := NewMetatileTable(img)
	if err != nil {
		return nil, err
	}

	tt, violations, err := collectTiles(mt, false)
	if err != nil {
		return nil, err
	}

	s, err := m.selectPalette(Options{Palette: name}, tt.ContentTones())
	if err != nil {
		return nil, err
	}

	p := s.palette
	InferRoofColor(&p, tt.ContentTones())

	r := &Report{
		Width:       mt.Width,
		Height:      mt.Height,
		Colors:      distinctTones(img),
		Metatiles:   mt.Len(),
		Tiles:       tt.Len(),
		Violations:  violations,
		PaletteName: s.name,
		Monochrome:  s.monochrome,
	}
	palette.Sort(r.Colors)

	for _, t := range r.Colors {
		if !matchesPalette(p, t) {
			r.Unmatched = append(r.Unmatched, nearestTone(p, t))
		}
	}

	return r, nil
}

// WriteTo writes a human readable report to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}

	fmt.Fprintf(cw, "Map size: %dx%d metatiles\n", r.Width, r.Height)
	fmt.Fprintf(cw, "Colors found: %d\n", len(r.Colors))
	for _, t := range r.Colors {
		fmt.Fprintf(cw, "  %s\n", t)
	}
	fmt.Fprintf(cw, "Tiles with more than %d tones: %d\n", palette.NumTones, len(r.Violations))
	for _, v := range r.Violations {
		fmt.Fprintf(cw, "  %s: %d tones\n", v.Location, v.Tones)
	}
	fmt.Fprintf(cw, "Unique metatiles: %d\n", r.Metatiles)
	fmt.Fprintf(cw, "Unique tiles: %d\n", r.Tiles)
	if r.Monochrome {
		fmt.Fprintf(cw, "Palette: none, monochrome\n")
	} else {
		fmt.Fprintf(cw, "Palette: %s\n", r.PaletteName)
	}
	fmt.Fprintf(cw, "Tones matching no palette color: %d\n", len(r.Unmatched))
	for _, s := range r.Unmatched {
		fmt.Fprintf(cw, "  %s, nearest %s shade %d %s (distance %.4f)\n", s.Tone, s.Color, s.Shade, s.Nearest, s.Distance)
	}

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, bw.Flush()
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

// Detect returns the catalogue palette that best fits img, or false if the
// image is monochrome as far as the catalogue is concerned.
func (m *MetaTiled) Detect(img image.Image) (string, bool, error) {
	mt, err := NewMetatileTable(img)
	if err != nil {
		return "", false, err
	}

	tt, _, err := collectTiles(mt, false)
	if err != nil {
		return "", false, err
	}

	name, ok := DetectPalette(tt.ContentTones(), m.catalogue)
	return name, ok, nil
}
