/*
Package palette implements the palette banks used by the tile converter.

A palette is made of eight named colors and each color is made of up to four
tones. The position of a tone within its color is the shade index used when
the tile is stored as 2-bit grayscale. Palettes are defined with 5-bit
channels, as stored by the hardware, and are scaled up once to 8-bit channels
before any comparison against image pixels.
*/
package palette

import (
	"fmt"
	"image/color"
	"sort"
)

// Canonical color names, in catalogue order
const (
	Gray   = "GRAY"
	Red    = "RED"
	Green  = "GREEN"
	Water  = "WATER"
	Yellow = "YELLOW"
	Brown  = "BROWN"
	Roof   = "ROOF"
	Text   = "TEXT"
)

const (
	// NumColors is the number of named colors in a palette
	NumColors = 8

	// NumTones is the number of tones in each color
	NumTones = 4
)

// Names lists the canonical color names in catalogue order.
var Names = []string{Gray, Red, Green, Water, Yellow, Brown, Roof, Text}

// Tone is a single 8-bit RGB color value.
type Tone struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (t Tone) RGBA() (r, g, b, a uint32) {
	r = uint32(t.R)
	r |= r << 8
	g = uint32(t.G)
	g |= g << 8
	b = uint32(t.B)
	b |= b << 8
	a = 0xffff
	return
}

func (t Tone) String() string {
	return fmt.Sprintf("%02x%02x%02x", t.R, t.G, t.B)
}

// FromColor converts any color.Color to a Tone, discarding alpha.
func FromColor(c color.Color) Tone {
	if t, ok := c.(Tone); ok {
		return t
	}
	r, g, b, _ := c.RGBA()
	return Tone{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// To8Bit scales a tone with 5-bit channels up to 8-bit channels.
func To8Bit(t Tone) Tone {
	return Tone{
		uint8(int(t.R) * 255 / 31),
		uint8(int(t.G) * 255 / 31),
		uint8(int(t.B) * 255 / 31),
	}
}

// To5Bit scales a tone with 8-bit channels down to 5-bit channels.
func To5Bit(t Tone) Tone {
	return Tone{
		uint8(int(t.R) * 31 / 255),
		uint8(int(t.G) * 31 / 255),
		uint8(int(t.B) * 31 / 255),
	}
}

// luminance is 0.299R + 0.587G + 0.114B scaled by 1000 so that it can be
// compared exactly
func (t Tone) luminance() int {
	return 299*int(t.R) + 587*int(t.G) + 114*int(t.B)
}

// Luminance returns the perceived brightness of the tone.
func (t Tone) Luminance() float64 {
	return float64(t.luminance()) / 1000
}

// Brighter reports whether a sorts before b in canonical order: descending
// luminance, ties broken by ascending R, then G, then B.
func Brighter(a, b Tone) bool {
	if la, lb := a.luminance(), b.luminance(); la != lb {
		return la > lb
	}
	if a.R != b.R {
		return a.R < b.R
	}
	if a.G != b.G {
		return a.G < b.G
	}
	return a.B < b.B
}

// Sort sorts tones into canonical order.
func Sort(tones []Tone) {
	sort.Slice(tones, func(i, j int) bool { return Brighter(tones[i], tones[j]) })
}

// Darkest returns the last tone in canonical order.
func Darkest(tones []Tone) Tone {
	var d Tone
	for i, t := range tones {
		if i == 0 || Brighter(d, t) {
			d = t
		}
	}
	return d
}

// Color is a named sequence of tones. The order of the tones is
// authoritative and defines the shade index of each tone.
type Color struct {
	Name  string
	Tones []Tone
}

// Palette is an ordered list of named colors. Order matters; wherever a
// first match wins the palette is scanned from the start.
type Palette []Color

// Index returns the position of the named color or -1.
func (p Palette) Index(name string) int {
	for i, c := range p {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Lookup returns the tones of the named color.
func (p Palette) Lookup(name string) ([]Tone, bool) {
	if i := p.Index(name); i >= 0 {
		return p[i].Tones, true
	}
	return nil, false
}

// Set replaces the tones of the named color, appending it if missing.
func (p *Palette) Set(name string, tones []Tone) {
	dup := append(tones[:0:0], tones...)
	if i := p.Index(name); i >= 0 {
		(*p)[i].Tones = dup
		return
	}
	*p = append(*p, Color{Name: name, Tones: dup})
}

// Clone returns a deep copy so the original can stay immutable.
func (p Palette) Clone() Palette {
	dup := make(Palette, len(p))
	for i, c := range p {
		dup[i] = Color{Name: c.Name, Tones: append(c.Tones[:0:0], c.Tones...)}
	}
	return dup
}

// Names returns the color names in palette order.
func (p Palette) Names() []string {
	names := make([]string, len(p))
	for i, c := range p {
		names[i] = c.Name
	}
	return names
}
