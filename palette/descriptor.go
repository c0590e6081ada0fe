package palette

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	sectionPalette    = "[PALETTE]"
	sectionCollisions = "[COLLISIONS]"
)

var (
	errNoColor       = errors.New("palette: tone before any color name")
	errTooManyTones  = errors.New("palette: more than 4 tones in color")
	errTooManyColors = errors.New("palette: more than 8 colors")
	errEmptyColor    = errors.New("palette: color has no tones")
)

// Collision maps a collision type name to the mask color that marks it.
type Collision struct {
	Name string
	Tone Tone
}

// Descriptor is a custom palette and collision legend loaded from a sidecar
// text file.
type Descriptor struct {
	Palette    Palette
	Collisions []Collision
}

// ParseTone parses an RRGGBB hex string with an optional leading '#'.
func ParseTone(s string) (Tone, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Tone{}, errors.Errorf("palette: invalid tone %q", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Tone{}, errors.Wrapf(err, "palette: invalid tone %q", s)
	}
	return Tone{b[0], b[1], b[2]}, nil
}

func isTone(s string) bool {
	_, err := ParseTone(s)
	return err == nil
}

// ParseDescriptor reads a descriptor. The [PALETTE] section lists a color
// name followed by one to four hex tone lines, the [COLLISIONS] section
// lists NAME,RRGGBB pairs. Blank lines and lines starting with ';' are
// ignored.
func ParseDescriptor(r io.Reader) (*Descriptor, error) {
	d := new(Descriptor)
	s := bufio.NewScanner(r)

	var section string
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		switch strings.ToUpper(line) {
		case sectionPalette, sectionCollisions:
			section = strings.ToUpper(line)
			continue
		}

		switch section {
		case sectionPalette:
			if !isTone(line) {
				if len(d.Palette) > 0 && len(d.Palette[len(d.Palette)-1].Tones) == 0 {
					return nil, errors.Wrapf(errEmptyColor, "line %d", n-1)
				}
				if d.Palette.Index(line) >= 0 {
					return nil, errors.Errorf("palette: line %d: duplicate color %q", n, line)
				}
				d.Palette = append(d.Palette, Color{Name: line})
				continue
			}
			if len(d.Palette) == 0 {
				return nil, errors.Wrapf(errNoColor, "line %d", n)
			}
			c := &d.Palette[len(d.Palette)-1]
			if len(c.Tones) == NumTones {
				return nil, errors.Wrapf(errTooManyTones, "line %d", n)
			}
			t, _ := ParseTone(line)
			c.Tones = append(c.Tones, t)
		case sectionCollisions:
			parts := strings.SplitN(line, ",", 2)
			if len(parts) != 2 {
				return nil, errors.Errorf("palette: line %d: expected NAME,RRGGBB", n)
			}
			t, err := ParseTone(parts[1])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", n)
			}
			d.Collisions = append(d.Collisions, Collision{
				Name: strings.TrimSpace(parts[0]),
				Tone: t,
			})
		default:
			return nil, errors.Errorf("palette: line %d: content outside of a section", n)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if len(d.Palette) > 0 && len(d.Palette[len(d.Palette)-1].Tones) == 0 {
		return nil, errEmptyColor
	}

	return d, nil
}

// Complete returns the descriptor palette filled up to eight colors from
// base. TEXT is taken from base first when missing, then the remaining base
// colors in base order.
func (d *Descriptor) Complete(base Palette) (Palette, error) {
	if len(d.Palette) > NumColors {
		return nil, errTooManyColors
	}

	p := d.Palette.Clone()
	if p.Index(Text) < 0 {
		if tones, ok := base.Lookup(Text); ok && len(p) < NumColors {
			p.Set(Text, tones)
		}
	}
	for _, c := range base {
		if len(p) == NumColors {
			break
		}
		if p.Index(c.Name) < 0 {
			p.Set(c.Name, c.Tones)
		}
	}
	return p, nil
}

// WriteTo writes the descriptor in the same format ParseDescriptor reads.
func (d *Descriptor) WriteTo(w io.Writer) (int64, error) {
	b := new(strings.Builder)
	if len(d.Palette) > 0 {
		fmt.Fprintln(b, sectionPalette)
		for _, c := range d.Palette {
			fmt.Fprintln(b, c.Name)
			for _, t := range c.Tones {
				fmt.Fprintln(b, t)
			}
		}
	}
	if len(d.Collisions) > 0 {
		if len(d.Palette) > 0 {
			fmt.Fprintln(b)
		}
		fmt.Fprintln(b, sectionCollisions)
		for _, c := range d.Collisions {
			fmt.Fprintf(b, "%s,%s\n", c.Name, c.Tone)
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
