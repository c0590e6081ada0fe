package palette

// Default is the palette used when nothing else applies.
const Default = "day"

// Named is a palette with its catalogue name.
type Named struct {
	Name    string
	Palette Palette
}

// Catalogue is an ordered, read-only list of named palettes. Detection ties
// are broken by catalogue order.
type Catalogue []Named

// Find returns a copy of the named palette.
func (c Catalogue) Find(name string) (Palette, bool) {
	for _, n := range c {
		if n.Name == name {
			return n.Palette.Clone(), true
		}
	}
	return nil, false
}

// Names returns the palette names in catalogue order.
func (c Catalogue) Names() []string {
	names := make([]string, len(c))
	for i, n := range c {
		names[i] = n.Name
	}
	return names
}

type tones5 [NumTones][3]uint8

type definition struct {
	name   string
	colors [NumColors]tones5
}

// 5-bit definitions, colors in Names order
var definitions = []definition{
	{"morn", [NumColors]tones5{
		{{28, 31, 16}, {21, 21, 21}, {13, 13, 13}, {7, 7, 7}},
		{{28, 31, 16}, {31, 19, 24}, {30, 10, 6}, {7, 7, 7}},
		{{22, 31, 10}, {12, 25, 1}, {5, 14, 0}, {7, 7, 7}},
		{{23, 23, 31}, {18, 19, 31}, {13, 12, 31}, {7, 7, 7}},
		{{28, 31, 16}, {31, 31, 7}, {31, 16, 1}, {7, 7, 7}},
		{{28, 31, 16}, {24, 18, 7}, {20, 15, 3}, {7, 7, 7}},
		{{28, 31, 16}, {15, 31, 31}, {5, 17, 31}, {7, 7, 7}},
		{{31, 31, 16}, {31, 31, 16}, {14, 9, 0}, {0, 0, 0}},
	}},
	{"day", [NumColors]tones5{
		{{27, 31, 27}, {21, 21, 21}, {13, 13, 13}, {7, 7, 7}},
		{{27, 31, 27}, {31, 19, 24}, {30, 10, 6}, {7, 7, 7}},
		{{22, 31, 10}, {12, 25, 1}, {5, 14, 0}, {7, 7, 7}},
		{{23, 23, 31}, {18, 19, 31}, {13, 12, 31}, {7, 7, 7}},
		{{27, 31, 27}, {31, 31, 7}, {31, 16, 1}, {7, 7, 7}},
		{{27, 31, 27}, {24, 18, 7}, {20, 15, 3}, {7, 7, 7}},
		{{27, 31, 27}, {15, 31, 31}, {5, 17, 31}, {7, 7, 7}},
		{{31, 31, 16}, {31, 31, 16}, {14, 9, 0}, {0, 0, 0}},
	}},
	{"nite", [NumColors]tones5{
		{{15, 14, 24}, {11, 11, 19}, {7, 7, 12}, {0, 0, 0}},
		{{15, 14, 24}, {14, 7, 17}, {13, 0, 8}, {0, 0, 0}},
		{{15, 14, 24}, {8, 13, 19}, {0, 11, 13}, {0, 0, 0}},
		{{15, 13, 27}, {10, 9, 20}, {4, 3, 18}, {0, 0, 0}},
		{{30, 30, 11}, {16, 14, 18}, {16, 14, 10}, {0, 0, 0}},
		{{15, 14, 24}, {12, 9, 15}, {8, 4, 5}, {0, 0, 0}},
		{{15, 14, 24}, {13, 12, 23}, {11, 9, 20}, {0, 0, 0}},
		{{31, 31, 16}, {31, 31, 16}, {14, 9, 0}, {0, 0, 0}},
	}},
	{"dark", [NumColors]tones5{
		{{1, 1, 2}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{1, 1, 2}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{1, 1, 2}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{1, 1, 2}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{30, 30, 11}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{1, 1, 2}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{1, 1, 2}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{31, 31, 16}, {31, 31, 16}, {14, 9, 0}, {0, 0, 0}},
	}},
	{"indoor", [NumColors]tones5{
		{{30, 28, 26}, {19, 19, 19}, {13, 13, 13}, {7, 7, 7}},
		{{30, 28, 26}, {31, 19, 24}, {30, 10, 6}, {7, 7, 7}},
		{{18, 24, 9}, {15, 20, 1}, {9, 13, 0}, {7, 7, 7}},
		{{30, 28, 26}, {15, 16, 31}, {9, 9, 31}, {7, 7, 7}},
		{{30, 28, 26}, {31, 31, 7}, {31, 16, 1}, {7, 7, 7}},
		{{26, 24, 17}, {21, 17, 7}, {16, 13, 3}, {7, 7, 7}},
		{{30, 28, 26}, {17, 19, 31}, {14, 16, 31}, {7, 7, 7}},
		{{31, 31, 16}, {31, 31, 16}, {14, 9, 0}, {0, 0, 0}},
	}},
}

// Builtin returns the built-in catalogue with every tone scaled to 8-bit.
func Builtin() Catalogue {
	c := make(Catalogue, 0, len(definitions))
	for _, d := range definitions {
		p := make(Palette, 0, NumColors)
		for i, def := range d.colors {
			tones := make([]Tone, NumTones)
			for j, v := range def {
				tones[j] = To8Bit(Tone{v[0], v[1], v[2]})
			}
			p = append(p, Color{Name: Names[i], Tones: tones})
		}
		c = append(c, Named{Name: d.name, Palette: p})
	}
	return c
}
