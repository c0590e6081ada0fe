package palette

// Tolerance is the largest per-channel difference at which two 8-bit tones
// are still considered the same. Source pixels are often off by one after a
// round trip through 5-bit color.
const Tolerance = 1

// SameTone reports whether every channel of a and b differs by no more than
// Tolerance.
func SameTone(a, b Tone) bool {
	return SameToneWithin(a, b, Tolerance)
}

// SameToneWithin is SameTone with an explicit tolerance.
func SameToneWithin(a, b Tone, tolerance int) bool {
	return within(a.R, b.R, tolerance) && within(a.G, b.G, tolerance) && within(a.B, b.B, tolerance)
}

func within(a, b uint8, tolerance int) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

// SameColor reports whether every tone matches some palette tone. Several
// tones may match the same palette tone.
func SameColor(tones, paletteTones []Tone) bool {
	for _, t := range tones {
		if Shade(t, paletteTones) < 0 {
			return false
		}
	}
	return true
}

// Shade returns the index of the first palette tone matching t, or -1.
func Shade(t Tone, paletteTones []Tone) int {
	for i, p := range paletteTones {
		if SameTone(t, p) {
			return i
		}
	}
	return -1
}
