package metatiled

import (
	"sort"

	"github.com/bodgit/metatiled/palette"
	"github.com/bodgit/metatiled/tile"
)

// Assignment is the palette color chosen for a tile and the shade of each
// of its tones within that color.
type Assignment struct {
	Color  string
	Shades tile.ShadeMap
}

// ResolveColor returns the first color of p, in palette order, that matches
// every tone. Each tone takes the index of the first matching tone of the
// color as its shade. tones should be in canonical order.
func ResolveColor(p palette.Palette, tones []palette.Tone) (Assignment, bool) {
	for _, c := range p {
		shades := make(tile.ShadeMap, len(tones))
		match := true
		for _, t := range tones {
			s := palette.Shade(t, c.Tones)
			if s < 0 {
				match = false
				break
			}
			shades[t] = uint8(s)
		}
		if match {
			return Assignment{Color: c.Name, Shades: shades}, true
		}
	}
	return Assignment{}, false
}

func subset(a, b []palette.Tone) bool {
	for _, t := range a {
		found := false
		for _, u := range b {
			if t == u {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MaximalToneSets drops every set that is a subset of another, keeping the
// rest ordered by descending size and first occurrence among equal sizes.
// Of identical sets only the first is kept.
func MaximalToneSets(sets [][]palette.Tone) [][]palette.Tone {
	sorted := append(sets[:0:0], sets...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	var maximal [][]palette.Tone
	for _, s := range sorted {
		keep := true
		for _, m := range maximal {
			if subset(s, m) {
				keep = false
				break
			}
		}
		if keep {
			maximal = append(maximal, s)
		}
	}
	return maximal
}

// InferRoofColor collects the tone sets that no color of p can resolve and
// stores the first maximal one as the ROOF color of p. It reports whether
// ROOF was changed; p is left alone when every tone set resolves.
func InferRoofColor(p *palette.Palette, toneSets [][]palette.Tone) ([]palette.Tone, bool) {
	var candidates [][]palette.Tone
	for _, tones := range toneSets {
		if _, ok := ResolveColor(*p, tones); !ok {
			candidates = append(candidates, tones)
		}
	}

	maximal := MaximalToneSets(candidates)
	if len(maximal) == 0 {
		return nil, false
	}

	roof := maximal[0]
	if len(roof) > palette.NumTones {
		roof = roof[:palette.NumTones]
	}
	p.Set(palette.Roof, roof)
	return roof, true
}

func equalTones(a, b []palette.Tone) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// UniqueToneSets returns toneSets without repeats, in first-seen order.
// Tone sets are compared in their canonical order.
func UniqueToneSets(toneSets [][]palette.Tone) [][]palette.Tone {
	unique := make([][]palette.Tone, 0, len(toneSets))
next:
	for _, tones := range toneSets {
		for _, u := range unique {
			if equalTones(tones, u) {
				continue next
			}
		}
		unique = append(unique, tones)
	}
	return unique
}

// DetectPalette scores each palette of c by how many unique tone sets match
// one of its colors and returns the best, earliest in catalogue order on a
// tie. It returns false when no tone set matches any palette, which means
// the image is monochrome as far as the catalogue is concerned.
func DetectPalette(toneSets [][]palette.Tone, c palette.Catalogue) (string, bool) {
	toneSets = UniqueToneSets(toneSets)

	best, bestScore := "", 0
	for _, n := range c {
		score := 0
		for _, tones := range toneSets {
			for _, color := range n.Palette {
				if palette.SameColor(tones, color.Tones) {
					score++
					break
				}
			}
		}
		if score > bestScore {
			best, bestScore = n.Name, score
		}
	}
	return best, bestScore > 0
}
