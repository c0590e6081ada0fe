package metatiled

import (
	"testing"

	"github.com/bodgit/metatiled/palette"
	"github.com/bodgit/metatiled/tile"
	"github.com/stretchr/testify/assert"
)

func TestResolveColor(t *testing.T) {
	t.Parallel()
	p := dayPalette(t)

	tables := []struct {
		name   string
		tones  []palette.Tone
		color  string
		shades tile.ShadeMap
		ok     bool
	}{
		{
			"first color wins",
			[]palette.Tone{dayWhite, dayBlack},
			palette.Gray,
			tile.ShadeMap{dayWhite: 0, dayBlack: 3},
			true,
		},
		{
			"within tolerance",
			[]palette.Tone{{R: 223, G: 254, B: 222}, dayPink},
			palette.Red,
			tile.ShadeMap{{R: 223, G: 254, B: 222}: 0, dayPink: 1},
			true,
		},
		{
			"first matching tone",
			[]palette.Tone{{R: 255, G: 255, B: 131}},
			palette.Text,
			tile.ShadeMap{{R: 255, G: 255, B: 131}: 0},
			true,
		},
		{
			"no color",
			[]palette.Tone{white, black},
			"",
			nil,
			false,
		},
		{
			"outside tolerance",
			[]palette.Tone{{R: 224, G: 255, B: 222}},
			"",
			nil,
			false,
		},
	}

	for _, table := range tables {
		a, ok := ResolveColor(p, table.tones)
		assert.Equal(t, table.ok, ok, table.name)
		if table.ok {
			assert.Equal(t, table.color, a.Color, table.name)
			assert.Equal(t, table.shades, a.Shades, table.name)
		}
	}
}

func TestMaximalToneSets(t *testing.T) {
	t.Parallel()
	a, b, c := white, light, dark

	assert.Equal(t, [][]palette.Tone{{a, b}, {c}}, MaximalToneSets([][]palette.Tone{{a}, {a, b}, {c}, {a, b}}))
	assert.Equal(t, [][]palette.Tone{{a, c}, {a, b}}, MaximalToneSets([][]palette.Tone{{a, c}, {b}, {a, b}}))
	assert.Nil(t, MaximalToneSets(nil))
}

func TestInferRoofColor(t *testing.T) {
	t.Parallel()
	p := dayPalette(t)
	before := p.Clone()

	// Every tone set resolves so ROOF is left alone
	roof, ok := InferRoofColor(&p, [][]palette.Tone{{dayWhite, dayBlack}, {dayPink}})
	assert.False(t, ok)
	assert.Nil(t, roof)
	assert.Equal(t, before, p)

	roof, ok = InferRoofColor(&p, [][]palette.Tone{{dayWhite}, {white, black}, {white, light, black}, {dark}})
	assert.True(t, ok)
	assert.Equal(t, []palette.Tone{white, light, black}, roof)

	tones, _ := p.Lookup(palette.Roof)
	assert.Equal(t, roof, tones)
	assert.Equal(t, before.Names(), p.Names())
	assert.Equal(t, before[0], p[0])

	// Tone sets collected leniently are cut down to four tones
	p = before.Clone()
	roof, ok = InferRoofColor(&p, [][]palette.Tone{{white, light, dark, black, dayPink}})
	assert.True(t, ok)
	assert.Len(t, roof, palette.NumTones)
}

func TestDetectPalette(t *testing.T) {
	t.Parallel()
	c := palette.Builtin()
	nite, _ := c.Find("nite")
	indoor, _ := c.Find("indoor")

	tables := []struct {
		name     string
		toneSets [][]palette.Tone
		want     string
		ok       bool
	}{
		{
			"nite",
			[][]palette.Tone{nite[0].Tones[:2]},
			"nite",
			true,
		},
		{
			"indoor",
			[][]palette.Tone{indoor[2].Tones[:3], indoor[5].Tones},
			"indoor",
			true,
		},
		{
			"tie",
			[][]palette.Tone{{black}},
			"morn",
			true,
		},
		{
			"monochrome",
			[][]palette.Tone{{white, light, dark, black}},
			"",
			false,
		},
		{
			"empty",
			nil,
			"",
			false,
		},
	}

	for _, table := range tables {
		name, ok := DetectPalette(table.toneSets, c)
		assert.Equal(t, table.ok, ok, table.name)
		assert.Equal(t, table.want, name, table.name)
	}
}

func TestDetectPaletteRepeatedToneSets(t *testing.T) {
	t.Parallel()
	c := palette.Catalogue{
		{Name: "A", Palette: palette.Palette{{Name: "ONE", Tones: []palette.Tone{white, black}}}},
		{Name: "B", Palette: palette.Palette{{Name: "TWO", Tones: []palette.Tone{light, dark, black}}}},
	}

	tables := []struct {
		name     string
		toneSets [][]palette.Tone
		want     string
	}{
		{
			"repeated set counts once",
			[][]palette.Tone{{white}, {white}, {white}, {light}, {dark}},
			"B",
		},
		{
			"distinct sets win",
			[][]palette.Tone{{white}, {white, black}, {light}},
			"A",
		},
		{
			"tie after dedup",
			[][]palette.Tone{{light}, {light}, {white}},
			"A",
		},
	}

	for _, table := range tables {
		name, ok := DetectPalette(table.toneSets, c)
		assert.True(t, ok, table.name)
		assert.Equal(t, table.want, name, table.name)
	}
}

func TestUniqueToneSets(t *testing.T) {
	t.Parallel()
	sets := [][]palette.Tone{{white}, {light, dark}, {white}, {light}, {light, dark}}
	assert.Equal(t, [][]palette.Tone{{white}, {light, dark}, {light}}, UniqueToneSets(sets))
	assert.Empty(t, UniqueToneSets(nil))
}
