package metatiled

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/bodgit/metatiled/palette"
	"github.com/bodgit/metatiled/tile"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMonochrome(t *testing.T) {
	t.Parallel()
	m := newTestMetaTiled()

	r, err := m.Convert(monochrome(), Options{Palette: Auto})
	require.Nil(t, err)

	assert.True(t, r.Monochrome)
	assert.True(t, r.SuppressPaletteMap())
	assert.Equal(t, palette.Default, r.PaletteName)
	assert.Equal(t, 2, r.Metatiles.Len())
	assert.LessOrEqual(t, len(r.Tiles.Tiles), 2)

	roof, _ := r.Palette.Lookup(palette.Roof)
	assert.Equal(t, []palette.Tone{white, light, dark, black}, roof)
	for _, a := range r.Assignments {
		assert.Equal(t, palette.Roof, a.Color)
	}

	// Roof inference works on a copy
	day := dayPalette(t)
	tones, _ := day.Lookup(palette.Roof)
	assert.Equal(t, []palette.Tone{dayWhite, {R: 123, G: 255, B: 255}, {R: 41, G: 139, B: 255}, dayBlack}, tones)

	name, ok, err := m.Detect(monochrome())
	require.Nil(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", name)
}

func TestConvertToneCount(t *testing.T) {
	t.Parallel()
	m := newMap(2, 2, dayWhite)
	r := tileRect(1, 1, 3, 0)
	for i, c := range []palette.Tone{dayLight, dayDark, dayBlack, dayPink} {
		m.Set(r.Min.X, r.Min.Y+i, c)
	}

	_, err := newTestMetaTiled().Convert(m, Options{Palette: Auto})
	var tce *ToneCountError
	require.True(t, errors.As(err, &tce))
	assert.Equal(t, 1, tce.X)
	assert.Equal(t, 1, tce.Y)
	assert.Equal(t, 3, tce.Col)
	assert.Equal(t, 0, tce.Row)
	assert.Equal(t, 5, tce.Tones)
}

func TestConvertSpaceTile(t *testing.T) {
	t.Parallel()
	r, err := newTestMetaTiled().Convert(patterned(12), Options{Palette: "day"})
	require.Nil(t, err)

	require.True(t, r.Tiles.Space)
	assert.Equal(t, SpaceThreshold+2, r.Tiles.Len())

	b := r.MetatileBytes()
	require.Len(t, b, 13*tile.PerMetatile)
	for i := 0; i < tile.PerMetatile; i++ {
		assert.Equal(t, byte(0), b[i])
	}
	for k := 1; k <= 12*tile.PerMetatile; k++ {
		want := k
		if k >= SpaceIndex {
			want++
		}
		assert.Equal(t, byte(want), b[tile.PerMetatile+k-1], "pattern %d", k)
	}

	grays := r.GrayTiles()
	require.Len(t, grays, SpaceThreshold+2)
	assert.Equal(t, tile.Gray{}, grays[SpaceIndex])

	colors := r.TileColors()
	require.Len(t, colors, SpaceThreshold+2)
	assert.Equal(t, palette.Text, colors[SpaceIndex])
	assert.Equal(t, palette.Roof, colors[SpaceIndex-1])
	assert.Equal(t, palette.Roof, colors[SpaceIndex+1])

	buf := new(bytes.Buffer)
	require.Nil(t, r.WriteTiles(buf))
	assert.Equal(t, (SpaceThreshold+2)*16, buf.Len())
}

func TestConvertCapacity(t *testing.T) {
	t.Parallel()
	_, err := newTestMetaTiled().Convert(patterned(16), Options{Palette: "day"})
	var ce *CapacityError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, CapacityError{Tiles: 258, Max: MaxTiles}, *ce)
}

func TestConvertCompress(t *testing.T) {
	t.Parallel()
	r, err := newTestMetaTiled().Convert(mirrored(), Options{Palette: "day", Compress: true})
	require.Nil(t, err)

	require.NotNil(t, r.Compressed)
	assert.Len(t, r.Tiles.Tiles, 4)
	assert.Len(t, r.Compressed.Tiles, 3)
	assert.Equal(t, Transform{Index: 1, FlipX: true, Color: palette.Gray}, r.Compressed.Transforms[2])

	b := r.MetatileBytes()
	require.Len(t, b, 2*tile.PerMetatile)
	assert.Equal(t, make([]byte, tile.PerMetatile), b[:tile.PerMetatile])
	assert.Equal(t, []byte{1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}, b[tile.PerMetatile:])

	require.Len(t, r.Attributes, 2*tile.PerMetatile)
	assert.Equal(t, byte(0x00), r.Attributes[tile.PerMetatile].Byte())
	assert.Equal(t, byte(0x20), r.Attributes[tile.PerMetatile+1].Byte())

	buf := new(bytes.Buffer)
	require.Nil(t, r.WriteAttributes(buf))
	assert.Equal(t, 2*tile.PerMetatile, buf.Len())

	assert.Equal(t, []string{palette.Gray, palette.Gray, palette.Gray}, r.TileColors())
	assert.Len(t, r.GrayTiles(), 3)

	m := r.Tileset(true)
	assert.Equal(t, 128, m.Bounds().Dx())
	assert.Equal(t, dayBlack, palette.FromColor(m.At(8, 0)))
	assert.Equal(t, dayWhite, palette.FromColor(m.At(9, 0)))
}

func TestConvertIdempotent(t *testing.T) {
	t.Parallel()
	m := newTestMetaTiled()

	output := func(r *Result) [][]byte {
		var out [][]byte
		for _, fn := range []func(*bytes.Buffer) error{
			func(b *bytes.Buffer) error { return r.WriteBlocks(b) },
			func(b *bytes.Buffer) error { return r.WriteMetatiles(b) },
			func(b *bytes.Buffer) error { return r.WriteAttributes(b) },
			func(b *bytes.Buffer) error { return r.WriteTiles(b) },
			func(b *bytes.Buffer) error { return r.WritePaletteMap(b) },
		} {
			b := new(bytes.Buffer)
			require.Nil(t, fn(b))
			out = append(out, b.Bytes())
		}
		return out
	}

	tables := []struct {
		name string
		img  *image.RGBA
		opts Options
	}{
		{"mirrored", mirrored(), Options{Palette: Auto, Compress: true}},
		{"patterned", patterned(3), Options{Palette: "day"}},
	}

	for _, table := range tables {
		r1, err := m.Convert(table.img, table.opts)
		require.Nil(t, err)
		r2, err := m.Convert(table.img, table.opts)
		require.Nil(t, err)

		assert.Equal(t, output(r1), output(r2), table.name)
	}
}

func TestConvertDetected(t *testing.T) {
	t.Parallel()
	r, err := newTestMetaTiled().Convert(mirrored(), Options{Palette: Auto})
	require.Nil(t, err)

	// GRAY of "day" holds both tones and no other palette does
	assert.Equal(t, "day", r.PaletteName)
	assert.False(t, r.Monochrome)
	assert.Nil(t, r.Compressed)

	buf := new(bytes.Buffer)
	require.Nil(t, r.WriteBlocks(buf))
	assert.Equal(t, []byte{1}, buf.Bytes())

	assert.Equal(t, append(make([]byte, tile.PerMetatile), 1, 2, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3), r.MetatileBytes())

	buf.Reset()
	require.Nil(t, r.WriteTiles(buf))
	require.Equal(t, 4*16, buf.Len())
	assert.Equal(t, bytes.Repeat([]byte{0xff}, 16), buf.Bytes()[:16])

	gray := r.Tileset(false)
	assert.Equal(t, tile.Levels[3], gray.At(0, 0))
	assert.Equal(t, tile.Levels[0], gray.At(9, 0))
}

func TestWritePaletteMap(t *testing.T) {
	t.Parallel()
	r, err := newTestMetaTiled().Convert(mirrored(), Options{Palette: "day"})
	require.Nil(t, err)

	text := func(bank int) string {
		return "\ttilepal " + string(rune('0'+bank)) + strings.Repeat(", TEXT", 8) + "\n"
	}

	want := "\ttilepal 0, GRAY, GRAY, GRAY, GRAY, TEXT, TEXT, TEXT, TEXT\n" +
		strings.Repeat(text(0), 11) +
		"\nrept 16\n    db $ff\nendr\n\n" +
		strings.Repeat(text(1), 12) +
		"\n"

	buf := new(bytes.Buffer)
	require.Nil(t, r.WritePaletteMap(buf))
	assert.Equal(t, want, buf.String())
}

func TestConvertDescriptor(t *testing.T) {
	t.Parallel()
	d := &palette.Descriptor{
		Palette: palette.Palette{
			{Name: "SNOW", Tones: []palette.Tone{white, light, dark, black}},
		},
	}

	r, err := newTestMetaTiled().Convert(monochrome(), Options{Palette: Auto, Descriptor: d})
	require.Nil(t, err)

	assert.Equal(t, Custom, r.PaletteName)
	assert.False(t, r.Monochrome)
	assert.Equal(t, []string{"SNOW", palette.Text, palette.Gray, palette.Red, palette.Green, palette.Water, palette.Yellow, palette.Brown}, r.Palette.Names())
	for _, a := range r.Assignments {
		assert.Equal(t, "SNOW", a.Color)
	}
	assert.Equal(t, tile.ShadeMap{white: 0, light: 1, dark: 2, black: 3}, r.Assignments[1].Shades)
}

func TestConvertUnresolved(t *testing.T) {
	t.Parallel()
	m := newMap(1, 1, white)
	setTile(m, 0, 0, 0, 0, column(0, black, white))
	setTile(m, 0, 0, 1, 0, column(0, dark, light))

	_, err := newTestMetaTiled().Convert(m, Options{Palette: "day"})
	var ue *UnresolvedColorError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, Location{Metatile: 1, X: 0, Y: 0, Col: 1, Row: 0}, ue.Location)
	assert.Equal(t, []palette.Tone{light, dark}, ue.Tones)
}

func TestConvertUnknownPalette(t *testing.T) {
	t.Parallel()
	_, err := newTestMetaTiled().Convert(mirrored(), Options{Palette: "dusk"})
	assert.True(t, errors.Is(err, errUnknownPalette))
}

// binary returns a map of n metatiles in a row, metatile i drawing the bits
// of i+1 with solid black and white tiles
func binary(n int) *image.RGBA {
	m := newMap(n, 1, white)
	for i := 0; i < n; i++ {
		for j := 0; j < tile.PerMetatile; j++ {
			if (i+1)>>uint(j)&1 == 1 {
				setTile(m, i, 0, j%tile.PerRow, j/tile.PerRow, solid(black))
			}
		}
	}
	return m
}

func TestConvertMetatileCapacity(t *testing.T) {
	t.Parallel()
	tables := []struct {
		name      string
		metatiles int
		err       *MetatileCapacityError
	}{
		{"full", MaxMetatiles - 1, nil},
		{"overflow", MaxMetatiles, &MetatileCapacityError{Metatiles: MaxMetatiles + 1, Max: MaxMetatiles}},
		{"wide overflow", 300, &MetatileCapacityError{Metatiles: 301, Max: MaxMetatiles}},
	}

	for _, table := range tables {
		r, err := newTestMetaTiled().Convert(binary(table.metatiles), Options{Palette: "day"})
		if table.err != nil {
			var mce *MetatileCapacityError
			require.True(t, errors.As(err, &mce), table.name)
			assert.Equal(t, *table.err, *mce, table.name)
			continue
		}

		require.Nil(t, err, table.name)
		assert.Equal(t, MaxMetatiles, r.Metatiles.Len(), table.name)

		buf := new(bytes.Buffer)
		require.Nil(t, r.WriteBlocks(buf))
		require.Len(t, buf.Bytes(), table.metatiles)
		assert.Equal(t, byte(1), buf.Bytes()[0])
		assert.Equal(t, byte(MaxMetatiles-1), buf.Bytes()[table.metatiles-1])
	}
}
