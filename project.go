package metatiled

import (
	"bufio"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bodgit/metatiled/tileset"
	"github.com/pkg/errors"
)

// Project directories, relative to the project root
var (
	TilesetDataDir = filepath.Join("data", "tilesets")
	TilesetGfxDir  = filepath.Join("gfx", "tilesets")
	MapsDir        = "maps"
)

const makefile = "Makefile"

const makefileStub = `# Created by metatiled
# A directory containing a Makefile is treated as the project root by map
# editors.

`

// EnsureProject creates the project directories and a stub Makefile under
// dir if they don't already exist.
func EnsureProject(dir string) error {
	for _, d := range []string{TilesetDataDir, TilesetGfxDir, MapsDir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(filepath.Join(dir, makefile), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	if _, err := io.WriteString(f, makefileStub); err != nil {
		return err
	}

	return f.Close()
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// BlockName returns the map file name for name, converting snake_case to
// CamelCase, so "route_1" becomes "Route1.blk".
func BlockName(name string) string {
	var b strings.Builder
	for _, word := range strings.Split(name, "_") {
		for i, r := range word {
			if i == 0 {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
		}
	}
	b.WriteString(".blk")
	return b.String()
}

// SaveOptions controls how a Result is written to a project.
type SaveOptions struct {
	// Color renders the tileset image in color rather than grayscale
	Color bool
	// Scale enlarges the tileset image, values below 2 leave it alone
	Scale int
}

// Paths returns the file each output of name is written to under dir.
func Paths(dir, name string) map[string]string {
	return map[string]string{
		"tileset":     filepath.Join(dir, TilesetGfxDir, name+".png"),
		"tiles":       filepath.Join(dir, TilesetGfxDir, name+".2bpp"),
		"palette_map": filepath.Join(dir, TilesetGfxDir, name+"_palette_map.asm"),
		"metatiles":   filepath.Join(dir, TilesetDataDir, name+"_metatiles.bin"),
		"attributes":  filepath.Join(dir, TilesetDataDir, name+"_attributes.bin"),
		"collision":   filepath.Join(dir, TilesetDataDir, name+"_collision.asm"),
		"blocks":      filepath.Join(dir, MapsDir, BlockName(name)),
	}
}

func writeFile(file string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err = fn(w); err != nil {
		return errors.Wrap(err, file)
	}
	return w.Flush()
}

// Save creates the project under dir and writes every output of r for the
// map called name.
func (m *MetaTiled) Save(dir, name string, r *Result, opts SaveOptions) error {
	if err := EnsureProject(dir); err != nil {
		return err
	}

	paths := Paths(dir, name)

	if err := writeFile(paths["tileset"], func(w io.Writer) error {
		return png.Encode(w, tileset.Scale(r.Tileset(opts.Color), opts.Scale))
	}); err != nil {
		return err
	}

	if err := writeFile(paths["tiles"], r.WriteTiles); err != nil {
		return err
	}

	if err := writeFile(paths["metatiles"], r.WriteMetatiles); err != nil {
		return err
	}

	if r.Compressed != nil {
		if err := writeFile(paths["attributes"], r.WriteAttributes); err != nil {
			return err
		}
	}

	if err := writeFile(paths["blocks"], r.WriteBlocks); err != nil {
		return err
	}

	if r.SuppressPaletteMap() {
		m.logger.Printf("Not writing palette map for \"%s\", no palette fits\n", name)
	} else if err := writeFile(paths["palette_map"], r.WritePaletteMap); err != nil {
		return err
	}

	if r.Collisions != nil {
		if err := writeFile(paths["collision"], r.WriteCollisions); err != nil {
			return err
		}
	}

	m.logger.Printf("Saved \"%s\" to \"%s\"\n", name, dir)

	return nil
}
