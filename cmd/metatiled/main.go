package main

import (
	"fmt"
	"image/png"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/metatiled"
	"github.com/bodgit/metatiled/palette"
	"github.com/urfave/cli/v2"
)

const defaultDB = "metatiled.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func open(c *cli.Context) (*metatiled.MetaTiled, *metatiled.PaletteDB, error) {
	db, err := metatiled.NewPaletteDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}
	return metatiled.New(palette.Builtin(), db, newLogger(c)), db, nil
}

func readDescriptor(file string) (*palette.Descriptor, error) {
	if file == "" {
		return nil, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return palette.ParseDescriptor(f)
}

func convert(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, db, err := open(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	d, err := readDescriptor(c.String("descriptor"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	opts := metatiled.Options{
		Palette:    c.String("palette"),
		Descriptor: d,
		Compress:   c.Bool("compress"),
	}
	save := metatiled.SaveOptions{
		Color: c.Bool("color"),
		Scale: c.Int("scale"),
	}

	if mask := c.String("collisions"); mask != "" {
		if c.NArg() > 1 {
			return cli.NewExitError("a collision mask can only be used with a single map", 1)
		}
		if opts.Mask, err = metatiled.DecodeFile(mask); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	if c.NArg() == 1 {
		if err := m.ConvertFile(c.Args().First(), opts, save); err != nil {
			return cli.NewExitError(err, 1)
		}
		return nil
	}

	if err := m.ConvertAll(c.Args().Slice(), opts, save); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func analyze(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, db, err := open(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	img, err := metatiled.DecodeFile(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	r, err := m.Analyze(img, c.String("palette"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if _, err := r.WriteTo(os.Stdout); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func extract(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m := metatiled.New(palette.Builtin(), nil, newLogger(c))

	img, err := metatiled.DecodeFile(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if file := c.String("reduce"); file != "" {
		f, err := os.Create(file)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer f.Close()

		if err := png.Encode(f, metatiled.Reduce(img, metatiled.MaxTones)); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	e, err := m.Extract(img)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if e.TooMany() {
		fmt.Fprintf(os.Stderr, "Warning: %d colors found, a palette holds %d alongside %s\n", len(e.Colors), palette.NumColors-1, palette.Text)
	}
	if len(e.Suggested) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d tones found, a palette holds %d; try reducing the image to:\n", e.Tones, metatiled.MaxTones)
		for _, t := range e.Suggested {
			fmt.Fprintf(os.Stderr, "  %s\n", t)
		}
	}

	var w io.Writer = os.Stdout
	if file := c.String("output"); file != "" {
		f, err := os.Create(file)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer f.Close()
		w = f
	}

	if _, err := e.Descriptor().WriteTo(w); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func detect(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m := metatiled.New(palette.Builtin(), nil, newLogger(c))

	for _, file := range c.Args().Slice() {
		img, err := metatiled.DecodeFile(file)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		name, ok, err := m.Detect(img)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if !ok {
			name = "monochrome"
		}
		fmt.Printf("%s: %s\n", file, name)
	}

	return nil
}

func importPalette(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, err := metatiled.NewPaletteDB(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	file := c.Args().First()
	name := c.String("name")
	if name == "" {
		name = metatiled.BaseName(file)
	}

	changed, err := db.Import(name, file)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	logger := newLogger(c)
	if changed {
		logger.Printf("Imported \"%s\" as \"%s\"\n", file, name)
	} else {
		logger.Printf("Palette \"%s\" is unchanged\n", name)
	}

	return nil
}

func listPalettes(c *cli.Context) error {
	db, err := metatiled.NewPaletteDB(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	for _, name := range palette.Builtin().Names() {
		fmt.Println(name)
	}

	names, err := db.Names()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	for _, name := range names {
		fmt.Println(name)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "metatiled"
	app.Usage = "2bpp tilemap converter"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	paletteFlag := &cli.StringFlag{
		Name:    "palette",
		Aliases: []string{"p"},
		Value:   metatiled.Auto,
		Usage:   "palette name, or \"auto\" to detect it",
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"METATILED_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to palette database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert map images into tileset, metatile and block files",
			Description: "Each map is written into data/tilesets, gfx/tilesets and maps beside its image.",
			ArgsUsage:   "FILE...",
			Flags: []cli.Flag{
				paletteFlag,
				&cli.StringFlag{
					Name:    "descriptor",
					Aliases: []string{"d"},
					Usage:   "palette and collision descriptor file",
				},
				&cli.StringFlag{
					Name:    "collisions",
					Aliases: []string{"c"},
					Usage:   "collision mask image",
				},
				&cli.BoolFlag{
					Name:  "compress",
					Usage: "merge mirrored tiles and write attributes",
				},
				&cli.BoolFlag{
					Name:  "color",
					Usage: "render the tileset image in color",
				},
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "tileset image scale factor",
				},
			},
			Action: convert,
		},
		{
			Name:      "analyze",
			Usage:     "Report colors, tone violations and palette fit",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				paletteFlag,
			},
			Action: analyze,
		},
		{
			Name:      "extract",
			Usage:     "Extract a palette descriptor from a map",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write the descriptor to this file",
				},
				&cli.StringFlag{
					Name:  "reduce",
					Usage: "write a color reduced copy of the map to this file",
				},
			},
			Action: extract,
		},
		{
			Name:      "detect",
			Usage:     "Detect the palette of maps",
			ArgsUsage: "FILE...",
			Action:    detect,
		},
		{
			Name:  "palette",
			Usage: "Manage custom palettes",
			Subcommands: []*cli.Command{
				{
					Name:      "import",
					Usage:     "Import a palette descriptor",
					ArgsUsage: "FILE",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "name",
							Usage: "palette name, defaults to the file name",
						},
					},
					Action: importPalette,
				},
				{
					Name:   "list",
					Usage:  "List built-in and imported palettes",
					Action: listPalettes,
				},
			},
		},
		{
			Name:      "init",
			Usage:     "Create the project directories",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				dir := c.Args().First()
				if dir == "" {
					dir = cwd
				}

				if err := metatiled.EnsureProject(dir); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
