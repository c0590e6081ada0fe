package metatiled

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bodgit/metatiled/palette"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// PaletteDB stores custom palettes and collision legends imported from
// descriptor files.
type PaletteDB struct {
	db *sql.DB
}

// NewPaletteDB opens or creates the database in file.
func NewPaletteDB(file string) (*PaletteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette_color (palette_id INTEGER NOT NULL, position INTEGER NOT NULL, name TEXT NOT NULL, tones TEXT NOT NULL, UNIQUE(palette_id, position), FOREIGN KEY(palette_id) REFERENCES palette(id) ON DELETE CASCADE)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS collision (palette_id INTEGER NOT NULL, position INTEGER NOT NULL, name TEXT NOT NULL, rgb TEXT NOT NULL, UNIQUE(palette_id, position), FOREIGN KEY(palette_id) REFERENCES palette(id) ON DELETE CASCADE)"); err != nil {
		return nil, err
	}

	return &PaletteDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *PaletteDB) Close() error {
	return db.db.Close()
}

// Import parses the descriptor in file and stores it under name, replacing
// any palette of the same name. Importing unchanged content is a no-op. It
// reports whether anything was written.
func (db *PaletteDB) Import(name, file string) (bool, error) {
	f, err := os.Open(file)
	if err != nil {
		return false, err
	}
	defer f.Close()

	h := sha1.New()
	d, err := palette.ParseDescriptor(io.TeeReader(f, h))
	if err != nil {
		return false, errors.Wrap(err, file)
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	var existing string
	switch err := db.db.QueryRow("SELECT sha1 FROM palette WHERE name = ?", name).Scan(&existing); err {
	case sql.ErrNoRows:
	case nil:
		if existing == sha {
			return false, nil
		}
	default:
		return false, err
	}

	if err := db.store(name, sha, d); err != nil {
		return false, err
	}
	return true, nil
}

func (db *PaletteDB) store(name, sha string, d *palette.Descriptor) (err error) {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM palette WHERE name = ?", name); err != nil {
		return err
	}

	result, err := tx.Exec("INSERT INTO palette (name, sha1) VALUES (?, ?)", name, sha)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for i, c := range d.Palette {
		tones := make([]string, len(c.Tones))
		for j, t := range c.Tones {
			tones[j] = t.String()
		}
		if _, err = tx.Exec("INSERT INTO palette_color (palette_id, position, name, tones) VALUES (?, ?, ?, ?)", id, i, c.Name, strings.Join(tones, " ")); err != nil {
			return err
		}
	}

	for i, c := range d.Collisions {
		if _, err = tx.Exec("INSERT INTO collision (palette_id, position, name, rgb) VALUES (?, ?, ?, ?)", id, i, c.Name, c.Tone.String()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Find returns the stored descriptor, or nil if there is no palette with
// that name.
func (db *PaletteDB) Find(name string) (*palette.Descriptor, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM palette WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}

	d := new(palette.Descriptor)

	rows, err := db.db.Query("SELECT name, tones FROM palette_color WHERE palette_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var colorName, tones string
		if err := rows.Scan(&colorName, &tones); err != nil {
			return nil, err
		}
		c := palette.Color{Name: colorName}
		for _, s := range strings.Fields(tones) {
			t, err := palette.ParseTone(s)
			if err != nil {
				return nil, err
			}
			c.Tones = append(c.Tones, t)
		}
		d.Palette = append(d.Palette, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := db.db.Query("SELECT name, rgb FROM collision WHERE palette_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	defer crows.Close()

	for crows.Next() {
		var collisionName, rgb string
		if err := crows.Scan(&collisionName, &rgb); err != nil {
			return nil, err
		}
		t, err := palette.ParseTone(rgb)
		if err != nil {
			return nil, err
		}
		d.Collisions = append(d.Collisions, palette.Collision{Name: collisionName, Tone: t})
	}

	return d, crows.Err()
}

// Names lists the stored palettes in name order.
func (db *PaletteDB) Names() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM palette ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
