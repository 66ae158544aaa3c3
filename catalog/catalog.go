/*
Package catalog keeps a searchable SQLite index of container files.

Each indexed file stores its geometry columns for quick listing, a
snappy-compressed copy of its merged label text, and one row per
keyword entry so searches see repeated keywords and values of every
kind.
*/
package catalog

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/golang/snappy"
	_ "github.com/mattn/go-sqlite3"

	"github.com/SETI/go-vicar"
)

// Catalog is an open index database.
type Catalog struct {
	db     *sql.DB
	logger *log.Logger
}

// New opens or creates the index at file. A nil logger discards scan
// chatter.
func New(file string, logger *log.Logger) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, crc TEXT NOT NULL, format TEXT NOT NULL, org TEXT NOT NULL, bands INTEGER NOT NULL, lines INTEGER NOT NULL, samples INTEGER NOT NULL, label BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS keyword (image_id INTEGER NOT NULL, pos INTEGER NOT NULL, name TEXT NOT NULL, value TEXT NOT NULL, FOREIGN KEY(image_id) REFERENCES image(id))"); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Catalog{db: db, logger: logger}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add indexes im under path, replacing any earlier row for the same
// path. The image needs only its label, so a label-only decode will do.
func (c *Catalog) Add(path, crc string, im *vicar.Image) (int64, error) {
	l := im.Label()
	format := l.StringOr("FORMAT", "")
	org := l.StringOr("ORG", "")
	bands := l.IntOr("NB", 0)
	lines := l.IntOr("NL", 0)
	samples := l.IntOr("NS", 0)
	blob := snappy.Encode(nil, []byte(l.String()))

	var id int64
	switch err := c.db.QueryRow("SELECT id FROM image WHERE path = ?", path).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := c.db.Exec("INSERT INTO image (path, crc, format, org, bands, lines, samples, label) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			path, crc, format, org, bands, lines, samples, blob)
		if err != nil {
			return 0, err
		}
		if id, err = result.LastInsertId(); err != nil {
			return 0, err
		}
	case nil:
		if _, err := c.db.Exec("UPDATE image SET crc = ?, format = ?, org = ?, bands = ?, lines = ?, samples = ?, label = ? WHERE id = ?",
			crc, format, org, bands, lines, samples, blob, id); err != nil {
			return 0, err
		}
		if _, err := c.db.Exec("DELETE FROM keyword WHERE image_id = ?", id); err != nil {
			return 0, err
		}
	default:
		return 0, err
	}

	for i := 0; i < l.Len(); i++ {
		e := l.EntryAt(i)
		if _, err := c.db.Exec("INSERT INTO keyword (image_id, pos, name, value) VALUES (?, ?, ?, ?)",
			id, i, e.Name, e.Value.String()); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// Find returns the paths of indexed files carrying keyword name with
// the given value. A bare word also matches its quoted string form, so
// callers need not spell the quotes.
func (c *Catalog) Find(name, value string) ([]string, error) {
	rows, err := c.db.Query("SELECT DISTINCT i.path FROM keyword AS k JOIN image AS i ON k.image_id = i.id WHERE k.name = ? AND (k.value = ? OR k.value = ?) ORDER BY i.path",
		strings.ToUpper(name), value, "'"+value+"'")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

// LabelText returns the merged label text indexed for path.
func (c *Catalog) LabelText(path string) (string, error) {
	var blob []byte
	switch err := c.db.QueryRow("SELECT label FROM image WHERE path = ?", path).Scan(&blob); err {
	case sql.ErrNoRows:
		return "", fmt.Errorf("catalog: %s not indexed", path)
	case nil:
		text, err := snappy.Decode(nil, blob)
		if err != nil {
			return "", err
		}
		return string(text), nil
	default:
		return "", err
	}
}
