package gridtransmit

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/bodgit/gridtransmit/bitmap"
	"github.com/bodgit/gridtransmit/frame"
	_ "github.com/mattn/go-sqlite3" // register sqlite3 driver
)

// PatternDB is an archive of encoded frames.
type PatternDB struct {
	db *sql.DB
}

// Entry is a single archived frame.
type Entry struct {
	ID     int64
	Digest string
	Name   string
	Frame  *frame.Frame
}

// NewPatternDB opens or creates the archive in file.
func NewPatternDB(file string) (*PatternDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// Serialize writers, the scanner runs several at once
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS pattern (id INTEGER PRIMARY KEY NOT NULL, digest TEXT NOT NULL, name TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, cell_size INTEGER NOT NULL, frame BLOB NOT NULL, UNIQUE(digest, cell_size))"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS pattern_name ON pattern(name)"); err != nil {
		db.Close()
		return nil, err
	}

	return &PatternDB{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (db *PatternDB) Close() error {
	return db.db.Close()
}

// Put stores f under name and digest unless a frame with the same digest and
// cell size is already stored. It returns the id of the stored row.
func (db *PatternDB) Put(name, digest string, f *frame.Frame) (int64, error) {
	b, err := f.MarshalBinary()
	if err != nil {
		return 0, err
	}

	if _, err := db.db.Exec("INSERT OR IGNORE INTO pattern (digest, name, width, height, cell_size, frame) VALUES (?, ?, ?, ?, ?, ?)", digest, name, f.Width, f.Height, f.CellSize, b); err != nil {
		return 0, err
	}

	var id int64
	if err := db.db.QueryRow("SELECT id FROM pattern WHERE digest = ? AND cell_size = ?", digest, f.CellSize).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// AddImage encodes the image in file with the given cell size and stores it,
// returning the digest of the file. Images already stored are not encoded
// again.
func (db *PatternDB) AddImage(file string, size int) (string, error) {
	m, digest, err := decodeFile(file)
	if err != nil {
		return "", err
	}

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM pattern WHERE digest = ? AND cell_size = ?", digest, size).Scan(&id); err {
	case sql.ErrNoRows:
		f, err := frame.New(bitmap.FromImage(m), size)
		if err != nil {
			return "", err
		}
		if _, err := db.Put(filepath.Base(file), digest, f); err != nil {
			return "", err
		}
		return digest, nil
	case nil:
		return digest, nil
	default:
		return "", err
	}
}

func unmarshalFrame(b []byte) (*frame.Frame, error) {
	f := new(frame.Frame)
	if err := f.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return f, nil
}

// FindByDigest returns the frame stored for digest and cell size, or nil if
// there isn't one.
func (db *PatternDB) FindByDigest(digest string, size int) (*frame.Frame, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT frame FROM pattern WHERE digest = ? AND cell_size = ?", digest, size).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return unmarshalFrame(b)
	default:
		return nil, err
	}
}

// FindByName returns every frame stored under name, oldest first.
func (db *PatternDB) FindByName(name string) ([]Entry, error) {
	rows, err := db.db.Query("SELECT id, digest, name, frame FROM pattern WHERE name = ? ORDER BY id", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var b []byte
		if err := rows.Scan(&e.ID, &e.Digest, &e.Name, &b); err != nil {
			return nil, err
		}
		if e.Frame, err = unmarshalFrame(b); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
