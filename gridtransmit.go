/*
Package gridtransmit is a library for turning images into prime cell grid
patterns and keeping an archive of the results.

The transform itself lives in the grid package. This package adds reading
image files, an sqlite archive of encoded frames keyed by the digest of the
source file, and a concurrent scanner that archives every image found under a
directory.
*/
package gridtransmit

import (
	"io"
	"log/slog"

	"github.com/bodgit/gridtransmit/frame"
	"github.com/bodgit/gridtransmit/grid"
	"github.com/bodgit/gridtransmit/prime"
)

// Transmitter encodes and archives images using a fixed cell size.
type Transmitter struct {
	db       *PatternDB
	logger   *slog.Logger
	cellSize int
}

// New opens the archive in file and returns a Transmitter using cells of the
// given size. A nil logger discards everything.
func New(file string, logger *slog.Logger, size int) (*Transmitter, error) {
	if !prime.IsPrime(size) {
		return nil, &grid.InvalidParameterError{Size: size}
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	db, err := NewPatternDB(file)
	if err != nil {
		return nil, err
	}

	return &Transmitter{
		db:       db,
		logger:   logger,
		cellSize: size,
	}, nil
}

// Close closes the archive.
func (t *Transmitter) Close() error {
	return t.db.Close()
}

// Add archives the image in file and returns its frame.
func (t *Transmitter) Add(file string) (*frame.Frame, error) {
	digest, err := t.db.AddImage(file, t.cellSize)
	if err != nil {
		return nil, err
	}
	return t.db.FindByDigest(digest, t.cellSize)
}

// Lookup returns the archived frame for the image in file, or nil if it has
// not been archived with the current cell size.
func (t *Transmitter) Lookup(file string) (*frame.Frame, error) {
	digest, err := DigestFile(file)
	if err != nil {
		return nil, err
	}
	return t.db.FindByDigest(digest, t.cellSize)
}
