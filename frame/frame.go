/*
Package frame implements a self-describing binary container for grid
patterns.

A frame is written as a four byte magic string, the image width and height as
little-endian 32-bit values, the cell size as a single byte, and then the
pattern packed eight cells to a byte with the first cell in the most
significant bit. The final byte is padded with zero bits. An xxHash64 digest
of everything before it closes the frame as a little-endian 64-bit value.
*/
package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bodgit/gridtransmit/grid"
	"github.com/bodgit/gridtransmit/prime"
	"github.com/cespare/xxhash/v2"
)

const (
	magic       = "GTX1"
	headerSize  = len(magic) + 4 + 4 + 1
	trailerSize = 8
)

// MaxPixels is the largest width times height a frame may describe.
const MaxPixels = 1 << 28

var (
	// ErrBadMagic is returned when the data does not start with a frame
	ErrBadMagic = errors.New("frame: bad magic")
	// ErrChecksum is returned when the digest does not match the contents
	ErrChecksum = errors.New("frame: checksum mismatch")
	// ErrShort is returned when the data ends before the frame does
	ErrShort = errors.New("frame: not enough data")
	// ErrTrailing is returned when there is data after the frame
	ErrTrailing = errors.New("frame: too much data")
	// ErrTooLarge is returned when a dimension does not fit the header or
	// the image would exceed MaxPixels
	ErrTooLarge = errors.New("frame: dimension too large")
	// ErrPadding is returned when the unused bits of the last pattern byte
	// are not zero
	ErrPadding = errors.New("frame: non-zero padding")
)

func checkSize(width, height uint64) error {
	if width > MaxPixels || height > MaxPixels || width*height > MaxPixels {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	return nil
}

// Frame is a pattern together with the geometry needed to decode it. It
// implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces.
type Frame struct {
	Width    int
	Height   int
	CellSize int
	Pattern  string
}

// New encodes m with the given cell size and returns the resulting Frame.
func New(m *grid.Grid, size int) (*Frame, error) {
	p, err := grid.Encode(m, size)
	if err != nil {
		return nil, err
	}

	f := &Frame{CellSize: size, Pattern: p}
	if m != nil {
		f.Width, f.Height = m.Width, m.Height
	}
	return f, nil
}

// Validate checks the Frame is something that can be marshalled and decoded.
func (f *Frame) Validate() error {
	if !prime.IsPrime(f.CellSize) {
		return &grid.InvalidParameterError{Size: f.CellSize}
	}
	if f.CellSize > math.MaxUint8 {
		return fmt.Errorf("%w: cell size %d", ErrTooLarge, f.CellSize)
	}
	if f.Width < 0 || f.Height < 0 {
		return grid.ErrInvalidDimensions
	}
	if err := checkSize(uint64(f.Width), uint64(f.Height)); err != nil {
		return err
	}

	cellsX, cellsY := grid.Cells(f.Width, f.Height, f.CellSize)
	if want := cellsX * cellsY; len(f.Pattern) != want {
		return &grid.LengthMismatchError{Got: len(f.Pattern), Want: want}
	}

	if i := strings.IndexFunc(f.Pattern, func(r rune) bool { return r != '0' && r != '1' }); i >= 0 {
		return &grid.SymbolError{Offset: i, Symbol: f.Pattern[i]}
	}

	return nil
}

// Grid decodes the pattern back into a Grid.
func (f *Frame) Grid() (*grid.Grid, error) {
	return grid.Decode(f.Pattern, f.Width, f.Height, f.CellSize)
}

// MarshalBinary encodes the Frame into binary form and returns the result
func (f *Frame) MarshalBinary() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	b := new(bytes.Buffer)
	b.Grow(headerSize + (len(f.Pattern)+7)>>3 + trailerSize)

	b.WriteString(magic)

	header := struct {
		Width    uint32
		Height   uint32
		CellSize uint8
	}{
		uint32(f.Width),
		uint32(f.Height),
		uint8(f.CellSize),
	}
	if err := binary.Write(b, binary.LittleEndian, &header); err != nil {
		return nil, err
	}

	// Pack the cells, first cell in the most significant bit
	var c byte
	for i := 0; i < len(f.Pattern); i++ {
		if f.Pattern[i] == '1' {
			c |= 0x80 >> (i & 7)
		}
		if i&7 == 7 {
			b.WriteByte(c)
			c = 0
		}
	}
	if len(f.Pattern)&7 != 0 {
		b.WriteByte(c)
	}

	if err := binary.Write(b, binary.LittleEndian, xxhash.Sum64(b.Bytes())); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the Frame from binary form
func (f *Frame) UnmarshalBinary(b []byte) error {
	if len(b) < headerSize+trailerSize {
		if len(b) >= len(magic) && string(b[:len(magic)]) != magic {
			return ErrBadMagic
		}
		return ErrShort
	}
	if string(b[:len(magic)]) != magic {
		return ErrBadMagic
	}

	width := binary.LittleEndian.Uint32(b[4:])
	height := binary.LittleEndian.Uint32(b[8:])
	size := int(b[12])

	if !prime.IsPrime(size) {
		return &grid.InvalidParameterError{Size: size}
	}
	if err := checkSize(uint64(width), uint64(height)); err != nil {
		return err
	}

	cellsX, cellsY := grid.Cells(int(width), int(height), size)
	cells := cellsX * cellsY
	n := headerSize + (cells+7)>>3

	switch {
	case len(b) < n+trailerSize:
		return ErrShort
	case len(b) > n+trailerSize:
		return ErrTrailing
	}

	if xxhash.Sum64(b[:n]) != binary.LittleEndian.Uint64(b[n:]) {
		return ErrChecksum
	}

	// Only one encoding of each pattern is accepted
	if pad := cells & 7; pad != 0 && b[n-1]&(0xff>>pad) != 0 {
		return ErrPadding
	}

	var sb strings.Builder
	sb.Grow(cells)
	for i := 0; i < cells; i++ {
		if b[headerSize+i>>3]&(0x80>>(i&7)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	f.Width = int(width)
	f.Height = int(height)
	f.CellSize = size
	f.Pattern = sb.String()

	return nil
}
