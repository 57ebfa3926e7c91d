package grid

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeZero(t *testing.T) {
	g, err := Decode("0000", 14, 14, 7)
	require.NoError(t, err)
	require.Equal(t, 14, g.Width)
	require.Equal(t, 14, g.Height)
	for _, v := range g.Pix {
		assert.Equal(t, uint8(0), v)
	}
}

func TestDecodeBlocks(t *testing.T) {
	g, err := Decode("1001", 14, 14, 7)
	require.NoError(t, err)

	for y := 0; y < 14; y++ {
		for x := 0; x < 14; x++ {
			want := uint8(0)
			if (x < 7) == (y < 7) {
				want = 1
			}
			assert.Equal(t, want, g.PixAt(x, y), "(%d, %d)", x, y)
		}
	}
}

func TestDecodeRemainder(t *testing.T) {
	g, err := Decode("111000", 11, 8, 3)
	require.NoError(t, err)
	require.Len(t, g.Rows(), 8)

	for y := 0; y < 8; y++ {
		for x := 0; x < 11; x++ {
			want := uint8(0)
			if x < 9 && y < 3 {
				want = 1
			}
			assert.Equal(t, want, g.PixAt(x, y), "(%d, %d)", x, y)
		}
	}
}

func TestDecodeNoCells(t *testing.T) {
	g, err := Decode("", 6, 20, 7)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Width)
	assert.Equal(t, 20, g.Height)
	assert.Len(t, g.Pix, 120)

	g, err = Decode("", 0, 0, 7)
	require.NoError(t, err)
	assert.Empty(t, g.Pix)
}

func TestDecodeInvalidParameter(t *testing.T) {
	for _, size := range []int{1, 4, 6, 9} {
		g, err := Decode("", 14, 14, size)
		require.ErrorIs(t, err, ErrInvalidParameter)
		assert.Nil(t, g)
	}

	// The cell size is checked before the pattern
	_, err := Decode("xyz", 14, 14, 4)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDecodeLengthMismatch(t *testing.T) {
	g, err := Decode("000", 14, 14, 7)
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.Nil(t, g)

	var lerr *LengthMismatchError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 3, lerr.Got)
	assert.Equal(t, 4, lerr.Want)
	assert.Equal(t, "grid: pattern length 3 does not match expected 4", err.Error())
}

func TestDecodeInvalidSymbol(t *testing.T) {
	g, err := Decode("01x1", 14, 14, 7)
	require.ErrorIs(t, err, ErrInvalidSymbol)
	assert.Nil(t, g)

	var serr *SymbolError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 2, serr.Offset)
	assert.Equal(t, byte('x'), serr.Symbol)
}

func TestDecodeInvalidDimensions(t *testing.T) {
	tables := []struct {
		pattern              string
		width, height, size int
	}{
		{"", -7, 14, 7},
		{"", 14, -7, 7},
		// Cell count wraps to zero
		{"", 7 << (strconv.IntSize / 2), 7 << (strconv.IntSize / 2), 7},
		// Cell count wraps to eight
		{"11111111", 1<<(strconv.IntSize-2) + 2, 16, 2},
		{"", math.MaxInt, 2, 7},
	}

	for _, table := range tables {
		g, err := Decode(table.pattern, table.width, table.height, table.size)
		require.ErrorIs(t, err, ErrInvalidDimensions, "%dx%d", table.width, table.height)
		assert.Nil(t, g)
	}

	// Large but representable dimensions are still fine
	g, err := Decode("", math.MaxInt, 0, 7)
	require.NoError(t, err)
	assert.Empty(t, g.Pix)
}

func TestRoundTrip(t *testing.T) {
	tables := []struct {
		width, height, size int
	}{
		{14, 14, 7},
		{23, 17, 5},
		{10, 10, 2},
		{9, 30, 3},
		{4, 4, 13},
	}

	for _, table := range tables {
		// Pseudo-random but deterministic content
		g := New(table.width, table.height)
		for i := range g.Pix {
			g.Pix[i] = uint8((i*7 + i/3) % 2)
		}

		p, err := Encode(g, table.size)
		require.NoError(t, err)

		cellsX, cellsY := Cells(table.width, table.height, table.size)
		require.Len(t, p, cellsX*cellsY)

		d, err := Decode(p, table.width, table.height, table.size)
		require.NoError(t, err)

		for y := 0; y < table.height; y++ {
			for x := 0; x < table.width; x++ {
				cx, cy := x/table.size, y/table.size
				want := uint8(0)
				if cx < cellsX && cy < cellsY {
					want = g.PixAt(cx*table.size, cy*table.size)
				}
				assert.Equal(t, want, d.PixAt(x, y), "%v (%d, %d)", table, x, y)
			}
		}

		again, err := Encode(d, table.size)
		require.NoError(t, err)
		assert.Equal(t, p, again)
	}
}

func TestDecodeLarge(t *testing.T) {
	p := strings.Repeat("10", 50)
	g, err := Decode(p, 70, 70, 7)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), g.PixAt(6, 69))
	assert.Equal(t, uint8(0), g.PixAt(7, 69))
}
