package grid

import (
	"strings"

	"github.com/bodgit/gridtransmit/prime"
)

type encoder struct {
	m    *Grid
	size int

	sb strings.Builder
}

func (e *encoder) encode() string {
	cellsX, cellsY := Cells(e.m.Width, e.m.Height, e.size)
	e.sb.Grow(cellsX * cellsY)

	for cy := 0; cy < cellsY; cy++ {
		for cx := 0; cx < cellsX; cx++ {
			// Only the top-left pixel of each cell is sampled
			if e.m.PixAt(cx*e.size, cy*e.size) == 1 {
				e.sb.WriteByte('1')
			} else {
				e.sb.WriteByte('0')
			}
		}
	}

	return e.sb.String()
}

// Encode returns the pattern for m using cells of the given size. A nil or
// empty Grid encodes to the empty pattern.
func Encode(m *Grid, size int) (string, error) {
	if !prime.IsPrime(size) {
		return "", &InvalidParameterError{Size: size}
	}
	if m == nil {
		return "", nil
	}

	e := encoder{m: m, size: size}

	return e.encode(), nil
}
