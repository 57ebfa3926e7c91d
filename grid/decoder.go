package grid

import (
	"github.com/bodgit/gridtransmit/prime"
)

type decoder struct {
	pattern       string
	width, height int
	size          int

	cellsX, cellsY int

	m *Grid
}

func (d *decoder) validate() error {
	if !prime.IsPrime(d.size) {
		return &InvalidParameterError{Size: d.size}
	}
	// The cell count can't overflow once the pixel count doesn't
	if !fits(d.width, d.height) {
		return ErrInvalidDimensions
	}

	d.cellsX, d.cellsY = Cells(d.width, d.height, d.size)

	if want := d.cellsX * d.cellsY; len(d.pattern) != want {
		return &LengthMismatchError{Got: len(d.pattern), Want: want}
	}

	for i := 0; i < len(d.pattern); i++ {
		if c := d.pattern[i]; c != '0' && c != '1' {
			return &SymbolError{Offset: i, Symbol: c}
		}
	}

	return nil
}

func (d *decoder) decode() error {
	if err := d.validate(); err != nil {
		return err
	}

	d.m = New(d.width, d.height)

	if d.cellsX == 0 {
		return nil
	}

	for i := 0; i < len(d.pattern); i++ {
		if d.pattern[i] != '1' {
			continue
		}

		cx := i % d.cellsX
		cy := i / d.cellsX

		for dy := 0; dy < d.size; dy++ {
			y := cy*d.size + dy
			if y >= d.height {
				break
			}
			for dx := 0; dx < d.size; dx++ {
				x := cx*d.size + dx
				if x >= d.width {
					break
				}
				d.m.Pix[y*d.m.Stride+x] = 1
			}
		}
	}

	return nil
}

// Decode rebuilds a width by height Grid from pattern, filling each cell of
// the given size with its bit. Nothing is allocated unless the size, the
// dimensions and every pattern symbol are valid.
func Decode(pattern string, width, height, size int) (*Grid, error) {
	d := decoder{
		pattern: pattern,
		width:   width,
		height:  height,
		size:    size,
	}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.m, nil
}
