/*
Package grid implements the prime cell grid encoder and decoder.

An image is partitioned into square cells whose side length must be prime.
Each cell contributes one bit to the pattern, taken from the pixel in its
top-left corner, and cells are visited row by row from the top-left of the
image. Any rows or columns left over at the bottom or right edge once the
image has been divided into whole cells are not part of the pattern and
decode back to zero.
*/
package grid

import (
	"image"
	"image/color"
	"math"
)

// DefaultCellSize is the cell side length used when nothing else is chosen.
const DefaultCellSize = 7

// Palette is the color model of a Grid; index 1 is a set pixel.
var Palette = color.Palette{color.White, color.Black}

// Grid is a binary image stored row-major with its origin at the top-left.
// Only the value 1 counts as a set pixel.
type Grid struct {
	Pix    []uint8
	Stride int
	Width  int
	Height int
}

var _ image.PalettedImage = new(Grid)

// Reports whether a width by height buffer can be indexed with an int
func fits(width, height int) bool {
	return width >= 0 && height >= 0 && (height == 0 || width <= math.MaxInt/height)
}

// New returns a zero-filled Grid. Negative sizes, or sizes whose area does
// not fit in an int, give an empty Grid.
func New(width, height int) *Grid {
	if !fits(width, height) {
		width, height = 0, 0
	}
	return &Grid{
		Pix:    make([]uint8, width*height),
		Stride: width,
		Width:  width,
		Height: height,
	}
}

// FromRows builds a Grid from a slice of rows. The width is taken from the
// first row. Any value other than 1 is stored as 0.
func FromRows(rows [][]int) (*Grid, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}

	if !fits(width, height) {
		return nil, ErrInvalidDimensions
	}

	g := New(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, &RaggedRowError{Row: y, Got: len(row), Want: width}
		}
		for x, v := range row {
			if v == 1 {
				g.Pix[y*g.Stride+x] = 1
			}
		}
	}
	return g, nil
}

// Rows returns a freshly allocated copy of the Grid as a slice of rows.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.Height)
	for y := range rows {
		rows[y] = make([]int, g.Width)
		for x := range rows[y] {
			rows[y][x] = int(g.Pix[y*g.Stride+x])
		}
	}
	return rows
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// PixAt returns the raw value at (x, y), or 0 if out of bounds.
func (g *Grid) PixAt(x, y int) uint8 {
	if !g.inBounds(x, y) {
		return 0
	}
	return g.Pix[y*g.Stride+x]
}

// SetPix stores v at (x, y). Out of bounds writes are ignored.
func (g *Grid) SetPix(x, y int, v uint8) {
	if !g.inBounds(x, y) {
		return
	}
	g.Pix[y*g.Stride+x] = v
}

// ColorModel returns Palette.
func (g *Grid) ColorModel() color.Model {
	return Palette
}

// Bounds returns the Grid rectangle, always with its origin at (0, 0).
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// ColorIndexAt returns the Palette index of the pixel at (x, y).
func (g *Grid) ColorIndexAt(x, y int) uint8 {
	if g.PixAt(x, y) == 1 {
		return 1
	}
	return 0
}

// At returns the Palette color of the pixel at (x, y).
func (g *Grid) At(x, y int) color.Color {
	return Palette[g.ColorIndexAt(x, y)]
}

// Set stores c at (x, y), converted to the nearest Palette entry.
func (g *Grid) Set(x, y int, c color.Color) {
	g.SetPix(x, y, uint8(Palette.Index(c)))
}

// Cells returns the number of whole cells across and down an image of the
// given size. Partial cells at the right and bottom edges are dropped.
func Cells(width, height, size int) (int, int) {
	if size <= 0 || width <= 0 || height <= 0 {
		return 0, 0
	}
	return width / size, height / size
}
