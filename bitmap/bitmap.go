/*
Package bitmap adapts decoded images into binary grids.

An image with no more than two distinct colors is used as is. Anything else is
reduced to two colors with a median cut quantizer. Every pixel nearest the
darker of the two colors then becomes a set pixel. An image where every color
has the same brightness is either entirely set, when it is dark, or entirely
clear. The resulting grid always has its origin at (0, 0) regardless of the
bounds of the source image.
*/
package bitmap

import (
	"image"
	"image/color"

	"github.com/bodgit/gridtransmit/grid"
	"github.com/ericpauley/go-quantize/quantize"
)

const halfLuma = 0x80

func luma(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// Return the indices of the darkest and lightest colors in a given palette
func extremes(p color.Palette) (int, int) {
	var dark, light int
	for i, c := range p {
		if luma(c) < luma(p[dark]) {
			dark = i
		}
		if luma(c) > luma(p[light]) {
			light = i
		}
	}
	return dark, light
}

// Distinct colors in m, stopping once there are more than limit
func uniqueColors(m image.Image, limit int) color.Palette {
	b := m.Bounds()
	seen := make(map[color.Color]struct{})
	p := make(color.Palette, 0, limit+1)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.At(x, y)
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			if p = append(p, c); len(p) > limit {
				return p
			}
		}
	}
	return p
}

func reduce(m image.Image) color.Palette {
	if p, ok := m.ColorModel().(color.Palette); ok && len(p) <= 2 {
		return p
	}
	if p := uniqueColors(m, 2); len(p) <= 2 {
		return p
	}
	q := quantize.MedianCutQuantizer{}
	return q.Quantize(make(color.Palette, 0, 2), m)
}

// FromImage converts m into a Grid with one pixel per image pixel.
func FromImage(m image.Image) *grid.Grid {
	b := m.Bounds()
	g := grid.New(b.Dx(), b.Dy())
	if b.Empty() {
		return g
	}

	p := reduce(m)
	if len(p) == 0 {
		return g
	}

	dark, light := extremes(p)
	if luma(p[dark]) == luma(p[light]) {
		if luma(p[dark]) < halfLuma {
			for i := range g.Pix {
				g.Pix[i] = 1
			}
		}
		return g
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if p.Index(m.At(x, y)) == dark {
				g.SetPix(x-b.Min.X, y-b.Min.Y, 1)
			}
		}
	}

	return g
}

// Threshold converts m into a Grid where every pixel with a luma below level
// becomes a set pixel.
func Threshold(m image.Image, level uint8) *grid.Grid {
	b := m.Bounds()
	g := grid.New(b.Dx(), b.Dy())

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if luma(m.At(x, y)) < level {
				g.SetPix(x-b.Min.X, y-b.Min.Y, 1)
			}
		}
	}

	return g
}
