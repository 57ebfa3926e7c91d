package main

import (
	"bufio"
	"io"

	"github.com/bodgit/gridtransmit/grid"
)

// Indexed by top pixel << 1 | bottom pixel
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// Render g two pixel rows to a line using half block characters
func preview(w io.Writer, g *grid.Grid) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < g.Height; y += 2 {
		for x := 0; x < g.Width; x++ {
			// PixAt is zero below the last row
			bw.WriteString(halfBlocks[g.ColorIndexAt(x, y)<<1|g.ColorIndexAt(x, y+1)])
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
