package grid

import "strings"

// Render draws g as a bordered rectangle: '#' for Alive, ' ' for Dead.
//
//	+---+
//	| # |
//	|  #|
//	|###|
//	+---+
func Render(g *Grid) string {
	var b strings.Builder
	b.Grow((g.width + 3) * (g.height + 2))

	writeBorder(&b, g.width)
	for y := 0; y < g.height; y++ {
		b.WriteByte('|')
		for _, c := range g.cells[y*g.width : (y+1)*g.width] {
			if c == Alive {
				b.WriteByte('#')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString("|\n")
	}
	writeBorder(&b, g.width)

	return b.String()
}

func writeBorder(b *strings.Builder, width int) {
	b.WriteByte('+')
	b.WriteString(strings.Repeat("-", width))
	b.WriteString("+\n")
}
