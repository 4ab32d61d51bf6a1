package uttt

import (
	"strings"
)

// Pretty renders board as a human-readable 9x9 grid with zone separators,
// followed by a meta-grid summary line and the next-zone constraint.
func Pretty(board Board) string {
	var sb strings.Builder
	for r := 0; r < 9; r++ {
		i := (r / 3) * 27
		j := (r % 3) * 3
		var line strings.Builder
		for bi, k := range [3]int{0, 9, 18} {
			base := i + j + k
			for c := 0; c < 3; c++ {
				line.WriteByte(cellChar(board, base+c))
				if c < 2 {
					line.WriteByte('|')
				}
			}
			if bi < 2 {
				line.WriteString("||")
			}
		}
		sb.WriteString(line.String())
		sb.WriteByte('\n')
		if r == 2 || r == 5 {
			sb.WriteString(strings.Repeat("=", len(line.String())))
			sb.WriteByte('\n')
		} else if r != 8 {
			sb.WriteString("-+-+-++-+-+-++-+-+-\n")
		}
	}

	sb.WriteString("META: ")
	for z := 0; z < 9; z++ {
		x, o := board.MetaWon(z)
		switch {
		case x:
			sb.WriteByte('x')
		case o:
			sb.WriteByte('o')
		default:
			sb.WriteByte('.')
		}
	}
	sb.WriteByte('\n')

	sb.WriteString("ZONE: ")
	nz := board.NextZone()
	if nz == ZoneAny {
		sb.WriteString("any")
	} else {
		sb.WriteString(ZoneNames[nz])
	}
	sb.WriteByte('\n')

	return sb.String()
}
