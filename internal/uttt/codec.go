package uttt

import (
	"fmt"
	"strconv"
	"strings"
)

// ZoneNames gives the lowercase name of each zone, indexed NW=0 .. SE=8.
var ZoneNames = [9]string{"nw", "n", "ne", "w", "c", "e", "sw", "s", "se"}

func zoneIndex(name string) (int, bool) {
	for i, n := range ZoneNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// MoveString renders cell in "<zone>/<square>" form, e.g. "c/se".
func MoveString(cell int) string {
	return ZoneNames[cell/9] + "/" + ZoneNames[cell%9]
}

// ParseMove parses a "<zone>/<square>" token into a cell index.
func ParseMove(s string) (int, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("uttt: malformed move %q", s)
	}
	zone, ok := zoneIndex(parts[0])
	if !ok {
		return 0, fmt.Errorf("uttt: unknown zone %q", parts[0])
	}
	square, ok := zoneIndex(parts[1])
	if !ok {
		return 0, fmt.Errorf("uttt: unknown square %q", parts[1])
	}
	return zone*9 + square, nil
}

// BoardString renders board as "row0/row1/.../row8 zone", each row nine
// characters from {x,o,.} with runs of '.' compressed to a length digit.
// Row r interleaves the three zones of the corresponding meta-grid band,
// matching the cell order i+{0,27,54}, j+{0,3,6}, k+{0,9,18}.
func BoardString(board Board) string {
	rows := make([]string, 9)
	for r := 0; r < 9; r++ {
		i := (r / 3) * 27
		j := (r % 3) * 3
		var raw strings.Builder
		for _, k := range [3]int{0, 9, 18} {
			base := i + j + k
			for c := 0; c < 3; c++ {
				raw.WriteByte(cellChar(board, base+c))
			}
		}
		rows[r] = compressDots(raw.String())
	}

	zone := board.NextZone()
	zoneName := "any"
	if zone != ZoneAny {
		zoneName = ZoneNames[zone]
	}
	return strings.Join(rows, "/") + " " + zoneName
}

func cellChar(board Board, cell int) byte {
	switch board.CellOwner(cell) {
	case 1:
		return 'x'
	case 2:
		return 'o'
	default:
		return '.'
	}
}

func compressDots(row string) string {
	var out strings.Builder
	run := 0
	flush := func() {
		if run > 0 {
			out.WriteByte('0' + byte(run))
			run = 0
		}
	}
	for i := 0; i < len(row); i++ {
		if row[i] == '.' {
			run++
			continue
		}
		flush()
		out.WriteByte(row[i])
	}
	flush()
	return out.String()
}

func expandDots(row string) (string, error) {
	var out strings.Builder
	for i := 0; i < len(row); i++ {
		c := row[i]
		switch {
		case c == 'x' || c == 'o':
			out.WriteByte(c)
		case c >= '1' && c <= '9':
			for n := 0; n < int(c-'0'); n++ {
				out.WriteByte('.')
			}
		default:
			return "", fmt.Errorf("uttt: invalid board row character %q", c)
		}
	}
	if out.Len() != 9 {
		return "", fmt.Errorf("uttt: board row %q does not expand to 9 cells", row)
	}
	return out.String(), nil
}

// DecodeBoard parses the BoardString form back into a Board. Meta-win
// bits are recomputed from cell occupancy rather than taken from the
// text, so encode(decode(s)) is idempotent even though decode never
// trusts a serialized meta bit.
func DecodeBoard(s string) (Board, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Board{}, fmt.Errorf("uttt: malformed board string %q", s)
	}
	rowField, zoneField := fields[0], fields[1]

	rows := strings.Split(rowField, "/")
	if len(rows) != 9 {
		return Board{}, fmt.Errorf("uttt: expected 9 rows, got %d", len(rows))
	}

	var board Board
	for r, row := range rows {
		expanded, err := expandDots(row)
		if err != nil {
			return Board{}, err
		}
		i := (r / 3) * 27
		j := (r % 3) * 3
		pos := 0
		for _, k := range [3]int{0, 9, 18} {
			base := i + j + k
			for c := 0; c < 3; c++ {
				cell := base + c
				switch expanded[pos] {
				case 'x':
					board = setCell(board, cell, SideX)
				case 'o':
					board = setCell(board, cell, SideO)
				}
				pos++
			}
		}
	}

	for zone := 0; zone < 9; zone++ {
		us, them := board.zoneGrids(zone)
		if linePresence(us) {
			board.Share |= 1 << uint(metaXBit+zone)
		}
		if linePresence(them) {
			board.Share |= 1 << uint(metaOBit+zone)
		}
	}

	var nextZone int
	if zoneField == "any" {
		nextZone = ZoneAny
	} else {
		z, ok := zoneIndex(zoneField)
		if !ok {
			return Board{}, fmt.Errorf("uttt: unknown zone token %q", zoneField)
		}
		nextZone = z
	}
	board.Share &^= uint64(nextZoneMask) << nextZoneBit
	board.Share |= uint64(nextZone) << nextZoneBit

	return board, nil
}

// setCell sets a single cell bit without touching meta bits or the
// next-zone field; used only by DecodeBoard, which recomputes both
// afterward.
func setCell(board Board, cell int, side Side) Board {
	if cell >= 63 {
		bit := uint(cell - 63)
		if side == SideO {
			bit += 18
		}
		board.Share |= 1 << bit
	} else if side == SideX {
		board.Us |= 1 << uint(cell)
	} else {
		board.Them |= 1 << uint(cell)
	}
	return board
}

// ScoreString renders score as "W<k>" (mover forced-winning in k plies),
// "L<k>" (mover forced-losing in k plies), "D0" (exactly drawn), or the
// signed decimal value otherwise.
func ScoreString(score, maxDepth int) string {
	if score >= OutcomeWin-maxDepth {
		return fmt.Sprintf("W%d", OutcomeWin-score)
	}
	if score <= OutcomeLoss+maxDepth {
		return fmt.Sprintf("L%d", score-OutcomeLoss)
	}
	if score == 0 {
		return "D0"
	}
	return strconv.Itoa(score)
}
