package uttt

// MoveIter produces a lazy, finite, non-restartable sequence of legal cell
// indices for the side to move, in ascending order. It allocates nothing
// beyond its own fixed-size fields, so it is meant to live on the caller's
// stack: declare a zero value and call Init.
type MoveIter struct {
	board     Board
	zones     [9]int
	zoneCount int
	zi        int
	cell      int
}

// Init resets it to iterate the legal moves of board.
func (it *MoveIter) Init(board Board) {
	it.board = board
	it.zi = 0
	it.cell = 0

	if board.Terminal() {
		it.zoneCount = 0
		return
	}

	nz := board.NextZone()
	if nz == ZoneAny {
		for z := 0; z < 9; z++ {
			it.zones[z] = z
		}
		it.zoneCount = 9
		return
	}
	it.zones[0] = nz
	it.zoneCount = 1
}

// Next returns the next legal cell and true, or (81, false) once the
// sequence is exhausted.
func (it *MoveIter) Next() (int, bool) {
	for it.zi < it.zoneCount {
		zone := it.zones[it.zi]
		metaX, metaO := it.board.MetaWon(zone)
		if metaX || metaO {
			it.zi++
			it.cell = 0
			continue
		}
		for it.cell < 9 {
			cell := zone*9 + it.cell
			it.cell++
			if it.board.CellOwner(cell) == 0 {
				return cell, true
			}
		}
		it.zi++
		it.cell = 0
	}
	return NullMove, false
}

// NullMove is the PV sentinel for "no move".
const NullMove = 81
