package uttt

import "math/bits"

// Evaluate scores board from side's point of view: positive is good for
// the mover. The meta grid is looked up first; a decided meta grid or a
// full, undecided one short-circuits the per-zone sum.
func Evaluate(board Board, side Side, t *Tables) int {
	metaUs := (board.Share >> metaXBit) & Chunk
	metaThem := (board.Share >> metaOBit) & Chunk
	large := t.Large[(metaThem<<9)|metaUs]

	if large == OutcomeWin || large == OutcomeLoss {
		return toggleEval(side, large)
	}

	if ((board.Share>>metaXBit)|(board.Share>>metaOBit))&Chunk == Chunk {
		return 0
	}

	total := large
	for zone := 0; zone < 9; zone++ {
		metaX, metaO := board.MetaWon(zone)
		if metaX || metaO {
			continue
		}
		us, them := board.zoneGrids(zone)
		if bits.OnesCount64(us|them) == 9 {
			continue
		}
		total += t.Small[(them<<9)|us]
	}

	return toggleEval(side, total)
}
