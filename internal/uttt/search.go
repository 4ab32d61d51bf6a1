package uttt

// PV is a fixed-capacity principal variation: 81 cell indices, with
// NullMove marking unused slots. Slot k holds the move chosen at depth
// max_depth-k from the root.
type PV [81]int

func nullPV() PV {
	var pv PV
	for i := range pv {
		pv[i] = NullMove
	}
	return pv
}

// Search runs a fixed-depth alpha-beta negamax from board with the given
// side to move, using the canonical root window (-1000000, 1000000).
func Search(board Board, side Side, maxDepth int, t *Tables) (int, PV) {
	return AlphaBeta(board, side, maxDepth, OutcomeLoss, OutcomeWin, t, maxDepth)
}

// AlphaBeta is the core negamax: a deterministic, fixed-depth,
// single-threaded fail-hard alpha-beta search with mate-distance scaling
// applied only at true terminal (no-move) nodes.
func AlphaBeta(board Board, side Side, depth, alpha, beta int, t *Tables, maxDepth int) (int, PV) {
	if depth == 0 {
		return Evaluate(board, side, t), nullPV()
	}

	var it MoveIter
	it.Init(board)

	cell, ok := it.Next()
	if !ok {
		metaUs := (board.Share >> metaXBit) & Chunk
		metaThem := (board.Share >> metaOBit) & Chunk
		e := toggleEval(side, t.Large[(metaThem<<9)|metaUs])
		ply := maxDepth - depth
		switch e {
		case OutcomeWin:
			return e - ply, nullPV()
		case OutcomeLoss:
			return e + ply, nullPV()
		default:
			return 0, nullPV()
		}
	}

	best := nullPV()
	ply := maxDepth - depth

	for ; ok; cell, ok = it.Next() {
		child := PlayMove(board, cell, side)
		score, childPV := AlphaBeta(child, side.Other(), depth-1, -beta, -alpha, t, maxDepth)
		score = -score
		childPV[ply] = cell

		if score >= beta {
			return beta, childPV
		}
		if score > alpha {
			alpha = score
			best = childPV
		}
	}

	return alpha, best
}
