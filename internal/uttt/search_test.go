package uttt

import "testing"

func TestSearchDepthZeroIsStaticEval(t *testing.T) {
	tables := BuildTables()
	b := NewBoard()
	b = PlayMove(b, 4, SideX)

	score, pv := AlphaBeta(b, SideO, 0, OutcomeLoss, OutcomeWin, tables, 0)
	if want := Evaluate(b, SideO, tables); score != want {
		t.Fatalf("depth-0 search should equal static eval: got %d want %d", score, want)
	}
	for i, m := range pv {
		if m != NullMove {
			t.Fatalf("depth-0 PV should be all-null, found %d at slot %d", m, i)
		}
	}
}

// TestSearchEmptyBoardDepthOneMatchesBruteForce checks the empty-board,
// depth-1 case against a brute-force scan over every first move,
// ascending order breaking ties.
func TestSearchEmptyBoardDepthOneMatchesBruteForce(t *testing.T) {
	tables := BuildTables()
	empty := NewBoard()

	bestScore := OutcomeLoss - 1
	bestMove := NullMove
	for m := 0; m < 81; m++ {
		child := PlayMove(empty, m, SideX)
		s := -Evaluate(child, SideO, tables)
		if s > bestScore {
			bestScore = s
			bestMove = m
		}
	}

	score, pv := Search(empty, SideX, 1, tables)
	if score != bestScore {
		t.Fatalf("search score %d does not match brute-force best %d", score, bestScore)
	}
	if pv[0] != bestMove {
		t.Fatalf("PV[0] = %d, want brute-force best move %d", pv[0], bestMove)
	}
}

// TestSearchFixedDepthIsReproducible runs the same fixed-depth search
// twice and requires bitwise-identical (score, pv).
func TestSearchFixedDepthIsReproducible(t *testing.T) {
	tables := BuildTables()
	empty := NewBoard()

	score1, pv1 := Search(empty, SideX, 4, tables)
	score2, pv2 := Search(empty, SideX, 4, tables)

	if score1 != score2 {
		t.Fatalf("non-reproducible score: %d vs %d", score1, score2)
	}
	if pv1 != pv2 {
		t.Fatalf("non-reproducible PV: %v vs %v", pv1, pv2)
	}
	t.Logf("depth-4 score=%d pv[0..4]=%v", score1, pv1[:4])
}

// TestSearchPVPlayability replays the non-null moves of a returned PV from
// the root and ensures every one is legal when it is made.
func TestSearchPVPlayability(t *testing.T) {
	tables := BuildTables()
	board := NewBoard()
	side := SideX

	_, pv := Search(board, side, 3, tables)

	for depth, mv := range pv {
		if mv == NullMove {
			break
		}
		if !isLegal(board, mv) {
			t.Fatalf("PV move %d (%s) illegal at ply %d, board=%+v", mv, MoveString(mv), depth, board)
		}
		board = PlayMove(board, mv, side)
		side = side.Other()
	}
}

func isLegal(board Board, cell int) bool {
	var it MoveIter
	it.Init(board)
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		if c == cell {
			return true
		}
	}
	return false
}

// TestSearchMateDistance builds a one-move-from-meta-win position and
// checks that the search reports a win score scaled by the mate distance.
func TestSearchMateDistance(t *testing.T) {
	tables := BuildTables()

	// X has won zones NW and N (bits 0,1) and is one cell away from
	// winning zone NE (bit 2) outright via a line in that zone, with the
	// next zone unconstrained so X can play there immediately.
	b := NewBoard()
	b.Share |= 1<<uint(metaXBit+0) | 1<<uint(metaXBit+1)
	b = PlayMove(b, 18, SideX) // zone NE intra 0
	b = PlayMove(b, 19, SideX) // zone NE intra 1 (direct play_move, bypassing turn order, to set up the fixture)

	score, pv := Search(b, SideX, 2, tables)
	if score < OutcomeWin-2 {
		t.Fatalf("expected a near-mate score, got %d", score)
	}
	if pv[0] == NullMove {
		t.Fatalf("expected a concrete mating move in the PV")
	}
}
