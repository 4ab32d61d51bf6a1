// Package uttt implements the Ultimate Tic-Tac-Toe search kernel: the packed
// bitboard representation, the precomputed sub-grid evaluation tables, the
// legal-move generator, and the fail-hard alpha-beta negamax search.
package uttt

import "math/bits"

// Outcome scores, from X's perspective before any side-relative negation.
const (
	OutcomeWin  = 1000000
	OutcomeDraw = 0
	OutcomeLoss = -1000000
)

// Line-completion scores used by the table builder.
const (
	bigTwoCount   = 90
	bigOneCount   = 20
	smallTwoCount = 8
	smallOneCount = 1
)

// Positional weights for the table builder's pos_score term.
const (
	weightCentre = 9
	weightCorner = 7
	weightEdge   = 5
)

// ZoneAny marks the "no constraint" next-zone field value.
const ZoneAny = 9

// Chunk is a fully-occupied 9-bit sub-grid.
const Chunk = 0b111111111

// cornerMask, edgeMask and centreMask pick out the corner/edge/centre cells
// of a 3x3 sub-grid (NW,NE,SW,SE / N,W,E,S / C).
const (
	cornerMask = 0b101_000_101
	edgeMask   = 0b010_101_010
	centreMask = 0b000_010_000
)

// lineMultiplier[i] fans bit i of a 9-bit grid out into the 24-bit
// per-line occupancy word returned by lines. Each destination bit belongs
// to exactly one source bit, so a sum of masked multiples never carries
// and the whole computation is branch-free.
var lineMultiplier = [9]uint64{
	262657, // cell 0: lines {0,3,6} {0,1,2} {0,4,8}
	1032,   // cell 1: lines {1,4,7} {0,1,2}
	2099264, // cell 2: lines {2,5,8} {0,1,2} {2,4,6}
	4098,   // cell 3: lines {0,3,6} {3,4,5}
	4726800, // cell 4: lines {1,4,7} {3,4,5} {0,4,8} {2,4,6}
	16512,  // cell 5: lines {2,5,8} {3,4,5}
	8421380, // cell 6: lines {0,3,6} {6,7,8} {2,4,6}
	65568,  // cell 7: lines {1,4,7} {6,7,8}
	1179904, // cell 8: lines {2,5,8} {6,7,8} {0,4,8}
}

// lines maps a 9-bit sub-grid occupancy to a 24-bit value partitioned into
// eight 3-bit fields, one per winning line: {0,3,6} {1,4,7} {2,5,8} {0,1,2}
// {3,4,5} {6,7,8} {0,4,8} {2,4,6}, least-significant field first.
func lines(grid uint64) uint64 {
	var out uint64
	for i := 0; i < 9; i++ {
		out += ((grid >> uint(i)) & 1) * lineMultiplier[i]
	}
	return out
}

// lineFieldsFull is a mask picking the low bit of every 3-bit field in a
// lines() result; used by linePresence to detect a completed line without
// branching over all eight fields individually.
const lineFieldsFull = 0b001001001001001001001001

// linePresence reports whether any of the eight lines of grid is fully
// occupied.
func linePresence(grid uint64) bool {
	v := lines(grid)
	t := v & (v >> 1) & (v >> 2)
	return t&lineFieldsFull != 0
}

// Tables holds the two precomputed, read-only sub-grid evaluation tables.
// EVAL_LARGE and EVAL_SMALL are keyed by (them<<9)|us, each half a 9-bit
// sub-grid occupancy.
type Tables struct {
	Large [262144]int32
	Small [262144]int32
}

// BuildTables constructs both evaluation tables by exhaustively scoring
// every (us, them) sub-grid pair. It runs once at startup; the result is
// immutable thereafter.
func BuildTables() *Tables {
	t := &Tables{}
	for us := 0; us < 512; us++ {
		for them := 0; them < 512; them++ {
			idx := (them << 9) | us
			if us&them != 0 {
				// Geometrically impossible; callers never index here.
				continue
			}
			t.Large[idx], t.Small[idx] = scoreSubgrid(uint64(us), uint64(them))
		}
	}
	return t
}

var lineValueLarge = [4]int{0, bigOneCount, bigTwoCount, 0}
var lineValueSmall = [4]int{0, smallOneCount, smallTwoCount, 0}

func scoreSubgrid(us, them uint64) (int32, int32) {
	usLines := lines(us)
	themLines := lines(them)

	var large, small int
	usWon, themWon := false, false

lineWalk:
	for k := 0; k < 8; k++ {
		uField := (usLines >> uint(3*k)) & 0b111
		tField := (themLines >> uint(3*k)) & 0b111
		if uField != 0 && tField != 0 {
			continue // contested line, dead
		}
		uc := bits.OnesCount64(uField)
		tc := bits.OnesCount64(tField)
		switch {
		case uc == 3:
			usWon = true
			break lineWalk
		case tc == 3:
			themWon = true
			break lineWalk
		default:
			large += lineValueLarge[uc] - lineValueLarge[tc]
			small += lineValueSmall[uc] - lineValueSmall[tc]
		}
	}

	corner := func(g uint64) int { return bits.OnesCount64(g & cornerMask) }
	edge := func(g uint64) int { return bits.OnesCount64(g & edgeMask) }
	centre := func(g uint64) int { return bits.OnesCount64(g & centreMask) }

	posScore := weightCorner*(corner(us)-corner(them)) +
		weightEdge*(edge(us)-edge(them)) +
		weightCentre*(centre(us)-centre(them))

	switch {
	case usWon:
		return OutcomeWin, 0
	case themWon:
		return OutcomeLoss, 0
	case bits.OnesCount64(us|them) == 9:
		return 0, 0
	default:
		return int32(large + 25*posScore), int32(small + posScore)
	}
}
