// Package protocol implements the textual command driver for the
// Ultimate Tic-Tac-Toe search engine: a line-oriented read loop, modeled
// on the structure of a UCI-style driver, dispatching to one handler per
// command.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/uttt/internal/uttt"
)

// Driver reads commands from an input stream and writes protocol
// responses to an output stream. It keeps the current board plus a
// history stack so that undo can pop back to any earlier position; the
// initial position is never popped.
type Driver struct {
	tables  *uttt.Tables
	history []uttt.Board
	side    uttt.Side

	out io.Writer

	// OnGameOver, if set, is called with the final board and its result
	// string whenever a played or searched move ends the game. Used by
	// the archive layer (internal/storage) to persist finished games
	// without the core protocol depending on persistence directly.
	OnGameOver func(moves []string, final uttt.Board, result string)

	moveLog []string
}

// New creates a driver over a freshly built table set, starting from the
// empty board with X to move.
func New(out io.Writer) *Driver {
	return &Driver{
		tables:  uttt.BuildTables(),
		history: []uttt.Board{uttt.NewBoard()},
		side:    uttt.SideX,
		out:     out,
	}
}

func (d *Driver) board() uttt.Board {
	return d.history[len(d.history)-1]
}

func (d *Driver) push(b uttt.Board) {
	d.history = append(d.history, b)
}

func (d *Driver) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}

// Run reads commands from in until EOF or a "q" command, writing
// responses to the driver's output stream. A read error is not fatal:
// reading resumes with a fresh scanner over in.
func (d *Driver) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		if !scanner.Scan() {
			if scanner.Err() == nil {
				return
			}
			scanner = bufio.NewScanner(in)
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		args := fields[1:]

		switch cmd {
		case "newgame":
			d.handleNewGame(args)
		case "go":
			d.handleGo(args)
		case "play":
			d.handlePlay(args)
		case "undo":
			d.handleUndo()
		case "gamepos":
			d.handleGamePos()
		case "d":
			d.handleD()
		case "q":
			return
		default:
			d.printf("badkeyword\n")
		}
	}
}

// handleNewGame loads a position from its compact board-string encoding:
// "newgame <cells> <zone>" where <cells> is the row field of the board
// string (cell runs already slash-separated) and <zone> its next-zone
// token.
func (d *Driver) handleNewGame(args []string) {
	if len(args) != 2 {
		d.printf("newgame invalid args\n")
		return
	}
	b, err := uttt.DecodeBoard(args[0] + " " + args[1])
	if err != nil {
		d.printf("newgame invalid pos\n")
		return
	}
	d.history = []uttt.Board{b}
	d.moveLog = nil
	d.printf("newgame ok\n")
}

// handleGo runs the search to the requested depth, plays the returned
// best move, and reports the principal variation.
func (d *Driver) handleGo(args []string) {
	if len(args) != 1 {
		d.printf("info error invalid depth\n")
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		d.printf("info error invalid depth\n")
		return
	}

	start := time.Now()
	score, pv := uttt.Search(d.board(), d.side, depth, d.tables)
	elapsed := time.Since(start)

	var pvTokens []string
	for _, m := range pv {
		if m == uttt.NullMove {
			break
		}
		pvTokens = append(pvTokens, uttt.MoveString(m))
	}

	if len(pvTokens) > 0 {
		best := pv[0]
		d.moveLog = append(d.moveLog, uttt.MoveString(best))
		d.push(uttt.PlayMove(d.board(), best, d.side))
		d.side = d.side.Other()
	}

	d.printf("info depth %d pv %s eval %s time %d\n",
		depth, strings.Join(pvTokens, " "), uttt.ScoreString(score, depth), elapsed.Milliseconds())

	d.maybeReportGameOver()
}

// handlePlay applies a human move. "play null" duplicates the last board
// entry in the history for alignment without changing whose turn it is
// conceptually, matching a pass that keeps history length in step with
// ply count.
func (d *Driver) handlePlay(args []string) {
	if len(args) != 1 {
		d.printf("move invalid\n")
		return
	}
	if args[0] == "null" {
		d.push(d.board())
		d.printf("move pos %s\n", uttt.BoardString(d.board()))
		return
	}

	cell, err := uttt.ParseMove(args[0])
	if err != nil {
		d.printf("move invalid\n")
		return
	}
	if !legalMove(d.board(), cell) {
		d.printf("move illegal\n")
		return
	}

	d.moveLog = append(d.moveLog, uttt.MoveString(cell))
	d.push(uttt.PlayMove(d.board(), cell, d.side))
	d.side = d.side.Other()
	d.printf("move pos %s\n", uttt.BoardString(d.board()))

	d.maybeReportGameOver()
}

func legalMove(b uttt.Board, cell int) bool {
	var it uttt.MoveIter
	it.Init(b)
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		if c == cell {
			return true
		}
	}
	return false
}

// handleUndo pops the history stack. The initial position (index 0) is
// never popped.
func (d *Driver) handleUndo() {
	if len(d.history) <= 1 {
		d.printf("undo stackempty\n")
		return
	}
	d.history = d.history[:len(d.history)-1]
	if len(d.moveLog) > 0 {
		d.moveLog = d.moveLog[:len(d.moveLog)-1]
	}
	d.side = d.side.Other()
	d.printf("undo ok\n")
}

func (d *Driver) handleGamePos() {
	d.printf("%s\n", uttt.BoardString(d.board()))
}

func (d *Driver) handleD() {
	d.printf("%s", uttt.Pretty(d.board()))
}

func (d *Driver) maybeReportGameOver() {
	if d.OnGameOver == nil {
		return
	}
	var it uttt.MoveIter
	it.Init(d.board())
	if _, ok := it.Next(); ok {
		return
	}
	result := d.gameResult()
	d.OnGameOver(append([]string(nil), d.moveLog...), d.board(), result)
}

func (d *Driver) gameResult() string {
	switch uttt.Evaluate(d.board(), uttt.SideX, d.tables) {
	case uttt.OutcomeWin:
		return "X"
	case uttt.OutcomeLoss:
		return "O"
	default:
		return "draw"
	}
}

func init() {
	// Ensure log output (diagnostics, never protocol lines) has a
	// predictable prefix when the driver is embedded in a larger binary.
	log.SetPrefix("[uttt] ")
}
