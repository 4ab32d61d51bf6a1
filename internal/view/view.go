// Package view is an optional graphical viewer for the Ultimate
// Tic-Tac-Toe engine, built on Ebitengine. It renders the same packed
// uttt.Board the search kernel uses and lets a human play against the
// engine by clicking cells.
package view

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/uttt/internal/uttt"
)

const (
	// ScreenWidth and ScreenHeight size the window around a 9x9 grid of
	// cellSize cells plus margins for the status line.
	cellSize    = 64
	margin      = 24
	statusH     = 40
	ScreenWidth = margin*2 + cellSize*9
	ScreenHeight = margin*2 + cellSize*9 + statusH
)

// Theme is the viewer's color scheme.
type Theme struct {
	Background   color.RGBA
	GridLine     color.RGBA
	ZoneLine     color.RGBA
	ActiveZone   color.RGBA
	WonZoneX     color.RGBA
	WonZoneO     color.RGBA
	TextColor    color.RGBA
}

// DefaultTheme returns the viewer's default color scheme.
func DefaultTheme() Theme {
	return Theme{
		Background: color.RGBA{32, 34, 38, 255},
		GridLine:   color.RGBA{90, 90, 96, 255},
		ZoneLine:   color.RGBA{220, 220, 220, 255},
		ActiveZone: color.RGBA{70, 90, 70, 160},
		WonZoneX:   color.RGBA{90, 45, 45, 160},
		WonZoneO:   color.RGBA{45, 55, 90, 160},
		TextColor:  color.RGBA{220, 220, 220, 255},
	}
}

// Game implements ebiten.Game over a single in-memory match: the human
// always plays X and clicks cells; the engine replies as O at a fixed
// search depth.
type Game struct {
	board      uttt.Board
	side       uttt.Side
	tables     *uttt.Tables
	glyphs     *glyphSet
	theme      Theme
	searchDepth int
	status     string
}

// NewGame creates a fresh viewer game at the given engine search depth.
func NewGame(searchDepth int) *Game {
	return &Game{
		board:       uttt.NewBoard(),
		side:        uttt.SideX,
		tables:      uttt.BuildTables(),
		glyphs:      newGlyphSet(256),
		theme:       DefaultTheme(),
		searchDepth: searchDepth,
		status:      "your move (X)",
	}
}

// Update advances one frame: it handles a human click when it is X's
// turn, then lets the engine reply as O.
func (g *Game) Update() error {
	var it uttt.MoveIter
	it.Init(g.board)
	if _, ok := it.Next(); !ok {
		return nil // game over, nothing left to do
	}

	if g.side == uttt.SideX {
		if ebiten.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			if cell, ok := g.cellAt(x, y); ok && g.legal(cell) {
				g.board = uttt.PlayMove(g.board, cell, uttt.SideX)
				g.side = uttt.SideO
				g.status = "engine thinking..."
			}
		}
		return nil
	}

	score, pv := uttt.Search(g.board, uttt.SideO, g.searchDepth, g.tables)
	if pv[0] == uttt.NullMove {
		g.status = "engine has no move"
		return nil
	}
	g.board = uttt.PlayMove(g.board, pv[0], uttt.SideO)
	g.side = uttt.SideX
	g.status = "engine played " + uttt.MoveString(pv[0]) + " (eval " + uttt.ScoreString(score, g.searchDepth) + ")"

	var after uttt.MoveIter
	after.Init(g.board)
	if _, ok := after.Next(); !ok {
		g.status += " -- game over"
	}
	return nil
}

func (g *Game) legal(cell int) bool {
	var it uttt.MoveIter
	it.Init(g.board)
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		if c == cell {
			return true
		}
	}
	return false
}

// cellAt maps a screen pixel to a board cell, using the same meta-row /
// intra-row interleaving as the board string codec.
func (g *Game) cellAt(x, y int) (int, bool) {
	bx, by := x-margin, y-margin
	if bx < 0 || by < 0 || bx >= cellSize*9 || by >= cellSize*9 {
		return 0, false
	}
	col, row := bx/cellSize, by/cellSize

	i := (row / 3) * 27
	j := (row % 3) * 3
	k := (col / 3) * 9
	c := col % 3
	return i + j + k + c, true
}

// Draw renders the grid, zone highlights, and placed marks.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.theme.Background)
	g.drawZoneHighlights(screen)
	g.drawGrid(screen)
	g.drawMarks(screen)
}

func (g *Game) drawZoneHighlights(screen *ebiten.Image) {
	for zone := 0; zone < 9; zone++ {
		xWon, oWon := g.board.MetaWon(zone)
		var fill color.RGBA
		switch {
		case xWon:
			fill = g.theme.WonZoneX
		case oWon:
			fill = g.theme.WonZoneO
		case g.board.NextZone() == zone || g.board.NextZone() == uttt.ZoneAny:
			fill = g.theme.ActiveZone
		default:
			continue
		}
		zr, zc := zone/3, zone%3
		x := float32(margin + zc*3*cellSize)
		y := float32(margin + zr*3*cellSize)
		vector.DrawFilledRect(screen, x, y, float32(3*cellSize), float32(3*cellSize), fill, false)
	}
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	for i := 0; i <= 9; i++ {
		lineColor := g.theme.GridLine
		width := float32(1)
		if i%3 == 0 {
			lineColor = g.theme.ZoneLine
			width = 3
		}
		x := float32(margin + i*cellSize)
		vector.StrokeLine(screen, x, margin, x, margin+cellSize*9, width, lineColor, false)
		y := float32(margin + i*cellSize)
		vector.StrokeLine(screen, margin, y, margin+cellSize*9, y, width, lineColor, false)
	}
}

func (g *Game) drawMarks(screen *ebiten.Image) {
	for row := 0; row < 9; row++ {
		i := (row / 3) * 27
		j := (row % 3) * 3
		for col := 0; col < 9; col++ {
			k := (col / 3) * 9
			c := col % 3
			cell := i + j + k + c
			px := margin + col*cellSize
			py := margin + row*cellSize
			g.glyphs.drawAt(screen, g.board.CellOwner(cell), px, py, cellSize)
		}
	}
}

// Layout reports the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Status returns the current status line. Draw does not render it, and
// cmd/uttt-view does not display it.
func (g *Game) Status() string {
	return g.status
}

func init() {
	log.SetPrefix("[uttt-view] ")
}
