// uttt-view is an optional graphical client for the search engine, built
// with Ebitengine.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/uttt/internal/view"
)

var depth = flag.Int("depth", 6, "engine search depth")

func main() {
	flag.Parse()

	game := view.NewGame(*depth)

	ebiten.SetWindowSize(view.ScreenWidth, view.ScreenHeight)
	ebiten.SetWindowTitle("Ultimate Tic-Tac-Toe")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenFilterEnabled(true)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
