package view

import (
	"bytes"
	"embed"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/*.svg
var glyphAssets embed.FS

// glyphSet rasterizes the X and O mark SVGs once at a fixed render
// resolution, scaling down at draw time for anti-aliased edges.
type glyphSet struct {
	x, o       *ebiten.Image
	renderSize int
}

func newGlyphSet(renderSize int) *glyphSet {
	gs := &glyphSet{renderSize: renderSize}
	gs.x = gs.rasterize("assets/x.svg")
	gs.o = gs.rasterize("assets/o.svg")
	return gs
}

func (gs *glyphSet) rasterize(path string) *ebiten.Image {
	data, err := glyphAssets.ReadFile(path)
	if err != nil {
		log.Printf("view: failed to read glyph asset %s: %v", path, err)
		return nil
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		log.Printf("view: failed to parse glyph svg %s: %v", path, err)
		return nil
	}
	icon.SetTarget(0, 0, float64(gs.renderSize), float64(gs.renderSize))

	rgba := image.NewRGBA(image.Rect(0, 0, gs.renderSize, gs.renderSize))
	scanner := rasterx.NewScannerGV(gs.renderSize, gs.renderSize, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(gs.renderSize, gs.renderSize, scanner)
	icon.Draw(raster, 1.0)

	return ebiten.NewImageFromImage(rgba)
}

// drawAt draws the mark for owner (1 = X, 2 = O, 0 = none) centered in a
// cellSize square whose top-left pixel is (x, y).
func (gs *glyphSet) drawAt(screen *ebiten.Image, owner int, x, y, cellSize int) {
	var sprite *ebiten.Image
	switch owner {
	case 1:
		sprite = gs.x
	case 2:
		sprite = gs.o
	default:
		return
	}
	if sprite == nil {
		return
	}

	scale := float64(cellSize) / float64(gs.renderSize)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
