package grid

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// The annotator uses the in-tree bitmap face so no font files are needed
// on disk.
var face = basicfont.Face7x13

const (
	textPad    = 8
	lineHeight = 16
)

// Annotations draws column headers along the top and row headers down the
// left side of a composed grid, returning an enlarged image. cellW/cellH
// are the cell dimensions the headers align to (the largest cell in the
// slice), margin the per-cell gap used during composition. Empty ver
// entries produce a title-only band, as used by the top-level grid.
func Annotations(grid image.Image, cellW, cellH int, hor, ver []string, margin int) image.Image {
	padLeft := 0
	for _, s := range ver {
		if s == "" {
			continue
		}
		if w := measure(s) + 2*textPad; w > padLeft {
			padLeft = w
		}
	}
	padTop := 0
	for _, s := range hor {
		if s != "" {
			padTop = lineHeight + 2*textPad
			break
		}
	}

	b := grid.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, padLeft+b.Dx(), padTop+b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas,
		image.Rect(padLeft, padTop, padLeft+b.Dx(), padTop+b.Dy()),
		grid, b.Min, draw.Src)

	for i, s := range hor {
		if s == "" {
			continue
		}
		cx := padLeft + i*(cellW+margin) + cellW/2
		drawText(canvas, s, cx-measure(s)/2, textPad+face.Ascent, color.Black)
	}
	for i, s := range ver {
		if s == "" {
			continue
		}
		cy := padTop + i*(cellH+margin) + cellH/2
		drawText(canvas, s, textPad, cy+face.Ascent/2, color.Black)
	}
	return canvas
}

// CellLabel burns a multi-line caption onto a private copy of a cell image:
// a black backing rectangle at a 10px margin with white text. The input
// image is never mutated, so the unlabeled original stays available for
// individual-image export.
func CellLabel(img image.Image, lines []string) image.Image {
	b := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, b.Min, draw.Src)

	const margin = 10
	maxW := 0
	for _, line := range lines {
		if w := measure(line); w > maxW {
			maxW = w
		}
	}
	totalH := lineHeight * len(lines)

	back := image.Rect(margin, margin, margin+maxW+2*textPad, margin+totalH+textPad)
	draw.Draw(canvas, back, image.NewUniform(color.Black), image.Point{}, draw.Src)

	y := margin + textPad/2 + face.Ascent
	for _, line := range lines {
		drawText(canvas, line, margin+textPad, y, color.White)
		y += lineHeight
	}
	return canvas
}

// FormatCellLabel builds the standard 3-line "X: v / Y: v / Z: v" caption.
// This is a pure function with no side effects.
func FormatCellLabel(xLabel, yLabel, zLabel string) []string {
	return []string{
		"X: " + xLabel,
		"Y: " + yLabel,
		"Z: " + zLabel,
	}
}

func measure(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		if w := font.MeasureString(face, line).Ceil(); w > widest {
			widest = w
		}
	}
	return widest
}

func drawText(dst draw.Image, s string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
