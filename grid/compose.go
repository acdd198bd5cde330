// Package grid composes per-cell images into row/column grids, nests
// sub-grids inside a top-level grid, and overlays legend and per-cell
// label annotations.
package grid

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// Composition errors.
var (
	ErrNoImages  = errors.New("grid: no images to compose")
	ErrBadLayout = errors.New("grid: rows must be >= 1")
)

var placeholderFill = color.RGBA{R: 20, G: 20, B: 20, A: 255}

// Placeholder returns a blank cell image used in place of a failed or
// skipped render so grid geometry stays rectangular.
func Placeholder(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderFill), image.Point{}, draw.Src)
	return img
}

// Cols returns the column count for n images laid out in the given number
// of rows. This is a pure function with no side effects.
func Cols(n, rows int) int {
	if rows < 1 {
		rows = 1
	}
	return (n + rows - 1) / rows
}

// Compose pastes images into a rows-by-cols grid with a margin-pixel gap
// between cells. The cell size is taken from the first image; images are
// pasted at their cell origin and smaller images simply leave background
// visible. Layout is row-major: imgs[0] top-left, filling each row left to
// right.
func Compose(imgs []image.Image, rows, margin int) (image.Image, error) {
	if len(imgs) == 0 {
		return nil, ErrNoImages
	}
	if rows < 1 {
		return nil, ErrBadLayout
	}

	cols := Cols(len(imgs), rows)
	cellW := imgs[0].Bounds().Dx()
	cellH := imgs[0].Bounds().Dy()

	w := cols*cellW + (cols-1)*margin
	h := rows*cellH + (rows-1)*margin
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, img := range imgs {
		if img == nil {
			continue
		}
		x := (i % cols) * (cellW + margin)
		y := (i / cols) * (cellH + margin)
		r := image.Rect(x, y, x+img.Bounds().Dx(), y+img.Bounds().Dy())
		draw.Draw(canvas, r, img, img.Bounds().Min, draw.Src)
	}
	return canvas, nil
}

// MaxCellSize returns the largest width and height over the given images,
// skipping nils. Legend sizing uses this so headers align with the biggest
// cell in a slice.
func MaxCellSize(imgs []image.Image) (int, int) {
	var w, h int
	for _, img := range imgs {
		if img == nil {
			continue
		}
		if dx := img.Bounds().Dx(); dx > w {
			w = dx
		}
		if dy := img.Bounds().Dy(); dy > h {
			h = dy
		}
	}
	return w, h
}
