package grid

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestAnnotationsExpandsCanvas verifies header bands are added for
// non-empty labels.
func TestAnnotationsExpandsCanvas(t *testing.T) {
	base := solid(40, 20, color.RGBA{R: 255, A: 255})
	out := Annotations(base, 20, 20, []string{"a", "b"}, []string{"row"}, 0)

	b := out.Bounds()
	if b.Dy() <= 20 {
		t.Errorf("height = %d, want top band added", b.Dy())
	}
	if b.Dx() <= 40 {
		t.Errorf("width = %d, want left band added", b.Dx())
	}
}

// TestAnnotationsEmptyLabelsAddNothing verifies all-empty labels leave the
// canvas at its original size.
func TestAnnotationsEmptyLabelsAddNothing(t *testing.T) {
	base := solid(40, 20, color.RGBA{R: 255, A: 255})
	out := Annotations(base, 20, 20, []string{"", ""}, []string{""}, 0)

	b := out.Bounds()
	if b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("annotated size = %dx%d, want 40x20 unchanged", b.Dx(), b.Dy())
	}
}

// TestCellLabelDoesNotMutateInput verifies labeling draws on a copy so the
// clean original stays available.
func TestCellLabelDoesNotMutateInput(t *testing.T) {
	orig := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			orig.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	before := make([]uint8, len(orig.Pix))
	copy(before, orig.Pix)

	labeled := CellLabel(orig, []string{"X: Steps: 10", "Y: CFG scale: 7"})

	if diff := cmp.Diff(before, orig.Pix); diff != "" {
		t.Errorf("input image was mutated:\n%s", diff)
	}
	// The backing rectangle starts at the 10px margin and must be black.
	if got := labeled.At(15, 15); !sameColor(got, color.RGBA{A: 255}) {
		t.Errorf("label backing pixel = %v, want black", got)
	}
	// Outside the label area the copy matches the original.
	if got := labeled.At(60, 60); !sameColor(got, color.RGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("unlabeled pixel = %v, want original color", got)
	}
}

// TestFormatCellLabel verifies the standard three-line form.
func TestFormatCellLabel(t *testing.T) {
	got := FormatCellLabel("Steps: 10", "CFG scale: 7", "Sampler: Euler")
	want := []string{"X: Steps: 10", "Y: CFG scale: 7", "Z: Sampler: Euler"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FormatCellLabel mismatch (-want +got):\n%s", diff)
	}
}
