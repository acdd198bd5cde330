package sweep

import "image"

// Result is the ordered output of a sweep run. The four slices are
// parallel: entry i of each describes the same output image. Grid entries
// precede cell entries; within each group order is deterministic
// (top-level grid, then per-Z sub-grids, then cells in x-fastest order).
type Result struct {
	Images   []image.Image
	Prompts  []string
	Seeds    []int64
	Captions []string
}

// Len returns the number of output entries.
func (r *Result) Len() int {
	return len(r.Images)
}

// Empty reports whether the run produced no output at all.
func (r *Result) Empty() bool {
	return len(r.Images) == 0
}

// Append adds one entry, keeping the parallel slices in lockstep.
func (r *Result) Append(img image.Image, prompt string, seed int64, caption string) {
	r.Images = append(r.Images, img)
	r.Prompts = append(r.Prompts, prompt)
	r.Seeds = append(r.Seeds, seed)
	r.Captions = append(r.Captions, caption)
}

// Extend appends every entry of other, preserving order.
func (r *Result) Extend(other *Result) {
	r.Images = append(r.Images, other.Images...)
	r.Prompts = append(r.Prompts, other.Prompts...)
	r.Seeds = append(r.Seeds, other.Seeds...)
	r.Captions = append(r.Captions, other.Captions...)
}

// Release drops the slice references so chunked runs do not accumulate
// every intermediate buffer until the end.
func (r *Result) Release() {
	r.Images = nil
	r.Prompts = nil
	r.Seeds = nil
	r.Captions = nil
}
