package sweep

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go_sweepgrid/axis"
)

// TestRunChunkedMatchesUnchunked verifies chunked processing produces the
// same cells, in the same order, as the single-pass sweep.
func TestRunChunkedMatchesUnchunked(t *testing.T) {
	template := testTemplate()

	runWith := func(chunkSize int) *Result {
		fake := &fakeRenderer{}
		opts := DefaultOptions()
		opts.IncludeLoneImages = true
		opts.ChunkSize = chunkSize
		e := testEngine(fake, opts)

		ax := literalAxis(t, axis.LabelSeed, "1-10")
		ay := nothingAxis(t)
		az := nothingAxis(t)

		res, err := e.Run(context.Background(), template, ax, ay, az)
		if err != nil {
			t.Fatalf("Run(chunk=%d) error = %v", chunkSize, err)
		}
		return res
	}

	whole := runWith(0)
	chunked := runWith(4)

	// Unchunked: top grid + 10 cells.
	if whole.Len() != 11 {
		t.Fatalf("unchunked entries = %d, want 11", whole.Len())
	}
	// Chunked into 4+4+2: each chunk contributes its own grid + cells.
	if chunked.Len() != 13 {
		t.Fatalf("chunked entries = %d, want 13", chunked.Len())
	}

	// Cell entries: skip each chunk's leading grid.
	var chunkedCells []int64
	for _, span := range [][2]int{{1, 5}, {6, 10}, {11, 13}} {
		chunkedCells = append(chunkedCells, chunked.Seeds[span[0]:span[1]]...)
	}
	if diff := cmp.Diff(whole.Seeds[1:], chunkedCells); diff != "" {
		t.Errorf("chunked cell seeds mismatch (-unchunked +chunked):\n%s", diff)
	}

	var chunkedPrompts []string
	for _, span := range [][2]int{{1, 5}, {6, 10}, {11, 13}} {
		chunkedPrompts = append(chunkedPrompts, chunked.Prompts[span[0]:span[1]]...)
	}
	if diff := cmp.Diff(whole.Prompts[1:], chunkedPrompts); diff != "" {
		t.Errorf("chunked cell prompts mismatch (-unchunked +chunked):\n%s", diff)
	}
}

// TestRunChunkedFallsBackWhenSmall verifies a chunk size covering the whole
// axis degenerates to the single-pass sweep.
func TestRunChunkedFallsBackWhenSmall(t *testing.T) {
	fake := &fakeRenderer{}
	opts := DefaultOptions()
	opts.IncludeLoneImages = true
	opts.ChunkSize = 20
	e := testEngine(fake, opts)

	ax := literalAxis(t, axis.LabelSeed, "1-10")
	res, err := e.Run(context.Background(), testTemplate(), ax, nothingAxis(t), nothingAxis(t))
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if res.Len() != 11 {
		t.Errorf("result entries = %d, want 11", res.Len())
	}
	if len(fake.calls) != 10 {
		t.Errorf("renderer calls = %d, want 10", len(fake.calls))
	}
}

// TestRunChunkedSplitsDominantAxis verifies the longest axis is the one
// partitioned.
func TestRunChunkedSplitsDominantAxis(t *testing.T) {
	fake := &fakeRenderer{}
	opts := DefaultOptions()
	opts.ChunkSize = 3
	e := testEngine(fake, opts)

	ax := literalAxis(t, "CFG Scale", "5, 6")
	ay := literalAxis(t, axis.LabelSeed, "1-6") // dominant
	az := nothingAxis(t)

	res, err := e.Run(context.Background(), testTemplate(), ax, ay, az)
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if len(fake.calls) != 12 {
		t.Errorf("renderer calls = %d, want 12", len(fake.calls))
	}
	// Two chunks, each keeping only its grid.
	if res.Len() != 2 {
		t.Errorf("result entries = %d, want 2", res.Len())
	}
}

// TestRunChunkedInterrupt verifies no further chunks start after a stop.
func TestRunChunkedInterrupt(t *testing.T) {
	interrupt := &Interrupt{}
	fake := &fakeRenderer{}
	fake.after = func(calls int) {
		if calls == 4 {
			interrupt.Interrupt()
		}
	}
	opts := DefaultOptions()
	opts.ChunkSize = 4
	e := testEngine(fake, opts)
	e.Interrupt = interrupt

	ax := literalAxis(t, axis.LabelSeed, "1-10")
	res, err := e.Run(context.Background(), testTemplate(), ax, nothingAxis(t), nothingAxis(t))
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	// Only the first chunk rendered; its grid is the sole output.
	if len(fake.calls) != 4 {
		t.Errorf("renderer calls = %d, want 4", len(fake.calls))
	}
	if res.Len() != 1 {
		t.Errorf("result entries = %d, want 1", res.Len())
	}
}
