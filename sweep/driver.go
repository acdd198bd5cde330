package sweep

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"go_sweepgrid/axis"
	"go_sweepgrid/render"
)

// batch accumulates per-cell results indexed by flat (x, y, z) coordinate.
// Traversal order follows the planner, but storage order never does: cell
// (ix, iy, iz) always lands at ix + iy*nx + iz*nx*ny, so grid assembly is
// independent of loop nesting.
type batch struct {
	nx, ny, nz int
	images     []image.Image // nil entry = failed or skipped cell
	prompts    []string
	seeds      []int64
	captions   []string
	rendered   int // cells that produced an image
	visited    int // cells attempted so far, in traversal order
}

func newBatch(nx, ny, nz int) *batch {
	n := nx * ny * nz
	return &batch{
		nx: nx, ny: ny, nz: nz,
		images:   make([]image.Image, n),
		prompts:  make([]string, n),
		seeds:    make([]int64, n),
		captions: make([]string, n),
	}
}

func (b *batch) index(ix, iy, iz int) int {
	return ix + iy*b.nx + iz*b.nx*b.ny
}

func (b *batch) size() int {
	return b.nx * b.ny * b.nz
}

// enumerate walks the full cartesian product in the planned nesting order,
// calling visit with original (x, y, z) coordinates. A false return stops
// the walk.
func enumerate(order LoopOrder, nx, ny, nz int, visit func(ix, iy, iz int) bool) {
	lens := [3]int{nx, ny, nz}
	third := order.third()
	var idx [3]int
	for i := 0; i < lens[order.First]; i++ {
		for j := 0; j < lens[order.Second]; j++ {
			for k := 0; k < lens[third]; k++ {
				idx[order.First], idx[order.Second], idx[third] = i, j, k
				if !visit(idx[DimX], idx[DimY], idx[DimZ]) {
					return
				}
			}
		}
	}
}

// runDriver renders every cell of the sweep. Cancellation is checked before
// each cell; a stop leaves the remaining cells blank but the batch geometry
// intact, so a partial grid can still be assembled.
func (e *Engine) runDriver(ctx context.Context, work *render.Request, ax, ay, az *axis.Axis, order LoopOrder, runID string) *batch {
	b := newBatch(ax.Len(), ay.Len(), az.Len())
	axes := [3]*axis.Axis{ax, ay, az}

	enumerate(order, b.nx, b.ny, b.nz, func(ix, iy, iz int) bool {
		if ctx.Err() != nil || e.Interrupt.Stopped() {
			e.Log.Info("sweep stopped before completion",
				zap.Int("rendered", b.rendered),
				zap.Int("cells", b.size()))
			return false
		}
		e.renderCell(ctx, b, work, axes, ix, iy, iz, runID)
		return true
	})
	return b
}

// renderCell produces one cell: clone the template, apply the three axis
// values, offset seeds, render. Any failure is absorbed into a blank cell
// so one bad combination never aborts the sweep.
func (e *Engine) renderCell(ctx context.Context, b *batch, work *render.Request, axes [3]*axis.Axis, ix, iy, iz int, runID string) {
	idx := b.index(ix, iy, iz)
	b.visited++
	e.Progress.SetJob(fmt.Sprintf("%d out of %d", b.visited, b.size()))

	req := work.Clone()
	coords := [3]int{ix, iy, iz}
	var applyErr error
	for d, a := range axes {
		v := a.Values[coords[d]]
		if v == nil {
			continue
		}
		if err := a.Option.Apply(req, v, a.Values); err != nil {
			applyErr = fmt.Errorf("%s axis: %w", Dim(d), err)
			break
		}
	}

	var res *render.Result
	if applyErr != nil {
		e.Log.Warn("axis value rejected, leaving cell blank",
			zap.Int("x", ix), zap.Int("y", iy), zap.Int("z", iz),
			zap.Error(applyErr))
		res = render.EmptyResult(req)
	} else {
		e.offsetSeeds(req, b, ix, iy, iz)
		r, err := e.Renderer.Render(ctx, req)
		if err != nil || !render.WithImage(r) {
			e.Log.Warn("cell render failed, leaving cell blank",
				zap.Int("x", ix), zap.Int("y", iy), zap.Int("z", iz),
				zap.Error(err))
			res = render.EmptyResult(req)
		} else {
			res = r
		}
	}

	if render.WithImage(res) {
		b.images[idx] = res.Images[0]
		b.rendered++
	}
	b.prompts[idx] = res.Prompt
	b.seeds[idx] = res.Seed
	if res.Caption != "" {
		b.captions[idx] = res.Caption
	} else {
		b.captions[idx] = render.Infotext(req)
	}

	if e.Recorder != nil {
		cell := CellInfo{
			RunID:   runID,
			IX:      ix,
			IY:      iy,
			IZ:      iz,
			Prompt:  b.prompts[idx],
			Seed:    b.seeds[idx],
			Caption: b.captions[idx],
			Blank:   b.images[idx] == nil,
		}
		if err := e.Recorder.RecordCell(cell); err != nil {
			e.Log.Warn("failed to record cell", zap.Error(err))
		}
	}
}

// offsetSeeds shifts the cell's seed by its coordinate so enabled
// dimensions render with distinct seeds. The offset for a dimension counts
// the cells of all enabled dimensions before it, keeping every cell's seed
// unique across the whole sweep.
func (e *Engine) offsetSeeds(req *render.Request, b *batch, ix, iy, iz int) {
	xdim, ydim := 1, 1
	if e.Opts.VarySeedsX {
		xdim = b.nx
	}
	if e.Opts.VarySeedsY {
		ydim = b.ny
	}
	if e.Opts.VarySeedsX {
		req.Seed += int64(ix)
	}
	if e.Opts.VarySeedsY {
		req.Seed += int64(iy * xdim)
	}
	if e.Opts.VarySeedsZ {
		req.Seed += int64(iz * xdim * ydim)
	}
}
