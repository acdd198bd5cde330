package sweep

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go_sweepgrid/axis"
	"go_sweepgrid/render"
)

// runChunked splits the longest axis into ChunkSize pieces and runs each
// piece as an independent sub-sweep, concatenating the shaped results.
// Each chunk's buffers are released as soon as its entries are moved into
// the final result, so memory stays bounded by one chunk's grid.
func (e *Engine) runChunked(ctx context.Context, work *render.Request, ax, ay, az *axis.Axis, order LoopOrder, runID string) (*Result, error) {
	axes := [3]*axis.Axis{ax, ay, az}
	dom := DimX
	for _, d := range []Dim{DimY, DimZ} {
		if axes[d].Len() > axes[dom].Len() {
			dom = d
		}
	}
	if axes[dom].Len() <= e.Opts.ChunkSize {
		return e.runGrid(ctx, work, ax, ay, az, order, runID, "")
	}

	vals := axes[dom].Values
	nchunks := (len(vals) + e.Opts.ChunkSize - 1) / e.Opts.ChunkSize
	e.Log.Info("splitting sweep into chunks",
		zap.Stringer("axis", dom),
		zap.Int("values", len(vals)),
		zap.Int("chunks", nchunks))

	final := &Result{}
	for ci := 0; ci < nchunks; ci++ {
		if ctx.Err() != nil || e.Interrupt.Stopped() {
			e.Log.Info("chunked sweep stopped", zap.Int("completed_chunks", ci))
			break
		}

		lo := ci * e.Opts.ChunkSize
		hi := min(lo+e.Opts.ChunkSize, len(vals))
		part := &axis.Axis{Option: axes[dom].Option, Raw: axes[dom].Raw, Values: vals[lo:hi]}

		cax, cay, caz := ax, ay, az
		switch dom {
		case DimX:
			cax = part
		case DimY:
			cay = part
		case DimZ:
			caz = part
		}

		e.Log.Info("processing chunk",
			zap.Int("chunk", ci+1),
			zap.Int("chunks", nchunks),
			zap.Int("values", hi-lo))

		chunkRes, err := e.runGrid(ctx, work, cax, cay, caz, order, runID, fmt.Sprintf("_%d", ci+1))
		if err != nil {
			return nil, err
		}
		final.Extend(chunkRes)
		chunkRes.Release()
	}
	return final, nil
}
