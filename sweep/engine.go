package sweep

import (
	"context"
	"fmt"
	"image"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go_sweepgrid/axis"
	"go_sweepgrid/grid"
	"go_sweepgrid/render"
)

// SaveMeta accompanies a saved artifact.
type SaveMeta struct {
	Prompt  string
	Seed    int64
	Caption string
	Grid    bool
}

// Saver persists an output image and returns the path it was written to.
type Saver interface {
	Save(img image.Image, dir, name string, meta SaveMeta) (string, error)
}

// RunInfo describes a sweep run for the recorder.
type RunInfo struct {
	ID        string
	XType     string
	XValues   string
	YType     string
	YValues   string
	ZType     string
	ZValues   string
	Cells     int
	OutputDir string
}

// CellInfo describes one rendered cell for the recorder.
type CellInfo struct {
	RunID   string
	IX      int
	IY      int
	IZ      int
	Prompt  string
	Seed    int64
	Caption string
	Blank   bool
}

// Recorder receives run and cell metadata as the sweep progresses.
// Recording failures are logged and never abort the sweep.
type Recorder interface {
	RecordRun(info RunInfo) error
	RecordCell(cell CellInfo) error
}

// Engine runs parameter sweeps. Renderer is required; every other
// collaborator is optional and defaulted at Run time.
type Engine struct {
	Renderer render.Renderer
	Log      *zap.Logger
	Progress ProgressSink
	Saver    Saver
	Recorder Recorder
	Caption  CaptionFunc
	// Restore resets shared generation state (checkpoint, VAE) mutated by
	// expensive axes. It runs exactly once per Run, after all cells.
	Restore   func()
	Interrupt *Interrupt
	Opts      Options
}

// NewEngine returns an engine with default collaborators.
func NewEngine(r render.Renderer, log *zap.Logger, opts Options) *Engine {
	return &Engine{
		Renderer: r,
		Log:      log,
		Progress: NopProgress{},
		Caption:  DefaultCaption,
		Opts:     opts,
	}
}

// Run executes the full sweep over the cartesian product of the three axes
// and returns the assembled result.
//
// The template request is cloned up front and never mutated. Unless
// KeepRandomSeeds is set, random seed markers in the template and on
// seed-bearing axes are fixed to concrete values first, so every cell of
// a comparison grid shares the same base seed. Each cell failure leaves a
// blank placeholder; only configuration errors abort the run.
func (e *Engine) Run(ctx context.Context, template *render.Request, ax, ay, az *axis.Axis) (*Result, error) {
	if e.Renderer == nil {
		return nil, ErrNilRenderer
	}
	if ax == nil || ay == nil || az == nil {
		return nil, ErrNilAxis
	}
	if e.Log == nil {
		e.Log = zap.NewNop()
	}
	if e.Progress == nil {
		e.Progress = NopProgress{}
	}
	if e.Caption == nil {
		e.Caption = DefaultCaption
	}

	work := template.Clone()
	if err := work.Validate(); err != nil {
		return nil, err
	}

	if !e.Opts.KeepRandomSeeds {
		render.FixSeed(work)
		ax = fixAxisSeeds(ax)
		ay = fixAxisSeeds(ay)
		az = fixAxisSeeds(az)
	}

	cells := ax.Len() * ay.Len() * az.Len()
	if err := e.checkSize(work, cells); err != nil {
		return nil, err
	}

	total := EstimateTotalSteps(work, ax, ay, az)
	e.Progress.UpdateTotal(total)

	order := PlanOrder(ax.Option.Cost, ay.Option.Cost, az.Option.Cost)
	e.Log.Info("starting sweep",
		zap.String("x_axis", ax.Option.Label), zap.Int("nx", ax.Len()),
		zap.String("y_axis", ay.Option.Label), zap.Int("ny", ay.Len()),
		zap.String("z_axis", az.Option.Label), zap.Int("nz", az.Len()),
		zap.Int("cells", cells),
		zap.Int("total_steps", total),
		zap.Stringer("outer_loop", order.First),
		zap.Stringer("second_loop", order.Second))

	if e.Restore != nil {
		defer e.Restore()
	}

	runID := uuid.NewString()
	if e.Recorder != nil {
		info := RunInfo{
			ID:        runID,
			XType:     ax.Option.Label,
			XValues:   ax.Raw,
			YType:     ay.Option.Label,
			YValues:   ay.Raw,
			ZType:     az.Option.Label,
			ZValues:   az.Raw,
			Cells:     cells,
			OutputDir: e.Opts.OutputDir,
		}
		if err := e.Recorder.RecordRun(info); err != nil {
			e.Log.Warn("failed to record run", zap.Error(err))
		}
	}

	switch {
	case e.Opts.SkipGrid:
		return e.runIndividual(ctx, work, ax, ay, az, order, runID)
	case e.Opts.ChunkSize > 0:
		return e.runChunked(ctx, work, ax, ay, az, order, runID)
	default:
		return e.runGrid(ctx, work, ax, ay, az, order, runID, "")
	}
}

// checkSize aborts before rendering when the estimated total output area
// is too large to assemble in memory.
func (e *Engine) checkSize(work *render.Request, cells int) error {
	if e.Opts.MaxMegapixels <= 0 {
		return nil
	}
	mp := float64(cells) * float64(work.Width) * float64(work.Height) / 1e6
	if mp > float64(e.Opts.MaxMegapixels) {
		return fmt.Errorf("%w: %d cells at %dx%d is %.0f MP, limit %d MP",
			ErrGridTooLarge, cells, work.Width, work.Height, mp, e.Opts.MaxMegapixels)
	}
	return nil
}

// fixAxisSeeds replaces negative seed values on seed-bearing axes with
// fresh random seeds. Returns a copy; axis values are immutable once built.
func fixAxisSeeds(a *axis.Axis) *axis.Axis {
	if a.Option.Label != axis.LabelSeed && a.Option.Label != axis.LabelVarSeed {
		return a
	}
	vals := make([]axis.Value, len(a.Values))
	copy(vals, a.Values)
	for i, v := range vals {
		if n, ok := v.(int); ok && n < 0 {
			vals[i] = int(render.RandomSeed())
		}
	}
	return &axis.Axis{Option: a.Option, Raw: a.Raw, Values: vals}
}

// runGrid renders all cells and assembles the nested grid output.
func (e *Engine) runGrid(ctx context.Context, work *render.Request, ax, ay, az *axis.Axis, order LoopOrder, runID, tag string) (*Result, error) {
	b := e.runDriver(ctx, work, ax, ay, az, order, runID)
	if b.rendered == 0 {
		e.Log.Error("sweep produced no images")
		return &Result{}, nil
	}

	composed, err := e.assemble(b, work, ax, ay, az)
	if err != nil {
		return nil, err
	}
	e.saveOutputs(composed, b.nz, tag)
	return shapeResult(composed, b.nz, e.Opts.KeepPolicy()), nil
}

// runIndividual renders all cells but skips grid assembly, returning only
// the successfully rendered images in traversal-independent cell order.
func (e *Engine) runIndividual(ctx context.Context, work *render.Request, ax, ay, az *axis.Axis, order LoopOrder, runID string) (*Result, error) {
	b := e.runDriver(ctx, work, ax, ay, az, order, runID)
	res := &Result{}
	for i, img := range b.images {
		if img == nil {
			continue
		}
		res.Append(img, b.prompts[i], b.seeds[i], b.captions[i])
		e.save(img, fmt.Sprintf("xyz_image_%d", i), b.prompts[i], b.seeds[i], b.captions[i], false)
	}
	if res.Empty() {
		e.Log.Error("sweep produced no images")
	}
	return res, nil
}

// assemble builds the composed output from a finished batch: the top-level
// grid first, then each per-Z sub-grid, then every cell. Failed cells are
// replaced by placeholders sized to the first rendered sibling in the same
// Z block. Cell labels are burned onto grid copies only, so the lone
// images stay clean.
func (e *Engine) assemble(b *batch, work *render.Request, ax, ay, az *axis.Axis) (*Result, error) {
	xLabels, yLabels, zLabels := ax.Labels(), ay.Labels(), az.Labels()
	nxny := b.nx * b.ny

	cellImgs := make([]image.Image, b.size())
	subgrids := make([]image.Image, b.nz)

	for iz := 0; iz < b.nz; iz++ {
		first := iz * nxny
		blockW, blockH := blockCellSize(b.images[first:first+nxny], work)
		blockImgs := make([]image.Image, nxny)
		for i := 0; i < nxny; i++ {
			img := b.images[first+i]
			if img == nil {
				img = grid.Placeholder(blockW, blockH)
			}
			cellImgs[first+i] = img
			if e.Opts.DrawCellLabels {
				ix, iy := i%b.nx, i/b.nx
				labeled := grid.CellLabel(img, grid.FormatCellLabel(xLabels[ix], yLabels[iy], zLabels[iz]))
				if b.images[first+i] != nil {
					e.save(labeled, fmt.Sprintf("xyz_grid_x%d_y%d_z%d", ix, iy, iz),
						b.prompts[first+i], b.seeds[first+i], b.captions[first+i], false)
				}
				img = labeled
			}
			blockImgs[i] = img
		}

		sub, err := grid.Compose(blockImgs, b.ny, e.Opts.MarginSize)
		if err != nil {
			return nil, err
		}
		if e.Opts.DrawLegend {
			w, h := grid.MaxCellSize(blockImgs)
			sub = grid.Annotations(sub, w, h, xLabels, yLabels, e.Opts.MarginSize)
		}
		subgrids[iz] = sub
	}

	top, err := grid.Compose(subgrids, 1, e.Opts.MarginSize)
	if err != nil {
		return nil, err
	}
	if e.Opts.DrawLegend {
		w, h := grid.MaxCellSize(subgrids)
		top = grid.Annotations(top, w, h, zLabels, []string{""}, e.Opts.MarginSize)
	}

	res := &Result{}
	res.Append(top, b.prompts[0], b.seeds[0],
		e.gridCaption(work, b.prompts, b.seeds, ax, ay, az, true))
	for iz := range subgrids {
		first := iz * nxny
		res.Append(subgrids[iz], b.prompts[first], b.seeds[first],
			e.gridCaption(work, b.prompts[first:], b.seeds[first:], ax, ay, az, false))
	}
	for i, img := range cellImgs {
		res.Append(img, b.prompts[i], b.seeds[i], b.captions[i])
	}
	return res, nil
}

// blockCellSize picks the placeholder dimensions for one Z block: the
// first rendered sibling's size, or the request's configured size when
// the whole block failed.
func blockCellSize(imgs []image.Image, work *render.Request) (int, int) {
	for _, img := range imgs {
		if img != nil {
			return img.Bounds().Dx(), img.Bounds().Dy()
		}
	}
	return work.Width, work.Height
}

// shapeResult filters the composed output down to what the keep policy
// retains, preserving order: grid, sub-grids, cells.
func shapeResult(composed *Result, zCount int, keep KeepPolicy) *Result {
	out := &Result{}
	if keep.Grid {
		out.Append(composed.Images[0], composed.Prompts[0], composed.Seeds[0], composed.Captions[0])
	}
	if keep.SubGrids {
		for i := 1; i <= zCount; i++ {
			out.Append(composed.Images[i], composed.Prompts[i], composed.Seeds[i], composed.Captions[i])
		}
	}
	if keep.LoneImages {
		for i := zCount + 1; i < composed.Len(); i++ {
			out.Append(composed.Images[i], composed.Prompts[i], composed.Seeds[i], composed.Captions[i])
		}
	}
	return out
}

// saveOutputs persists the composed grids and, when kept, the lone images.
// Chunked runs pass a tag so each chunk's artifacts get distinct names.
func (e *Engine) saveOutputs(composed *Result, zCount int, tag string) {
	e.save(composed.Images[0], "xyz_grid"+tag,
		composed.Prompts[0], composed.Seeds[0], composed.Captions[0], true)
	if e.Opts.IncludeSubGrids {
		for i := 1; i <= zCount; i++ {
			e.save(composed.Images[i], fmt.Sprintf("xyz_grid_z_%d%s", i, tag),
				composed.Prompts[i], composed.Seeds[i], composed.Captions[i], true)
		}
	}
	if e.Opts.IncludeLoneImages {
		for i := zCount + 1; i < composed.Len(); i++ {
			e.save(composed.Images[i], fmt.Sprintf("xyz_grid_image_%d%s", i-zCount, tag),
				composed.Prompts[i], composed.Seeds[i], composed.Captions[i], false)
		}
	}
}

// save persists one artifact if saving is configured. Failures are logged
// and never abort the sweep.
func (e *Engine) save(img image.Image, name, prompt string, seed int64, caption string, isGrid bool) {
	if e.Saver == nil || !e.Opts.SaveArtifacts || img == nil {
		return
	}
	meta := SaveMeta{Prompt: prompt, Seed: seed, Caption: caption, Grid: isGrid}
	if _, err := e.Saver.Save(img, e.Opts.OutputDir, name, meta); err != nil {
		e.Log.Warn("failed to save artifact", zap.String("name", name), zap.Error(err))
	}
}
