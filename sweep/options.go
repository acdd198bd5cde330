package sweep

// DefaultMaxMegapixels bounds the estimated total output area of a run.
const DefaultMaxMegapixels = 200

// Options configures one sweep run. The zero value is usable; call
// DefaultOptions for the documented defaults.
type Options struct {
	// DrawLegend adds axis headers along the top and left of each grid.
	DrawLegend bool
	// DrawCellLabels burns an "X/Y/Z" caption onto each cell's grid copy.
	// Individual cell images returned to the caller stay unlabeled.
	DrawCellLabels bool
	// SkipGrid suppresses grid assembly entirely; only successfully
	// rendered cells are returned, in traversal order.
	SkipGrid bool
	// ChunkSize splits the longest axis into pieces of at most this many
	// values, running each piece as its own sub-sweep. Zero disables
	// chunking.
	ChunkSize int
	// IncludeSubGrids keeps the per-Z sub-grids in the result alongside
	// the top-level grid.
	IncludeSubGrids bool
	// IncludeLoneImages keeps the individual cell images in the result.
	IncludeLoneImages bool
	// KeepRandomSeeds leaves negative seed values as-is instead of fixing
	// them to a fresh random seed before the sweep starts.
	KeepRandomSeeds bool
	// VarySeedsX/Y/Z add the cell's coordinate-derived offset to the seed
	// so every cell along that dimension renders with a distinct seed.
	VarySeedsX bool
	VarySeedsY bool
	VarySeedsZ bool
	// MarginSize is the gap in pixels between grid cells.
	MarginSize int
	// MaxMegapixels aborts the run up front if the estimated output area
	// reaches this many megapixels. Zero or negative disables the guard.
	MaxMegapixels int
	// SaveArtifacts persists grids and images through the engine's Saver.
	SaveArtifacts bool
	// OutputDir receives saved artifacts.
	OutputDir string
}

// DefaultOptions returns the options used when nothing is configured:
// legends on, a full grid kept, individual images discarded.
func DefaultOptions() Options {
	return Options{
		DrawLegend:    true,
		MaxMegapixels: DefaultMaxMegapixels,
	}
}

// KeepPolicy says which of the assembled outputs survive into the final
// result. All three run modes (grid, chunked, skip-grid) shape their
// output through the same policy.
type KeepPolicy struct {
	Grid       bool
	SubGrids   bool
	LoneImages bool
}

// KeepPolicy derives the output policy from the options. Skip-grid mode
// keeps only the individual images regardless of the grid flags.
func (o Options) KeepPolicy() KeepPolicy {
	if o.SkipGrid {
		return KeepPolicy{LoneImages: true}
	}
	return KeepPolicy{
		Grid:       true,
		SubGrids:   o.IncludeSubGrids,
		LoneImages: o.IncludeLoneImages,
	}
}
