// Package sweep drives the three-axis parameter sweep: it plans the
// iteration order, enumerates the cartesian product of axis values, invokes
// the renderer per cell, and assembles the results into annotated grids
// with per-cell metadata preserved.
package sweep

import "errors"

// Sentinel errors for sweep configuration. All of these fail fast, before
// any cell is rendered.
var (
	ErrNilRenderer  = errors.New("sweep: renderer is required")
	ErrNilAxis      = errors.New("sweep: all three axes must be provided")
	ErrGridTooLarge = errors.New("sweep: estimated output size exceeds the configured maximum")
)
