package sweep

import (
	"go_sweepgrid/axis"
	"go_sweepgrid/render"
)

// ProgressSink receives coarse progress updates from the engine. The total
// is announced once before the first cell; the job description changes per
// cell. Implementations must tolerate being called from the driver's
// goroutine only.
type ProgressSink interface {
	// UpdateTotal announces the estimated total sampling-step count for
	// the whole sweep.
	UpdateTotal(totalSteps int)
	// SetJob labels the cell currently being rendered, e.g. "3 out of 12".
	SetJob(job string)
}

// NopProgress discards all progress updates.
type NopProgress struct{}

func (NopProgress) UpdateTotal(int) {}
func (NopProgress) SetJob(string)   {}

// EstimateTotalSteps predicts the total sampling-step count for the sweep.
//
// The estimate is advisory, for progress reporting only; it never gates
// execution. When an axis varies the step count itself, the per-value sum
// replaces steps-times-cells for that dimension. A high-resolution second
// pass contributes its own steps: the value sum if an axis varies it, the
// request's fixed pass count if set, and a doubling fallback otherwise.
func EstimateTotalSteps(req *render.Request, ax, ay, az *axis.Axis) int {
	nx, ny, nz := ax.Len(), ay.Len(), az.Len()
	cells := nx * ny * nz

	total := req.Steps * cells
	switch {
	case ax.Option.Label == axis.LabelSteps:
		total = sumInts(ax.Values) * ny * nz
	case ay.Option.Label == axis.LabelSteps:
		total = sumInts(ay.Values) * nx * nz
	case az.Option.Label == axis.LabelSteps:
		total = sumInts(az.Values) * nx * ny
	}

	if req.EnableHires {
		switch {
		case ax.Option.Label == axis.LabelHiresSteps:
			total += sumInts(ax.Values) * ny * nz
		case ay.Option.Label == axis.LabelHiresSteps:
			total += sumInts(ay.Values) * nx * nz
		case az.Option.Label == axis.LabelHiresSteps:
			total += sumInts(az.Values) * nx * ny
		case req.HiresSteps > 0:
			total += req.HiresSteps * cells
		default:
			total *= 2
		}
	}

	iterations := req.Iterations
	if iterations < 1 {
		iterations = 1
	}
	return total * iterations
}

// sumInts adds up the integer values on an axis, ignoring placeholders.
func sumInts(vals []axis.Value) int {
	sum := 0
	for _, v := range vals {
		if n, ok := v.(int); ok {
			sum += n
		}
	}
	return sum
}
