package sweep

import (
	"testing"

	"go_sweepgrid/axis"
	"go_sweepgrid/render"
)

func literalAxis(t *testing.T, label, raw string) *axis.Axis {
	t.Helper()
	reg := axis.NewRegistry(axis.DefaultCatalog())
	opt, err := reg.Find(label)
	if err != nil {
		t.Fatalf("Find(%q) error = %v", label, err)
	}
	a, err := axis.New(opt, raw, nil, false)
	if err != nil {
		t.Fatalf("New(%q, %q) error = %v", label, raw, err)
	}
	return a
}

func nothingAxis(t *testing.T) *axis.Axis {
	return literalAxis(t, axis.LabelNothing, "")
}

// TestEstimateTotalStepsBase verifies steps times cell count.
func TestEstimateTotalStepsBase(t *testing.T) {
	req := render.DefaultRequest()
	req.Prompt = "p"
	req.Steps = 10

	ax := literalAxis(t, "CFG Scale", "5, 6, 7")
	ay := literalAxis(t, "Sampler", "Euler, Heun")
	az := nothingAxis(t)

	if got := EstimateTotalSteps(req, ax, ay, az); got != 60 {
		t.Errorf("EstimateTotalSteps = %d, want 60", got)
	}
}

// TestEstimateTotalStepsAxisOverride verifies a steps axis replaces the
// fixed step count with its per-value sum.
func TestEstimateTotalStepsAxisOverride(t *testing.T) {
	req := render.DefaultRequest()
	req.Prompt = "p"
	req.Steps = 999 // must be ignored

	ax := literalAxis(t, axis.LabelSteps, "10, 20, 30")
	ay := literalAxis(t, "Sampler", "Euler, Heun")
	az := nothingAxis(t)

	// (10+20+30) * ny * nz
	if got := EstimateTotalSteps(req, ax, ay, az); got != 120 {
		t.Errorf("EstimateTotalSteps = %d, want 120", got)
	}
}

// TestEstimateTotalStepsHires verifies the three hires contributions:
// axis sum, fixed pass count, doubling fallback.
func TestEstimateTotalStepsHires(t *testing.T) {
	base := func() *render.Request {
		req := render.DefaultRequest()
		req.Prompt = "p"
		req.Steps = 10
		req.EnableHires = true
		return req
	}
	ay := literalAxis(t, "Sampler", "Euler, Heun")
	az := nothingAxis(t)

	t.Run("hires axis sum", func(t *testing.T) {
		req := base()
		ax := literalAxis(t, axis.LabelHiresSteps, "5, 15")
		// 10*4 + (5+15)*2
		if got := EstimateTotalSteps(req, ax, ay, az); got != 80 {
			t.Errorf("EstimateTotalSteps = %d, want 80", got)
		}
	})

	t.Run("fixed hires steps", func(t *testing.T) {
		req := base()
		req.HiresSteps = 7
		ax := literalAxis(t, "CFG Scale", "5, 6")
		// 10*4 + 7*4
		if got := EstimateTotalSteps(req, ax, ay, az); got != 68 {
			t.Errorf("EstimateTotalSteps = %d, want 68", got)
		}
	})

	t.Run("doubling fallback", func(t *testing.T) {
		req := base()
		ax := literalAxis(t, "CFG Scale", "5, 6")
		// 10*4 * 2
		if got := EstimateTotalSteps(req, ax, ay, az); got != 80 {
			t.Errorf("EstimateTotalSteps = %d, want 80", got)
		}
	})
}

// TestEstimateTotalStepsIterations verifies the iteration multiplier.
func TestEstimateTotalStepsIterations(t *testing.T) {
	req := render.DefaultRequest()
	req.Prompt = "p"
	req.Steps = 10
	req.Iterations = 3

	ax := literalAxis(t, "CFG Scale", "5, 6")
	ay := nothingAxis(t)
	az := nothingAxis(t)

	if got := EstimateTotalSteps(req, ax, ay, az); got != 60 {
		t.Errorf("EstimateTotalSteps = %d, want 60", got)
	}
}
