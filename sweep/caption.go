package sweep

import (
	"strings"

	"go_sweepgrid/axis"
	"go_sweepgrid/render"
)

// CaptionFunc builds the caption attached to a grid image. prompts and
// seeds are the per-cell metadata of the cells the grid contains, in cell
// order; implementations typically use the first entries.
type CaptionFunc func(req *render.Request, prompts []string, seeds []int64) string

// DefaultCaption renders the standard infotext for the first cell of the
// grid.
func DefaultCaption(req *render.Request, prompts []string, seeds []int64) string {
	c := req.Clone()
	if len(prompts) > 0 && prompts[0] != "" {
		c.Prompt = prompts[0]
	}
	if len(seeds) > 0 {
		c.Seed = seeds[0]
	}
	return render.Infotext(c)
}

// gridCaption builds a grid's caption: the base infotext plus a summary of
// the axes it spans, recorded as override entries so they appear in the
// settings list. prompts and seeds start at the grid's first cell.
// includeZ marks the top-level grid; per-Z slice grids describe only their
// X and Y axes.
func (e *Engine) gridCaption(work *render.Request, prompts []string, seeds []int64, ax, ay, az *axis.Axis, includeZ bool) string {
	c := work.Clone()
	if c.Overrides == nil {
		c.Overrides = make(map[string]string)
	}
	describeAxis(c.Overrides, "X", ax)
	describeAxis(c.Overrides, "Y", ay)
	if includeZ {
		describeAxis(c.Overrides, "Z", az)
	}
	return e.Caption(c, prompts, seeds)
}

// describeAxis records an axis's type and raw specification under the
// given prefix. Seed-bearing axes additionally record the concrete values
// chosen, since seed fixing rewrites the raw -1 entries.
func describeAxis(ov map[string]string, prefix string, a *axis.Axis) {
	if a.Option.Label == axis.LabelNothing {
		return
	}
	ov[prefix+" Type"] = a.Option.Label
	ov[prefix+" Values"] = a.Raw
	if a.Option.Label == axis.LabelSeed || a.Option.Label == axis.LabelVarSeed {
		ov["Fixed "+prefix+" Values"] = strings.Join(a.Labels(), ", ")
	}
}
