// Package axis implements the sweep axes: the static catalog of supported
// parameter axes and the parser that turns a raw value specification
// (CSV text, range syntax, or pre-selected choices) into a concrete
// ordered value list.
package axis

import (
	"go_sweepgrid/render"
)

// Kind is the closed set of axis value types. The catalog is fixed at
// compile time, so parsing dispatches on this tag rather than on runtime
// types.
type Kind int

const (
	// KindInt values are integers; range syntax expands arithmetically.
	KindInt Kind = iota
	// KindFloat values are floats; range syntax expands arithmetically
	// or by evenly spaced interpolation.
	KindFloat
	// KindString values are literal strings.
	KindString
	// KindPermutation values are tuples of strings; the parsed list is
	// replaced by every ordering of the parsed tokens (n! entries).
	KindPermutation
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindPermutation:
		return "permutation"
	default:
		return "unknown"
	}
}

// Value is one concrete axis value. Concrete types by kind:
//
//	KindInt         int
//	KindFloat       float64
//	KindString      string
//	KindPermutation []string
//
// A nil Value is the "unset" placeholder produced for an empty
// specification or the Nothing axis; apply functions are never invoked
// with it.
type Value interface{}

// ApplyFunc mutates a render request in place given one concrete value.
// all is the full value list of the axis, available for context-sensitive
// application (e.g. prompt search/replace uses the first value as the
// search token).
type ApplyFunc func(req *render.Request, v Value, all []Value) error

// FormatFunc renders a value for captioning and legends.
type FormatFunc func(opt *Option, v Value) string

// ConfirmFunc validates the full expanded value list before any rendering
// begins. A failure aborts the entire sweep.
type ConfirmFunc func(vals []Value) error

// ChoicesFunc lazily enumerates the legal values for an axis, for UI
// population and selection-mode validation.
type ChoicesFunc func() []string

// Option is the immutable descriptor of one supported parameter axis.
type Option struct {
	// Label is the axis name, unique within the registry.
	Label string
	// Kind selects the parsing branch for raw values.
	Kind Kind
	// Apply mutates a render request with one concrete value.
	Apply ApplyFunc
	// Format renders a value for captioning. Nil means label-prefixed
	// default formatting.
	Format FormatFunc
	// Confirm optionally validates the full value list up front.
	Confirm ConfirmFunc
	// Choices optionally enumerates legal values.
	Choices ChoicesFunc
	// Cost is the relative switch cost used only for loop-nesting order.
	// It has no absolute meaning.
	Cost float64
	// Img2ImgOnly marks axes offered only when an input image is present.
	// It filters which axes are offered and is not consulted by the sweep
	// engine itself.
	Img2ImgOnly bool
	// Txt2ImgOnly marks axes not offered in img2img mode.
	Txt2ImgOnly bool
}

// Axis binds an option to the concrete ordered value list for one run.
// Instances are created once per sweep and never mutated afterward.
type Axis struct {
	Option *Option
	// Raw is the raw specification the values were parsed from, kept for
	// caption summaries.
	Raw string
	// Values holds at least one entry; an unconfigured axis carries a
	// single nil placeholder.
	Values []Value
}

// Len returns the number of values on the axis. Always >= 1.
func (a *Axis) Len() int {
	return len(a.Values)
}

// FormatValue renders one of the axis's values for display.
func (a *Axis) FormatValue(v Value) string {
	if a.Option.Format != nil {
		return a.Option.Format(a.Option, v)
	}
	return FormatValueAddLabel(a.Option, v)
}

// Labels returns the formatted display string for every value, in order.
func (a *Axis) Labels() []string {
	labels := make([]string, len(a.Values))
	for i, v := range a.Values {
		labels[i] = a.FormatValue(v)
	}
	return labels
}

// New parses a raw specification against an option and returns the bound
// axis. See Parse for the expansion rules.
func New(opt *Option, raw string, selected []string, selection bool) (*Axis, error) {
	vals, err := Parse(opt, raw, selected, selection)
	if err != nil {
		return nil, err
	}
	return &Axis{Option: opt, Raw: raw, Values: vals}, nil
}
