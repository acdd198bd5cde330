package axis

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"go_sweepgrid/render"
)

// Well-known axis labels consulted by the sweep engine (step estimation,
// seed fixing, the synthetic no-op axis).
const (
	LabelNothing    = "Nothing"
	LabelSeed       = "Seed"
	LabelVarSeed    = "Var. seed"
	LabelSteps      = "Steps"
	LabelHiresSteps = "Hires steps"
)

// Catalog supplies the enumerated choice sets that depend on the host
// environment. Empty lists disable membership validation for that set.
type Catalog struct {
	Samplers    []string
	Schedulers  []string
	Checkpoints []string
	VAEs        []string
	Styles      []string
}

// DefaultCatalog returns the built-in sampler and scheduler names.
// Checkpoints, VAEs, and styles are host-provided and default to empty
// (membership unchecked).
func DefaultCatalog() Catalog {
	return Catalog{
		Samplers: []string{
			"Euler a", "Euler", "LMS", "Heun", "DPM2", "DPM2 a",
			"DPM++ 2S a", "DPM++ 2M", "DPM++ SDE", "DPM++ 2M SDE",
			"DDIM", "PLMS", "UniPC",
		},
		Schedulers: []string{
			"Automatic", "Uniform", "Karras", "Exponential",
			"Polyexponential", "SGM Uniform",
		},
		VAEs: []string{"Automatic", "None"},
	}
}

// Registry is the static catalog of supported parameter axes.
type Registry struct {
	opts []*Option
}

// Find returns the option with the given label.
func (r *Registry) Find(label string) (*Option, error) {
	for _, opt := range r.opts {
		if opt.Label == label {
			return opt, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOption, label)
}

// Options returns every registered option in declaration order.
func (r *Registry) Options() []*Option {
	return r.opts
}

// ForMode returns the options applicable to txt2img or img2img use. This
// filters what is offered to the caller; the sweep engine itself never
// consults the mode flags.
func (r *Registry) ForMode(img2img bool) []*Option {
	var out []*Option
	for _, opt := range r.opts {
		if img2img && opt.Txt2ImgOnly {
			continue
		}
		if !img2img && opt.Img2ImgOnly {
			continue
		}
		out = append(out, opt)
	}
	return out
}

// NewRegistry builds the axis catalog against a host catalog of choice
// sets. Costs mark axes whose value changes are expensive for the renderer
// (checkpoint and VAE swaps reload weights) so the planner can keep them in
// outer loops.
func NewRegistry(cat Catalog) *Registry {
	return &Registry{opts: []*Option{
		{Label: LabelNothing, Kind: KindString, Apply: applyNothing, Format: FormatNothing},
		{Label: LabelSeed, Kind: KindInt, Apply: applyInt(func(r *render.Request, n int) { r.Seed = int64(n) })},
		{Label: LabelVarSeed, Kind: KindInt, Apply: applyInt(func(r *render.Request, n int) { r.SubSeed = int64(n) })},
		{Label: "Var. strength", Kind: KindFloat, Apply: applyFloat(func(r *render.Request, f float64) { r.SubSeedStrength = f }),
			Confirm: ConfirmRange(0, 1, "Var. strength")},
		{Label: LabelSteps, Kind: KindInt, Apply: applyInt(func(r *render.Request, n int) { r.Steps = n }),
			Confirm: ConfirmRange(render.MinSteps, render.MaxSteps, LabelSteps)},
		{Label: LabelHiresSteps, Kind: KindInt, Txt2ImgOnly: true,
			Apply: applyInt(func(r *render.Request, n int) { r.HiresSteps = n })},
		{Label: "CFG Scale", Kind: KindFloat, Apply: applyFloat(func(r *render.Request, f float64) { r.CFGScale = f }),
			Confirm: ConfirmRange(render.MinCFGScale, render.MaxCFGScale, "CFG Scale")},
		{Label: "Prompt S/R", Kind: KindString, Apply: applyPromptSR, Format: FormatValue},
		{Label: "Prompt order", Kind: KindPermutation, Apply: applyPromptOrder, Format: FormatJoinList},
		{Label: "Sampler", Kind: KindString, Format: FormatValue,
			Apply:   applyString(func(r *render.Request, s string) { r.SamplerName = s }),
			Confirm: confirmMember(cat.Samplers, "sampler", true),
			Choices: staticChoices(cat.Samplers)},
		{Label: "Schedule type", Kind: KindString,
			Apply:   applyString(func(r *render.Request, s string) { r.Scheduler = s }),
			Confirm: confirmMember(cat.Schedulers, "schedule type", false),
			Choices: staticChoices(cat.Schedulers)},
		{Label: "Checkpoint name", Kind: KindString, Cost: 1.0, Format: FormatRemovePath,
			Apply:   applyString(func(r *render.Request, s string) { r.Checkpoint = s }),
			Confirm: confirmMember(cat.Checkpoints, "checkpoint", false),
			Choices: staticChoices(cat.Checkpoints)},
		{Label: "VAE", Kind: KindString, Cost: 0.7,
			Apply:   applyVAE(cat.VAEs),
			Choices: staticChoices(cat.VAEs)},
		{Label: "Styles", Kind: KindString, Apply: applyStyles,
			Choices: staticChoices(cat.Styles)},
		{Label: "UniPC Order", Kind: KindInt, Cost: 0.5, Apply: applyUniPCOrder},
		{Label: "Clip skip", Kind: KindInt, Apply: applyInt(func(r *render.Request, n int) { r.ClipSkip = n }),
			Confirm: ConfirmRange(1, 12, "Clip skip")},
		{Label: "Denoising", Kind: KindFloat, Apply: applyFloat(func(r *render.Request, f float64) { r.DenoisingStrength = f }),
			Confirm: ConfirmRange(0, 1, "Denoising")},
		{Label: "Eta", Kind: KindFloat, Apply: applyFloat(func(r *render.Request, f float64) { r.Eta = f })},
		{Label: "Face restore", Kind: KindString, Apply: applyFaceRestore, Format: FormatValue},
		{Label: "RNG source", Kind: KindString,
			Apply:   applyString(func(r *render.Request, s string) { r.RNGSource = s }),
			Choices: staticChoices([]string{"GPU", "CPU", "NV"})},
		{Label: "Image CFG Scale", Kind: KindFloat, Img2ImgOnly: true,
			Apply: applyOverride("Image CFG scale")},
		{Label: "Cond. Image Mask Weight", Kind: KindFloat, Img2ImgOnly: true,
			Apply: applyOverride("Conditional mask weight")},
		{Label: "Size", Kind: KindString, Apply: applySize, Format: FormatValue},
	}}
}

// --- format functions ---

// FormatValueAddLabel renders "Label: value"; the default formatter.
func FormatValueAddLabel(opt *Option, v Value) string {
	return fmt.Sprintf("%s: %s", opt.Label, formatScalar(v))
}

// FormatValue renders the bare value.
func FormatValue(opt *Option, v Value) string {
	return formatScalar(v)
}

// FormatJoinList renders a permutation tuple as a comma-joined list.
func FormatJoinList(opt *Option, v Value) string {
	if tuple, ok := v.([]string); ok {
		return strings.Join(tuple, ", ")
	}
	return formatScalar(v)
}

// FormatNothing renders the empty string; used by the no-op axis.
func FormatNothing(opt *Option, v Value) string {
	return ""
}

// FormatRemovePath strips directory components from path-like values such
// as checkpoint filenames.
func FormatRemovePath(opt *Option, v Value) string {
	return filepath.Base(formatScalar(v))
}

// formatScalar renders a single value. Floats are rounded to 8 decimals so
// accumulated range steps don't leak artifacts into captions.
func formatScalar(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(math.Round(t*1e8)/1e8, 'g', -1, 64)
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	default:
		return fmt.Sprint(t)
	}
}

// --- apply functions ---

func applyNothing(req *render.Request, v Value, all []Value) error {
	return nil
}

func applyInt(set func(*render.Request, int)) ApplyFunc {
	return func(req *render.Request, v Value, all []Value) error {
		n, ok := v.(int)
		if !ok {
			return fmt.Errorf("%w: expected int, got %T", ErrBadValue, v)
		}
		set(req, n)
		return nil
	}
}

func applyFloat(set func(*render.Request, float64)) ApplyFunc {
	return func(req *render.Request, v Value, all []Value) error {
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("%w: expected float, got %T", ErrBadValue, v)
		}
		set(req, f)
		return nil
	}
}

func applyString(set func(*render.Request, string)) ApplyFunc {
	return func(req *render.Request, v Value, all []Value) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrBadValue, v)
		}
		set(req, s)
		return nil
	}
}

// applyPromptSR replaces the first value of the axis (the search token)
// with the current value, in both prompt and negative prompt. The search
// token must occur in at least one of them.
func applyPromptSR(req *render.Request, v Value, all []Value) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: expected string, got %T", ErrBadValue, v)
	}
	token, _ := all[0].(string)
	if !strings.Contains(req.Prompt, token) && !strings.Contains(req.NegativePrompt, token) {
		return fmt.Errorf("%w: %q", ErrPromptSearch, token)
	}
	req.Prompt = strings.ReplaceAll(req.Prompt, token, s)
	req.NegativePrompt = strings.ReplaceAll(req.NegativePrompt, token, s)
	return nil
}

// applyPromptOrder rewrites the prompt so its tokens appear in the order
// given by the permutation tuple. Tokens are cut out at their original
// positions (earliest first) and re-inserted in tuple order.
func applyPromptOrder(req *render.Request, v Value, all []Value) error {
	tuple, ok := v.([]string)
	if !ok {
		return fmt.Errorf("%w: expected permutation tuple, got %T", ErrBadValue, v)
	}

	type pos struct {
		at    int
		token string
	}
	order := make([]pos, 0, len(tuple))
	for _, token := range tuple {
		order = append(order, pos{strings.Index(req.Prompt, token), token})
	}
	for i := range order {
		for j := i + 1; j < len(order); j++ {
			if order[j].at < order[i].at {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	prompt := req.Prompt
	parts := make([]string, 0, len(order))
	for _, p := range order {
		n := strings.Index(prompt, p.token)
		if n < 0 {
			return fmt.Errorf("%w: %q", ErrPromptSearch, p.token)
		}
		parts = append(parts, prompt[:n])
		prompt = prompt[n+len(p.token):]
	}

	var b strings.Builder
	for i, part := range parts {
		b.WriteString(part)
		b.WriteString(tuple[i])
	}
	b.WriteString(prompt)
	req.Prompt = b.String()
	return nil
}

// applyStyles appends comma-separated style names to the request's style
// list. The clone's deep-copied slice keeps this from leaking across cells.
func applyStyles(req *render.Request, v Value, all []Value) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: expected string, got %T", ErrBadValue, v)
	}
	for _, style := range strings.Split(s, ",") {
		if style = strings.TrimSpace(style); style != "" {
			req.Styles = append(req.Styles, style)
		}
	}
	return nil
}

// applyUniPCOrder caps the order at steps-1; higher orders are invalid for
// the sampler.
func applyUniPCOrder(req *render.Request, v Value, all []Value) error {
	n, ok := v.(int)
	if !ok {
		return fmt.Errorf("%w: expected int, got %T", ErrBadValue, v)
	}
	if n > req.Steps-1 {
		n = req.Steps - 1
	}
	req.UniPCOrder = n
	return nil
}

// applyFaceRestore maps "CodeFormer"/"GFPGAN" to the named model, and
// boolean-ish strings to plain on/off.
func applyFaceRestore(req *render.Request, v Value, all []Value) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: expected string, got %T", ErrBadValue, v)
	}
	switch strings.ToLower(s) {
	case "codeformer":
		req.RestoreFaces = true
		req.FaceRestorationModel = "CodeFormer"
	case "gfpgan":
		req.RestoreFaces = true
		req.FaceRestorationModel = "GFPGAN"
	case "true", "yes", "y", "1":
		req.RestoreFaces = true
	default:
		req.RestoreFaces = false
	}
	return nil
}

// applyVAE resolves a VAE name against the known list, case-insensitive.
// "auto"/"automatic" and "none" map to their canonical spellings; an
// unknown name falls back to Automatic.
func applyVAE(vaes []string) ApplyFunc {
	return func(req *render.Request, v Value, all []Value) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrBadValue, v)
		}
		name := strings.ToLower(strings.TrimSpace(s))
		switch name {
		case "auto", "automatic":
			req.VAE = "Automatic"
			return nil
		case "none":
			req.VAE = "None"
			return nil
		}
		for _, known := range vaes {
			if strings.ToLower(known) == name {
				req.VAE = known
				return nil
			}
		}
		req.VAE = "Automatic"
		return nil
	}
}

// applyOverride stores a value under a renderer-specific settings key.
func applyOverride(key string) ApplyFunc {
	return func(req *render.Request, v Value, all []Value) error {
		if req.Overrides == nil {
			req.Overrides = make(map[string]string)
		}
		req.Overrides[key] = formatScalar(v)
		return nil
	}
}

// applySize parses "WIDTHxHEIGHT" into the request dimensions.
func applySize(req *render.Request, v Value, all []Value) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: expected string, got %T", ErrBadValue, v)
	}
	w, h, found := strings.Cut(s, "x")
	if !found {
		return fmt.Errorf("%w: %q", ErrBadSize, s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadSize, s)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadSize, s)
	}
	req.Width = width
	req.Height = height
	return nil
}

// --- confirm functions ---

// ConfirmRange returns a validator that checks every numeric value lies in
// [min, max]. It runs once on the full expanded list before any rendering.
func ConfirmRange(min, max float64, label string) ConfirmFunc {
	return func(vals []Value) error {
		for _, v := range vals {
			var f float64
			switch t := v.(type) {
			case nil:
				continue
			case int:
				f = float64(t)
			case float64:
				f = t
			default:
				return fmt.Errorf("%w: %s value %v", ErrBadValue, label, v)
			}
			if f < min || f > max {
				return fmt.Errorf("%w: %s value %q out of range [%g, %g]",
					ErrOutOfRange, label, formatScalar(v), min, max)
			}
		}
		return nil
	}
}

// confirmMember validates string values against a choice list. An empty
// list disables the check (the host supplied no catalog).
func confirmMember(choices []string, what string, caseFold bool) ConfirmFunc {
	return func(vals []Value) error {
		if len(choices) == 0 {
			return nil
		}
		for _, v := range vals {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if !member(choices, s, caseFold) {
				return fmt.Errorf("%w: unknown %s %q", ErrUnknownChoice, what, s)
			}
		}
		return nil
	}
}

// ConfirmMemberOrNone is like confirmMember but passes empty and "None"
// values through, for optional model slots such as refiner checkpoints.
func ConfirmMemberOrNone(choices []string, what string) ConfirmFunc {
	inner := confirmMember(choices, what, false)
	return func(vals []Value) error {
		filtered := make([]Value, 0, len(vals))
		for _, v := range vals {
			if s, ok := v.(string); ok && (s == "" || strings.EqualFold(s, "none")) {
				continue
			}
			filtered = append(filtered, v)
		}
		return inner(filtered)
	}
}

func member(choices []string, s string, caseFold bool) bool {
	for _, c := range choices {
		if c == s || (caseFold && strings.EqualFold(c, s)) {
			return true
		}
	}
	return false
}

func staticChoices(choices []string) ChoicesFunc {
	if len(choices) == 0 {
		return nil
	}
	return func() []string { return choices }
}
