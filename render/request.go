package render

import "fmt"

// Request holds the full parameter set for one render call. A sweep owns a
// template Request; the driver clones it per cell so that axis mutations on
// one cell never leak into another.
type Request struct {
	Prompt         string // Required: text description of the image to generate
	NegativePrompt string // Optional: what to avoid in the image

	Width  int // Image width in pixels (128-2048, must be divisible by 8)
	Height int // Image height in pixels (128-2048, must be divisible by 8)

	Steps       int  // Number of inference steps (1-150)
	HiresSteps  int  // Second-pass steps when EnableHires is set (0 = reuse Steps)
	EnableHires bool // Enable the high-resolution second pass

	CFGScale float64 // Classifier-free guidance scale (1.0-30.0)

	Seed            int64   // Random seed for reproducibility (-1 for random)
	SubSeed         int64   // Variation seed (-1 for random)
	SubSeedStrength float64 // Variation seed strength (0.0-1.0)

	SamplerName string // Sampler identifier, e.g. "Euler a"
	Scheduler   string // Noise schedule type, e.g. "Karras"

	Checkpoint string // Model checkpoint name, resolved by the renderer
	VAE        string // VAE name ("Automatic", "None", or a concrete name)

	Styles []string // Style names appended to the prompt by the renderer

	UniPCOrder        int
	ClipSkip          int
	DenoisingStrength float64
	Eta               float64

	RestoreFaces         bool
	FaceRestorationModel string // "CodeFormer" or "GFPGAN" when RestoreFaces is set

	RNGSource string // "GPU", "CPU", or "NV"

	BatchSize  int // Images per render call; the sweep uses only the first
	Iterations int // Renderer-internal iteration count, scales the step estimate

	// Overrides carries renderer-specific settings that have no dedicated
	// field, keyed by setting name.
	Overrides map[string]string
}

// Parameter validation constants.
const (
	MinImageSize      = 128
	MaxImageSize      = 2048
	ImageSizeMultiple = 8 // Image dimensions must be divisible by this

	MinSteps = 1
	MaxSteps = 150

	MinCFGScale = 1.0
	MaxCFGScale = 30.0
)

// DefaultRequest returns a Request with sensible generation defaults.
// The caller should at minimum set the Prompt field.
func DefaultRequest() *Request {
	return &Request{
		Width:       512,
		Height:      512,
		Steps:       20,
		CFGScale:    7.0,
		Seed:        -1,
		SubSeed:     -1,
		SamplerName: "Euler a",
		Scheduler:   "Automatic",
		VAE:         "Automatic",
		RNGSource:   "GPU",
		BatchSize:   1,
		Iterations:  1,
	}
}

// Clone returns an independent copy of the request.
//
// The copy boundary is explicit: axis apply functions mutate scalar fields,
// the Styles slice, and the Overrides map, so those two collections are
// deep-copied. Everything else is a value field.
func (r *Request) Clone() *Request {
	c := *r
	if r.Styles != nil {
		c.Styles = make([]string, len(r.Styles))
		copy(c.Styles, r.Styles)
	}
	if r.Overrides != nil {
		c.Overrides = make(map[string]string, len(r.Overrides))
		for k, v := range r.Overrides {
			c.Overrides[k] = v
		}
	}
	return &c
}

// Validate checks the request against generation bounds.
// This is a pure function with no side effects.
func (r *Request) Validate() error {
	if r.Prompt == "" {
		return ErrEmptyPrompt
	}
	if r.Width < MinImageSize || r.Width > MaxImageSize {
		return fmt.Errorf("%w: width %d must be between %d and %d",
			ErrInvalidRequest, r.Width, MinImageSize, MaxImageSize)
	}
	if r.Width%ImageSizeMultiple != 0 {
		return fmt.Errorf("%w: width %d must be divisible by %d",
			ErrInvalidRequest, r.Width, ImageSizeMultiple)
	}
	if r.Height < MinImageSize || r.Height > MaxImageSize {
		return fmt.Errorf("%w: height %d must be between %d and %d",
			ErrInvalidRequest, r.Height, MinImageSize, MaxImageSize)
	}
	if r.Height%ImageSizeMultiple != 0 {
		return fmt.Errorf("%w: height %d must be divisible by %d",
			ErrInvalidRequest, r.Height, ImageSizeMultiple)
	}
	if r.Steps < MinSteps || r.Steps > MaxSteps {
		return fmt.Errorf("%w: steps %d must be between %d and %d",
			ErrInvalidRequest, r.Steps, MinSteps, MaxSteps)
	}
	if r.CFGScale < MinCFGScale || r.CFGScale > MaxCFGScale {
		return fmt.Errorf("%w: CFGScale %.2f must be between %.1f and %.1f",
			ErrInvalidRequest, r.CFGScale, MinCFGScale, MaxCFGScale)
	}
	return nil
}
