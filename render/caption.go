package render

import (
	"fmt"
	"sort"
	"strings"
)

// Infotext renders the request as a human-readable caption in the
// conventional "prompt, then key: value pairs" layout.
// This is a pure function with no side effects.
func Infotext(req *Request) string {
	var b strings.Builder

	b.WriteString(req.Prompt)
	if req.NegativePrompt != "" {
		b.WriteString("\nNegative prompt: ")
		b.WriteString(req.NegativePrompt)
	}

	pairs := []string{
		fmt.Sprintf("Steps: %d", req.Steps),
		fmt.Sprintf("Sampler: %s", req.SamplerName),
		fmt.Sprintf("Schedule type: %s", req.Scheduler),
		fmt.Sprintf("CFG scale: %g", req.CFGScale),
		fmt.Sprintf("Seed: %d", req.Seed),
		fmt.Sprintf("Size: %dx%d", req.Width, req.Height),
	}
	if req.Checkpoint != "" {
		pairs = append(pairs, fmt.Sprintf("Model: %s", req.Checkpoint))
	}
	if req.VAE != "" && req.VAE != "Automatic" {
		pairs = append(pairs, fmt.Sprintf("VAE: %s", req.VAE))
	}
	if req.SubSeedStrength > 0 {
		pairs = append(pairs,
			fmt.Sprintf("Variation seed: %d", req.SubSeed),
			fmt.Sprintf("Variation seed strength: %g", req.SubSeedStrength))
	}
	if req.DenoisingStrength > 0 {
		pairs = append(pairs, fmt.Sprintf("Denoising strength: %g", req.DenoisingStrength))
	}
	if len(req.Styles) > 0 {
		pairs = append(pairs, fmt.Sprintf("Styles: %s", strings.Join(req.Styles, ", ")))
	}
	keys := make([]string, 0, len(req.Overrides))
	for k := range req.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s: %s", k, req.Overrides[k]))
	}

	b.WriteString("\n")
	b.WriteString(strings.Join(pairs, ", "))
	return b.String()
}
