package render

import (
	"context"
	"hash/fnv"
	"image"
	"image/color"
	"math/rand"
)

// LocalRenderer is a deterministic offline backend. It produces a seeded
// pattern image instead of running a diffusion model, which makes dry runs
// and tests reproducible without a model file or network access.
//
// The pixel content is a pure function of (prompt, seed, size, steps,
// CFG scale): the same request always yields the same image.
type LocalRenderer struct{}

// NewLocalRenderer creates a local deterministic renderer.
func NewLocalRenderer() *LocalRenderer {
	return &LocalRenderer{}
}

// Render generates a deterministic pattern image for the request.
func (l *LocalRenderer) Render(ctx context.Context, req *Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	img := patternImage(req)

	return &Result{
		Images:  []image.Image{img},
		Caption: Infotext(req),
		Prompt:  req.Prompt,
		Seed:    req.Seed,
	}, nil
}

// patternImage fills an RGBA canvas with seeded noise bands. The band period
// tracks Steps and the palette tracks CFGScale so that neighboring sweep
// cells are visibly distinct.
func patternImage(req *Request) *image.RGBA {
	h := fnv.New64a()
	h.Write([]byte(req.Prompt))
	h.Write([]byte(req.SamplerName))
	h.Write([]byte{byte(req.Seed), byte(req.Seed >> 8), byte(req.Seed >> 16), byte(req.Seed >> 24)})
	rng := rand.New(rand.NewSource(int64(h.Sum64()) ^ req.Seed))

	base := color.RGBA{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
		A: 255,
	}
	period := req.Steps
	if period < 1 {
		period = 1
	}
	shade := uint8(req.CFGScale * 8)

	img := image.NewRGBA(image.Rect(0, 0, req.Width, req.Height))
	for y := 0; y < req.Height; y++ {
		for x := 0; x < req.Width; x++ {
			c := base
			if ((x+y)/period)%2 == 0 {
				c.R += shade
				c.G -= shade
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Ensure LocalRenderer implements Renderer at compile time.
var _ Renderer = (*LocalRenderer)(nil)
