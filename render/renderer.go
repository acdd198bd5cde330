package render

import (
	"context"
	"image"
)

// Result is the bundle returned by one render call.
//
// An empty Images slice signals a failed or skipped cell; the sweep engine
// substitutes a blank placeholder so grid geometry stays rectangular.
// Multi-image batches are allowed but only the first image enters the grid.
type Result struct {
	Images  []image.Image
	Caption string // Metadata/caption text describing the render
	Prompt  string // The prompt actually used (after style/S-R mutation)
	Seed    int64  // The seed actually used
}

// EmptyResult returns a failed-cell result carrying the request's prompt and
// seed so metadata lists stay aligned.
func EmptyResult(req *Request) *Result {
	return &Result{
		Images: nil,
		Prompt: req.Prompt,
		Seed:   req.Seed,
	}
}

// WithImage reports whether a result carries at least one usable image.
// This is a pure function with no side effects.
func WithImage(res *Result) bool {
	return res != nil && len(res.Images) > 0 && res.Images[0] != nil
}

// Renderer turns one concrete parameter combination into an image.
// Each renderer (OpenAI, local, test fakes) implements this interface to
// allow swappable generation backends.
//
// Renderers are invoked strictly one cell at a time: implementations may
// assume exclusive access to shared generation state (loaded model weights,
// device memory) for the duration of a call.
type Renderer interface {
	// Render generates an image for the given request.
	// The context can be used for cancellation and timeout control.
	Render(ctx context.Context, req *Request) (*Result, error)
}
