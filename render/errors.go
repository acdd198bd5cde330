// Package render defines the render request/result types and the Renderer
// interface that turns one concrete parameter combination into an image.
package render

import "errors"

// Sentinel errors for render operations.
// These are domain-specific errors that provide clear failure modes.
var (
	// Input validation errors
	ErrInvalidRequest = errors.New("render: invalid render request")
	ErrEmptyPrompt    = errors.New("render: prompt cannot be empty")

	// Render errors
	ErrRenderFailed = errors.New("render: image generation failed")
	ErrNoImage      = errors.New("render: renderer returned no image")

	// Output validation errors
	ErrImageDecodeFail = errors.New("render: failed to decode image data")
)
