package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIRenderer implements Renderer over the OpenAI Images API.
//
// It maps the request's prompt, styles, and dimensions onto an image
// request, asks for base64 PNG data, and decodes it into an image.Image.
// Parameters with no API equivalent (steps, CFG scale, sampler) are
// ignored by this backend but still appear in the result caption, so
// sweeps over them remain inspectable.
//
// Thread safety: OpenAIRenderer is safe for concurrent use; the sweep
// engine nevertheless calls it one cell at a time.
type OpenAIRenderer struct {
	client *openai.Client
	model  string
}

// OpenAIConfig holds configuration for the OpenAI backend.
type OpenAIConfig struct {
	// APIKey is the OpenAI API key (required).
	APIKey string
	// BaseURL is the API endpoint (default: https://api.openai.com/v1).
	BaseURL string
	// Model is the image model to use (default: dall-e-3).
	Model string
}

// NewOpenAIRenderer creates a renderer backed by the OpenAI Images API.
// Returns an error if the API key is empty.
func NewOpenAIRenderer(cfg OpenAIConfig) (*OpenAIRenderer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", ErrInvalidRequest)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "dall-e-3"
	}

	return &OpenAIRenderer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Render generates an image via the Images API and decodes the base64 PNG
// response.
func (r *OpenAIRenderer) Render(ctx context.Context, req *Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt := req.Prompt
	if len(req.Styles) > 0 {
		prompt = prompt + ", " + strings.Join(req.Styles, ", ")
	}

	apiReq := openai.ImageRequest{
		Prompt:         prompt,
		Model:          r.model,
		Size:           nearestAPISize(req.Width, req.Height),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
		N:              1,
	}
	if r.model == "dall-e-3" {
		apiReq.Style = openai.CreateImageStyleVivid
	}

	resp, err := r.client.CreateImage(ctx, apiReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty response data", ErrNoImage)
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecodeFail, err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecodeFail, err)
	}

	return &Result{
		Images:  []image.Image{img},
		Caption: Infotext(req),
		Prompt:  req.Prompt,
		Seed:    req.Seed,
	}, nil
}

// Model returns the configured image model name.
func (r *OpenAIRenderer) Model() string {
	return r.model
}

// nearestAPISize maps arbitrary sweep dimensions onto the closest size the
// Images API accepts.
func nearestAPISize(width, height int) string {
	switch {
	case width > height:
		return openai.CreateImageSize1792x1024
	case height > width:
		return openai.CreateImageSize1024x1792
	case width <= 256:
		return openai.CreateImageSize256x256
	case width <= 512:
		return openai.CreateImageSize512x512
	default:
		return openai.CreateImageSize1024x1024
	}
}

// Ensure OpenAIRenderer implements Renderer at compile time.
var _ Renderer = (*OpenAIRenderer)(nil)
