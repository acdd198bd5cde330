package axis

import (
	"errors"
	"testing"

	"go_sweepgrid/render"
)

// TestApplyPromptSR verifies search/replace uses the first axis value as
// the search token across prompt and negative prompt.
func TestApplyPromptSR(t *testing.T) {
	req := render.DefaultRequest()
	req.Prompt = "a red house at dusk"
	req.NegativePrompt = "red tint"

	all := []Value{"red", "blue"}
	if err := applyPromptSR(req, all[1], all); err != nil {
		t.Fatalf("applyPromptSR error = %v", err)
	}
	if req.Prompt != "a blue house at dusk" {
		t.Errorf("Prompt = %q, want %q", req.Prompt, "a blue house at dusk")
	}
	if req.NegativePrompt != "blue tint" {
		t.Errorf("NegativePrompt = %q, want %q", req.NegativePrompt, "blue tint")
	}
}

// TestApplyPromptSRMissingToken verifies a search token absent from both
// prompts is rejected.
func TestApplyPromptSRMissingToken(t *testing.T) {
	req := render.DefaultRequest()
	req.Prompt = "a house"

	all := []Value{"red", "blue"}
	if err := applyPromptSR(req, all[1], all); !errors.Is(err, ErrPromptSearch) {
		t.Errorf("applyPromptSR error = %v, want ErrPromptSearch", err)
	}
}

// TestApplyPromptOrder verifies tokens are re-inserted at their original
// positions in tuple order.
func TestApplyPromptOrder(t *testing.T) {
	req := render.DefaultRequest()
	req.Prompt = "the quick brown fox"

	if err := applyPromptOrder(req, []string{"brown", "quick"}, nil); err != nil {
		t.Fatalf("applyPromptOrder error = %v", err)
	}
	if req.Prompt != "the brown quick fox" {
		t.Errorf("Prompt = %q, want %q", req.Prompt, "the brown quick fox")
	}
}

// TestApplyPromptOrderMissingToken verifies unknown tokens are rejected.
func TestApplyPromptOrderMissingToken(t *testing.T) {
	req := render.DefaultRequest()
	req.Prompt = "the quick fox"

	if err := applyPromptOrder(req, []string{"brown", "quick"}, nil); !errors.Is(err, ErrPromptSearch) {
		t.Errorf("applyPromptOrder error = %v, want ErrPromptSearch", err)
	}
}

// TestApplySize verifies WIDTHxHEIGHT parsing.
func TestApplySize(t *testing.T) {
	req := render.DefaultRequest()
	if err := applySize(req, "640x480", nil); err != nil {
		t.Fatalf("applySize error = %v", err)
	}
	if req.Width != 640 || req.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", req.Width, req.Height)
	}

	if err := applySize(req, "640by480", nil); !errors.Is(err, ErrBadSize) {
		t.Errorf("applySize bad format error = %v, want ErrBadSize", err)
	}
}

// TestApplyVAE verifies case-insensitive resolution with the Automatic
// fallback.
func TestApplyVAE(t *testing.T) {
	apply := applyVAE([]string{"Automatic", "None", "vae-ft-mse.safetensors"})

	tests := []struct {
		in   string
		want string
	}{
		{"auto", "Automatic"},
		{"NONE", "None"},
		{"VAE-FT-MSE.SAFETENSORS", "vae-ft-mse.safetensors"},
		{"missing.vae", "Automatic"},
	}
	for _, tt := range tests {
		req := render.DefaultRequest()
		if err := apply(req, tt.in, nil); err != nil {
			t.Fatalf("applyVAE(%q) error = %v", tt.in, err)
		}
		if req.VAE != tt.want {
			t.Errorf("applyVAE(%q): VAE = %q, want %q", tt.in, req.VAE, tt.want)
		}
	}
}

// TestApplyUniPCOrder verifies the order is capped at steps-1.
func TestApplyUniPCOrder(t *testing.T) {
	req := render.DefaultRequest()
	req.Steps = 5

	if err := applyUniPCOrder(req, 9, nil); err != nil {
		t.Fatalf("applyUniPCOrder error = %v", err)
	}
	if req.UniPCOrder != 4 {
		t.Errorf("UniPCOrder = %d, want 4", req.UniPCOrder)
	}

	if err := applyUniPCOrder(req, 3, nil); err != nil {
		t.Fatalf("applyUniPCOrder error = %v", err)
	}
	if req.UniPCOrder != 3 {
		t.Errorf("UniPCOrder = %d, want 3", req.UniPCOrder)
	}
}

// TestApplyStyles verifies comma-separated styles are appended.
func TestApplyStyles(t *testing.T) {
	req := render.DefaultRequest()
	req.Styles = []string{"base"}

	if err := applyStyles(req, "cinematic, film grain", nil); err != nil {
		t.Fatalf("applyStyles error = %v", err)
	}
	want := []string{"base", "cinematic", "film grain"}
	if len(req.Styles) != len(want) {
		t.Fatalf("Styles = %v, want %v", req.Styles, want)
	}
	for i := range want {
		if req.Styles[i] != want[i] {
			t.Errorf("Styles[%d] = %q, want %q", i, req.Styles[i], want[i])
		}
	}
}

// TestApplyFaceRestore verifies model names and boolean-ish values.
func TestApplyFaceRestore(t *testing.T) {
	tests := []struct {
		in        string
		restore   bool
		wantModel string
	}{
		{"CodeFormer", true, "CodeFormer"},
		{"gfpgan", true, "GFPGAN"},
		{"true", true, ""},
		{"false", false, ""},
	}
	for _, tt := range tests {
		req := render.DefaultRequest()
		if err := applyFaceRestore(req, tt.in, nil); err != nil {
			t.Fatalf("applyFaceRestore(%q) error = %v", tt.in, err)
		}
		if req.RestoreFaces != tt.restore {
			t.Errorf("applyFaceRestore(%q): RestoreFaces = %v, want %v", tt.in, req.RestoreFaces, tt.restore)
		}
		if req.FaceRestorationModel != tt.wantModel {
			t.Errorf("applyFaceRestore(%q): model = %q, want %q", tt.in, req.FaceRestorationModel, tt.wantModel)
		}
	}
}

// TestFormatRemovePath verifies directory components are stripped.
func TestFormatRemovePath(t *testing.T) {
	opt := &Option{Label: "Checkpoint name"}
	if got := FormatRemovePath(opt, "models/sd/v1-5.ckpt"); got != "v1-5.ckpt" {
		t.Errorf("FormatRemovePath = %q, want %q", got, "v1-5.ckpt")
	}
}

// TestFormatScalarRoundsFloats verifies accumulated float error does not
// leak into labels.
func TestFormatScalarRoundsFloats(t *testing.T) {
	if got := formatScalar(0.30000000000000004); got != "0.3" {
		t.Errorf("formatScalar = %q, want %q", got, "0.3")
	}
}

// TestConfirmRange verifies bounds checking over mixed numeric values.
func TestConfirmRange(t *testing.T) {
	confirm := ConfirmRange(0, 1, "Denoising")

	if err := confirm([]Value{0.0, 0.5, 1.0}); err != nil {
		t.Errorf("confirm in-range error = %v, want nil", err)
	}
	if err := confirm([]Value{0.5, 1.5}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("confirm out-of-range error = %v, want ErrOutOfRange", err)
	}
	if err := confirm([]Value{nil}); err != nil {
		t.Errorf("confirm placeholder error = %v, want nil", err)
	}
}

// TestForMode verifies img2img-only and txt2img-only filtering.
func TestForMode(t *testing.T) {
	reg := testRegistry()

	for _, opt := range reg.ForMode(false) {
		if opt.Img2ImgOnly {
			t.Errorf("txt2img mode offered img2img-only axis %q", opt.Label)
		}
	}
	for _, opt := range reg.ForMode(true) {
		if opt.Txt2ImgOnly {
			t.Errorf("img2img mode offered txt2img-only axis %q", opt.Label)
		}
	}
}
