package render

import (
	"strings"
	"testing"
)

// TestInfotextLayout verifies the prompt-then-pairs layout.
func TestInfotextLayout(t *testing.T) {
	req := DefaultRequest()
	req.Prompt = "a lighthouse"
	req.NegativePrompt = "fog"
	req.Seed = 7

	got := Infotext(req)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("infotext has %d lines, want 3:\n%s", len(lines), got)
	}
	if lines[0] != "a lighthouse" {
		t.Errorf("first line = %q, want prompt", lines[0])
	}
	if lines[1] != "Negative prompt: fog" {
		t.Errorf("second line = %q, want negative prompt", lines[1])
	}
	for _, want := range []string{"Steps: 20", "Seed: 7", "Size: 512x512", "Sampler: Euler a"} {
		if !strings.Contains(lines[2], want) {
			t.Errorf("settings line missing %q:\n%s", want, lines[2])
		}
	}
}

// TestInfotextOverridesSorted verifies override entries appear in a stable
// sorted order.
func TestInfotextOverridesSorted(t *testing.T) {
	req := DefaultRequest()
	req.Prompt = "p"
	req.Overrides = map[string]string{
		"Z Type": "Sampler",
		"A Type": "Steps",
	}

	got := Infotext(req)
	a := strings.Index(got, "A Type: Steps")
	z := strings.Index(got, "Z Type: Sampler")
	if a < 0 || z < 0 {
		t.Fatalf("infotext missing override entries:\n%s", got)
	}
	if a > z {
		t.Errorf("override keys not sorted:\n%s", got)
	}

	if Infotext(req) != got {
		t.Error("infotext is not deterministic across calls")
	}
}
