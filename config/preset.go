package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"go_sweepgrid/axis"
	"go_sweepgrid/render"
)

// AxisSpec names one axis and its value specification. Values is the raw
// text form (CSV, ranges); Selected holds pre-chosen entries for axes
// driven by choice lists instead of typed text.
type AxisSpec struct {
	Type     string   `yaml:"type"`
	Values   string   `yaml:"values,omitempty"`
	Selected []string `yaml:"selected,omitempty"`
}

// Preset is a YAML-declared sweep: the template generation settings plus
// the three axis specifications. Zero fields fall back to the request
// defaults.
type Preset struct {
	Prompt         string  `yaml:"prompt"`
	NegativePrompt string  `yaml:"negative_prompt,omitempty"`
	Width          int     `yaml:"width,omitempty"`
	Height         int     `yaml:"height,omitempty"`
	Steps          int     `yaml:"steps,omitempty"`
	CFGScale       float64 `yaml:"cfg_scale,omitempty"`
	Seed           int64   `yaml:"seed,omitempty"`
	Sampler        string  `yaml:"sampler,omitempty"`
	Scheduler      string  `yaml:"scheduler,omitempty"`
	Checkpoint     string  `yaml:"checkpoint,omitempty"`

	X AxisSpec `yaml:"x"`
	Y AxisSpec `yaml:"y"`
	Z AxisSpec `yaml:"z"`
}

// LoadPreset reads and parses a preset file. Unknown keys are rejected so
// a typoed axis field fails loudly instead of silently sweeping nothing.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read preset: %w", err)
	}
	var p Preset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("config: failed to parse preset %s: %w", path, err)
	}
	return &p, nil
}

// Request builds the template render request from the preset, starting
// from the generation defaults.
func (p *Preset) Request() *render.Request {
	req := render.DefaultRequest()
	req.Prompt = p.Prompt
	req.NegativePrompt = p.NegativePrompt
	if p.Width > 0 {
		req.Width = p.Width
	}
	if p.Height > 0 {
		req.Height = p.Height
	}
	if p.Steps > 0 {
		req.Steps = p.Steps
	}
	if p.CFGScale > 0 {
		req.CFGScale = p.CFGScale
	}
	if p.Seed != 0 {
		req.Seed = p.Seed
	}
	if p.Sampler != "" {
		req.SamplerName = p.Sampler
	}
	if p.Scheduler != "" {
		req.Scheduler = p.Scheduler
	}
	if p.Checkpoint != "" {
		req.Checkpoint = p.Checkpoint
	}
	return req
}

// Axes resolves the three axis specs against the registry and parses
// their values. An empty spec resolves to the no-op axis.
func (p *Preset) Axes(reg *axis.Registry) (ax, ay, az *axis.Axis, err error) {
	if ax, err = buildAxis(reg, p.X); err != nil {
		return nil, nil, nil, fmt.Errorf("config: x axis: %w", err)
	}
	if ay, err = buildAxis(reg, p.Y); err != nil {
		return nil, nil, nil, fmt.Errorf("config: y axis: %w", err)
	}
	if az, err = buildAxis(reg, p.Z); err != nil {
		return nil, nil, nil, fmt.Errorf("config: z axis: %w", err)
	}
	return ax, ay, az, nil
}

func buildAxis(reg *axis.Registry, spec AxisSpec) (*axis.Axis, error) {
	label := spec.Type
	if label == "" {
		label = axis.LabelNothing
	}
	opt, err := reg.Find(label)
	if err != nil {
		return nil, err
	}
	selection := len(spec.Selected) > 0
	return axis.New(opt, spec.Values, spec.Selected, selection)
}
