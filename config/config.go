// Package config loads sweep engine configuration from environment
// variables and YAML preset files.
package config

import (
	"os"
	"strconv"

	"go_sweepgrid/sweep"
)

// Config holds the full runtime configuration, read from SWEEP_* (and
// OPENAI_*) environment variables.
type Config struct {
	// Paths
	OutputDir    string
	DatabasePath string
	LogPath      string
	PresetPath   string

	// Engine options
	DrawLegend        bool
	DrawCellLabels    bool
	SkipGrid          bool
	ChunkSize         int
	IncludeSubGrids   bool
	IncludeLoneImages bool
	KeepRandomSeeds   bool
	VarySeedsX        bool
	VarySeedsY        bool
	VarySeedsZ        bool
	MarginSize        int
	MaxMegapixels     int
	SaveArtifacts     bool

	// Renderer selection
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	DevMode bool
}

// Default configuration values.
const (
	DefaultOutputDir    = "outputs"
	DefaultDatabasePath = "sweeps.sqlite"
	DefaultLogPath      = "sweep.log"
	DefaultPresetPath   = "sweep.yaml"
)

// Load reads configuration from the environment. Missing or malformed
// values fall back to defaults; loading never fails.
func Load() *Config {
	return &Config{
		OutputDir:    stringOr(os.Getenv("SWEEP_OUTPUT_DIR"), DefaultOutputDir),
		DatabasePath: stringOr(os.Getenv("SWEEP_DATABASE_PATH"), DefaultDatabasePath),
		LogPath:      stringOr(os.Getenv("SWEEP_LOG_PATH"), DefaultLogPath),
		PresetPath:   stringOr(os.Getenv("SWEEP_PRESET"), DefaultPresetPath),

		DrawLegend:        parseBool(os.Getenv("SWEEP_DRAW_LEGEND"), true),
		DrawCellLabels:    parseBool(os.Getenv("SWEEP_DRAW_CELL_LABELS"), false),
		SkipGrid:          parseBool(os.Getenv("SWEEP_SKIP_GRID"), false),
		ChunkSize:         parseNonNegInt(os.Getenv("SWEEP_CHUNK_SIZE"), 0),
		IncludeSubGrids:   parseBool(os.Getenv("SWEEP_INCLUDE_SUB_GRIDS"), false),
		IncludeLoneImages: parseBool(os.Getenv("SWEEP_INCLUDE_LONE_IMAGES"), false),
		KeepRandomSeeds:   parseBool(os.Getenv("SWEEP_KEEP_RANDOM_SEEDS"), false),
		VarySeedsX:        parseBool(os.Getenv("SWEEP_VARY_SEEDS_X"), false),
		VarySeedsY:        parseBool(os.Getenv("SWEEP_VARY_SEEDS_Y"), false),
		VarySeedsZ:        parseBool(os.Getenv("SWEEP_VARY_SEEDS_Z"), false),
		MarginSize:        parseNonNegInt(os.Getenv("SWEEP_MARGIN_SIZE"), 0),
		MaxMegapixels:     parseNonNegInt(os.Getenv("SWEEP_MAX_MEGAPIXELS"), sweep.DefaultMaxMegapixels),
		SaveArtifacts:     parseBool(os.Getenv("SWEEP_SAVE_ARTIFACTS"), true),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   os.Getenv("OPENAI_IMAGE_MODEL"),

		DevMode: parseBool(os.Getenv("DEV_MODE"), false),
	}
}

// SweepOptions maps the configuration onto engine options.
func (c *Config) SweepOptions() sweep.Options {
	return sweep.Options{
		DrawLegend:        c.DrawLegend,
		DrawCellLabels:    c.DrawCellLabels,
		SkipGrid:          c.SkipGrid,
		ChunkSize:         c.ChunkSize,
		IncludeSubGrids:   c.IncludeSubGrids,
		IncludeLoneImages: c.IncludeLoneImages,
		KeepRandomSeeds:   c.KeepRandomSeeds,
		VarySeedsX:        c.VarySeedsX,
		VarySeedsY:        c.VarySeedsY,
		VarySeedsZ:        c.VarySeedsZ,
		MarginSize:        c.MarginSize,
		MaxMegapixels:     c.MaxMegapixels,
		SaveArtifacts:     c.SaveArtifacts,
		OutputDir:         c.OutputDir,
	}
}

// stringOr returns s, or def when s is empty.
func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// parseBool parses a boolean env value. Returns def if empty or
// unrecognized.
func parseBool(s string, def bool) bool {
	switch s {
	case "":
		return def
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return def
	}
}

// parseNonNegInt parses a non-negative integer env value. Returns def if
// empty, malformed, or negative.
func parseNonNegInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
