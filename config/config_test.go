package config

import (
	"testing"

	"go_sweepgrid/sweep"
)

// TestLoadDefaults verifies defaults apply when the environment is empty.
func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SWEEP_OUTPUT_DIR", "SWEEP_DATABASE_PATH", "SWEEP_LOG_PATH", "SWEEP_PRESET",
		"SWEEP_DRAW_LEGEND", "SWEEP_CHUNK_SIZE", "SWEEP_MAX_MEGAPIXELS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if cfg.DatabasePath != DefaultDatabasePath {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, DefaultDatabasePath)
	}
	if !cfg.DrawLegend {
		t.Error("DrawLegend = false, want true by default")
	}
	if cfg.ChunkSize != 0 {
		t.Errorf("ChunkSize = %d, want 0", cfg.ChunkSize)
	}
	if cfg.MaxMegapixels != sweep.DefaultMaxMegapixels {
		t.Errorf("MaxMegapixels = %d, want %d", cfg.MaxMegapixels, sweep.DefaultMaxMegapixels)
	}
	if !cfg.SaveArtifacts {
		t.Error("SaveArtifacts = false, want true by default")
	}
}

// TestLoadOverrides verifies environment values take effect.
func TestLoadOverrides(t *testing.T) {
	t.Setenv("SWEEP_OUTPUT_DIR", "/tmp/grids")
	t.Setenv("SWEEP_DRAW_LEGEND", "false")
	t.Setenv("SWEEP_DRAW_CELL_LABELS", "true")
	t.Setenv("SWEEP_CHUNK_SIZE", "8")
	t.Setenv("SWEEP_VARY_SEEDS_X", "1")
	t.Setenv("SWEEP_MARGIN_SIZE", "4")

	cfg := Load()
	if cfg.OutputDir != "/tmp/grids" {
		t.Errorf("OutputDir = %q, want /tmp/grids", cfg.OutputDir)
	}
	if cfg.DrawLegend {
		t.Error("DrawLegend = true, want false")
	}
	if !cfg.DrawCellLabels {
		t.Error("DrawCellLabels = false, want true")
	}
	if cfg.ChunkSize != 8 {
		t.Errorf("ChunkSize = %d, want 8", cfg.ChunkSize)
	}
	if !cfg.VarySeedsX {
		t.Error("VarySeedsX = false, want true")
	}
	if cfg.MarginSize != 4 {
		t.Errorf("MarginSize = %d, want 4", cfg.MarginSize)
	}
}

// TestLoadMalformedValuesFallBack verifies bad values never break loading.
func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("SWEEP_CHUNK_SIZE", "not-a-number")
	t.Setenv("SWEEP_MARGIN_SIZE", "-3")
	t.Setenv("SWEEP_DRAW_LEGEND", "maybe")

	cfg := Load()
	if cfg.ChunkSize != 0 {
		t.Errorf("ChunkSize = %d, want 0 fallback", cfg.ChunkSize)
	}
	if cfg.MarginSize != 0 {
		t.Errorf("MarginSize = %d, want 0 fallback", cfg.MarginSize)
	}
	if !cfg.DrawLegend {
		t.Error("DrawLegend = false, want default true on malformed value")
	}
}

// TestSweepOptionsMapping verifies the option mapping is one-to-one.
func TestSweepOptionsMapping(t *testing.T) {
	cfg := &Config{
		DrawLegend:        true,
		SkipGrid:          true,
		ChunkSize:         5,
		IncludeLoneImages: true,
		VarySeedsZ:        true,
		MarginSize:        2,
		MaxMegapixels:     50,
		SaveArtifacts:     true,
		OutputDir:         "out",
	}
	opts := cfg.SweepOptions()
	if !opts.DrawLegend || !opts.SkipGrid || opts.ChunkSize != 5 ||
		!opts.IncludeLoneImages || !opts.VarySeedsZ || opts.MarginSize != 2 ||
		opts.MaxMegapixels != 50 || !opts.SaveArtifacts || opts.OutputDir != "out" {
		t.Errorf("SweepOptions mapping mismatch: %+v", opts)
	}
}
