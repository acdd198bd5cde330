package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go_sweepgrid/axis"
	"go_sweepgrid/config"
	"go_sweepgrid/logging"
	"go_sweepgrid/output"
	"go_sweepgrid/render"
	"go_sweepgrid/store"
	"go_sweepgrid/sweep"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Use fmt here since logger isn't initialized yet
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.DevMode, cfg.LogPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Configuration loaded",
		zap.String("preset", cfg.PresetPath),
		zap.String("output_dir", cfg.OutputDir),
		zap.String("database", cfg.DatabasePath),
		zap.Int("chunk_size", cfg.ChunkSize),
		zap.Bool("skip_grid", cfg.SkipGrid),
		zap.Bool("save_artifacts", cfg.SaveArtifacts),
		zap.Bool("dev_mode", cfg.DevMode),
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("Sweep failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	preset, err := config.LoadPreset(cfg.PresetPath)
	if err != nil {
		return err
	}

	reg := axis.NewRegistry(axis.DefaultCatalog())
	ax, ay, az, err := preset.Axes(reg)
	if err != nil {
		return err
	}
	template := preset.Request()

	// Metadata recording is best-effort: a broken database downgrades to
	// an unrecorded run rather than blocking it.
	var recorder sweep.Recorder
	if cfg.DatabasePath != "" {
		db, err := store.OpenWithDefaults(cfg.DatabasePath)
		if err != nil {
			logger.Warn("Run history disabled", zap.Error(err))
		} else {
			defer db.Close()
			if err := store.Migrate(db); err != nil {
				logger.Warn("Run history disabled", zap.Error(err))
			} else {
				recorder = store.New(db)
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First signal stops the sweep after the in-flight cell; a second one
	// cancels outright.
	interrupt := &sweep.Interrupt{}
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Received interrupt signal, finishing current cell...")
		interrupt.Interrupt()
		<-sigChan
		logger.Info("Received second interrupt, cancelling...")
		cancel()
	}()

	renderer, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}

	engine := sweep.NewEngine(renderer, logger, cfg.SweepOptions())
	engine.Progress = &consoleProgress{}
	engine.Saver = output.NewDiskSaver()
	engine.Recorder = recorder
	engine.Interrupt = interrupt

	res, err := engine.Run(ctx, template, ax, ay, az)
	if err != nil {
		return err
	}

	logger.Info("Sweep complete", zap.Int("outputs", res.Len()))
	color.Green("Done: %d output image(s) in %s", res.Len(), cfg.OutputDir)
	return nil
}

// newRenderer picks the generation backend: the OpenAI image API when a
// key is configured, otherwise the deterministic local renderer.
func newRenderer(cfg *config.Config, logger *zap.Logger) (render.Renderer, error) {
	if cfg.OpenAIKey != "" {
		logger.Info("Using OpenAI image renderer", zap.String("model", cfg.OpenAIModel))
		return render.NewOpenAIRenderer(render.OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
	}
	logger.Info("Using local pattern renderer")
	return render.NewLocalRenderer(), nil
}

// consoleProgress prints per-cell progress to the terminal.
type consoleProgress struct {
	total int
}

func (p *consoleProgress) UpdateTotal(totalSteps int) {
	p.total = totalSteps
	color.Cyan("Estimated total steps: %d", totalSteps)
}

func (p *consoleProgress) SetJob(job string) {
	color.White("Rendering cell %s", job)
}
