package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/wildwood/config"
	"github.com/pthm-cable/wildwood/rng"
	"github.com/pthm-cable/wildwood/sim"
	"github.com/pthm-cable/wildwood/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output per-tick stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV log and config snapshot")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = config seed, then time-based)")
	years := flag.Int("years", 0, "Years to simulate (0 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Resolve the seed: flag beats config beats wall clock
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Run.Seed
	}
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	runYears := cfg.Run.Years
	if *years > 0 {
		runYears = *years
	}

	out, err := telemetry.NewOutputManager[sim.Snapshot](*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}
	if err := out.WriteManifest(rngSeed, *configPath); err != nil {
		slog.Error("failed to write run manifest", "error", err)
		os.Exit(1)
	}

	driver := sim.New(cfg, rng.New(rngSeed))
	if err := driver.Initialize(); err != nil {
		slog.Error("failed to initialize simulation", "error", err)
		os.Exit(1)
	}

	slog.Info("starting run",
		"run_id", out.RunID(),
		"seed", rngSeed,
		"years", runYears,
		"stabilization_years", cfg.Run.StabilizationYears,
		"trees", driver.Snapshot().TreesAlive,
		"deer", driver.Snapshot().DeerAlive,
		"wolves", driver.Snapshot().WolvesAlive,
	)

	logEvery := *logStats || cfg.Telemetry.LogStats
	for y := 0; y < runYears; y++ {
		snap, err := driver.Advance()
		if err != nil {
			slog.Error("tick failed", "tick", driver.Tick(), "error", err)
			os.Exit(1)
		}
		if logEvery {
			snap.LogStats()
		}
		if err := out.WriteRow(snap); err != nil {
			slog.Error("failed to write telemetry", "error", err)
			os.Exit(1)
		}
	}

	final := driver.Snapshot()
	slog.Info("run complete",
		"run_id", out.RunID(),
		"ticks", driver.Tick(),
		"trees", final.TreesAlive,
		"deer", final.DeerAlive,
		"wolves", final.WolvesAlive,
	)
}
