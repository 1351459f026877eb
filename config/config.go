// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
//
// Species factors (hunger, stamina, reproduction, migration, stress) use a
// 1-10 scale where 5 is the baseline; values outside the scale are clamped
// at load time rather than rejected.
type Config struct {
	Run       RunConfig       `yaml:"run"`
	Grid      GridConfig      `yaml:"grid"`
	Trees     TreesConfig     `yaml:"trees"`
	Deer      AnimalConfig    `yaml:"deer"`
	Wolves    AnimalConfig    `yaml:"wolves"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// RunConfig holds run-level settings.
type RunConfig struct {
	Years              int    `yaml:"years"`               // Ticks to simulate after initialization
	StabilizationYears int    `yaml:"stabilization_years"` // Producer-only ticks before consumers are seeded
	Seed               uint64 `yaml:"seed"`                // RNG seed (0 = time-based, resolved by the caller)
}

// GridConfig holds habitat grid settings. Tree capacity is Size squared;
// every tree slot is one grid cell.
type GridConfig struct {
	Size int `yaml:"size"`
}

// TreesConfig holds producer parameters.
type TreesConfig struct {
	Initial      int     `yaml:"initial"`       // Trees planted at initialization
	AgeMean      float64 `yaml:"age_mean"`      // Mean of the initial age distribution
	AgeStdDev    float64 `yaml:"age_stddev"`    // Spread of the initial age distribution
	MaturityAge  int     `yaml:"maturity_age"`  // Minimum seeding age
	DensityLimit int     `yaml:"density_limit"` // Max trees tolerated per 3x3 neighborhood
	StressLevel  float64 `yaml:"stress_level"`  // Environmental stress, 1-10
	Reproduction float64 `yaml:"reproduction"`  // Reproduction factor, 1-10
	EdibleAge    int     `yaml:"edible_age"`    // Max age still palatable to deer
}

// AnimalConfig holds consumer parameters, shared by deer and wolves.
type AnimalConfig struct {
	Capacity     int     `yaml:"capacity"`
	Initial      int     `yaml:"initial"`
	AgeMean      float64 `yaml:"age_mean"`
	AgeStdDev    float64 `yaml:"age_stddev"`
	MaturityAge  int     `yaml:"maturity_age"`
	Hunger       float64 `yaml:"hunger"`       // Hunger factor, 1-10
	Stamina      float64 `yaml:"stamina"`      // Stamina factor, 1-10
	Reproduction float64 `yaml:"reproduction"` // Reproduction factor, 1-10
	Migration    float64 `yaml:"migration"`    // Migration factor, 1-10
}

// TelemetryConfig holds output settings.
type TelemetryConfig struct {
	LogStats bool `yaml:"log_stats"` // Emit one slog record per tick snapshot
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.normalize()
	return cfg, nil
}

// normalize clamps every parameter to its safe range. Invalid configuration
// never surfaces as a runtime fault mid-run; it degrades to the nearest
// legal value here.
func (c *Config) normalize() {
	if c.Run.Years < 0 {
		c.Run.Years = 0
	}
	if c.Run.StabilizationYears < 0 {
		c.Run.StabilizationYears = 0
	}
	if c.Grid.Size < 1 {
		c.Grid.Size = 1
	}

	treeCapacity := c.Grid.Size * c.Grid.Size
	c.Trees.Initial = clampInt(c.Trees.Initial, 0, treeCapacity)
	if c.Trees.AgeStdDev < 0 {
		c.Trees.AgeStdDev = 0
	}
	if c.Trees.MaturityAge < 1 {
		c.Trees.MaturityAge = 1
	}
	if c.Trees.DensityLimit < 1 {
		c.Trees.DensityLimit = 1
	}
	if c.Trees.EdibleAge < 0 {
		c.Trees.EdibleAge = 0
	}
	c.Trees.StressLevel = clampFactor(c.Trees.StressLevel)
	c.Trees.Reproduction = clampFactor(c.Trees.Reproduction)

	normalizeAnimal(&c.Deer)
	normalizeAnimal(&c.Wolves)
}

func normalizeAnimal(a *AnimalConfig) {
	if a.Capacity < 1 {
		a.Capacity = 1
	}
	a.Initial = clampInt(a.Initial, 0, a.Capacity)
	if a.AgeStdDev < 0 {
		a.AgeStdDev = 0
	}
	if a.MaturityAge < 1 {
		a.MaturityAge = 1
	}
	a.Hunger = clampFactor(a.Hunger)
	a.Stamina = clampFactor(a.Stamina)
	a.Reproduction = clampFactor(a.Reproduction)
	a.Migration = clampFactor(a.Migration)
}

// clampFactor clamps a species factor to the 1-10 scale.
func clampFactor(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
