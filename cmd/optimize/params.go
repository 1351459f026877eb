// Package main provides CMA-ES optimization over the biological parameter
// space, searching for configurations where all three populations coexist.
package main

import (
	"github.com/pthm-cable/wildwood/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging and Apply
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters: the
// 1-10 species factors plus producer stress. Structural settings (grid
// size, capacities, maturity ages) stay fixed at the base config.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "trees_stress", Path: "trees.stress_level", Min: 1, Max: 10, Default: 5},
			{Name: "trees_reproduction", Path: "trees.reproduction", Min: 1, Max: 10, Default: 5},
			{Name: "deer_hunger", Path: "deer.hunger", Min: 1, Max: 10, Default: 5},
			{Name: "deer_stamina", Path: "deer.stamina", Min: 1, Max: 10, Default: 5},
			{Name: "deer_reproduction", Path: "deer.reproduction", Min: 1, Max: 10, Default: 5},
			{Name: "deer_migration", Path: "deer.migration", Min: 1, Max: 10, Default: 5},
			{Name: "wolves_hunger", Path: "wolves.hunger", Min: 1, Max: 10, Default: 5},
			{Name: "wolves_stamina", Path: "wolves.stamina", Min: 1, Max: 10, Default: 5},
			{Name: "wolves_reproduction", Path: "wolves.reproduction", Min: 1, Max: 10, Default: 5},
			{Name: "wolves_migration", Path: "wolves.migration", Min: 1, Max: 10, Default: 5},
		},
	}
}

// Dim returns the parameter count.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the raw default values.
func (pv *ParamVector) DefaultVector() []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Default
	}
	return out
}

// Normalize maps raw values into [0, 1] per spec bounds.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize maps [0, 1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(x []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + x[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp bounds raw values to their spec ranges.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v := raw[i]
		if v < spec.Min {
			v = spec.Min
		}
		if v > spec.Max {
			v = spec.Max
		}
		out[i] = v
	}
	return out
}

// Apply writes raw parameter values into a config copy.
func (pv *ParamVector) Apply(cfg *config.Config, raw []float64) {
	for i, spec := range pv.Specs {
		v := raw[i]
		switch spec.Path {
		case "trees.stress_level":
			cfg.Trees.StressLevel = v
		case "trees.reproduction":
			cfg.Trees.Reproduction = v
		case "deer.hunger":
			cfg.Deer.Hunger = v
		case "deer.stamina":
			cfg.Deer.Stamina = v
		case "deer.reproduction":
			cfg.Deer.Reproduction = v
		case "deer.migration":
			cfg.Deer.Migration = v
		case "wolves.hunger":
			cfg.Wolves.Hunger = v
		case "wolves.stamina":
			cfg.Wolves.Stamina = v
		case "wolves.reproduction":
			cfg.Wolves.Reproduction = v
		case "wolves.migration":
			cfg.Wolves.Migration = v
		}
	}
}
