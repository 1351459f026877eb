package main

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/wildwood/config"
	"github.com/pthm-cable/wildwood/rng"
	"github.com/pthm-cable/wildwood/sim"
)

// Oscillation penalty weight: a run that coexists but swings wildly is
// worth less than a calm one.
const oscillationWeight = 0.15

// FitnessEvaluator runs headless simulations and computes fitness.
// Lower is better: 0 means every seed coexisted for the full run with no
// population swings.
type FitnessEvaluator struct {
	params     *ParamVector
	years      int
	seeds      []uint64
	baseConfig *config.Config
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, years int, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		years:      years,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// Evaluate runs one simulation per seed with the given raw parameters and
// returns the mean fitness.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	clamped := fe.params.Clamp(raw)

	var total float64
	for _, seed := range fe.seeds {
		total += fe.evaluateSeed(clamped, seed)
	}
	return total / float64(len(fe.seeds))
}

func (fe *FitnessEvaluator) evaluateSeed(clamped []float64, seed uint64) float64 {
	cfg := *fe.baseConfig
	fe.params.Apply(&cfg, clamped)

	driver := sim.New(&cfg, rng.New(seed))
	if err := driver.Initialize(); err != nil {
		return 1 + oscillationWeight
	}

	coexist := 0
	wolves := make([]float64, 0, fe.years)
	deer := make([]float64, 0, fe.years)
	for y := 0; y < fe.years; y++ {
		snap, err := driver.Advance()
		if err != nil {
			break
		}
		if snap.TreesAlive > 0 && snap.DeerAlive > 0 && snap.WolvesAlive > 0 {
			coexist++
		}
		wolves = append(wolves, float64(snap.WolvesAlive))
		deer = append(deer, float64(snap.DeerAlive))
	}

	frac := float64(coexist) / float64(fe.years)
	osc := (coefficientOfVariation(wolves) + coefficientOfVariation(deer)) / 2

	return (1 - frac) + oscillationWeight*osc
}

// coefficientOfVariation returns stddev/mean, 0 for flat or empty series.
func coefficientOfVariation(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	mean := stat.Mean(series, nil)
	if mean == 0 {
		return 0
	}
	return stat.StdDev(series, nil) / mean
}
