package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/wildwood/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	years := flag.Int("years", 200, "Simulated years per evaluation")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	// Generate seeds for evaluation
	evalSeeds := make([]uint64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = uint64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *years, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	// Open log file
	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	// Track evaluations and timing
	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = make([]float64, len(clamped))
				copy(bestParams, clamped)
				log.Printf("eval %d: new best fitness %.4f (elapsed %s)",
					evalCount, bestFitness, time.Since(startTime).Round(time.Second))
			}

			row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.6f", fitness)}
			for _, v := range clamped {
				row = append(row, fmt.Sprintf("%.4f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization stopped: %v", err)
	}
	if result != nil && bestParams == nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	// Save the best parameter set as JSON and a ready-to-run config
	best := map[string]float64{}
	for i, spec := range params.Specs {
		best[spec.Path] = bestParams[i]
	}
	data, _ := json.MarshalIndent(best, "", "  ")
	if err := os.WriteFile(filepath.Join(*outputDir, "best_params.json"), data, 0644); err != nil {
		log.Fatalf("failed to write best params: %v", err)
	}

	bestCfg := *baseCfg
	params.Apply(&bestCfg, bestParams)
	if err := bestCfg.WriteYAML(filepath.Join(*outputDir, "best_config.yaml")); err != nil {
		log.Fatalf("failed to write best config: %v", err)
	}

	log.Printf("done: %d evals, best fitness %.4f, elapsed %s",
		evalCount, bestFitness, time.Since(startTime).Round(time.Second))
}
