package sim

import (
	"log/slog"

	"github.com/pthm-cable/wildwood/species"
)

// Snapshot is the per-tick statistics record. Flat fields carry csv tags
// for telemetry output; histograms are kept for programmatic consumers and
// skipped in CSV.
type Snapshot struct {
	Tick int `csv:"tick"`

	TreesAlive         int     `csv:"trees_alive"`
	TreesMeanAge       float64 `csv:"trees_mean_age"`
	TreesAgeP50        float64 `csv:"trees_age_p50"`
	TreesAgeP90        float64 `csv:"trees_age_p90"`
	TreeDeathsAge      int     `csv:"tree_deaths_age"`
	TreeDeathsStress   int     `csv:"tree_deaths_stress"`
	TreeDeathsCrowding int     `csv:"tree_deaths_crowding"`
	TreesConsumed      int     `csv:"trees_consumed"`

	DeerAlive            int     `csv:"deer_alive"`
	DeerMeanAge          float64 `csv:"deer_mean_age"`
	DeerAgeP50           float64 `csv:"deer_age_p50"`
	DeerAgeP90           float64 `csv:"deer_age_p90"`
	DeerDeathsAge        int     `csv:"deer_deaths_age"`
	DeerDeathsStarvation int     `csv:"deer_deaths_starvation"`
	DeerDeathsPredation  int     `csv:"deer_deaths_predation"`

	WolvesAlive          int     `csv:"wolves_alive"`
	WolvesMeanAge        float64 `csv:"wolves_mean_age"`
	WolvesAgeP50         float64 `csv:"wolves_age_p50"`
	WolvesAgeP90         float64 `csv:"wolves_age_p90"`
	WolfDeathsAge        int     `csv:"wolf_deaths_age"`
	WolfDeathsStarvation int     `csv:"wolf_deaths_starvation"`

	TreeAgeHistogram species.AgeHistogram `csv:"-"`
	DeerAgeHistogram species.AgeHistogram `csv:"-"`
	WolfAgeHistogram species.AgeHistogram `csv:"-"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", s.Tick),
		slog.Int("trees", s.TreesAlive),
		slog.Float64("trees_mean_age", s.TreesMeanAge),
		slog.Int("tree_deaths_age", s.TreeDeathsAge),
		slog.Int("tree_deaths_stress", s.TreeDeathsStress),
		slog.Int("tree_deaths_crowding", s.TreeDeathsCrowding),
		slog.Int("trees_consumed", s.TreesConsumed),
		slog.Int("deer", s.DeerAlive),
		slog.Float64("deer_mean_age", s.DeerMeanAge),
		slog.Int("deer_deaths_age", s.DeerDeathsAge),
		slog.Int("deer_deaths_starvation", s.DeerDeathsStarvation),
		slog.Int("deer_deaths_predation", s.DeerDeathsPredation),
		slog.Int("wolves", s.WolvesAlive),
		slog.Float64("wolves_mean_age", s.WolvesMeanAge),
		slog.Int("wolf_deaths_age", s.WolfDeathsAge),
		slog.Int("wolf_deaths_starvation", s.WolfDeathsStarvation),
	)
}

// LogStats logs the snapshot using slog.
func (s Snapshot) LogStats() {
	slog.Info("tick",
		"tick", s.Tick,
		"trees", s.TreesAlive,
		"trees_mean_age", s.TreesMeanAge,
		"tree_deaths_age", s.TreeDeathsAge,
		"tree_deaths_stress", s.TreeDeathsStress,
		"tree_deaths_crowding", s.TreeDeathsCrowding,
		"trees_consumed", s.TreesConsumed,
		"deer", s.DeerAlive,
		"deer_mean_age", s.DeerMeanAge,
		"deer_deaths_age", s.DeerDeathsAge,
		"deer_deaths_starvation", s.DeerDeathsStarvation,
		"deer_deaths_predation", s.DeerDeathsPredation,
		"wolves", s.WolvesAlive,
		"wolves_mean_age", s.WolvesMeanAge,
		"wolf_deaths_age", s.WolfDeathsAge,
		"wolf_deaths_starvation", s.WolfDeathsStarvation,
	)
}
