// Package sim owns the yearly tick: one driver holding the three
// populations, executing the fixed phase order, and aggregating statistics.
package sim

import (
	"errors"
	"log/slog"

	"github.com/pthm-cable/wildwood/config"
	"github.com/pthm-cable/wildwood/grid"
	"github.com/pthm-cable/wildwood/rng"
	"github.com/pthm-cable/wildwood/species"
	"github.com/pthm-cable/wildwood/telemetry"
)

// State is the driver lifecycle state.
type State int

const (
	Uninitialized State = iota
	Stabilizing
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Stabilizing:
		return "stabilizing"
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return "unknown"
}

var (
	// ErrNotRunning is returned by Advance before Initialize (or after Reset).
	ErrNotRunning = errors.New("sim: driver is not running")
	// ErrPaused is returned by Advance while the driver is paused; callers
	// may pause only between ticks, never mid-tick.
	ErrPaused = errors.New("sim: driver is paused")
	// ErrAlreadyInitialized is returned by Initialize on a live driver.
	ErrAlreadyInitialized = errors.New("sim: driver is already initialized")
)

// Driver executes the simulation. Execution is strictly sequential: a tick
// runs to completion before control returns, which is what makes the
// cross-population mutation during foraging and hunting safe.
type Driver struct {
	cfg *config.Config
	src rng.Source

	grid   *grid.Grid
	trees  *species.TreePopulation
	deer   *species.DeerPopulation
	wolves *species.WolfPopulation

	state     State
	tick      int
	last      Snapshot
	observers []func(Snapshot)
}

// New creates an uninitialized driver. The configuration is assumed to be
// normalized (config.Load clamps it).
func New(cfg *config.Config, src rng.Source) *Driver {
	return &Driver{cfg: cfg, src: src}
}

// Observe registers a callback invoked with every tick snapshot.
func (d *Driver) Observe(fn func(Snapshot)) {
	d.observers = append(d.observers, fn)
}

// Initialize seeds the producers, runs the producer-only stabilization
// ticks, then seeds the consumers and transitions to Running.
func (d *Driver) Initialize() error {
	if d.state != Uninitialized {
		return ErrAlreadyInitialized
	}
	cfg := d.cfg

	d.grid = grid.New(cfg.Grid.Size)
	d.trees = species.NewTrees(d.grid, d.src)
	planted := d.trees.Plant(cfg.Trees.Initial, cfg.Trees.AgeMean, cfg.Trees.AgeStdDev)
	if planted < cfg.Trees.Initial {
		slog.Debug("habitat full during planting", "requested", cfg.Trees.Initial, "planted", planted)
	}

	d.state = Stabilizing
	for i := 0; i < cfg.Run.StabilizationYears; i++ {
		d.producerPhase()
		d.trees.ResetTally()
	}

	d.deer = species.NewDeer(cfg.Deer.Capacity, cfg.Deer.Hunger, cfg.Deer.Stamina, d.src)
	d.deer.Seed(cfg.Deer.Initial, cfg.Deer.AgeMean, cfg.Deer.AgeStdDev)
	d.wolves = species.NewWolves(cfg.Wolves.Capacity, cfg.Wolves.Hunger, cfg.Wolves.Stamina, d.src)
	d.wolves.Seed(cfg.Wolves.Initial, cfg.Wolves.AgeMean, cfg.Wolves.AgeStdDev)

	d.state = Running
	d.last = d.computeSnapshot()
	return nil
}

// Advance runs exactly one tick in the fixed phase order and returns its
// snapshot. The tick boundary is the failure domain: an unexpected panic
// propagates to the caller and nothing is rolled back.
func (d *Driver) Advance() (Snapshot, error) {
	switch d.state {
	case Running:
	case Paused:
		return Snapshot{}, ErrPaused
	default:
		return Snapshot{}, ErrNotRunning
	}
	cfg := d.cfg

	d.producerPhase()

	d.deer.Migrate(cfg.Deer.Migration)
	d.deer.Reproduce(cfg.Deer.MaturityAge, cfg.Deer.Reproduction)
	d.deer.Grow()
	d.deer.AgeDeaths()
	d.deer.Forage(d.trees, cfg.Trees.EdibleAge)

	d.wolves.Migrate(cfg.Wolves.Migration)
	d.wolves.Reproduce(cfg.Wolves.MaturityAge, cfg.Wolves.Reproduction)
	d.wolves.Grow()
	d.wolves.AgeDeaths()
	d.wolves.Hunt(d.deer)

	d.tick++
	snap := d.computeSnapshot()
	d.trees.ResetTally()
	d.deer.ResetTally()
	d.wolves.ResetTally()
	d.last = snap

	for _, fn := range d.observers {
		fn(snap)
	}
	return snap, nil
}

func (d *Driver) producerPhase() {
	cfg := d.cfg
	d.trees.Competition(cfg.Trees.DensityLimit)
	d.trees.Grow()
	d.trees.AgeDeaths()
	d.trees.StressDeaths(cfg.Trees.StressLevel)
	d.trees.Reproduce(cfg.Trees.MaturityAge, cfg.Trees.Reproduction)
}

// Snapshot returns the most recent tick snapshot.
func (d *Driver) Snapshot() Snapshot { return d.last }

// Pause stops Advance from running further ticks until Resume. The flag is
// honored between ticks; a tick in flight always completes.
func (d *Driver) Pause() {
	if d.state == Running {
		d.state = Paused
	}
}

// Resume re-enables Advance after a Pause.
func (d *Driver) Resume() {
	if d.state == Paused {
		d.state = Running
	}
}

// Reset discards all populations and returns to Uninitialized.
func (d *Driver) Reset() {
	d.grid = nil
	d.trees = nil
	d.deer = nil
	d.wolves = nil
	d.state = Uninitialized
	d.tick = 0
	d.last = Snapshot{}
}

// State returns the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Tick returns the number of completed ticks since initialization.
func (d *Driver) Tick() int { return d.tick }

// Trees exposes the producer population (tests and tools).
func (d *Driver) Trees() *species.TreePopulation { return d.trees }

// Deer exposes the herbivore population (tests and tools).
func (d *Driver) Deer() *species.DeerPopulation { return d.deer }

// Wolves exposes the predator population (tests and tools).
func (d *Driver) Wolves() *species.WolfPopulation { return d.wolves }

func (d *Driver) computeSnapshot() Snapshot {
	ts := d.trees.Stats()
	ds := d.deer.Stats()
	ws := d.wolves.Stats()

	_, treeP50, treeP90 := telemetry.ComputeAgeStats(d.trees.Ages())
	_, deerP50, deerP90 := telemetry.ComputeAgeStats(d.deer.Ages())
	_, wolfP50, wolfP90 := telemetry.ComputeAgeStats(d.wolves.Ages())

	return Snapshot{
		Tick: d.tick,

		TreesAlive:         ts.Alive,
		TreesMeanAge:       ts.MeanAge,
		TreesAgeP50:        treeP50,
		TreesAgeP90:        treeP90,
		TreeDeathsAge:      ts.Deaths.Age,
		TreeDeathsStress:   ts.Deaths.Stress,
		TreeDeathsCrowding: ts.Deaths.Crowding,
		TreesConsumed:      ts.Deaths.Consumed,

		DeerAlive:            ds.Alive,
		DeerMeanAge:          ds.MeanAge,
		DeerAgeP50:           deerP50,
		DeerAgeP90:           deerP90,
		DeerDeathsAge:        ds.Deaths.Age,
		DeerDeathsStarvation: ds.Deaths.Starvation,
		DeerDeathsPredation:  ds.Deaths.Predation,

		WolvesAlive:          ws.Alive,
		WolvesMeanAge:        ws.MeanAge,
		WolvesAgeP50:         wolfP50,
		WolvesAgeP90:         wolfP90,
		WolfDeathsAge:        ws.Deaths.Age,
		WolfDeathsStarvation: ws.Deaths.Starvation,

		TreeAgeHistogram: ts.Histogram,
		DeerAgeHistogram: ds.Histogram,
		WolfAgeHistogram: ws.Histogram,
	}
}
