package species

import (
	"math"

	"github.com/pthm-cable/wildwood/rng"
)

// Browse is the narrow capability the forest exposes to browsing
// herbivores. Deer depend on this contract, never on tree internals.
type Browse interface {
	// Edible begins a browsing phase and lists the palatable tree slots.
	Edible(maxAge int) []int
	// Bite harvests up to need kg from slot i; removed reports whether the
	// tree was fully consumed and must leave the shared pool.
	Bite(i int, need float64) (eaten float64, removed bool)
}

// Foraging tunables.
const (
	forageSuccessFloor = 0.05
	forageSuccessCap   = 0.90
	// Edible trees per deer at which the availability term saturates.
	forageAvailabilityK = 2.0
	// How many candidate trees a deer at full stamina and success may
	// examine beyond the first.
	browseCapacityScale = 6.0

	// Survival thresholds: fraction of the computed need a deer must eat.
	// The threshold relaxes when edible trees are scarce relative to herd
	// size.
	forageSurvivalFraction = 0.75
	scarceSurvivalFraction = 0.55
	forageScarcityRatio    = 1.5
)

// DeerPopulation is the herbivore herd. Lifecycle comes from the shared
// herd core; Forage is the species-specific contention algorithm.
type DeerPopulation struct {
	herd
}

// NewDeer creates a deer population.
func NewDeer(capacity int, hungerFactor, staminaFactor float64, src rng.Source) *DeerPopulation {
	return &DeerPopulation{herd: newHerd(capacity, DeerTraits, hungerFactor, staminaFactor, src)}
}

// Forage feeds the herd against the forest for one tick.
//
// Deer feed in descending stamina order - a deliberate fairness rule, not
// arrival order. Each deer samples candidate trees without replacement from
// the shared, depleting pool; trees removed by one deer are gone for every
// later deer in the same tick. A deer that cannot meet its survival
// threshold starves.
func (d *DeerPopulation) Forage(forest Browse, edibleAgeLimit int) {
	order := d.byStaminaDesc()
	if len(order) == 0 {
		return
	}
	pool := forest.Edible(edibleAgeLimit)

	aliveDeer := len(order)
	threshold := forageSurvivalFraction
	if float64(len(pool))/float64(aliveDeer) < forageScarcityRatio {
		threshold = scarceSurvivalFraction
	}

	for _, di := range order {
		if len(pool) == 0 {
			// Nothing left to browse: the remainder of the herd starves.
			d.kill(di, causeStarvation)
			continue
		}
		a := d.arena.At(di)
		need := a.Hunger
		stamina := clamp01(a.Stamina)

		avail := math.Min(1, float64(len(pool))/(float64(aliveDeer)*forageAvailabilityK))
		success := clampProb(avail*staminaTerm(stamina)*d.ageOptimality(a.Age), forageSuccessFloor, forageSuccessCap)
		capacity := 1 + int(stamina*success*browseCapacityScale)

		var eaten float64
		sampled := 0
		for k := 0; k < capacity && k < len(pool) && eaten < need; k++ {
			// Partial Fisher-Yates: pool[:k] is this deer's sample so far.
			j := k + d.src.Intn(len(pool)-k)
			pool[k], pool[j] = pool[j], pool[k]

			bite, removed := forest.Bite(pool[k], need-eaten)
			eaten += bite
			if removed {
				pool[k] = -1
			}
			sampled = k + 1
		}
		pool = compactPool(pool, sampled)

		if eaten < need*threshold {
			d.kill(di, causeStarvation)
		}
	}
}

// MassAt returns the mass of the deer in slot i, or 0 for an empty slot.
// Part of the Prey contract consumed by wolves.
func (d *DeerPopulation) MassAt(i int) float64 {
	if !d.arena.Occupied(i) {
		return 0
	}
	return d.arena.At(i).Mass
}

// Take kills the deer in slot i as predation and returns its mass. Taking
// an empty slot yields 0 and changes nothing.
func (d *DeerPopulation) Take(i int) float64 {
	if !d.arena.Occupied(i) {
		return 0
	}
	mass := d.arena.At(i).Mass
	d.kill(i, causePredation)
	return mass
}

// staminaTerm maps clamped stamina into the success product so that even a
// weak animal keeps a floor of searching ability.
func staminaTerm(stamina float64) float64 {
	return 0.35 + 0.65*stamina
}

// ageOptimality is the age term of the success product: 1 at prime age,
// decaying toward 0.5 for the very young and very old.
func (h *herd) ageOptimality(age int) float64 {
	dev := (float64(age) - h.traits.PrimeAge) / h.traits.StaminaSpread
	return 0.5 + 0.5*math.Exp(-dev*dev/2)
}

// compactPool drops consumed entries (marked -1) from the sampled prefix,
// keeping the rest of the pool intact for the next consumer.
func compactPool(pool []int, sampled int) []int {
	if sampled == 0 {
		return pool
	}
	w := 0
	for _, idx := range pool {
		if idx >= 0 {
			pool[w] = idx
			w++
		}
	}
	return pool[:w]
}
