package species

import (
	"math"
	"sort"

	"github.com/pthm-cable/wildwood/rng"
)

// Prey is the narrow capability the deer herd exposes to predators.
type Prey interface {
	// Living lists the occupied prey slots.
	Living() []int
	// MassAt returns the mass available in slot i (0 when empty).
	MassAt(i int) float64
	// Take kills the prey in slot i and returns the mass obtained.
	Take(i int) float64
}

// Hunting tunables.
const (
	huntSuccessFloor = 0.05
	huntSuccessCap   = 0.85
	// Prey per wolf at which the availability term saturates.
	huntAvailabilityK = 1.0
	// Pack bonus: each living wolf adds this to the success product, capped.
	packBonusPerWolf = 0.02
	packBonusCap     = 0.30
	// Candidate examinations beyond the first at full stamina and success.
	huntAttemptScale = 4.0
	// Hard species cap on captures per wolf per tick.
	maxCapturesPerWolf = 2
	// Fixed survival threshold: 60% of need, never scarcity-adjusted.
	huntSurvivalFraction = 0.60
	// With zero prey, this fraction of the pack (at least one, youngest
	// first) survives on unmodeled fallback food.
	fallbackSurvivorFraction = 0.30
)

// WolfPopulation is the predator pack. Lifecycle comes from the shared herd
// core; Hunt is the species-specific contention algorithm.
type WolfPopulation struct {
	herd
}

// NewWolves creates a wolf population.
func NewWolves(capacity int, hungerFactor, staminaFactor float64, src rng.Source) *WolfPopulation {
	return &WolfPopulation{herd: newHerd(capacity, WolfTraits, hungerFactor, staminaFactor, src)}
}

// Hunt feeds the pack against the deer herd for one tick.
//
// Structurally this mirrors deer foraging: stamina-ordered consumers
// sampling a shared, depleting pool without replacement. The differences
// are the pack-size bonus on success, the hard two-capture cap, and the
// fixed 60% survival threshold. A captured deer is always fully removed.
func (w *WolfPopulation) Hunt(prey Prey) {
	order := w.byStaminaDesc()
	if len(order) == 0 {
		return
	}
	pool := prey.Living()

	if len(pool) == 0 {
		w.starveWithFallback(order)
		return
	}

	aliveWolves := len(order)
	packBonus := math.Min(packBonusCap, packBonusPerWolf*float64(aliveWolves))

	for _, wi := range order {
		if len(pool) == 0 {
			w.kill(wi, causeStarvation)
			continue
		}
		a := w.arena.At(wi)
		need := a.Hunger
		stamina := clamp01(a.Stamina)

		avail := math.Min(1, float64(len(pool))/(float64(aliveWolves)*huntAvailabilityK))
		success := clampProb(avail*staminaTerm(stamina)*w.ageOptimality(a.Age)*(1+packBonus),
			huntSuccessFloor, huntSuccessCap)
		attempts := 1 + int(stamina*success*huntAttemptScale)

		var eaten float64
		captures := 0
		sampled := 0
		for k := 0; k < attempts && k < len(pool) && captures < maxCapturesPerWolf && eaten < need; k++ {
			j := k + w.src.Intn(len(pool)-k)
			pool[k], pool[j] = pool[j], pool[k]

			mass := prey.Take(pool[k])
			pool[k] = -1
			captures++

			bite := need - eaten
			if mass < bite {
				bite = mass
			}
			eaten += bite
			sampled = k + 1
		}
		pool = compactPool(pool, sampled)

		if eaten < need*huntSurvivalFraction {
			w.kill(wi, causeStarvation)
		}
	}
}

// starveWithFallback applies the zero-prey rule: a fixed fraction of the
// pack (minimum one) survives on food outside the model, youngest first;
// the rest starve.
func (w *WolfPopulation) starveWithFallback(order []int) {
	survivors := int(math.Ceil(float64(len(order)) * fallbackSurvivorFraction))
	if survivors < 1 {
		survivors = 1
	}

	byAge := make([]int, len(order))
	copy(byAge, order)
	// Youngest first; slot index breaks ties deterministically.
	sort.SliceStable(byAge, func(a, b int) bool {
		aa, ab := w.arena.At(byAge[a]).Age, w.arena.At(byAge[b]).Age
		if aa != ab {
			return aa < ab
		}
		return byAge[a] < byAge[b]
	})

	for _, wi := range byAge[survivors:] {
		w.kill(wi, causeStarvation)
	}
}
