package species

import (
	"math"
	"sort"

	"github.com/pthm-cable/wildwood/rng"
)

// Animal is one deer or wolf. ID 0 marks an empty slot. Mass, hunger and
// stamina are derived from age whenever it changes.
type Animal struct {
	ID      uint32
	Age     int
	Mass    float64 // kg, capped at the species' adult mass
	Hunger  float64 // kg of food required this year
	Stamina float64 // fitness score, bell-shaped over age
}

// Traits is the per-species strategy for the shared herd lifecycle. The
// three species reuse one set of lifecycle rules; only these numbers and
// the contention algorithms differ.
type Traits struct {
	Name          string
	AdultMass     float64 // mass cap, kg
	GrowthAge     float64 // years to approach adult mass
	PrimeAge      float64 // stamina peak
	StaminaSpread float64 // width of the stamina bell
	BaseNeed      float64 // kg of food per year at hunger factor 5, prime age
	LifespanMean  float64
	LifespanStd   float64
	BirthRate     float64 // births per mature adult per year at factor 5
	OldAge        int     // no reproduction past this age
	MigrantsBase  float64 // arrivals per year at factor 5, empty habitat
}

// DeerTraits and WolfTraits are the stock species parameter sets.
var (
	DeerTraits = Traits{
		Name:          "deer",
		AdultMass:     90,
		GrowthAge:     3,
		PrimeAge:      4,
		StaminaSpread: 3,
		BaseNeed:      22,
		LifespanMean:  12,
		LifespanStd:   2.5,
		BirthRate:     0.55,
		OldAge:        10,
		MigrantsBase:  3,
	}
	WolfTraits = Traits{
		Name:          "wolf",
		AdultMass:     45,
		GrowthAge:     2,
		PrimeAge:      4,
		StaminaSpread: 3,
		BaseNeed:      65,
		LifespanMean:  13,
		LifespanStd:   2.5,
		BirthRate:     0.45,
		OldAge:        11,
		MigrantsBase:  1.5,
	}
)

// Reproduction nonlinearity and small-population rescue shared by both
// consumer species.
const (
	animalReproGamma = 1.3
	animalAgeBracket = 2 // histogram bracket width, years
)

type deathCause int

const (
	causeAge deathCause = iota
	causeStarvation
	causePredation
)

// herd is the lifecycle core shared by DeerPopulation and WolfPopulation.
type herd struct {
	arena  *Arena[Animal]
	traits Traits
	src    rng.Source

	hungerFactor  float64
	staminaFactor float64

	deaths AnimalDeaths
}

func newHerd(capacity int, traits Traits, hungerFactor, staminaFactor float64, src rng.Source) herd {
	return herd{
		arena:         NewArena[Animal](capacity, src),
		traits:        traits,
		src:           src,
		hungerFactor:  hungerFactor,
		staminaFactor: staminaFactor,
	}
}

func (h *herd) deriveAnimal(a *Animal) {
	tr := &h.traits
	growth := 0.15 + 0.85*float64(a.Age)/tr.GrowthAge
	if growth > 1 {
		growth = 1
	}
	a.Mass = tr.AdultMass * growth

	appetite := 0.4 + 0.6*math.Min(1, float64(a.Age)/tr.PrimeAge)
	a.Hunger = tr.BaseNeed * (h.hungerFactor / 5) * appetite

	dev := (float64(a.Age) - tr.PrimeAge) / tr.StaminaSpread
	a.Stamina = (h.staminaFactor / 5) * math.Exp(-dev*dev/2)
}

func (h *herd) spawn(age int) bool {
	a := Animal{Age: age}
	h.deriveAnimal(&a)
	idx, ok := h.arena.Claim(a)
	if !ok {
		return false
	}
	h.arena.At(idx).ID = h.arena.ID(idx)
	return true
}

// Seed populates the herd with count animals aged N(ageMean, ageStdDev),
// floored at 1. Returns how many were actually placed.
func (h *herd) Seed(count int, ageMean, ageStdDev float64) int {
	placed := 0
	for n := 0; n < count; n++ {
		age := int(math.Round(h.src.Gaussian(ageMean, ageStdDev)))
		if age < 1 {
			age = 1
		}
		if !h.spawn(age) {
			break
		}
		placed++
	}
	return placed
}

// Grow advances every living animal by one year and recomputes mass,
// hunger and stamina.
func (h *herd) Grow() {
	for _, i := range h.arena.Indices() {
		a := h.arena.At(i)
		a.Age++
		h.deriveAnimal(a)
	}
}

// AgeDeaths samples a death age per animal from the species lifespan
// distribution and removes animals older than their draw.
func (h *herd) AgeDeaths() {
	for _, i := range h.arena.Indices() {
		deathAge := h.src.Gaussian(h.traits.LifespanMean, h.traits.LifespanStd)
		if float64(h.arena.At(i).Age) > deathAge {
			h.kill(i, causeAge)
		}
	}
}

func (h *herd) rescueFloor() int {
	f := h.arena.Capacity() / 20
	if f < 3 {
		f = 3
	}
	return f
}

// Reproduce adds newborns (age 1) proportional to the mature population,
// discounted by density. Without mature animals there are no births,
// whatever the factor. A herd below the rescue floor gets a boosted litter.
// Returns the number of newborns placed.
func (h *herd) Reproduce(maturityAge int, factor float64) int {
	alive := h.arena.Alive()
	mature := 0
	for _, i := range h.arena.Indices() {
		age := h.arena.At(i).Age
		if age >= maturityAge && age <= h.traits.OldAge {
			mature++
		}
	}
	if mature == 0 {
		return 0
	}
	discount := 1 - float64(alive)/float64(h.arena.Capacity())
	if discount < 0 {
		discount = 0
	}
	births := int(math.Round(float64(mature) * h.traits.BirthRate * discount * math.Pow(factor/5, animalReproGamma)))
	if alive < h.rescueFloor() {
		births = births*2 + 1
	}

	placed := 0
	for n := 0; n < births; n++ {
		if !h.spawn(1) {
			break
		}
		placed++
	}
	return placed
}

// Migrate adds immigrants scaled by the migration factor and remaining
// habitat headroom. A nearly empty herd always receives at least one
// arrival, which lets migration re-found an extinct population.
// Returns the number of arrivals placed.
func (h *herd) Migrate(factor float64) int {
	headroom := 1 - float64(h.arena.Alive())/float64(h.arena.Capacity())
	if headroom < 0 {
		headroom = 0
	}
	arrivals := int(math.Round(h.traits.MigrantsBase * (factor / 5) * headroom))
	if h.arena.Alive() < h.rescueFloor() && arrivals < 1 {
		arrivals = 1
	}

	placed := 0
	for n := 0; n < arrivals; n++ {
		age := int(math.Round(h.src.Gaussian(h.traits.PrimeAge, h.traits.PrimeAge/2)))
		if age < 1 {
			age = 1
		}
		if !h.spawn(age) {
			break
		}
		placed++
	}
	return placed
}

// Living returns the occupied slot indices in ascending order.
func (h *herd) Living() []int { return h.arena.Indices() }

// byStaminaDesc returns the living indices ordered strongest first, with
// slot index as a deterministic tie-break.
func (h *herd) byStaminaDesc() []int {
	order := h.arena.Indices()
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := h.arena.At(order[a]).Stamina, h.arena.At(order[b]).Stamina
		if sa != sb {
			return sa > sb
		}
		return order[a] < order[b]
	})
	return order
}

// Alive returns the living animal count.
func (h *herd) Alive() int { return h.arena.Alive() }

// Capacity returns the slot count.
func (h *herd) Capacity() int { return h.arena.Capacity() }

// AnimalAt returns a copy of the animal in slot i, if occupied.
func (h *herd) AnimalAt(i int) (Animal, bool) {
	if !h.arena.Occupied(i) {
		return Animal{}, false
	}
	return *h.arena.At(i), true
}

// Ages returns the ages of all living animals.
func (h *herd) Ages() []float64 {
	idx := h.arena.Indices()
	out := make([]float64, 0, len(idx))
	for _, i := range idx {
		out = append(out, float64(h.arena.At(i).Age))
	}
	return out
}

// Stats summarizes the herd. Zero values for an empty pool.
func (h *herd) Stats() AnimalStats {
	s := AnimalStats{Deaths: h.deaths}
	var ageSum int
	for _, i := range h.arena.Indices() {
		a := h.arena.At(i)
		s.Alive++
		ageSum += a.Age
		s.Histogram.add(a.Age, animalAgeBracket)
	}
	if s.Alive > 0 {
		s.MeanAge = float64(ageSum) / float64(s.Alive)
	}
	return s
}

// ResetTally zeroes the death-cause counters; the driver calls this once
// per snapshot.
func (h *herd) ResetTally() { h.deaths = AnimalDeaths{} }

// Reset empties the herd and clears all tallies.
func (h *herd) Reset() {
	h.arena.Reset()
	h.deaths = AnimalDeaths{}
}

func (h *herd) kill(i int, cause deathCause) bool {
	if !h.arena.Release(i) {
		return false
	}
	switch cause {
	case causeAge:
		h.deaths.Age++
	case causeStarvation:
		h.deaths.Starvation++
	case causePredation:
		h.deaths.Predation++
	}
	return true
}
