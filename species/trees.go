package species

import (
	"math"
	"sort"

	"github.com/pthm-cable/wildwood/grid"
	"github.com/pthm-cable/wildwood/rng"
)

// Allometric and mortality tunables. Engineering approximations, not
// validated forestry models; the shapes matter more than the coefficients.
const (
	diameterPerYear = 0.35 // trunk cm added per year (linear, so growth adds a fixed increment)
	heightBase      = 1.3  // breast-height offset, m
	heightPerCm     = 0.42
	heightTaper     = 0.85
	trunkMassCoeff  = 0.9
	trunkMassExp    = 2.2

	treeLifespanMean = 160.0
	treeLifespanStd  = 25.0

	// Stress mortality peaks at stressMortalityMax for seedlings at stress
	// level 10; resistance grows with age up to stressResistCap.
	stressMortalityMax = 0.09
	stressResistAge    = 60.0
	stressResistCap    = 0.75

	seedlingBaseRate = 0.12 // seedlings per mature tree per year at factor 5
	treeReproGamma   = 1.4  // nonlinearity of the reproduction factor

	crowdingRadius = 1 // 3x3 neighborhood windows

	treeAgeBracket = 25 // histogram bracket width, years

	// A browsed tree is removed once this fraction of its mass is taken in
	// one tick, or immediately when younger than youngTreeAge.
	browseRemovalFraction = 0.30
	youngTreeAge          = 5
)

// Plant is one tree. ID 0 marks an empty slot; every other field is derived
// from Age. A plant never relocates.
type Plant struct {
	ID       uint32
	Age      int
	Diameter float64 // cm
	Height   float64 // m
	Mass     float64 // kg
}

func derivePlant(p *Plant) {
	p.Diameter = diameterPerYear * float64(p.Age)
	p.Height = heightBase + heightPerCm*math.Pow(p.Diameter, heightTaper)
	p.Mass = trunkMassCoeff * math.Pow(p.Diameter, trunkMassExp)
}

// TreePopulation manages the producer pool. Slots map 1:1 onto grid cells,
// so slot index doubles as habitat position for the crowding pass.
type TreePopulation struct {
	arena *Arena[Plant]
	grid  *grid.Grid
	src   rng.Source

	deaths  TreeDeaths
	browsed map[int]float64 // per-phase harvested mass, keyed by slot
}

// NewTrees creates a tree population with one slot per grid cell.
func NewTrees(g *grid.Grid, src rng.Source) *TreePopulation {
	return &TreePopulation{
		arena:   NewArena[Plant](g.Cells(), src),
		grid:    g,
		src:     src,
		browsed: make(map[int]float64),
	}
}

// Plant seeds count trees at random empty slots with ages drawn from
// N(ageMean, ageStdDev), floored at 1. Stops early when space runs out and
// returns how many were actually planted.
func (t *TreePopulation) Plant(count int, ageMean, ageStdDev float64) int {
	planted := 0
	for n := 0; n < count; n++ {
		age := int(math.Round(t.src.Gaussian(ageMean, ageStdDev)))
		if age < 1 {
			age = 1
		}
		p := Plant{Age: age}
		derivePlant(&p)
		idx, ok := t.arena.Claim(p)
		if !ok {
			break
		}
		t.arena.At(idx).ID = t.arena.ID(idx)
		planted++
	}
	return planted
}

// Grow advances every living tree by one year and recomputes derived fields.
func (t *TreePopulation) Grow() {
	for _, i := range t.arena.Indices() {
		p := t.arena.At(i)
		p.Age++
		derivePlant(p)
	}
}

// Competition removes the smallest-diameter trees from every 3x3
// neighborhood that exceeds densityLimit. Windows overlap, so a slot may be
// examined several times; removal is idempotent.
func (t *TreePopulation) Competition(densityLimit int) {
	if densityLimit < 1 {
		densityLimit = 1
	}
	local := make([]int, 0, 9)
	for c := 0; c < t.grid.Cells(); c++ {
		local = local[:0]
		for _, n := range t.grid.Neighborhood(c, crowdingRadius) {
			if t.arena.Occupied(n) {
				local = append(local, n)
			}
		}
		if len(local) <= densityLimit {
			continue
		}
		sort.Slice(local, func(a, b int) bool {
			da, db := t.arena.At(local[a]).Diameter, t.arena.At(local[b]).Diameter
			if da != db {
				return da < db
			}
			return local[a] < local[b]
		})
		for k := 0; len(local)-k > densityLimit; k++ {
			t.kill(local[k], &t.deaths.Crowding)
		}
	}
}

// StressDeaths applies environmental stress mortality. Older trees resist
// more, capped at stressResistCap.
func (t *TreePopulation) StressDeaths(stressLevel float64) {
	stressLevel = clampProb(stressLevel, 0, 10)
	base := stressMortalityMax * stressLevel / 10
	for _, i := range t.arena.Indices() {
		p := t.arena.At(i)
		resist := float64(p.Age) / stressResistAge
		if resist > stressResistCap {
			resist = stressResistCap
		}
		if t.src.Uniform() < base*(1-resist) {
			t.kill(i, &t.deaths.Stress)
		}
	}
}

// AgeDeaths samples a death age per tree from N(lifespan, spread) and
// removes trees older than their draw.
func (t *TreePopulation) AgeDeaths() {
	for _, i := range t.arena.Indices() {
		deathAge := t.src.Gaussian(treeLifespanMean, treeLifespanStd)
		if float64(t.arena.At(i).Age) > deathAge {
			t.kill(i, &t.deaths.Age)
		}
	}
}

// Reproduce plants seedlings (age 1) proportional to the mature population,
// discounted by habitat density and shaped by the 1-10 reproduction factor.
// Best effort: the quota silently shrinks when space runs out.
// Returns the number of seedlings actually planted.
func (t *TreePopulation) Reproduce(maturityAge int, factor float64) int {
	mature := 0
	for _, i := range t.arena.Indices() {
		if t.arena.At(i).Age >= maturityAge {
			mature++
		}
	}
	if mature == 0 {
		return 0
	}
	discount := 1 - float64(t.arena.Alive())/float64(t.arena.Capacity())
	if discount < 0 {
		discount = 0
	}
	quota := int(math.Round(float64(mature) * seedlingBaseRate * discount * math.Pow(factor/5, treeReproGamma)))

	planted := 0
	for n := 0; n < quota; n++ {
		p := Plant{Age: 1}
		derivePlant(&p)
		idx, ok := t.arena.Claim(p)
		if !ok {
			break
		}
		t.arena.At(idx).ID = t.arena.ID(idx)
		planted++
	}
	return planted
}

// MarkConsumed empties slot i on behalf of a browsing herbivore and
// attributes the death to the consumed counter. No-op for empty slots.
func (t *TreePopulation) MarkConsumed(i int) {
	if t.kill(i, &t.deaths.Consumed) {
		delete(t.browsed, i)
	}
}

// Edible begins a browsing phase: it clears the per-phase harvest
// bookkeeping and returns the indices of living trees with age at most
// maxAge, in ascending slot order.
func (t *TreePopulation) Edible(maxAge int) []int {
	clear(t.browsed)
	var out []int
	for _, i := range t.arena.Indices() {
		if t.arena.At(i).Age <= maxAge {
			out = append(out, i)
		}
	}
	return out
}

// Bite harvests up to need kg from tree i and returns the mass actually
// taken plus whether the tree was removed. Cumulative harvest within one
// phase is capped at the tree's mass, so a tree browsed by several deer can
// never yield more than it holds.
func (t *TreePopulation) Bite(i int, need float64) (eaten float64, removed bool) {
	if need <= 0 || !t.arena.Occupied(i) {
		return 0, false
	}
	p := t.arena.At(i)
	avail := p.Mass - t.browsed[i]
	if avail <= 0 {
		return 0, false
	}
	eaten = need
	if eaten > avail {
		eaten = avail
	}
	t.browsed[i] += eaten

	if p.Age < youngTreeAge || t.browsed[i] >= p.Mass*browseRemovalFraction {
		t.MarkConsumed(i)
		return eaten, true
	}
	return eaten, false
}

// Alive returns the living tree count.
func (t *TreePopulation) Alive() int { return t.arena.Alive() }

// Capacity returns the slot count.
func (t *TreePopulation) Capacity() int { return t.arena.Capacity() }

// PlantAt returns a copy of the tree in slot i, if occupied.
func (t *TreePopulation) PlantAt(i int) (Plant, bool) {
	if !t.arena.Occupied(i) {
		return Plant{}, false
	}
	return *t.arena.At(i), true
}

// Ages returns the ages of all living trees.
func (t *TreePopulation) Ages() []float64 {
	idx := t.arena.Indices()
	out := make([]float64, 0, len(idx))
	for _, i := range idx {
		out = append(out, float64(t.arena.At(i).Age))
	}
	return out
}

// Stats summarizes the population. Zero values for an empty pool.
func (t *TreePopulation) Stats() TreeStats {
	s := TreeStats{Deaths: t.deaths}
	var ageSum int
	for _, i := range t.arena.Indices() {
		p := t.arena.At(i)
		s.Alive++
		ageSum += p.Age
		s.Histogram.add(p.Age, treeAgeBracket)
	}
	if s.Alive > 0 {
		s.MeanAge = float64(ageSum) / float64(s.Alive)
	}
	return s
}

// ResetTally zeroes the death-cause counters; the driver calls this once
// per snapshot.
func (t *TreePopulation) ResetTally() { t.deaths = TreeDeaths{} }

// Reset empties the population and clears all tallies.
func (t *TreePopulation) Reset() {
	t.arena.Reset()
	t.deaths = TreeDeaths{}
	clear(t.browsed)
}

func (t *TreePopulation) kill(i int, counter *int) bool {
	if !t.arena.Release(i) {
		return false
	}
	*counter++
	return true
}
