package species

// AgeHistogram buckets living entities by age bracket; the last bracket is
// open-ended.
type AgeHistogram [8]int

func (h *AgeHistogram) add(age, bracketWidth int) {
	b := age / bracketWidth
	if b > len(h)-1 {
		b = len(h) - 1
	}
	if b < 0 {
		b = 0
	}
	h[b]++
}

// TreeDeaths counts removals by cause since the last tally reset.
type TreeDeaths struct {
	Age      int
	Stress   int
	Crowding int
	Consumed int
}

// AnimalDeaths counts removals by cause since the last tally reset.
// Predation stays zero for apex species.
type AnimalDeaths struct {
	Age        int
	Starvation int
	Predation  int
}

// TreeStats is the per-snapshot producer summary. All fields default to
// zero for an empty population.
type TreeStats struct {
	Alive     int
	MeanAge   float64
	Histogram AgeHistogram
	Deaths    TreeDeaths
}

// AnimalStats is the per-snapshot consumer summary.
type AnimalStats struct {
	Alive     int
	MeanAge   float64
	Histogram AgeHistogram
	Deaths    AnimalDeaths
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampProb(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
