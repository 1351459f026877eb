package species

import "github.com/pthm-cable/wildwood/rng"

// fakeSource delegates to a seeded source but lets a test pin individual
// draws to force or forbid stochastic outcomes.
type fakeSource struct {
	base       rng.Source
	uniformFn  func() float64
	gaussianFn func(mean, stddev float64) float64
}

func newFakeSource(seed uint64) *fakeSource {
	return &fakeSource{base: rng.New(seed)}
}

func (f *fakeSource) Uniform() float64 {
	if f.uniformFn != nil {
		return f.uniformFn()
	}
	return f.base.Uniform()
}

func (f *fakeSource) Gaussian(mean, stddev float64) float64 {
	if f.gaussianFn != nil {
		return f.gaussianFn(mean, stddev)
	}
	return f.base.Gaussian(mean, stddev)
}

func (f *fakeSource) Intn(n int) int { return f.base.Intn(n) }

func (f *fakeSource) Perm(n int) []int { return f.base.Perm(n) }
