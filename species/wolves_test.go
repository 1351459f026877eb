package species

import (
	"math"
	"testing"

	"github.com/pthm-cable/wildwood/rng"
)

// fakePrey hands out fixed-mass prey and records every take, so tests can
// check capture caps and that no slot is ever taken twice.
type fakePrey struct {
	living []int
	mass   float64
	taken  map[int]int
}

func newFakePrey(count int, mass float64) *fakePrey {
	p := &fakePrey{mass: mass, taken: make(map[int]int)}
	for i := 0; i < count; i++ {
		p.living = append(p.living, i)
	}
	return p
}

func (f *fakePrey) Living() []int {
	out := make([]int, len(f.living))
	copy(out, f.living)
	return out
}

func (f *fakePrey) MassAt(i int) float64 { return f.mass }

func (f *fakePrey) Take(i int) float64 {
	f.taken[i]++
	return f.mass
}

func (f *fakePrey) takes() int {
	n := 0
	for _, c := range f.taken {
		n += c
	}
	return n
}

func TestHuntFallbackSparesYoungest(t *testing.T) {
	src := rng.New(1)
	wolves := NewWolves(40, 5, 5, src)
	wolves.Seed(5, 2, 0)
	wolves.Seed(5, 8, 0)
	deer := NewDeer(40, 5, 5, src)

	wolves.Hunt(deer)

	// ceil(10 * 0.3) of the pack survives on fallback food, youngest first.
	if wolves.Alive() != 3 {
		t.Fatalf("alive = %d, want 3 fallback survivors", wolves.Alive())
	}
	for _, i := range wolves.Living() {
		a, _ := wolves.AnimalAt(i)
		if a.Age != 2 {
			t.Errorf("survivor aged %d, want the young cohort", a.Age)
		}
	}
	if got := wolves.Stats().Deaths.Starvation; got != 7 {
		t.Errorf("starvation deaths = %d, want 7", got)
	}
}

func TestHuntFallbackKeepsLoneWolf(t *testing.T) {
	src := rng.New(2)
	wolves := NewWolves(40, 5, 5, src)
	wolves.Seed(1, 4, 0)

	wolves.Hunt(NewDeer(40, 5, 5, src))

	if wolves.Alive() != 1 {
		t.Errorf("alive = %d, a lone wolf must survive a preyless year", wolves.Alive())
	}
	if got := wolves.Stats().Deaths.Starvation; got != 0 {
		t.Errorf("starvation deaths = %d, want 0", got)
	}
}

func TestHuntCaptureCap(t *testing.T) {
	wolves := NewWolves(40, 5, 5, rng.New(3))
	wolves.Seed(1, 4, 0)
	prey := newFakePrey(10, 1)

	wolves.Hunt(prey)

	// Tiny prey never satisfies the need, but captures stop at the cap.
	if got := prey.takes(); got != maxCapturesPerWolf {
		t.Errorf("takes = %d, want the cap of %d", got, maxCapturesPerWolf)
	}
	if wolves.Alive() != 0 {
		t.Errorf("alive = %d, two mouthfuls cannot sustain a wolf", wolves.Alive())
	}
	if got := wolves.Stats().Deaths.Starvation; got != 1 {
		t.Errorf("starvation deaths = %d, want 1", got)
	}
}

func TestHuntSingleLargeKillSuffices(t *testing.T) {
	wolves := NewWolves(40, 5, 5, rng.New(4))
	wolves.Seed(1, 4, 0)
	prey := newFakePrey(10, 90)

	wolves.Hunt(prey)

	if got := prey.takes(); got != 1 {
		t.Errorf("takes = %d, want 1 when one kill meets the need", got)
	}
	if wolves.Alive() != 1 {
		t.Errorf("alive = %d, want 1", wolves.Alive())
	}
}

func TestHuntNeverTakesSamePreyTwice(t *testing.T) {
	wolves := NewWolves(40, 5, 5, rng.New(5))
	wolves.Seed(15, 4, 1)
	prey := newFakePrey(20, 30)

	wolves.Hunt(prey)

	for i, n := range prey.taken {
		if n > 1 {
			t.Errorf("prey slot %d taken %d times", i, n)
		}
	}
}

func TestHuntPredationTally(t *testing.T) {
	src := rng.New(6)
	wolves := NewWolves(40, 5, 5, src)
	wolves.Seed(3, 4, 0)
	deer := NewDeer(60, 5, 5, src)
	deer.Seed(20, 4, 1)

	wolves.Hunt(deer)

	killed := 20 - deer.Alive()
	if killed == 0 {
		t.Fatal("three prime wolves among twenty deer must make a kill")
	}
	if got := deer.Stats().Deaths.Predation; got != killed {
		t.Errorf("predation deaths = %d, want %d", got, killed)
	}
}

func TestHuntFallbackSurvivorCount(t *testing.T) {
	for _, packSize := range []int{1, 3, 7, 10} {
		src := rng.New(uint64(packSize))
		wolves := NewWolves(40, 5, 5, src)
		wolves.Seed(packSize, 4, 0)

		wolves.Hunt(NewDeer(40, 5, 5, src))

		want := int(math.Ceil(float64(packSize) * fallbackSurvivorFraction))
		if want < 1 {
			want = 1
		}
		if wolves.Alive() != want {
			t.Errorf("pack of %d: alive = %d, want %d", packSize, wolves.Alive(), want)
		}
	}
}
