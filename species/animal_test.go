package species

import (
	"testing"

	"github.com/pthm-cable/wildwood/rng"
)

func TestDeriveAnimalShapes(t *testing.T) {
	deer := NewDeer(50, 5, 5, rng.New(1))
	deer.Seed(1, 4, 0)

	var prime Animal
	for i := 0; i < deer.Capacity(); i++ {
		if a, ok := deer.AnimalAt(i); ok {
			prime = a
		}
	}
	if prime.ID == 0 {
		t.Fatal("seeding placed nothing")
	}
	if prime.Mass != DeerTraits.AdultMass {
		t.Errorf("prime mass = %v, want adult mass %v", prime.Mass, DeerTraits.AdultMass)
	}
	if prime.Hunger != DeerTraits.BaseNeed {
		t.Errorf("prime hunger at baseline factor = %v, want %v", prime.Hunger, DeerTraits.BaseNeed)
	}
	if prime.Stamina != 1 {
		t.Errorf("prime stamina at baseline factor = %v, want 1", prime.Stamina)
	}
}

func TestStaminaPeaksAtPrimeAge(t *testing.T) {
	deer := NewDeer(50, 5, 5, rng.New(2))
	stamina := func(age int) float64 {
		a := Animal{Age: age}
		deer.deriveAnimal(&a)
		return a.Stamina
	}

	prime := stamina(int(DeerTraits.PrimeAge))
	if stamina(1) >= prime {
		t.Error("yearling stamina must fall below prime")
	}
	if stamina(10) >= prime {
		t.Error("old-age stamina must fall below prime")
	}
}

func TestHungerScalesWithFactor(t *testing.T) {
	baseline := NewDeer(50, 5, 5, rng.New(3))
	doubled := NewDeer(50, 10, 5, rng.New(3))

	a := Animal{Age: 4}
	baseline.deriveAnimal(&a)
	b := Animal{Age: 4}
	doubled.deriveAnimal(&b)

	if b.Hunger != 2*a.Hunger {
		t.Errorf("hunger at factor 10 = %v, want double the baseline %v", b.Hunger, a.Hunger)
	}
}

func TestHerdGrow(t *testing.T) {
	wolves := NewWolves(20, 5, 5, rng.New(4))
	wolves.Seed(5, 1, 0)

	before := make(map[int]Animal)
	for i := 0; i < wolves.Capacity(); i++ {
		if a, ok := wolves.AnimalAt(i); ok {
			before[i] = a
		}
	}

	wolves.Grow()

	for i, was := range before {
		now, ok := wolves.AnimalAt(i)
		if !ok {
			t.Fatalf("slot %d emptied by growth", i)
		}
		if now.Age != was.Age+1 {
			t.Errorf("slot %d age = %d, want %d", i, now.Age, was.Age+1)
		}
		if now.Mass <= was.Mass {
			t.Errorf("slot %d mass did not grow toward adult", i)
		}
	}
}

func TestHerdAgeDeaths(t *testing.T) {
	fs := newFakeSource(5)
	deer := NewDeer(50, 5, 5, fs)
	deer.Seed(5, 20, 0)
	deer.Seed(5, 2, 0)

	fs.gaussianFn = func(mean, stddev float64) float64 { return 12 }
	deer.AgeDeaths()

	if deer.Alive() != 5 {
		t.Fatalf("alive = %d, want the 5 young deer", deer.Alive())
	}
	if got := deer.Stats().Deaths.Age; got != 5 {
		t.Errorf("age deaths = %d, want 5", got)
	}
}

func TestHerdReproduceNeedsMatureAdults(t *testing.T) {
	deer := NewDeer(100, 5, 5, rng.New(6))
	deer.Seed(30, 1, 0)

	// All yearlings below maturity: no births, even at a maxed factor,
	// and the rescue boost must not fire either.
	if placed := deer.Reproduce(2, 10); placed != 0 {
		t.Errorf("placed = %d newborns, want 0 without mature adults", placed)
	}
	if deer.Alive() != 30 {
		t.Errorf("alive = %d, want 30", deer.Alive())
	}
}

func TestHerdReproduceSkipsOldAdults(t *testing.T) {
	deer := NewDeer(100, 5, 5, rng.New(7))
	deer.Seed(10, float64(DeerTraits.OldAge+3), 0)

	if placed := deer.Reproduce(2, 10); placed != 0 {
		t.Errorf("placed = %d newborns, want 0 past breeding age", placed)
	}
}

func TestHerdReproducePlacesNewborns(t *testing.T) {
	deer := NewDeer(100, 5, 5, rng.New(8))
	deer.Seed(20, 4, 0)

	placed := deer.Reproduce(2, 5)
	if placed == 0 {
		t.Fatal("a healthy herd with headroom must reproduce")
	}
	if deer.Alive() != 20+placed {
		t.Errorf("alive = %d, want %d", deer.Alive(), 20+placed)
	}
	newborns := 0
	for _, a := range deer.Ages() {
		if a == 1 {
			newborns++
		}
	}
	if newborns != placed {
		t.Errorf("newborns aged 1 = %d, want %d", newborns, placed)
	}
}

func TestHerdMigrateRefoundsEmptyHerd(t *testing.T) {
	wolves := NewWolves(40, 5, 5, rng.New(9))

	placed := wolves.Migrate(5)
	if placed < 1 {
		t.Fatalf("an empty habitat must receive at least one migrant, got %d", placed)
	}
	if wolves.Alive() != placed {
		t.Errorf("alive = %d, want %d", wolves.Alive(), placed)
	}
}

func TestHerdMigrateRespectsCapacity(t *testing.T) {
	deer := NewDeer(10, 5, 5, rng.New(10))
	deer.Seed(10, 4, 0)

	for i := 0; i < 20; i++ {
		deer.Migrate(10)
	}
	if deer.Alive() > deer.Capacity() {
		t.Errorf("alive = %d exceeds capacity %d", deer.Alive(), deer.Capacity())
	}
}

func TestByStaminaDescOrdering(t *testing.T) {
	deer := NewDeer(50, 5, 5, rng.New(11))
	deer.Seed(4, 1, 0)
	deer.Seed(4, 4, 0)
	deer.Seed(4, 9, 0)

	order := deer.byStaminaDesc()
	if len(order) != 12 {
		t.Fatalf("order covers %d deer, want 12", len(order))
	}
	for k := 1; k < len(order); k++ {
		prev, _ := deer.AnimalAt(order[k-1])
		cur, _ := deer.AnimalAt(order[k])
		if cur.Stamina > prev.Stamina {
			t.Fatalf("order not descending at %d: %v after %v", k, cur.Stamina, prev.Stamina)
		}
		if cur.Stamina == prev.Stamina && order[k] < order[k-1] {
			t.Fatalf("tie at %d not broken by slot index", k)
		}
	}
}
