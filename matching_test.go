package skin

import (
	"math/rand"
	"testing"
)

// growStates registers state bits on an unrelated subcontrol so they survive
// the used states mask.
func growStates(table *Table, list ...State) {
	other := NewAspect(testText, Metric, Shadow)
	for _, s := range list {
		table.SetHint(other.AddStates(States(s)), NumberHint(0))
	}
}

func TestIsResolutionMatchingIdentity(t *testing.T) {
	table := NewTable()
	key := NewAspect(testPanel, Color, Header, Vertical, testPressed)
	if !table.IsResolutionMatching(key, key) {
		t.Fatalf("a key always matches itself")
	}
	table.SetHint(key, NumberHint(1))
	if !table.IsResolutionMatching(key, key) {
		t.Fatalf("a key always matches itself")
	}
}

func TestIsResolutionMatchingTrunk(t *testing.T) {
	table := NewTable()
	table.SetHint(NewAspect(testPanel, Color), NumberHint(1))

	if table.IsResolutionMatching(NewAspect(testPanel, Color), NewAspect(testText, Color)) {
		t.Fatalf("different subcontrols cannot match")
	}
	if table.IsResolutionMatching(NewAspect(testPanel, Color), NewAspect(testPanel, Metric)) {
		t.Fatalf("different types cannot match")
	}
	if table.IsResolutionMatching(NewAspect(testPanel, Color), NewAspect(testPanel, Color).WithAnimator(true)) {
		t.Fatalf("animator and value aspects cannot match")
	}
}

func TestIsResolutionMatchingStates(t *testing.T) {
	table := NewTable()
	base := NewAspect(testPanel, Color)
	table.SetHint(base, NumberHint(10))
	growStates(table, testPressed, Hovered)

	if !table.IsResolutionMatching(base.AddStates(States(testPressed)), base.AddStates(States(Hovered))) {
		t.Fatalf("states without overrides resolve to the same base entry")
	}

	table.SetHint(base.AddStates(States(testPressed)), NumberHint(20))
	if table.IsResolutionMatching(base.AddStates(States(testPressed)), base) {
		t.Fatalf("pressed has an override and must differ from the base")
	}
	if table.IsResolutionMatching(base.AddStates(States(testPressed)), base.AddStates(States(Hovered))) {
		t.Fatalf("pressed and hovered resolve to different entries")
	}
	if !table.IsResolutionMatching(base.AddStates(states(testPressed, Hovered)), base.AddStates(States(testPressed))) {
		t.Fatalf("hovered has no override on top of pressed")
	}
}

func TestIsResolutionMatchingDegradesVariationAndSection(t *testing.T) {
	table := NewTable()
	base := NewAspect(testPanel, Metric, Size)
	table.SetHint(base, NumberHint(1))

	if !table.IsResolutionMatching(base.WithVariation(Vertical), base.WithVariation(Horizontal)) {
		t.Fatalf("variations without overrides fall back to the same base")
	}
	if !table.IsResolutionMatching(base.WithSection(Header), base.WithSection(Footer)) {
		t.Fatalf("sections without overrides fall back to the same base")
	}

	table.SetHint(base.WithVariation(Vertical), NumberHint(2))
	if table.IsResolutionMatching(base.WithVariation(Vertical), base.WithVariation(Horizontal)) {
		t.Fatalf("the vertical override must win for vertical only")
	}
}

func TestIsResolutionMatchingWithoutAnyEntry(t *testing.T) {
	table := NewTable()
	a := NewAspect(testPanel, Color, Header, Vertical)
	b := NewAspect(testPanel, Color, Footer, Horizontal)
	if !table.IsResolutionMatching(a, b) {
		t.Fatalf("two unresolved keys of one family are equally absent")
	}
}

func TestIsResolutionMatchingAcrossSectionAndVariation(t *testing.T) {
	table := NewTable()
	key := NewAspect(testPanel, Metric, Size)
	table.SetHint(key, NumberHint(1))

	if !table.IsResolutionMatching(key.WithSection(Footer), key) {
		t.Fatalf("a footer without override resolves to the body entry")
	}
	if !table.IsResolutionMatching(key, key.WithVariation(Vertical)) {
		t.Fatalf("a variation without override resolves to the plain entry")
	}

	table.SetHint(key.WithSection(Footer), NumberHint(2))
	if table.IsResolutionMatching(key.WithSection(Footer), key) {
		t.Fatalf("the footer override must only answer the footer")
	}
	if !table.IsResolutionMatching(key.WithSection(Header), key.WithVariation(Vertical)) {
		t.Fatalf("header and vertical both fall back to the body entry")
	}
}

func TestIsResolutionMatchingAgreesWithResolution(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	family := NewAspect(testPanel, Metric, Padding)
	stateBits := []State{testPressed, testChecked, Hovered, Focused}
	randomKey := func() Aspect {
		var s States
		for _, bit := range stateBits {
			if rng.Intn(2) == 0 {
				s |= States(bit)
			}
		}
		return family.
			WithSection([]Section{Body, Header, Footer}[rng.Intn(3)]).
			WithVariation(Variation(rng.Intn(3))).
			WithStates(s)
	}

	for round := 0; round < 40; round++ {
		table := NewTable()
		for i := 0; i < 1+rng.Intn(12); i++ {
			table.SetHint(randomKey(), NumberHint(float64(i)))
		}
		for q := 0; q < 200; q++ {
			a, b := randomKey(), randomKey()
			want := table.ResolvedAspect(a) == table.ResolvedAspect(b)
			if got := table.IsResolutionMatching(a, b); got != want {
				t.Fatalf("round %d: matching(%v, %v) = %v, resolved to %v and %v",
					round, a, b, got, table.ResolvedAspect(a), table.ResolvedAspect(b))
			}
		}
	}
}
