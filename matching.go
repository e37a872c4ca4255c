package skin

// IsResolutionMatching reports whether aspect1 and aspect2 resolve to the
// same entry given the current content of the table. Elements use it to skip
// transitions between states that would not change any value. Two aspects
// that both resolve to nothing match.
//
// Aspects that differ only in states are walked in lock step, most
// significant state first. As long as one aspect holds a state the other
// lacks, a stored hint on its current candidate would answer it alone, so
// the two cannot match. Aspects that differ in variation or section take
// different fallback paths and are compared by their resolved entries.
func (t *Table) IsResolutionMatching(aspect1, aspect2 Aspect) bool {
	aspect1 = aspect1.MaskStates(t.states)
	aspect2 = aspect2.MaskStates(t.states)

	if aspect1 == aspect2 {
		return true
	}
	if aspect1.Trunk() != aspect2.Trunk() {
		return false
	}
	if aspect1.Variation() != aspect2.Variation() || aspect1.Section() != aspect2.Section() {
		_, resolved1, ok1 := resolve(t.hints, aspect1, nil)
		_, resolved2, ok2 := resolve(t.hints, aspect2, nil)
		return ok1 == ok2 && resolved1 == resolved2
	}

	base1, base2 := aspect1, aspect2

	// degrade relaxes variation, then section, on both aspects at once and
	// restarts the state walk, mirroring resolve.
	degrade := func() bool {
		if aspect1.Variation() != NoVariation {
			aspect1 = base1.WithVariation(NoVariation)
			aspect2 = base2.WithVariation(NoVariation)
			return true
		}
		if aspect1.Section() != Body {
			base1 = base1.WithSection(Body)
			base2 = base2.WithSection(Body)
			aspect1, aspect2 = base1, base2
			return true
		}
		return false
	}

	for {
		state1 := aspect1.TopState()
		state2 := aspect2.TopState()

		if state1 > state2 {
			if t.HasHint(aspect1) {
				return false
			}
			aspect1 = aspect1.ClearState(state1)
			continue
		}

		if state2 > state1 {
			if t.HasHint(aspect2) {
				return false
			}
			aspect2 = aspect2.ClearState(state2)
			continue
		}

		if aspect1 == aspect2 {
			if t.HasHint(aspect1) {
				return true
			}
			if state1 == NoState {
				if !degrade() {
					return true
				}
				continue
			}
		} else if state1 == NoState || t.HasHint(aspect1) || t.HasHint(aspect2) {
			return false
		}

		aspect1 = aspect1.ClearState(state1)
		aspect2 = aspect2.ClearState(state2)
	}
}
