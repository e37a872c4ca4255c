package skin

// Step names how a candidate aspect was derived during resolution.
type Step string

const (
	// StepExact is the query itself, after masking unused states.
	StepExact Step = "exact"
	// StepState dropped the most significant state bit.
	StepState Step = "state"
	// StepVariation restarted from the query without its variation.
	StepVariation Step = "variation"
	// StepSection restarted from the query moved to the Body section.
	StepSection Step = "section"
)

type visitFunc func(candidate Aspect, step Step, found bool)

// resolve walks the candidates for aspect from most to least specific and
// returns the first stored hint:
//
//  1. the aspect itself
//  2. the aspect with its top state bit dropped, repeated until stateless
//  3. the queried aspect without variation, with its states walked again
//  4. the queried aspect moved to Body, which brings the variation and the
//     states back, walked again from step 1
//
// Skins that need a different order set state combinations explicitly, see
// the editor package.
func resolve(hints map[Aspect]Hint, aspect Aspect, visit visitFunc) (Hint, Aspect, bool) {
	base := aspect
	step := StepExact

	for {
		hint, ok := hints[aspect]
		if visit != nil {
			visit(aspect, step, ok)
		}
		if ok {
			return hint, aspect, true
		}

		if top := aspect.TopState(); top != NoState {
			aspect = aspect.ClearState(top)
			step = StepState
			continue
		}

		if aspect.Variation() != NoVariation {
			aspect = base.WithVariation(NoVariation)
			step = StepVariation
			continue
		}

		if aspect.Section() != Body {
			base = base.WithSection(Body)
			aspect = base
			step = StepSection
			continue
		}

		return Hint{}, 0, false
	}
}

// ResolvedHint finds the most specific hint matching aspect. It also returns
// the aspect the hint is stored under, so callers can tell whether two
// queries ended up on the same entry.
func (t *Table) ResolvedHint(aspect Aspect) (Hint, Aspect, bool) {
	if t.hints == nil {
		return Hint{}, 0, false
	}
	return resolve(t.hints, aspect.MaskStates(t.states), nil)
}

// ResolvedAspect returns the aspect ResolvedHint would answer from, or the
// zero aspect.
func (t *Table) ResolvedAspect(aspect Aspect) Aspect {
	_, resolved, _ := t.ResolvedHint(aspect)
	return resolved
}

// ResolvedAnimator finds the animation hint for a state transition. Only the
// state bits are relaxed; variation and section must match. The search is
// skipped when the table holds no animator hints.
func (t *Table) ResolvedAnimator(aspect Aspect) (Aspect, AnimationHint, bool) {
	if t.hints == nil || t.animatorCount <= 0 {
		return 0, AnimationHint{}, false
	}

	aspect = aspect.WithAnimator(true).MaskStates(t.states)
	for {
		if hint, ok := t.hints[aspect]; ok {
			animation, _ := hint.Animation()
			return aspect, animation, true
		}
		top := aspect.TopState()
		if top == NoState {
			return 0, AnimationHint{}, false
		}
		aspect = aspect.ClearState(top)
	}
}

// ResolveWithTrace runs the ResolvedHint search and records every candidate
// that was looked up.
func (t *Table) ResolveWithTrace(aspect Aspect) Trace {
	masked := aspect.MaskStates(t.states)
	trace := Trace{
		TableID: t.cfg.id,
		Query:   aspect,
		Masked:  masked,
	}
	if t.hints == nil {
		return trace
	}
	hint, resolved, ok := resolve(t.hints, masked, func(candidate Aspect, step Step, found bool) {
		trace.Candidates = append(trace.Candidates, Candidate{
			Aspect: candidate,
			Label:  candidate.String(),
			Step:   step,
			Found:  found,
		})
	})
	if ok {
		trace.Found = true
		trace.Resolved = resolved
		trace.Value = hint.String()
	}
	return trace
}
