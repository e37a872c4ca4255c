package skin

import (
	"iter"
	"slices"

	"github.com/goliatone/go-skin/pkg/activity"
)

// Table is a sparse mapping from Aspect to Hint, owned by one skin or one
// element. The backing map is only allocated while the table holds hints.
//
// Besides the hints the table maintains the union of all state bits used by
// any stored aspect and the number of animator aspects. The state union only
// grows: removals do not shrink it. It is used to drop query bits that can
// never match, so a stale bit costs a few extra lookups and nothing else.
//
// A Table is not safe for concurrent mutation.
type Table struct {
	hints         map[Aspect]Hint
	states        States
	animatorCount int

	cfg     tableConfig
	emitter *activity.Emitter
}

// NewTable constructs an empty table.
func NewTable(opts ...TableOption) *Table {
	cfg := applyTableOptions(opts)
	return &Table{
		cfg:     cfg,
		emitter: newEmitter(cfg),
	}
}

// ID returns the table identifier.
func (t *Table) ID() string { return t.cfg.id }

// Len returns the number of stored hints.
func (t *Table) Len() int { return len(t.hints) }

func (t *Table) IsEmpty() bool { return len(t.hints) == 0 }

// UsedStates returns the union of the state bits of every aspect inserted
// since the last Clear.
func (t *Table) UsedStates() States { return t.states }

// AnimatorCount returns the number of stored animator aspects.
func (t *Table) AnimatorCount() int { return t.animatorCount }

// SetHint inserts or replaces the hint stored for aspect. It reports whether
// the stored value changed.
func (t *Table) SetHint(aspect Aspect, hint Hint) bool {
	if t.hints == nil {
		t.hints = make(map[Aspect]Hint)
	}

	previous, exists := t.hints[aspect]
	if exists && previous == hint {
		return false
	}

	t.hints[aspect] = hint
	if !exists {
		if aspect.IsAnimator() {
			t.animatorCount++
		}
		t.states |= aspect.States()
	}

	t.cfg.logger.LogHint(HintEvent{Op: OpSet, TableID: t.cfg.id, Aspect: aspect, Hint: hint, Changed: true})
	if t.emitter.Enabled() {
		t.publish(aspect, activity.BuildHintSetEvent(t.hintEventInput(aspect, previous, hint)))
	}
	return true
}

// RemoveHint removes the hint stored for aspect and reports whether there
// was one.
func (t *Table) RemoveHint(aspect Aspect) bool {
	_, ok := t.take(aspect)
	return ok
}

// TakeHint removes the hint stored for aspect and returns it, or the
// invalid hint when there was none.
func (t *Table) TakeHint(aspect Aspect) Hint {
	hint, _ := t.take(aspect)
	return hint
}

func (t *Table) take(aspect Aspect) (Hint, bool) {
	hint, ok := t.hints[aspect]
	if !ok {
		return Hint{}, false
	}

	delete(t.hints, aspect)
	if aspect.IsAnimator() {
		t.animatorCount--
	}
	if len(t.hints) == 0 {
		t.hints = nil
	}

	t.cfg.logger.LogHint(HintEvent{Op: OpRemove, TableID: t.cfg.id, Aspect: aspect, Hint: hint, Changed: true})
	if t.emitter.Enabled() {
		t.publish(aspect, activity.BuildHintRemovedEvent(t.hintEventInput(aspect, hint, Hint{})))
	}
	return hint, true
}

// Hint returns the hint stored for exactly aspect, without any fallback.
func (t *Table) Hint(aspect Aspect) (Hint, bool) {
	hint, ok := t.hints[aspect]
	return hint, ok
}

// HasHint reports whether a hint is stored for exactly aspect.
func (t *Table) HasHint(aspect Aspect) bool {
	_, ok := t.hints[aspect]
	return ok
}

// SetAnimation stores an animation hint under the animator flavour of aspect.
func (t *Table) SetAnimation(aspect Aspect, hint AnimationHint) bool {
	return t.SetHint(aspect.WithAnimator(true), AnimationValue(hint))
}

// Animation resolves the animation hint for the animator flavour of aspect.
// It returns the zero hint when nothing is found.
func (t *Table) Animation(aspect Aspect) AnimationHint {
	hint, _, ok := t.ResolvedHint(aspect.WithAnimator(true))
	if !ok {
		return AnimationHint{}
	}
	animation, _ := hint.Animation()
	return animation
}

// Clear drops all hints and resets the derived state.
func (t *Table) Clear() {
	hadHints := len(t.hints) > 0
	t.hints = nil
	t.animatorCount = 0
	t.states = 0

	if !hadHints {
		return
	}
	t.cfg.logger.LogHint(HintEvent{Op: OpClear, TableID: t.cfg.id, Changed: true})
	if t.emitter.Enabled() {
		t.publish(0, activity.BuildTableClearedEvent(activity.HintEventInput{
			ActorID: t.cfg.actorID,
			TableID: t.cfg.id,
		}))
	}
}

// Aspects returns the stored aspects sorted by their packed value.
func (t *Table) Aspects() []Aspect {
	if len(t.hints) == 0 {
		return nil
	}
	aspects := make([]Aspect, 0, len(t.hints))
	for aspect := range t.hints {
		aspects = append(aspects, aspect)
	}
	slices.Sort(aspects)
	return aspects
}

// All iterates over the stored hints in aspect order.
func (t *Table) All() iter.Seq2[Aspect, Hint] {
	return func(yield func(Aspect, Hint) bool) {
		for _, aspect := range t.Aspects() {
			if !yield(aspect, t.hints[aspect]) {
				return
			}
		}
	}
}
