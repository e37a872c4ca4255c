package skin

import (
	"errors"
	"testing"
	"time"
)

func TestNewScopeCopiesMetadata(t *testing.T) {
	meta := map[string]any{"owner": "squiek"}
	scope := NewScope("skin", ScopePrioritySkin,
		WithScopeLabel("Squiek"),
		WithScopeMetadata(meta),
	)

	meta["owner"] = "mutated"

	if got := scope.Metadata["owner"]; got != "squiek" {
		t.Fatalf("expected metadata copy to remain 'squiek', got %q", got)
	}
	if scope.Label != "Squiek" {
		t.Fatalf("label not set, got %q", scope.Label)
	}
}

func TestNewStackOrdersAndValidates(t *testing.T) {
	control := NewLayer(NewScope("control", 300), NewTable())
	theme := NewLayer(NewScope("theme", 200), NewTable())
	fallback := NewLayer(NewScope("skin", 100), NewTable())

	stack, err := NewStack(fallback, control, theme)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	layers := stack.Layers()
	wantOrder := []string{"control", "theme", "skin"}
	for i, want := range wantOrder {
		if layers[i].Scope.Name != want {
			t.Fatalf("expected layer %d to be %q, got %q", i, want, layers[i].Scope.Name)
		}
	}
	if stack.Len() != 3 {
		t.Fatalf("expected 3 layers, got %d", stack.Len())
	}

	if _, err := NewStack(control, NewLayer(NewScope("control", 50), NewTable())); !errors.Is(err, ErrDuplicateScopeName) {
		t.Fatalf("expected duplicate scope name error, got %v", err)
	}
	if _, err := NewStack(control, NewLayer(NewScope("other", 300), NewTable())); !errors.Is(err, ErrPriorityOrder) {
		t.Fatalf("expected priority order error, got %v", err)
	}
	if _, err := NewStack(NewLayer(NewScope("", 1), NewTable())); !errors.Is(err, ErrScopeNameRequired) {
		t.Fatalf("expected scope name error, got %v", err)
	}
	if _, err := NewStack(NewLayer(NewScope("empty", 1), nil)); !errors.Is(err, ErrTableRequired) {
		t.Fatalf("expected table required error, got %v", err)
	}
}

func TestStackResolvedHintFirstLayerWins(t *testing.T) {
	control := NewTable(WithTableID("control"))
	fallback := NewTable(WithTableID("squiek"))
	stack, err := ControlSkinStack(control, fallback)
	if err != nil {
		t.Fatalf("stack: %v", err)
	}

	base := NewAspect(testPanel, Metric, Size)
	fallback.SetHint(base, NumberHint(10))
	fallback.SetHint(base.AddStates(States(testPressed)), NumberHint(15))
	control.SetHint(base.AddStates(States(testPressed)), NumberHint(20))

	hint, res, ok := stack.ResolvedHint(base.AddStates(states(testPressed, Hovered)))
	if !ok || number(t, hint) != 20 || res.Scope.Name != "control" || res.TableID != "control" {
		t.Fatalf("element override should win, got %v from %+v", hint, res)
	}
	if res.Aspect != base.AddStates(States(testPressed)) {
		t.Fatalf("unexpected resolved aspect %v", res.Aspect)
	}

	hint, res, ok = stack.ResolvedHint(base)
	if !ok || number(t, hint) != 10 || res.Scope.Name != "skin" || res.TableID != "squiek" {
		t.Fatalf("skin should answer the base query, got %v from %+v", hint, res)
	}

	if _, _, ok := stack.ResolvedHint(NewAspect(testText, Color)); ok {
		t.Fatalf("unknown aspect must not resolve")
	}
}

func TestStackTablesAreShared(t *testing.T) {
	control, fallback := NewTable(), NewTable()
	stack, err := ControlSkinStack(control, fallback)
	if err != nil {
		t.Fatalf("stack: %v", err)
	}
	key := NewAspect(testPanel, Color)
	fallback.SetHint(key, NumberHint(1))
	if _, res, ok := stack.ResolvedHint(key); !ok || res.Scope.Name != "skin" {
		t.Fatalf("hints set after construction must be visible")
	}
	if table, ok := stack.Table("control"); !ok || table != control {
		t.Fatalf("expected the control table by name")
	}
	if _, ok := stack.Table("missing"); ok {
		t.Fatalf("unknown scope must not be found")
	}
}

func TestStackIsResolutionMatching(t *testing.T) {
	control, fallback := NewTable(), NewTable()
	stack, err := ControlSkinStack(control, fallback)
	if err != nil {
		t.Fatalf("stack: %v", err)
	}
	base := NewAspect(testPanel, Color)
	fallback.SetHint(base, NumberHint(1))
	control.SetHint(base.AddStates(States(testPressed)), NumberHint(2))

	if stack.IsResolutionMatching(base.AddStates(States(testPressed)), base) {
		t.Fatalf("pressed is answered by the control layer, base by the skin")
	}
	if !stack.IsResolutionMatching(base.AddStates(States(Hovered)), base) {
		t.Fatalf("hovered and base are both answered by the skin base")
	}
	if !stack.IsResolutionMatching(NewAspect(testText, Color), NewAspect(testText, Color, Header)) {
		t.Fatalf("keys no layer resolves are equally absent")
	}
}

func TestStackAnimator(t *testing.T) {
	control, theme, fallback := NewTable(), NewTable(), NewTable()
	stack, err := ControlThemeSkinStack(control, theme, fallback)
	if err != nil {
		t.Fatalf("stack: %v", err)
	}
	base := NewAspect(testPanel, Color)
	slow := AnimationHint{Duration: time.Second, Easing: InOutCubic}
	theme.SetAnimation(base, slow)
	fallback.SetAnimation(base, NewAnimationHint(time.Millisecond))

	resolved, hint, ok := stack.ResolvedAnimator(base.AddStates(States(Hovered)))
	if !ok || hint != slow || resolved != base.WithAnimator(true) {
		t.Fatalf("theme animator should win, got %v at %v", hint, resolved)
	}
	if got := stack.Animation(base); got != slow {
		t.Fatalf("unexpected animation %v", got)
	}
	var empty *Stack
	if got := empty.Animation(base); got.IsValid() {
		t.Fatalf("nil stack must resolve nothing")
	}
}

func TestStackResolveWithTrace(t *testing.T) {
	control, fallback := NewTable(WithTableID("control")), NewTable(WithTableID("squiek"))
	stack, err := ControlSkinStack(control, fallback)
	if err != nil {
		t.Fatalf("stack: %v", err)
	}
	key := NewAspect(testPanel, Metric, Spacing)
	fallback.SetHint(key, NumberHint(6))

	trace := stack.ResolveWithTrace(key.WithSection(Header))
	if len(trace.Layers) != 2 {
		t.Fatalf("expected both layers in the trace, got %d", len(trace.Layers))
	}
	if trace.Layers[0].Scope.Name != "control" || trace.Layers[0].Trace.Found {
		t.Fatalf("control layer should miss, got %+v", trace.Layers[0])
	}
	winner, ok := trace.Winner()
	if !ok || winner.Scope.Name != "skin" || winner.Trace.Value != "6" {
		t.Fatalf("skin should win, got %+v", winner)
	}

	control.SetHint(key, NumberHint(8))
	trace = stack.ResolveWithTrace(key)
	if len(trace.Layers) != 1 {
		t.Fatalf("layers after the winner are not consulted, got %d", len(trace.Layers))
	}
}
