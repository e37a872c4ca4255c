package activity

import (
	"testing"
	"time"
)

func TestBuildHintSetEvent(t *testing.T) {
	when := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	event := BuildHintSetEvent(HintEventInput{
		ActorID:    " designer ",
		TableID:    " table-1 ",
		Aspect:     "0x0000000000110001",
		OldValue:   "4",
		NewValue:   "8",
		Metadata:   map[string]any{"kind": "number"},
		OccurredAt: when,
	})

	if event.Verb != VerbHintSet || event.ObjectType != ObjectTypeHint {
		t.Fatalf("unexpected verb/object type: %+v", event)
	}
	if event.ObjectID != "table-1" || event.ActorID != "designer" {
		t.Fatalf("expected trimmed ids, got %+v", event)
	}
	if event.Metadata["old_value"] != "4" || event.Metadata["new_value"] != "8" || event.Metadata["kind"] != "number" {
		t.Fatalf("unexpected metadata: %+v", event.Metadata)
	}
	if !event.OccurredAt.Equal(when) {
		t.Fatalf("expected timestamp preserved, got %v", event.OccurredAt)
	}
}

func TestBuildHintRemovedEventOmitsEmptyValues(t *testing.T) {
	event := BuildHintRemovedEvent(HintEventInput{TableID: "t", Aspect: FormatAspect(1)})
	if event.Verb != VerbHintRemoved {
		t.Fatalf("unexpected verb %q", event.Verb)
	}
	if event.Metadata != nil {
		t.Fatalf("expected nil metadata, got %+v", event.Metadata)
	}
}

func TestBuildTableClearedEventFallsBackToObjectType(t *testing.T) {
	event := BuildTableClearedEvent(HintEventInput{})
	if event.ObjectType != ObjectTypeTable || event.ObjectID != ObjectTypeTable {
		t.Fatalf("expected object id fallback, got %+v", event)
	}
}

func TestCaptureHookVerbs(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}
	_ = hooks.Notify(nil, BuildHintSetEvent(HintEventInput{TableID: "t", Aspect: FormatAspect(0x10001)}))
	_ = hooks.Notify(nil, BuildTableClearedEvent(HintEventInput{TableID: "t"}))

	verbs := capture.Verbs()
	if len(verbs) != 2 || verbs[0] != VerbHintSet || verbs[1] != VerbTableCleared {
		t.Fatalf("unexpected verbs %v", verbs)
	}
}
