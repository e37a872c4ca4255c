package skin

import (
	"strings"
	"testing"
)

func TestTraceJSONRoundTrip(t *testing.T) {
	table := NewTable(WithTableID("squiek"))
	base := NewAspect(testPanel, Color, TextColor)
	table.SetHint(base, ColorHint(MustParseColor("#336699")))

	trace := table.ResolveWithTrace(base.WithSection(Card))
	payload, err := trace.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(payload), `"query":"0x`) {
		t.Fatalf("aspects should be encoded as hex text: %s", payload)
	}
	decoded, err := TraceFromJSON(payload)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Resolved != base || decoded.Value != "#336699" || len(decoded.Candidates) != len(trace.Candidates) {
		t.Fatalf("unexpected decoded trace %+v", decoded)
	}
	if decoded.Candidates[1].Step != StepSection {
		t.Fatalf("expected the section step, got %+v", decoded.Candidates)
	}

	if _, err := TraceFromJSON([]byte("{")); err == nil {
		t.Fatalf("expected invalid payload to fail")
	}
}

func TestStackTraceJSONRoundTrip(t *testing.T) {
	control, fallback := NewTable(), NewTable()
	stack, err := ControlSkinStack(control, fallback)
	if err != nil {
		t.Fatalf("stack: %v", err)
	}
	key := NewAspect(testPanel, Metric, Size)
	fallback.SetHint(key, ExtentHint(24, 24))

	payload, err := stack.ResolveWithTrace(key).ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := StackTraceFromJSON(payload)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	winner, ok := decoded.Winner()
	if !ok || winner.Scope.Name != "skin" || winner.Scope.Label != "Skin" || winner.Trace.Value != "24x24" {
		t.Fatalf("unexpected decoded winner %+v", winner)
	}
}
