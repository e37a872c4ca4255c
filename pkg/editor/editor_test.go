package editor

import (
	"errors"
	"testing"
	"time"

	skin "github.com/goliatone/go-skin"
	"github.com/goliatone/go-skin/pkg/tokens"
)

var (
	buttonType = skin.NewElementType("EditorButton", skin.Control)
	panel      = skin.MustNextSubcontrol(buttonType, "Panel")
	pressed    = skin.MustRegisterState(buttonType, skin.FirstUserState, "Pressed")
)

func TestSetMetricWithCombinations(t *testing.T) {
	ed := New(nil)
	aspect := skin.NewAspect(panel, skin.Size)

	ed.SetMetric(aspect, 10)
	ed.SetMetric(aspect, 20, skin.States(pressed), skin.States(pressed)|skin.States(skin.Hovered))

	table := ed.Table()
	if table.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", table.Len())
	}
	metric := aspect.WithType(skin.Metric)
	for _, states := range []skin.States{skin.States(pressed), skin.States(pressed) | skin.States(skin.Hovered)} {
		hint, ok := table.Hint(metric.AddStates(states))
		if !ok {
			t.Fatalf("expected entry for states %v", states)
		}
		if v, _ := hint.Number(); v != 20 {
			t.Fatalf("expected 20, got %v", v)
		}
	}
	hint, resolved, ok := table.ResolvedHint(metric.AddStates(skin.States(skin.Hovered)))
	if !ok || resolved != metric {
		t.Fatalf("hovered only should fall back to base, got %v %v", resolved, ok)
	}
	if v, _ := hint.Number(); v != 10 {
		t.Fatalf("expected 10, got %v", v)
	}
}

func TestSetMetricExpr(t *testing.T) {
	var logged []tokens.EvaluatorLogEvent
	ed := New(skin.NewTable(skin.WithTableID("squiek")),
		WithTokens(tokens.Set{"unit": 4.0}),
		WithEvaluatorLogger(tokens.EvaluatorLoggerFunc(func(event tokens.EvaluatorLogEvent) {
			logged = append(logged, event)
		})),
	)
	aspect := skin.NewAspect(panel).WithPrimitive(skin.Metric, skin.Spacing)

	if err := ed.SetMetricExpr(aspect, "clamp(unit * 3, 0, 10)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hint, ok := ed.Table().Hint(aspect)
	if !ok {
		t.Fatalf("expected spacing entry")
	}
	if v, _ := hint.Number(); v != 10 {
		t.Fatalf("expected clamped 10, got %v", v)
	}
	if len(logged) != 1 || logged[0].Scope != "squiek" || logged[0].Target != aspect.String() {
		t.Fatalf("expected one evaluation scoped to the table, got %+v", logged)
	}

	err := ed.SetMetricExpr(aspect, "unit *")
	var evalErr *tokens.EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %v", err)
	}
	if evalErr.Target != aspect.String() || evalErr.Scope != "squiek" || evalErr.Stage != tokens.StageCompile {
		t.Fatalf("expected the failing aspect on the error, got %+v", evalErr)
	}
	if v, _ := ed.Table().Hint(aspect); v != skin.NumberHint(10) {
		t.Fatalf("failed expression must not change the table")
	}
}

func TestSetMetricExprWithCEL(t *testing.T) {
	ed := New(nil,
		WithTokens(tokens.Set{"unit": 4.0}),
		WithEvaluator(tokens.NewCELEvaluator()),
	)
	aspect := skin.NewAspect(panel, skin.Size)
	if err := ed.SetMetricExpr(aspect, "unit * 2.5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hint, _ := ed.Table().Hint(aspect.WithType(skin.Metric))
	if v, _ := hint.Number(); v != 10 {
		t.Fatalf("expected 10, got %v", v)
	}
}

func TestSetColorString(t *testing.T) {
	ed := New(nil, WithTokens(tokens.Set{
		"primary": "#2979ff",
		"accent":  "$primary",
		"loop":    "$loop",
		"text":    "white",
		"palette": tokens.Set{"surface": "#fafafa"},
	}))
	aspect := skin.NewAspect(panel, skin.TextColor)

	cases := []struct {
		value string
		want  string
	}{
		{"#f00", "#ff0000"},
		{"#00ff0080", "#00ff0080"},
		{"steelblue", "#4682b4"},
		{"$accent", "#2979ff"},
		{"$text", "#ffffff"},
		{"$palette.surface", "#fafafa"},
	}
	for _, tc := range cases {
		if err := ed.SetColorString(aspect, tc.value); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.value, err)
		}
		hint, _ := ed.Table().Hint(aspect.WithType(skin.Color))
		c, ok := hint.Color()
		if !ok {
			t.Fatalf("%s: expected color hint, got %v", tc.value, hint)
		}
		if c.Hex() != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.value, tc.want, c.Hex())
		}
	}

	if err := ed.SetColorString(aspect, "$missing"); !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("expected ErrUnknownToken, got %v", err)
	}
	if err := ed.SetColorString(aspect, "$loop"); !errors.Is(err, ErrTokenCycle) {
		t.Fatalf("expected ErrTokenCycle, got %v", err)
	}
	if err := ed.SetColorString(aspect, "not-a-colour"); !errors.Is(err, skin.ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
}

func TestSetColorShades(t *testing.T) {
	ed := New(nil)
	aspect := skin.NewAspect(panel, skin.Color)
	base := skin.MustParseColor("#2979ff")

	err := ed.SetColorShades(aspect, base,
		Shade{States: skin.States(skin.Hovered), Amount: 0.2},
		Shade{States: skin.States(pressed), Amount: -0.3},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table := ed.Table()
	if table.Len() != 3 {
		t.Fatalf("expected base plus two shades, got %d", table.Len())
	}
	lighter, _ := table.Hint(aspect.AddStates(skin.States(skin.Hovered)))
	darker, _ := table.Hint(aspect.AddStates(skin.States(pressed)))
	l, _ := lighter.Color()
	d, _ := darker.Color()
	if luminance(l) <= luminance(base) {
		t.Fatalf("hover shade should be lighter: %s vs %s", l, base)
	}
	if luminance(d) >= luminance(base) {
		t.Fatalf("pressed shade should be darker: %s vs %s", d, base)
	}
}

func TestSetColorShadesRejectsBaseStates(t *testing.T) {
	ed := New(nil)
	aspect := skin.NewAspect(panel, skin.Color)
	base := skin.MustParseColor("#2979ff")

	err := ed.SetColorShades(aspect, base,
		Shade{States: skin.States(skin.Hovered), Amount: 0.2},
		Shade{Amount: -0.3},
	)
	if !errors.Is(err, ErrShadeStates) {
		t.Fatalf("expected ErrShadeStates, got %v", err)
	}
	if ed.Table().Len() != 0 {
		t.Fatalf("rejected shades must not store anything, got %d", ed.Table().Len())
	}

	hovered := aspect.AddStates(skin.States(skin.Hovered))
	err = ed.SetColorShades(hovered, base, Shade{States: skin.States(skin.Hovered), Amount: 0.2})
	if !errors.Is(err, ErrShadeStates) {
		t.Fatalf("states already on the aspect should be rejected, got %v", err)
	}
}

func TestBlendBounds(t *testing.T) {
	base := skin.RGBA{R: 0.2, G: 0.4, B: 0.6, A: 0.5}

	if got := Blend(base, 0); got.Hex() != base.Hex() {
		t.Fatalf("zero amount should keep colour, got %s", got)
	}
	if got := Blend(base, 5); got.Hex() != "#ffffff80" {
		t.Fatalf("amount above one should clamp to white, got %s", got)
	}
	if got := Blend(base, -1); got.Hex() != "#00000080" {
		t.Fatalf("full darken should reach black, got %s", got)
	}
}

func TestGeometrySetters(t *testing.T) {
	ed := New(nil)
	aspect := skin.NewAspect(panel)

	ed.SetStrutSize(aspect, 80, 32)
	ed.SetMargin(aspect, skin.UniformMargins(4))
	ed.SetPadding(aspect, skin.Margins{Left: 8, Top: 4, Right: 8, Bottom: 4}, skin.States(pressed))
	ed.SetSpacing(aspect, 6)

	table := ed.Table()
	strut, ok := table.Hint(aspect.WithPrimitive(skin.Metric, skin.StrutSize))
	if ext, _ := strut.Extent(); !ok || ext != (skin.Extent{Width: 80, Height: 32}) {
		t.Fatalf("unexpected strut size %v", strut)
	}
	margin, _ := table.Hint(aspect.WithPrimitive(skin.Metric, skin.Margin))
	if m, _ := margin.Margins(); m != skin.UniformMargins(4) {
		t.Fatalf("unexpected margin %v", margin)
	}
	if table.HasHint(aspect.WithPrimitive(skin.Metric, skin.Padding)) {
		t.Fatalf("padding was only set for pressed")
	}
	padding, resolved, ok := table.ResolvedHint(aspect.WithPrimitive(skin.Metric, skin.Padding).AddStates(skin.States(pressed)))
	if !ok || resolved.States() != skin.States(pressed) {
		t.Fatalf("expected pressed padding, got %v %v", resolved, ok)
	}
	if m, _ := padding.Margins(); m.Left != 8 {
		t.Fatalf("unexpected padding %v", padding)
	}
	spacing, _ := table.Hint(aspect.WithPrimitive(skin.Metric, skin.Spacing))
	if v, _ := spacing.Number(); v != 6 {
		t.Fatalf("unexpected spacing %v", spacing)
	}
}

func TestSetAnimationAndRemove(t *testing.T) {
	ed := New(nil)
	aspect := skin.NewAspect(panel, skin.Color)
	anim := skin.AnimationHint{Duration: 150 * time.Millisecond, Easing: skin.OutCubic}

	ed.SetAnimation(aspect, anim, skin.States(skin.Hovered), skin.States(pressed))
	if ed.Table().AnimatorCount() != 2 {
		t.Fatalf("expected two animators, got %d", ed.Table().AnimatorCount())
	}
	_, got, ok := ed.Table().ResolvedAnimator(aspect.AddStates(skin.States(skin.Hovered) | skin.States(skin.Focused)))
	if !ok || got != anim {
		t.Fatalf("expected hover animator, got %v %v", got, ok)
	}

	if !ed.RemoveHint(aspect.WithAnimator(true), skin.States(skin.Hovered), skin.States(pressed)) {
		t.Fatalf("expected removal")
	}
	if ed.Table().AnimatorCount() != 0 || !ed.Table().IsEmpty() {
		t.Fatalf("expected empty table after removal")
	}
	if ed.RemoveHint(aspect) {
		t.Fatalf("removing a missing hint should report false")
	}
}

func TestTokensAreCopied(t *testing.T) {
	set := tokens.Set{"unit": 4.0}
	ed := New(nil, WithTokens(set))
	set["unit"] = 8.0
	if v, _ := ed.Tokens().Number("unit"); v != 4 {
		t.Fatalf("editor tokens must not alias the caller set, got %v", v)
	}
}

func luminance(c skin.RGBA) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}
