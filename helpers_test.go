package skin

var (
	testButton  = NewElementType("TestButton", Control)
	testPanel   = MustNextSubcontrol(testButton, "Panel")
	testText    = MustNextSubcontrol(testButton, "Text")
	testPressed = MustRegisterState(testButton, FirstUserState, "Pressed")
	testChecked = MustRegisterState(testButton, FirstUserState<<1, "Checked")
)

func states(list ...State) States {
	var out States
	for _, s := range list {
		out |= States(s)
	}
	return out
}

func number(t interface{ Fatalf(string, ...any) }, h Hint) float64 {
	v, ok := h.Number()
	if !ok {
		t.Fatalf("expected number hint, got %v", h)
	}
	return v
}
