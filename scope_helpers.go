package skin

const (
	// Recommended priorities for common stacks. Higher numbers win.
	ScopePrioritySkin    = 100
	ScopePriorityTheme   = 200
	ScopePriorityControl = 300
)

// ControlSkinStack chains the per-element override table above the active
// skin table.
func ControlSkinStack(control, skin *Table) (*Stack, error) {
	return NewStack(
		NewLayer(NewScope("control", ScopePriorityControl, WithScopeLabel("Control Overrides")), control),
		NewLayer(NewScope("skin", ScopePrioritySkin, WithScopeLabel("Skin")), skin),
	)
}

// ControlThemeSkinStack adds a theme table, such as a dark mode or high
// contrast overlay, between the element overrides and the skin.
func ControlThemeSkinStack(control, theme, skin *Table) (*Stack, error) {
	return NewStack(
		NewLayer(NewScope("control", ScopePriorityControl, WithScopeLabel("Control Overrides")), control),
		NewLayer(NewScope("theme", ScopePriorityTheme, WithScopeLabel("Theme")), theme),
		NewLayer(NewScope("skin", ScopePrioritySkin, WithScopeLabel("Skin")), skin),
	)
}
