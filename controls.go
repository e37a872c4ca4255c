package skin

// Control is the root element type of the toolkit. Every element type
// declared by applications should derive from it so the system states below
// are visible through StateName.
var Control = NewElementType("Control", nil)

var (
	ControlBackground = MustNextSubcontrol(Control, "Background")
)

// System states shared by every control. They sit above the user range so
// they are matched, and dropped, before any application defined state.
var (
	Hovered  = MustRegisterSystemState(Control, LastUserState<<1, "Hovered")
	Focused  = MustRegisterSystemState(Control, LastUserState<<2, "Focused")
	Disabled = MustRegisterSystemState(Control, LastUserState<<3, "Disabled")
)
