package skin

import "math/bits"

// State is a single dynamic interaction state bit.
type State uint16

// States is a set of State bits.
type States uint16

// The state bits are split into a system range, owned by the toolkit, and a
// user range for application defined states:
//
//	system  FirstSystemState .. FirstUserState-1
//	user    FirstUserState .. LastUserState
//	system  LastUserState+1 .. LastSystemState
const (
	NoState State = 0

	FirstSystemState State = 1 << 0
	FirstUserState   State = 1 << 5
	LastUserState    State = 1 << 11
	LastSystemState  State = 1 << 15
)

// AllStates is the mask covering every state bit.
const AllStates States = 0xFFFF

// IsUser reports whether s is a single bit inside the user range.
func (s State) IsUser() bool {
	return s.single() && s >= FirstUserState && s <= LastUserState
}

// IsSystem reports whether s is a single bit inside one of the system ranges.
func (s State) IsSystem() bool {
	if !s.single() {
		return false
	}
	return s < FirstUserState || s > LastUserState
}

func (s State) single() bool {
	return s != NoState && s&(s-1) == 0
}

// Top returns the most significant bit of s, or NoState.
func (s States) Top() State {
	if s == 0 {
		return NoState
	}
	return State(1 << (15 - bits.LeadingZeros16(uint16(s))))
}

func (s States) Has(state State) bool {
	return state != NoState && s&States(state) == States(state)
}

// Count returns the number of bits set.
func (s States) Count() int {
	return bits.OnesCount16(uint16(s))
}

func (s States) Without(state State) States {
	return s &^ States(state)
}
