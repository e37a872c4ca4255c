package skin

import (
	"fmt"
	"time"
)

// Easing names the curve an animator should use. Curves are evaluated by the
// animation subsystem; the table only stores which one applies.
type Easing uint8

const (
	Linear Easing = iota
	InQuad
	OutQuad
	InOutQuad
	InCubic
	OutCubic
	InOutCubic
	OutBack
	OutElastic
)

var easingNames = [...]string{
	Linear:     "Linear",
	InQuad:     "InQuad",
	OutQuad:    "OutQuad",
	InOutQuad:  "InOutQuad",
	InCubic:    "InCubic",
	OutCubic:   "OutCubic",
	InOutCubic: "InOutCubic",
	OutBack:    "OutBack",
	OutElastic: "OutElastic",
}

func (e Easing) String() string {
	if int(e) < len(easingNames) {
		return easingNames[e]
	}
	return fmt.Sprintf("Easing(%d)", uint8(e))
}

// UpdateFlags tell the animation subsystem what to refresh on every step.
type UpdateFlags uint8

const (
	// UpdateAuto lets the element decide from the aspect type.
	UpdateAuto UpdateFlags = 0
	UpdateNode UpdateFlags = 1 << (iota - 1)
	UpdatePolish
	UpdateSizeHint
)

const UpdateAll = UpdateNode | UpdatePolish | UpdateSizeHint

// AnimationHint describes a state transition.
type AnimationHint struct {
	Duration    time.Duration
	Easing      Easing
	UpdateFlags UpdateFlags
}

// NewAnimationHint builds a hint with the default easing.
func NewAnimationHint(duration time.Duration) AnimationHint {
	return AnimationHint{Duration: duration, Easing: Linear}
}

// IsValid reports whether the hint would animate at all.
func (h AnimationHint) IsValid() bool { return h.Duration > 0 }

func (h AnimationHint) String() string {
	return fmt.Sprintf("%s %s", h.Duration, h.Easing)
}
