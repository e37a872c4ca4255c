package skin

import (
	"fmt"
	"strconv"
)

// HintKind tags the value stored in a Hint.
type HintKind uint8

const (
	// HintInvalid is the zero Hint, used as the "no value" result.
	HintInvalid HintKind = iota
	HintNumber
	HintColor
	HintExtent
	HintMargins
	HintAnimation
)

func (k HintKind) String() string {
	switch k {
	case HintInvalid:
		return "invalid"
	case HintNumber:
		return "number"
	case HintColor:
		return "color"
	case HintExtent:
		return "extent"
	case HintMargins:
		return "margins"
	case HintAnimation:
		return "animation"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Extent is a width/height pair, used for strut sizes and fixed sizes.
type Extent struct {
	Width, Height float64
}

// Margins holds per edge values for margins, paddings and borders.
type Margins struct {
	Left, Top, Right, Bottom float64
}

// UniformMargins returns margins with the same value on every edge.
func UniformMargins(v float64) Margins {
	return Margins{Left: v, Top: v, Right: v, Bottom: v}
}

// Hint is a closed union of the value kinds a table can store. Hints are
// comparable; two hints are equal when kind and payload are equal.
type Hint struct {
	kind      HintKind
	number    float64
	color     RGBA
	extent    Extent
	margins   Margins
	animation AnimationHint
}

func NumberHint(v float64) Hint { return Hint{kind: HintNumber, number: v} }

func ColorHint(c RGBA) Hint { return Hint{kind: HintColor, color: c} }

func ExtentHint(width, height float64) Hint {
	return Hint{kind: HintExtent, extent: Extent{Width: width, Height: height}}
}

func MarginsHint(m Margins) Hint { return Hint{kind: HintMargins, margins: m} }

// AnimationValue wraps an animation hint so it can be stored in a table.
func AnimationValue(a AnimationHint) Hint { return Hint{kind: HintAnimation, animation: a} }

func (h Hint) Kind() HintKind { return h.kind }

func (h Hint) IsValid() bool { return h.kind != HintInvalid }

func (h Hint) Equal(other Hint) bool { return h == other }

func (h Hint) Number() (float64, bool) {
	return h.number, h.kind == HintNumber
}

func (h Hint) Color() (RGBA, bool) {
	return h.color, h.kind == HintColor
}

func (h Hint) Extent() (Extent, bool) {
	return h.extent, h.kind == HintExtent
}

func (h Hint) Margins() (Margins, bool) {
	return h.margins, h.kind == HintMargins
}

func (h Hint) Animation() (AnimationHint, bool) {
	return h.animation, h.kind == HintAnimation
}

// Value returns the payload as an untyped value, nil for an invalid hint.
func (h Hint) Value() any {
	switch h.kind {
	case HintNumber:
		return h.number
	case HintColor:
		return h.color
	case HintExtent:
		return h.extent
	case HintMargins:
		return h.margins
	case HintAnimation:
		return h.animation
	default:
		return nil
	}
}

func (h Hint) String() string {
	switch h.kind {
	case HintNumber:
		return strconv.FormatFloat(h.number, 'g', -1, 64)
	case HintColor:
		return h.color.Hex()
	case HintExtent:
		return fmt.Sprintf("%gx%g", h.extent.Width, h.extent.Height)
	case HintMargins:
		m := h.margins
		return fmt.Sprintf("(%g, %g, %g, %g)", m.Left, m.Top, m.Right, m.Bottom)
	case HintAnimation:
		return h.animation.String()
	default:
		return "<invalid>"
	}
}
