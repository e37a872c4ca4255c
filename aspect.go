package skin

import (
	"fmt"
	"strconv"
	"strings"
)

// Aspect identifies one style lookup point. It packs the subcontrol, section,
// type, animator flag, primitive, variation and state flags into a single
// 64 bit value so equality and ordering are plain integer comparisons.
//
// Bit layout (low to high):
//
//	subcontrol  0..11
//	section    12..15
//	type       16..18
//	animator   19
//	primitive  20..24
//	variation  25..27
//	reserved   28..31
//	states     32..47
//	reserved   48..63
type Aspect uint64

const (
	subcontrolShift = 0
	sectionShift    = 12
	typeShift       = 16
	animatorShift   = 19
	primitiveShift  = 20
	variationShift  = 25
	statesShift     = 32

	subcontrolMask = Aspect(0xFFF) << subcontrolShift
	sectionMask    = Aspect(0xF) << sectionShift
	typeMask       = Aspect(0x7) << typeShift
	animatorMask   = Aspect(0x1) << animatorShift
	primitiveMask  = Aspect(0x1F) << primitiveShift
	variationMask  = Aspect(0x7) << variationShift
	statesMask     = Aspect(0xFFFF) << statesShift

	trunkMask = subcontrolMask | typeMask | animatorMask | primitiveMask
)

// Subcontrol identifies a logical part of a compound element. Codes are
// allocated by a Registry; 0 addresses the whole element.
type Subcontrol uint16

const (
	NoSubcontrol   Subcontrol = 0
	LastSubcontrol Subcontrol = 1<<12 - 1
)

// Section is the placement zone an element lives in.
type Section uint8

const (
	Body Section = iota
	Header
	Footer
	Card
	Floating
)

const (
	FirstUserSection Section = Floating + 1
	LastSection      Section = 1<<4 - 1
)

// Type is the semantic domain of a hint value.
type Type uint8

const (
	NoType Type = iota
	Metric
	Color
)

// TypeCount is the number of defined types.
const TypeCount = 3

// Primitive discriminates hints within a type.
type Primitive uint8

const (
	NoPrimitive Primitive = iota

	Alignment
	Direction
	Style
	Option

	GraphicRole
	FontRole

	Symbol

	TextColor
	StyleColor
	LinkColor

	StrutSize
	Size
	Position

	Margin
	Padding
	Spacing

	Shadow
	Shape
	Border

	Graduation
)

// LastPrimitive is the highest value the primitive field can hold.
const LastPrimitive Primitive = 1<<5 - 1

// Variation is a contextual modifier whose meaning depends on the
// subcontrol: orientation, edge or size tier.
type Variation uint8

const (
	NoVariation Variation = 0

	Horizontal Variation = 1
	Vertical   Variation = 2

	Lower Variation = 1
	Upper Variation = 2

	Top    Variation = 1
	Left   Variation = 2
	Right  Variation = 3
	Bottom Variation = 4

	Tiny  Variation = 1
	Small Variation = 2
	Large Variation = 3
	Huge  Variation = 4
)

// LastVariation is the highest value the variation field can hold.
const LastVariation Variation = 1<<3 - 1

// Field is one dimension that can be combined into an Aspect.
type Field interface {
	applyTo(Aspect) Aspect
}

func (s Subcontrol) applyTo(a Aspect) Aspect { return a.WithSubcontrol(s) }
func (s Section) applyTo(a Aspect) Aspect    { return a.WithSection(s) }
func (t Type) applyTo(a Aspect) Aspect       { return a.WithType(t) }
func (p Primitive) applyTo(a Aspect) Aspect  { return a.withPrimitiveBits(p) }
func (v Variation) applyTo(a Aspect) Aspect  { return a.WithVariation(v) }
func (s State) applyTo(a Aspect) Aspect      { return a.AddStates(States(s)) }
func (s States) applyTo(a Aspect) Aspect     { return a.AddStates(s) }

// NewAspect combines fields into an aspect. Every field sets its own
// dimension, states accumulate, so the argument order does not matter.
func NewAspect(fields ...Field) Aspect {
	return Aspect(0).With(fields...)
}

// With returns a copy of a with every field applied.
func (a Aspect) With(fields ...Field) Aspect {
	for _, f := range fields {
		if f == nil {
			continue
		}
		a = f.applyTo(a)
	}
	return a
}

// Value returns the packed representation.
func (a Aspect) Value() uint64 { return uint64(a) }

func (a Aspect) Subcontrol() Subcontrol {
	return Subcontrol((a & subcontrolMask) >> subcontrolShift)
}

func (a Aspect) HasSubcontrol() bool { return a&subcontrolMask != 0 }

func (a Aspect) WithSubcontrol(s Subcontrol) Aspect {
	return a&^subcontrolMask | (Aspect(s)<<subcontrolShift)&subcontrolMask
}

func (a Aspect) ClearSubcontrol() Aspect { return a &^ subcontrolMask }

func (a Aspect) Section() Section {
	return Section((a & sectionMask) >> sectionShift)
}

func (a Aspect) WithSection(s Section) Aspect {
	return a&^sectionMask | (Aspect(s)<<sectionShift)&sectionMask
}

func (a Aspect) Type() Type {
	return Type((a & typeMask) >> typeShift)
}

func (a Aspect) WithType(t Type) Aspect {
	return a&^typeMask | (Aspect(t)<<typeShift)&typeMask
}

func (a Aspect) IsMetric() bool { return a.Type() == Metric }
func (a Aspect) IsColor() bool  { return a.Type() == Color }

func (a Aspect) IsAnimator() bool { return a&animatorMask != 0 }

// WithAnimator sets or clears the animator flag.
func (a Aspect) WithAnimator(on bool) Aspect {
	if on {
		return a | animatorMask
	}
	return a &^ animatorMask
}

func (a Aspect) Primitive() Primitive {
	return Primitive((a & primitiveMask) >> primitiveShift)
}

// WithPrimitive sets the type together with the primitive, the two only
// make sense as a pair.
func (a Aspect) WithPrimitive(t Type, p Primitive) Aspect {
	return a.WithType(t).withPrimitiveBits(p)
}

func (a Aspect) withPrimitiveBits(p Primitive) Aspect {
	return a&^primitiveMask | (Aspect(p)<<primitiveShift)&primitiveMask
}

func (a Aspect) ClearPrimitive() Aspect { return a &^ primitiveMask }

// MetricPrimitive returns the primitive when a is a metric aspect.
func (a Aspect) MetricPrimitive() Primitive {
	if a.Type() == Metric {
		return a.Primitive()
	}
	return NoPrimitive
}

// ColorPrimitive returns the primitive when a is a color aspect.
func (a Aspect) ColorPrimitive() Primitive {
	if a.Type() == Color {
		return a.Primitive()
	}
	return NoPrimitive
}

func (a Aspect) Variation() Variation {
	return Variation((a & variationMask) >> variationShift)
}

func (a Aspect) WithVariation(v Variation) Aspect {
	return a&^variationMask | (Aspect(v)<<variationShift)&variationMask
}

func (a Aspect) States() States {
	return States((a & statesMask) >> statesShift)
}

func (a Aspect) HasStates() bool { return a&statesMask != 0 }

// WithStates replaces the state flags.
func (a Aspect) WithStates(s States) Aspect {
	return a&^statesMask | Aspect(s)<<statesShift
}

// AddStates sets the given state flags in addition to the present ones.
func (a Aspect) AddStates(s States) Aspect {
	return a | Aspect(s)<<statesShift
}

// ClearState clears a single state bit.
func (a Aspect) ClearState(s State) Aspect {
	return a &^ (Aspect(s) << statesShift)
}

// ClearStates clears every state bit present in mask.
func (a Aspect) ClearStates(mask States) Aspect {
	return a &^ (Aspect(mask) << statesShift)
}

// ClearAllStates is ClearStates(AllStates).
func (a Aspect) ClearAllStates() Aspect { return a &^ statesMask }

// MaskStates keeps only the state bits present in mask.
func (a Aspect) MaskStates(mask States) Aspect {
	return a&^statesMask | a&(Aspect(mask)<<statesShift)
}

// TopState returns the most significant state bit, or NoState. Higher bits
// are considered more specific: they are matched first and dropped first
// when falling back.
func (a Aspect) TopState() State {
	return a.States().Top()
}

// Stateless returns a copy without state flags.
func (a Aspect) Stateless() Aspect { return a &^ statesMask }

// Trunk keeps subcontrol, type, animator flag and primitive. Aspects with
// different trunks can never resolve to the same hint.
func (a Aspect) Trunk() Aspect { return a & trunkMask }

// Compare orders aspects by their packed value.
func (a Aspect) Compare(other Aspect) int {
	switch {
	case a < other:
		return -1
	case a > other:
		return 1
	default:
		return 0
	}
}

func (a Aspect) Less(other Aspect) bool { return a < other }

// String renders the aspect without registry names. Use Registry.Describe
// for names of subcontrols and states.
func (a Aspect) String() string {
	return a.describe(
		func(s Subcontrol) string { return "Subcontrol(" + strconv.Itoa(int(s)) + ")" },
		func(s State) string { return fmt.Sprintf("State(0x%04x)", uint16(s)) },
	)
}

func (a Aspect) describe(subcontrol func(Subcontrol) string, state func(State) string) string {
	parts := make([]string, 0, 8)
	if a.HasSubcontrol() {
		parts = append(parts, subcontrol(a.Subcontrol()))
	}
	if a.Section() != Body {
		parts = append(parts, a.Section().String())
	}
	if a.Type() != NoType {
		parts = append(parts, a.Type().String())
	}
	if a.Primitive() != NoPrimitive {
		parts = append(parts, a.Primitive().String())
	}
	if a.Variation() != NoVariation {
		parts = append(parts, a.Variation().String())
	}
	if a.IsAnimator() {
		parts = append(parts, "Animator")
	}
	for s := a.TopState(); s != NoState; s = (a.States() & (States(s) - 1)).Top() {
		parts = append(parts, state(s))
	}
	if len(parts) == 0 {
		return "Aspect()"
	}
	return strings.Join(parts, " | ")
}

// MarshalText renders the packed value as 0x prefixed hex.
func (a Aspect) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("0x%016x", uint64(a))), nil
}

// UnmarshalText parses the form produced by MarshalText.
func (a *Aspect) UnmarshalText(text []byte) error {
	value, err := strconv.ParseUint(strings.TrimPrefix(string(text), "0x"), 16, 64)
	if err != nil {
		return fmt.Errorf("skin: invalid aspect %q: %w", text, err)
	}
	*a = Aspect(value)
	return nil
}

func (s Section) String() string {
	switch s {
	case Body:
		return "Body"
	case Header:
		return "Header"
	case Footer:
		return "Footer"
	case Card:
		return "Card"
	case Floating:
		return "Floating"
	default:
		return "Section(" + strconv.Itoa(int(s)) + ")"
	}
}

func (t Type) String() string {
	switch t {
	case NoType:
		return "NoType"
	case Metric:
		return "Metric"
	case Color:
		return "Color"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

var primitiveNames = [...]string{
	NoPrimitive: "NoPrimitive",
	Alignment:   "Alignment",
	Direction:   "Direction",
	Style:       "Style",
	Option:      "Option",
	GraphicRole: "GraphicRole",
	FontRole:    "FontRole",
	Symbol:      "Symbol",
	TextColor:   "TextColor",
	StyleColor:  "StyleColor",
	LinkColor:   "LinkColor",
	StrutSize:   "StrutSize",
	Size:        "Size",
	Position:    "Position",
	Margin:      "Margin",
	Padding:     "Padding",
	Spacing:     "Spacing",
	Shadow:      "Shadow",
	Shape:       "Shape",
	Border:      "Border",
	Graduation:  "Graduation",
}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return "Primitive(" + strconv.Itoa(int(p)) + ")"
}

// String prints the raw value, the name depends on the subcontrol.
func (v Variation) String() string {
	return "Variation(" + strconv.Itoa(int(v)) + ")"
}
