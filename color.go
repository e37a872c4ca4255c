package skin

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor indicates a color string that could not be parsed.
var ErrInvalidColor = errors.New("skin: invalid color")

// RGBA is a color with components in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Color converts c to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: to255(c.R),
		G: to255(c.G),
		B: to255(c.B),
		A: to255(c.A),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// Hex renders c as #rrggbb, or #rrggbbaa when not opaque.
func (c RGBA) Hex() string {
	hex := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
	if a := to255(c.A); a != 255 {
		return fmt.Sprintf("%s%02x", hex, a)
	}
	return hex
}

func (c RGBA) String() string { return c.Hex() }

// ParseColor accepts #rgb, #rrggbb and #rrggbbaa hex strings as well as the
// SVG 1.1 color keywords such as "steelblue".
func ParseColor(s string) (RGBA, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return RGBA{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	if !strings.HasPrefix(value, "#") {
		if named, ok := colornames.Map[strings.ToLower(value)]; ok {
			return FromColor(named), nil
		}
		return RGBA{}, fmt.Errorf("%w: unknown name %q", ErrInvalidColor, s)
	}

	digits := value[1:]
	if !hexDigits(digits) {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	alpha := 1.0
	switch len(digits) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = float64(a) / 255
		value = value[:7]
	default:
		return RGBA{}, fmt.Errorf("%w: %q needs 3, 6 or 8 hex digits", ErrInvalidColor, s)
	}
	parsed, err := colorful.Hex(value)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	return RGBA{R: parsed.R, G: parsed.G, B: parsed.B, A: alpha}, nil
}

func hexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// MustParseColor is ParseColor that panics on failure.
func MustParseColor(s string) RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func to255(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
