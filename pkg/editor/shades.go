package editor

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	skin "github.com/goliatone/go-skin"
)

// Shade derives a state colour from a base colour. Positive amounts blend
// toward white, negative toward black; the magnitude is clamped to 1.
type Shade struct {
	States skin.States
	Amount float64
}

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{R: 0, G: 0, B: 0}
)

// ErrShadeStates is returned for a shade that would land on the base entry:
// one without states, or with states already on the aspect.
var ErrShadeStates = errors.New("editor: shade needs states beyond the base aspect")

// SetColorShades stores base under aspect and one blended colour per shade
// under aspect plus the shade states. Blending happens in Lab space so
// equal amounts look equally far from the base. Nothing is stored when a
// shade is rejected.
func (e *Editor) SetColorShades(aspect skin.Aspect, base skin.RGBA, shades ...Shade) error {
	for i, shade := range shades {
		if shade.States&^aspect.States() == 0 {
			return fmt.Errorf("%w: shade %d of %s", ErrShadeStates, i, aspect)
		}
	}
	e.SetColor(aspect, base)
	for _, shade := range shades {
		e.SetColor(aspect, Blend(base, shade.Amount), shade.States)
	}
	return nil
}

// Blend lightens (amount > 0) or darkens (amount < 0) c. Alpha is kept.
func Blend(c skin.RGBA, amount float64) skin.RGBA {
	target := white
	if amount < 0 {
		target = black
		amount = -amount
	}
	if amount > 1 {
		amount = 1
	}
	mixed := colorful.Color{R: c.R, G: c.G, B: c.B}.BlendLab(target, amount).Clamped()
	return skin.RGBA{R: mixed.R, G: mixed.G, B: mixed.B, A: c.A}
}
