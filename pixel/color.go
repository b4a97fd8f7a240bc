package pixel

import "image/color"

// MonoModel converts any color to [Mono].
var MonoModel color.Model = color.ModelFunc(monoModel)

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	r, g, b, _ := c.RGBA()

	// Luma with the JFIF coefficients (19595 + 38470 + 7471 = 65536), reduced
	// to a single bit: >>16 for the weights, >>15 for the 16-bit channel.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 31

	return Mono{On: y != 0}
}

// Brightness returns a Mono that is on for any non-zero level, the way the
// LED matrix icons are written.
func Brightness(level uint8) Mono {
	return Mono{On: level != 0}
}
