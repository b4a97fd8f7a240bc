package matrix

import (
	"image"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/reaction/pixel"
)

var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// NewFace returns the Go Regular face scaled so its glyphs fill height pixels.
func NewFace(height int) (font.Face, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	if regularErr != nil {
		return nil, regularErr
	}
	return truetype.NewFace(regular, &truetype.Options{
		Size:    float64(height),
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Render draws text onto a new image that is height pixels high and as wide
// as the text advance. Any pixel at least a quarter covered by a glyph is lit,
// which keeps thin strokes visible on tiny matrices.
func Render(face font.Face, text string, height int) *pixel.MonoImage {
	width := font.MeasureString(face, text).Ceil()
	i := pixel.NewMonoImage(width, height)
	if width == 0 {
		return i
	}

	// Put the baseline so the ascent fits; descenders get clipped.
	ascent := face.Metrics().Ascent.Ceil()
	if ascent > height {
		ascent = height
	}
	mask := image.NewAlpha(i.Bounds())
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask.AlphaAt(x, y).A >= coverageThreshold {
				i.Set(x, y, pixel.On)
			}
		}
	}
	return i
}

const coverageThreshold = 0x40
