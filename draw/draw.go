// Package draw provides the drawing primitives used to compose display frames.
package draw

import (
	"image"
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Op is an alias for image/draw.Op
type Op = draw.Op

// Src replaces the destination with the source.
const Src = draw.Src

// Draw aligns r.Min in dst with sp in src and replaces the rectangle r in dst.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	draw.Draw(dst, r, src, sp, op)
}
