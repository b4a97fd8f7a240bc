package matrix

import (
	"bufio"
	"image"
	"io"

	"github.com/BeatGlow/reaction/pixel"
)

// Console renders matrix frames as rows of '#' (lit) and '.' (dark) on a writer.
type Console struct {
	w io.Writer
}

// NewConsole returns a sink writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Show(img image.Image) error {
	var (
		w = bufio.NewWriter(c.w)
		r = img.Bounds()
	)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if pixel.MonoModel.Convert(img.At(x, y)).(pixel.Mono).On {
				_ = w.WriteByte('#')
			} else {
				_ = w.WriteByte('.')
			}
		}
		_ = w.WriteByte('\n')
	}
	_ = w.WriteByte('\n')
	return w.Flush()
}
