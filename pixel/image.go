package pixel

import (
	"image"
	"image/color"

	"github.com/BeatGlow/reaction/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values of an image.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

// MonoImage is a 1-bit per pixel row-major image, LSB first within a byte.
type MonoImage struct {
	Buffer
}

func NewMonoImage(w, h int) *MonoImage {
	stride := (w + 7) / 8 // round up to whole bytes
	return &MonoImage{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    make([]byte, stride*h),
			Stride: stride,
		},
	}
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/8
}

func (p *MonoImage) bit(x int) byte {
	return 1 << uint((x-p.Rect.Min.X)%8)
}

func (p *MonoImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.Pix[p.PixOffset(x, y)]&p.bit(x) != 0}
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	index := p.PixOffset(x, y)
	if monoModel(c).(Mono).On {
		p.Pix[index] |= p.bit(x)
	} else {
		p.Pix[index] &^= p.bit(x)
	}
}

func (p *MonoImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Lit counts the pixels that are on.
func (p *MonoImage) Lit() (n int) {
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			if p.At(x, y).(Mono).On {
				n++
			}
		}
	}
	return
}

// Interface checks.
var (
	_ Image = (*MonoImage)(nil)
)
