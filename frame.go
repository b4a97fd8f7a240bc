package display

import (
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/reaction/draw"
	"github.com/BeatGlow/reaction/pixel"
)

// FrameCommand is the control byte that precedes pixel data in a transfer.
const FrameCommand = 0x40

// Addressing defines how a pixel coordinate maps to a frame bit.
type Addressing uint8

// Supported addressing schemes.
const (
	// RowBand stores (x, y) at byte 1 + x + (y>>3)*width, bit x&7.
	//
	// This is the layout the reaction game has always sent. Note that the bit
	// is selected by x, so all 8 rows of a band share one bit per column.
	RowBand Addressing = iota

	// VerticalLSB stores (x, y) at byte 1 + x + (y>>3)*width, bit y&7, which
	// is the native SSD1306 page layout.
	VerticalLSB
)

func (a Addressing) String() string {
	switch a {
	case RowBand:
		return "row-band"
	case VerticalLSB:
		return "vertical-lsb"
	default:
		return fmt.Sprintf("addressing(%d)", uint8(a))
	}
}

// ParseAddressing parses the names returned by [Addressing.String].
func ParseAddressing(s string) (Addressing, error) {
	switch s {
	case "", "row-band", "rowband":
		return RowBand, nil
	case "vertical-lsb", "vertical", "page":
		return VerticalLSB, nil
	default:
		return 0, fmt.Errorf("display: unknown addressing %q", s)
	}
}

// Frame is a 1-bit per pixel transmission buffer. Byte 0 is always
// [FrameCommand], followed by width*height/8 pixel bytes.
type Frame struct {
	rect       image.Rectangle
	addressing Addressing
	buf        []byte
}

// FrameSize returns the transfer length for a width x height frame.
func FrameSize(width, height int) int {
	return (width*height)/8 + 1
}

// NewFrame allocates a zeroed frame. The height must be a whole number of
// 8 pixel bands.
func NewFrame(width, height int, addressing Addressing) (*Frame, error) {
	if width <= 0 || height <= 0 || height&7 != 0 {
		return nil, fmt.Errorf("%w %dx%d", ErrSize, width, height)
	}
	f := &Frame{
		rect:       image.Rect(0, 0, width, height),
		addressing: addressing,
		buf:        make([]byte, FrameSize(width, height)),
	}
	f.buf[0] = FrameCommand
	return f, nil
}

func (f *Frame) String() string {
	return fmt.Sprintf("frame %dx%d %s", f.rect.Dx(), f.rect.Dy(), f.addressing)
}

// Len is the transfer length, including the command byte.
func (f *Frame) Len() int {
	return len(f.buf)
}

// Bytes returns the transfer, command byte first. The slice is not copied.
func (f *Frame) Bytes() []byte {
	return f.buf
}

// Addressing returns the pixel packing of the frame.
func (f *Frame) Addressing() Addressing {
	return f.addressing
}

func (f *Frame) Bounds() image.Rectangle {
	return f.rect
}

func (f *Frame) ColorModel() color.Model {
	return pixel.MonoModel
}

// offset returns the buffer index and bit mask of (x, y); the caller checks bounds.
func (f *Frame) offset(x, y int) (int, byte) {
	index := 1 + x + (y>>3)*f.rect.Dx()
	if f.addressing == VerticalLSB {
		return index, 1 << uint(y&7)
	}
	return index, 1 << uint(x&7)
}

// SetPixel turns on the pixel at (x, y).
func (f *Frame) SetPixel(x, y int) error {
	if !(image.Point{X: x, Y: y}).In(f.rect) {
		return fmt.Errorf("%w: pixel (%d,%d) outside %s", ErrBounds, x, y, f.rect.Size())
	}
	index, bit := f.offset(x, y)
	f.buf[index] |= bit
	return nil
}

// Fill sets every pixel byte to value; 0xff is all on, 0x00 all off.
func (f *Frame) Fill(value byte) {
	for i := 1; i < len(f.buf); i++ {
		f.buf[i] = value
	}
}

// Clear turns all pixels off.
func (f *Frame) Clear() {
	f.Fill(0x00)
}

func (f *Frame) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(f.rect) {
		return color.Transparent
	}
	index, bit := f.offset(x, y)
	return pixel.Mono{On: f.buf[index]&bit != 0}
}

func (f *Frame) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(f.rect) {
		return
	}
	index, bit := f.offset(x, y)
	if pixel.MonoModel.Convert(c).(pixel.Mono).On {
		f.buf[index] |= bit
	} else {
		f.buf[index] &^= bit
	}
}

// Transmit sends the frame verbatim to the peripheral in one transfer.
func Transmit(p Peripheral, f *Frame) error {
	debugf("display: transmit %s (%d bytes)", f, f.Len())
	return p.SendData(f.buf)
}

// Interface checks.
var (
	_ draw.Image = (*Frame)(nil)
)
