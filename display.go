// Package display contains the SSD1306 OLED driver used as the stimulus screen
// of the reaction game, and the framebuffer encoding it transmits.
package display

import (
	"errors"
	"log"
	"os"

	"periph.io/x/conn/v3/gpio"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

func debugf(format string, args ...any) {
	if debug {
		log.Printf(format, args...)
	}
}

// Errors
var (
	ErrBounds = errors.New("display: out of display bounds")
	ErrSize   = errors.New("display: unsupported display size")
	ErrHalted = errors.New("display: display is halted")
)

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int

	// Addressing selects how pixels are packed into frames.
	Addressing Addressing

	// Reset pin, optional.
	Reset gpio.PinOut
}

// DefaultConfig is the 128x64 panel of the reaction game.
var DefaultConfig = Config{
	Width:      128,
	Height:     64,
	Addressing: RowBand,
}

// Peripheral is anything that accepts a verbatim frame transfer.
type Peripheral interface {
	// SendData writes buf as a single transfer, without any framing.
	SendData(buf []byte) error
}

// Drawer draws stimulus frames. Every call builds, transmits and discards a
// fresh frame.
type Drawer interface {
	// Width and Height of the panel in pixels.
	Width() int
	Height() int

	// DrawPixel lights the single pixel at (x, y), all others off.
	DrawPixel(x, y int) error

	// Fill sets every data byte of the frame to value.
	Fill(value byte) error

	// Clear turns all pixels off.
	Clear() error
}
