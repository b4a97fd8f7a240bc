// Package board gives the game access to the LEDs, the button and the LED
// matrix through a single injected [Hardware] value.
package board

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/BeatGlow/reaction/matrix"
)

var debug = os.Getenv("DISPLAY_DEBUG") != ""

// Errors
var (
	ErrPin     = errors.New("board: GPIO pin is invalid")
	ErrPinMode = errors.New("board: pin does not support this operation")
)

// Pin identifies a board I/O line.
type Pin uint8

// Board pins.
const (
	RedLED Pin = iota
	GreenLED
	ButtonA
)

func (p Pin) String() string {
	switch p {
	case RedLED:
		return "red LED"
	case GreenLED:
		return "green LED"
	case ButtonA:
		return "button A"
	default:
		return fmt.Sprintf("pin(%d)", uint8(p))
	}
}

// Hardware is everything the game touches on the board.
type Hardware interface {
	// Scroll text across the matrix.
	Scroll(ctx context.Context, text string) error

	// Print text on the matrix one character at a time.
	Print(ctx context.Context, text string) error

	// ShowImage shows a static image on the matrix.
	ShowImage(img image.Image) error

	// SetPin drives an output pin; on is the asserted level.
	SetPin(p Pin, on bool) error

	// ReadPin samples an input pin; true is the asserted level.
	ReadPin(p Pin) (bool, error)

	// Sleep waits for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error

	// Now returns the current time.
	Now() time.Time
}

// Config names the GPIO pins, as known to gpioreg.
type Config struct {
	Red    string
	Green  string
	Button string

	// ButtonActiveHigh is set when a press pulls the button line high. By
	// default the button shorts a pulled-up line to ground.
	ButtonActiveHigh bool

	// PullUps are extra input lines to put in pull-up mode at start.
	PullUps []string
}

// DefaultConfig uses free header pins of a Raspberry Pi.
var DefaultConfig = Config{
	Red:    "GPIO17",
	Green:  "GPIO27",
	Button: "GPIO22",
}

// Pins are the resolved board lines.
type Pins struct {
	Red              gpio.PinOut
	Green            gpio.PinOut
	Button           gpio.PinIn
	ButtonActiveHigh bool
	PullUps          []gpio.PinIn
}

// Board is the periph backed [Hardware].
type Board struct {
	pins   Pins
	matrix *matrix.Matrix
	now    func() time.Time
}

// Open resolves the pins in config, nil uses [DefaultConfig].
func Open(config *Config, m *matrix.Matrix) (*Board, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	pins := Pins{
		ButtonActiveHigh: config.ButtonActiveHigh,
	}
	var err error
	if pins.Red, err = lookup(config.Red); err != nil {
		return nil, fmt.Errorf("red LED: %w", err)
	}
	if pins.Green, err = lookup(config.Green); err != nil {
		return nil, fmt.Errorf("green LED: %w", err)
	}
	if pins.Button, err = lookup(config.Button); err != nil {
		return nil, fmt.Errorf("button: %w", err)
	}
	for _, name := range config.PullUps {
		p, err := lookup(name)
		if err != nil {
			return nil, fmt.Errorf("pull-up: %w", err)
		}
		pins.PullUps = append(pins.PullUps, p)
	}
	return New(pins, m), nil
}

func lookup(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil || p == gpio.INVALID {
		return nil, fmt.Errorf("%w: %q", ErrPin, name)
	}
	return p, nil
}

// New returns a board on already resolved pins.
func New(pins Pins, m *matrix.Matrix) *Board {
	return &Board{
		pins:   pins,
		matrix: m,
		now:    time.Now,
	}
}

// Init drives both LEDs low and puts the button and pull-up lines in input mode.
func (b *Board) Init() error {
	if err := b.SetPin(RedLED, false); err != nil {
		return err
	}
	if err := b.SetPin(GreenLED, false); err != nil {
		return err
	}
	pull := gpio.PullUp
	if b.pins.ButtonActiveHigh {
		pull = gpio.PullDown
	}
	if err := b.pins.Button.In(pull, gpio.NoEdge); err != nil {
		return fmt.Errorf("board: configure %s: %w", b.pins.Button, err)
	}
	for _, p := range b.pins.PullUps {
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return fmt.Errorf("board: configure %s: %w", p, err)
		}
	}
	if debug {
		log.Printf("board: initialised, button %s (%s)", b.pins.Button, pull)
	}
	return b.matrix.Clear()
}

func (b *Board) Scroll(ctx context.Context, text string) error {
	return b.matrix.Scroll(ctx, text)
}

func (b *Board) Print(ctx context.Context, text string) error {
	return b.matrix.Print(ctx, text)
}

func (b *Board) ShowImage(img image.Image) error {
	return b.matrix.Show(img)
}

func (b *Board) SetPin(p Pin, on bool) error {
	var out gpio.PinOut
	switch p {
	case RedLED:
		out = b.pins.Red
	case GreenLED:
		out = b.pins.Green
	default:
		return fmt.Errorf("%w: set %s", ErrPinMode, p)
	}
	return out.Out(gpio.Level(on))
}

func (b *Board) ReadPin(p Pin) (bool, error) {
	if p != ButtonA {
		return false, fmt.Errorf("%w: read %s", ErrPinMode, p)
	}
	return b.pins.Button.Read() == gpio.Level(b.pins.ButtonActiveHigh), nil
}

func (b *Board) Sleep(ctx context.Context, d time.Duration) error {
	return matrix.Sleep(ctx, d)
}

func (b *Board) Now() time.Time {
	return b.now()
}

// Interface checks.
var (
	_ Hardware = (*Board)(nil)
)
