// Package matrix drives the small LED matrix that shows the countdown,
// reaction times and the final face.
package matrix

import (
	"context"
	"image"
	"log"
	"os"
	"time"

	"golang.org/x/image/font"

	"github.com/BeatGlow/reaction/draw"
	"github.com/BeatGlow/reaction/pixel"
)

var debug = os.Getenv("DISPLAY_DEBUG") != ""

// Sink receives every frame the matrix shows.
type Sink interface {
	Show(image.Image) error
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default [SleepFunc].
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Config is the matrix configuration.
type Config struct {
	// Width of the matrix in LEDs.
	Width int

	// Height of the matrix in LEDs.
	Height int

	// ScrollStep is the time between one column shift of scrolling text.
	ScrollStep time.Duration

	// PrintDelay is how long each character is shown by Print.
	PrintDelay time.Duration

	// Face overrides the text face, nil uses Go Regular.
	Face font.Face

	// Sleep overrides the wait between frames.
	Sleep SleepFunc
}

// DefaultConfig is a 5x5 matrix.
var DefaultConfig = Config{
	Width:      5,
	Height:     5,
	ScrollStep: 120 * time.Millisecond,
	PrintDelay: 400 * time.Millisecond,
}

// Matrix is a monochrome LED matrix.
type Matrix struct {
	sink       Sink
	img        *pixel.MonoImage
	face       font.Face
	scrollStep time.Duration
	printDelay time.Duration
	sleep      SleepFunc
}

// New returns a matrix showing its frames on sink. Zero config fields use
// the [DefaultConfig] values.
func New(sink Sink, config *Config) (*Matrix, error) {
	c := DefaultConfig
	if config != nil {
		if config.Width > 0 {
			c.Width = config.Width
		}
		if config.Height > 0 {
			c.Height = config.Height
		}
		if config.ScrollStep > 0 {
			c.ScrollStep = config.ScrollStep
		}
		if config.PrintDelay > 0 {
			c.PrintDelay = config.PrintDelay
		}
		c.Face = config.Face
		c.Sleep = config.Sleep
	}
	if c.Face == nil {
		face, err := NewFace(c.Height)
		if err != nil {
			return nil, err
		}
		c.Face = face
	}
	if c.Sleep == nil {
		c.Sleep = Sleep
	}
	return &Matrix{
		sink:       sink,
		img:        pixel.NewMonoImage(c.Width, c.Height),
		face:       c.Face,
		scrollStep: c.ScrollStep,
		printDelay: c.PrintDelay,
		sleep:      c.Sleep,
	}, nil
}

// Bounds of the matrix.
func (m *Matrix) Bounds() image.Rectangle {
	return m.img.Bounds()
}

func (m *Matrix) refresh() error {
	return m.sink.Show(m.img)
}

// Clear turns all LEDs off.
func (m *Matrix) Clear() error {
	m.img.Clear()
	return m.refresh()
}

// Show displays a static image, aligned to the top left corner.
func (m *Matrix) Show(img image.Image) error {
	m.img.Clear()
	draw.Draw(m.img, m.img.Bounds(), img, img.Bounds().Min, draw.Src)
	return m.refresh()
}

// Scroll moves text from right to left across the matrix, until it has fully
// left the display.
func (m *Matrix) Scroll(ctx context.Context, text string) error {
	var (
		strip = Render(m.face, text, m.img.Bounds().Dy())
		width = m.img.Bounds().Dx()
		steps = strip.Bounds().Dx() + width
	)
	if debug {
		log.Printf("matrix: scroll %q over %d steps", text, steps)
	}
	for offset := 1; offset <= steps; offset++ {
		m.img.Clear()
		draw.Draw(m.img, m.img.Bounds(), strip, image.Pt(offset-width, 0), draw.Src)
		if err := m.refresh(); err != nil {
			return err
		}
		if err := m.sleep(ctx, m.scrollStep); err != nil {
			return err
		}
	}
	return nil
}

// Print shows the characters of text one at a time, centered. The last one
// stays on the display.
func (m *Matrix) Print(ctx context.Context, text string) error {
	var (
		bounds = m.img.Bounds()
		first  = true
	)
	for _, r := range text {
		if !first {
			if err := m.sleep(ctx, m.printDelay); err != nil {
				return err
			}
		}
		first = false

		glyph := Render(m.face, string(r), bounds.Dy())
		m.img.Clear()
		x := (bounds.Dx() - glyph.Bounds().Dx()) / 2
		draw.Draw(m.img, bounds, glyph, image.Pt(-x, 0), draw.Src)
		if err := m.refresh(); err != nil {
			return err
		}
	}
	return m.sleep(ctx, m.printDelay)
}
