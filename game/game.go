// Package game runs the reaction rounds: wait a random delay, flash a
// stimulus on the OLED, time the button press and report the mean.
package game

import (
	"context"
	"fmt"
	"image"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	display "github.com/BeatGlow/reaction"
	"github.com/BeatGlow/reaction/board"
	"github.com/BeatGlow/reaction/matrix"
)

var debug = os.Getenv("DISPLAY_DEBUG") != ""

// Fill values of the stimulus frames.
const (
	allOn  = 0xff
	allOff = 0x00
)

// Rand is the source of delays and stimulus positions.
type Rand interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Stimulus is what a round flashes on the OLED.
type Stimulus uint8

// Stimulus kinds.
const (
	FullScreen Stimulus = iota
	SinglePixel
)

func (s Stimulus) String() string {
	if s == SinglePixel {
		return "single pixel"
	}
	return "full screen"
}

// Round is the outcome of one round.
type Round struct {
	Number   int
	Delay    time.Duration
	Stimulus Stimulus
	Pixel    image.Point // only for SinglePixel
	Reaction time.Duration
	Missed   bool
	Fast     bool
}

// Result of a complete game.
type Result struct {
	Rounds []Round
	Total  time.Duration
	Mean   time.Duration
	Fast   bool
}

func (r Result) String() string {
	return fmt.Sprintf("%d rounds, mean %s", len(r.Rounds), r.Mean)
}

// Game plays reaction rounds on a board and an OLED.
type Game struct {
	hw     board.Hardware
	oled   display.Drawer
	config Config
	rand   Rand
}

// New returns a game. A nil config uses [DefaultConfig], a nil rnd a time seeded source.
func New(hw board.Hardware, oled display.Drawer, config *Config, rnd Rand) *Game {
	c := DefaultConfig
	if config != nil {
		c = config.withDefaults()
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		hw:     hw,
		oled:   oled,
		config: c,
		rand:   rnd,
	}
}

// Run plays the countdown, all rounds and shows the mean.
func (g *Game) Run(ctx context.Context) (result Result, err error) {
	if err = g.countdown(ctx); err != nil {
		return
	}

	for n := 1; n <= g.config.Rounds; n++ {
		var round Round
		if round, err = g.round(ctx, n); err != nil {
			return result, fmt.Errorf("game: round %d: %w", n, err)
		}
		result.Rounds = append(result.Rounds, round)
		result.Total += round.Reaction
	}

	result.Mean = result.Total / time.Duration(g.config.Rounds)
	result.Fast = result.Mean <= g.config.Threshold
	if debug {
		log.Printf("game: %s", result)
	}

	err = g.showMean(ctx, result)
	return
}

func (g *Game) countdown(ctx context.Context) error {
	if err := g.hw.Scroll(ctx, "3 2 1"); err != nil {
		return err
	}
	return g.hw.Print(ctx, "GO!")
}

func (g *Game) round(ctx context.Context, n int) (round Round, err error) {
	round.Number = n
	round.Delay = time.Duration(g.rand.Intn(g.config.DelaySteps)+1) * g.config.DelayUnit
	if err = g.hw.Sleep(ctx, round.Delay); err != nil {
		return
	}

	if n <= g.config.Rounds/2 {
		round.Stimulus = FullScreen
		err = g.oled.Fill(allOn)
	} else {
		round.Stimulus = SinglePixel
		round.Pixel = image.Pt(g.coordinate(g.oled.Width()), g.coordinate(g.oled.Height()))
		err = g.oled.DrawPixel(round.Pixel.X, round.Pixel.Y)
	}
	if err != nil {
		return
	}

	start := g.hw.Now()
	press, err := board.WaitPress(ctx, g.hw, board.ButtonA, g.config.Poll)
	if err != nil {
		return
	}
	if press.State == board.Pressed {
		if round.Reaction = press.At.Sub(start); round.Reaction < 0 {
			round.Reaction = 0
		}
	} else {
		round.Missed = true
		round.Reaction = g.config.Poll.Timeout
	}
	round.Fast = !round.Missed && round.Reaction <= g.config.Threshold
	if debug {
		log.Printf("game: round %d %s after %s: %s (missed=%t)", n, round.Stimulus, round.Delay, round.Reaction, round.Missed)
	}

	if err = g.report(ctx, round); err != nil {
		return
	}
	err = g.oled.Fill(allOff)
	return
}

// coordinate picks a stimulus position in [1, MaxCoordinate], kept inside a
// panel axis of size pixels.
func (g *Game) coordinate(size int) int {
	n := max(min(g.config.MaxCoordinate, size-1), 1)
	return g.rand.Intn(n) + 1
}

func (g *Game) report(ctx context.Context, round Round) (err error) {
	led := board.RedLED
	if round.Fast {
		led = board.GreenLED
	}
	if err = g.hw.SetPin(led, true); err != nil {
		return
	}

	text := "-"
	if !round.Missed {
		text = strconv.FormatInt(round.Reaction.Milliseconds(), 10)
	}
	if err = g.hw.Scroll(ctx, text); err != nil {
		return
	}

	if err = g.hw.SetPin(board.RedLED, false); err != nil {
		return
	}
	return g.hw.SetPin(board.GreenLED, false)
}

func (g *Game) showMean(ctx context.Context, result Result) error {
	if err := g.hw.Scroll(ctx, "T"); err != nil {
		return err
	}
	if err := g.hw.Scroll(ctx, strconv.FormatInt(result.Mean.Milliseconds(), 10)); err != nil {
		return err
	}
	face := matrix.Sad
	if result.Fast {
		face = matrix.Happy
	}
	return g.hw.ShowImage(face)
}
