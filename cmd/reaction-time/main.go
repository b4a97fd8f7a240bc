package main

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"periph.io/x/host/v3"

	display "github.com/BeatGlow/reaction"
	"github.com/BeatGlow/reaction/board"
	"github.com/BeatGlow/reaction/draw"
	"github.com/BeatGlow/reaction/game"
	"github.com/BeatGlow/reaction/matrix"
	"github.com/BeatGlow/reaction/pixel"
)

type options struct {
	i2cDevice  int
	i2cAddr    uint16
	width      int
	height     int
	addressing string

	board board.Config

	rounds     int
	threshold  time.Duration
	poll       board.PollOptions
	scrollStep time.Duration
	printDelay time.Duration
	seed       int64
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	o := &options{
		board: board.DefaultConfig,
		poll:  board.DefaultPollOptions,
	}

	root := &cobra.Command{
		Use:           "reaction-time",
		Short:         "Reaction time game on an SSD1306 OLED, two LEDs and a button",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return play(cmd.Context(), o)
		},
	}

	f := root.PersistentFlags()
	f.IntVar(&o.i2cDevice, "i2c-dev", display.DefaultI2CConfig.Device, "I²C device number (default: use first available)")
	f.Uint16Var(&o.i2cAddr, "i2c-addr", display.DefaultI2CConfig.Addr, "I²C device address")
	f.IntVar(&o.width, "width", display.DefaultConfig.Width, "OLED width")
	f.IntVar(&o.height, "height", display.DefaultConfig.Height, "OLED height")
	f.StringVar(&o.addressing, "addressing", display.DefaultConfig.Addressing.String(), "frame pixel addressing (row-band, vertical-lsb)")

	f = root.Flags()
	f.StringVar(&o.board.Red, "red", o.board.Red, "red LED GPIO pin")
	f.StringVar(&o.board.Green, "green", o.board.Green, "green LED GPIO pin")
	f.StringVar(&o.board.Button, "button", o.board.Button, "button GPIO pin")
	f.BoolVar(&o.board.ButtonActiveHigh, "button-active-high", false, "button pulls its line high when pressed")
	f.StringSliceVar(&o.board.PullUps, "pull-up", nil, "extra GPIO pins to put in pull-up mode")
	f.IntVar(&o.rounds, "rounds", game.DefaultConfig.Rounds, "number of rounds")
	f.DurationVar(&o.threshold, "threshold", game.DefaultConfig.Threshold, "reaction time that counts as fast")
	f.DurationVar(&o.poll.Timeout, "timeout", o.poll.Timeout, "give up waiting for the button after this long (0 waits forever)")
	f.DurationVar(&o.poll.Interval, "poll", o.poll.Interval, "button poll interval")
	f.IntVar(&o.poll.Debounce, "debounce", o.poll.Debounce, "consecutive samples that make a press")
	f.DurationVar(&o.scrollStep, "scroll-step", matrix.DefaultConfig.ScrollStep, "matrix scroll speed per column")
	f.DurationVar(&o.printDelay, "print-delay", matrix.DefaultConfig.PrintDelay, "matrix delay per printed character")
	f.Int64Var(&o.seed, "seed", 0, "random seed (0: time based)")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play the game (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return play(cmd.Context(), o)
		},
	}
	// Game flags are shared with the default command.
	playCmd.Flags().AddFlagSet(root.Flags())

	root.AddCommand(
		playCmd,
		&cobra.Command{
			Use:   "pattern",
			Short: "Send test frames to the OLED",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return pattern(cmd.Context(), o)
			},
		},
	)

	return root
}

func (o *options) openOLED() (*display.SSD1306Display, error) {
	addressing, err := display.ParseAddressing(o.addressing)
	if err != nil {
		return nil, err
	}
	if _, err = host.Init(); err != nil {
		return nil, err
	}

	conn, err := display.OpenI2C(&display.I2CConfig{
		Device: o.i2cDevice,
		Addr:   o.i2cAddr,
	})
	if err != nil {
		return nil, err
	}
	fmt.Printf("using connection: %s\n", conn)

	oled, err := display.SSD1306(conn, &display.Config{
		Width:      o.width,
		Height:     o.height,
		Addressing: addressing,
	})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	fmt.Printf("using driver: %s (%s addressing)\n", oled, addressing)
	return oled, nil
}

func play(ctx context.Context, o *options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	oled, err := o.openOLED()
	if err != nil {
		return err
	}
	defer oled.Close()

	m, err := matrix.New(matrix.NewConsole(os.Stdout), &matrix.Config{
		ScrollStep: o.scrollStep,
		PrintDelay: o.printDelay,
	})
	if err != nil {
		return err
	}

	b, err := board.Open(&o.board, m)
	if err != nil {
		return err
	}
	if err = b.Init(); err != nil {
		return err
	}

	var rnd game.Rand
	if o.seed != 0 {
		rnd = rand.New(rand.NewSource(o.seed))
	}
	g := game.New(b, oled, &game.Config{
		Rounds:    o.rounds,
		Threshold: o.threshold,
		Poll:      o.poll,
	}, rnd)

	fmt.Println("press the button as soon as the OLED lights up, control-c to stop...")
	result, err := g.Run(ctx)
	if err != nil {
		return err
	}
	for _, round := range result.Rounds {
		status := "slow"
		switch {
		case round.Missed:
			status = "missed"
		case round.Fast:
			status = "fast"
		}
		fmt.Printf("round %d: %-12s %6dms %s\n", round.Number, round.Stimulus, round.Reaction.Milliseconds(), status)
	}
	fmt.Printf("mean: %dms\n", result.Mean.Milliseconds())
	return nil
}

func pattern(ctx context.Context, o *options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	oled, err := o.openOLED()
	if err != nil {
		return err
	}
	defer oled.Close()

	border, err := oled.NewFrame()
	if err != nil {
		return err
	}
	r := border.Bounds()
	draw.Rectangle(border, r, pixel.On)
	draw.Line(border, r.Min, r.Max.Sub(image.Pt(1, 1)), pixel.On)

	// The farthest stimulus pixel the game can draw on this panel.
	far := image.Pt(min(game.DefaultConfig.MaxCoordinate, oled.Width()-1), min(game.DefaultConfig.MaxCoordinate, oled.Height()-1))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"all on", func() error { return oled.Fill(0xff) }},
		{"all off", oled.Clear},
		{"pixel (5,0)", func() error { return oled.DrawPixel(5, 0) }},
		{fmt.Sprintf("pixel %s", far), func() error { return oled.DrawPixel(far.X, far.Y) }},
		{"border and diagonal", func() error { return oled.Send(border) }},
		{"border and diagonal inverted", func() error { return oled.Invert(true) }},
	}
	for _, step := range steps {
		fmt.Printf("showing %s\n", step.name)
		if err = step.fn(); err != nil {
			return err
		}
		if err = matrix.Sleep(ctx, 2*time.Second); err != nil {
			return err
		}
	}
	if err = oled.Invert(false); err != nil {
		return err
	}
	return oled.Clear()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
