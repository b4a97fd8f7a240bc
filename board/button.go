package board

import (
	"context"
	"time"
)

// PressState is the outcome of waiting for the button.
type PressState uint8

// Press states.
const (
	TimedOut PressState = iota
	Pressed
)

func (s PressState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "timed out"
}

// Press is the result of [WaitPress].
type Press struct {
	State PressState

	// At is when the debounced press was first sampled, or when the wait gave up.
	At time.Time
}

// PollOptions bound the button wait.
type PollOptions struct {
	// Interval between samples.
	Interval time.Duration

	// Debounce is the number of consecutive asserted samples that make a press.
	Debounce int

	// Timeout after which the wait gives up, zero waits forever.
	Timeout time.Duration
}

// DefaultPollOptions sample every millisecond and give up after 10 seconds.
var DefaultPollOptions = PollOptions{
	Interval: time.Millisecond,
	Debounce: 3,
	Timeout:  10 * time.Second,
}

// WaitPress polls pin until it reads asserted for opts.Debounce samples in a
// row, opts.Timeout passes or ctx is done.
func WaitPress(ctx context.Context, hw Hardware, pin Pin, opts PollOptions) (Press, error) {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollOptions.Interval
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 1
	}

	var (
		start    = hw.Now()
		deadline = start.Add(opts.Timeout)
		first    time.Time
		stable   int
	)
	for {
		now := hw.Now()
		pressed, err := hw.ReadPin(pin)
		if err != nil {
			return Press{}, err
		}
		if pressed {
			if stable == 0 {
				first = now
			}
			if stable++; stable >= opts.Debounce {
				return Press{State: Pressed, At: first}, nil
			}
		} else {
			stable = 0
		}

		if opts.Timeout > 0 && !now.Before(deadline) {
			return Press{State: TimedOut, At: now}, nil
		}
		if err = hw.Sleep(ctx, opts.Interval); err != nil {
			return Press{}, err
		}
	}
}
