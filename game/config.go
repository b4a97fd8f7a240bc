package game

import (
	"time"

	"github.com/BeatGlow/reaction/board"
)

// Config holds the game constants.
type Config struct {
	// Rounds played; the first half shows a full screen, the rest a single pixel.
	Rounds int

	// Threshold is the reaction time that counts as fast.
	Threshold time.Duration

	// DelayUnit and DelaySteps define the random wait before a stimulus:
	// between 1 and DelaySteps units.
	DelayUnit  time.Duration
	DelaySteps int

	// MaxCoordinate bounds the stimulus pixel, both axes in [1, MaxCoordinate].
	// Panels smaller than that limit the pixel to their last row and column.
	MaxCoordinate int

	// Poll bounds the wait for the button. Zero Interval and Debounce use the
	// defaults, a zero Timeout waits forever.
	Poll board.PollOptions
}

// DefaultConfig is the classic four round game with a 250ms target.
var DefaultConfig = Config{
	Rounds:        4,
	Threshold:     250 * time.Millisecond,
	DelayUnit:     time.Second,
	DelaySteps:    5,
	MaxCoordinate: 50,
	Poll:          board.DefaultPollOptions,
}

// withDefaults replaces zero fields by their DefaultConfig value.
func (c Config) withDefaults() Config {
	if c.Rounds <= 0 {
		c.Rounds = DefaultConfig.Rounds
	}
	if c.Threshold <= 0 {
		c.Threshold = DefaultConfig.Threshold
	}
	if c.DelayUnit <= 0 {
		c.DelayUnit = DefaultConfig.DelayUnit
	}
	if c.DelaySteps <= 0 {
		c.DelaySteps = DefaultConfig.DelaySteps
	}
	if c.MaxCoordinate <= 0 {
		c.MaxCoordinate = DefaultConfig.MaxCoordinate
	}
	if c.Poll.Interval <= 0 {
		c.Poll.Interval = DefaultConfig.Poll.Interval
	}
	if c.Poll.Debounce <= 0 {
		c.Poll.Debounce = DefaultConfig.Poll.Debounce
	}
	return c
}
