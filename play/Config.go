package play

import (
	"fmt"
	"time"
)

// Mode selects how actions are sourced during a run
type Mode string

const (
	// Human sources actions from single raw keystrokes
	Human Mode = "human"

	// Random sources actions uniformly from the legal action palette
	Random Mode = "random"
)

// Config is the immutable run configuration of a Controller. It is
// supplied once at construction and never mutated by the play loop.
type Config struct {
	// Mode selects the action source
	Mode Mode

	// Episodes is the number of episodes to play before terminating
	Episodes int

	// MaxSteps caps the steps of a single episode. For backends that
	// enforce their own step limit this is informational; for the raw
	// backend the Controller imposes it.
	MaxSteps int

	// Render displays the previous reward/action and the current
	// state before every action
	Render bool

	// Record captures one frame per step and assembles a replay GIF
	// when the run ends
	Record bool

	// GIFPath is where the assembled replay is written
	GIFPath string

	// GIFDuration is how long each frame of the replay is displayed
	GIFDuration time.Duration
}

// Validate checks the configuration before any simulation begins
func (c Config) Validate() error {
	if c.Mode != Human && c.Mode != Random {
		return fmt.Errorf("validate: no such mode %q", c.Mode)
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("validate: episode count must be positive, got %d",
			c.Episodes)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("validate: max steps must be positive, got %d",
			c.MaxSteps)
	}
	if c.Record {
		if c.GIFPath == "" {
			return fmt.Errorf("validate: recording requested without an " +
				"output path")
		}
		if c.GIFDuration <= 0 {
			return fmt.Errorf("validate: per-frame duration must be "+
				"positive, got %v", c.GIFDuration)
		}
	}
	return nil
}
