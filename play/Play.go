// Package play implements the episode loop driving an environment
// adapter with actions from an action source, while keeping running
// reward and steps-per-second statistics and optionally recording a
// visual replay.
package play

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/muesli/termenv"

	"github.com/rogueplay/rogueplay/environment"
	"github.com/rogueplay/rogueplay/input"
	"github.com/rogueplay/rogueplay/play/trackers"
	"github.com/rogueplay/rogueplay/recorder"
	"github.com/rogueplay/rogueplay/timestep"
	"github.com/rogueplay/rogueplay/utils/progressbar"
)

// Controller orchestrates reset, render, act, step, bookkeeping, and
// done detection across a configured number of episodes. It is
// single-threaded and synchronous: the only suspension point is the
// blocking keystroke read inside the action source, and cancellation
// is cooperative, happening only at the action boundary.
type Controller struct {
	cfg Config
	env environment.Adapter
	src input.Source
	out io.Writer
	rec *recorder.Recorder

	reward *trackers.MeanReward
	sps    *trackers.MeanSPS

	step int
	prev environment.StepSummary
}

// Option configures a Controller beyond its Config
type Option func(*Controller)

// WithOutput redirects the Controller's progress and status lines,
// which go to standard output by default.
func WithOutput(w io.Writer) Option {
	return func(c *Controller) {
		c.out = w
	}
}

// New creates and returns a new Controller playing episodes on env
// with actions from src. The adapter kind is fixed for the lifetime of
// the Controller.
func New(cfg Config, env environment.Adapter, src input.Source,
	opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid configuration: %v", err)
	}

	c := &Controller{
		cfg:    cfg,
		env:    env,
		src:    src,
		out:    os.Stdout,
		reward: trackers.NewMeanReward(),
		sps:    trackers.NewMeanSPS(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.Record {
		rec, err := recorder.New(cfg.GIFPath, cfg.GIFDuration)
		if err != nil {
			return nil, fmt.Errorf("new: could not create recorder: %v", err)
		}
		c.rec = rec
	}

	return c, nil
}

// Run plays the configured number of episodes and returns when all of
// them completed, the user aborted, or a backend failure propagated.
// Both completion and abort are normal termination.
func (c *Controller) Run() (err error) {
	defer func() {
		if err != nil && c.rec != nil {
			c.rec.Discard()
		}
	}()

	ts, err := c.env.Reset()
	if err != nil {
		return fmt.Errorf("run: %v", err)
	}

	if c.cfg.Render && c.env.HasReward() {
		fmt.Fprintf(c.out, "Available actions: %v\n", c.actionLabels())
	}

	// A progress bar replaces per-step rendering for unattended runs
	var bar *progressbar.ProgressBar
	if !c.cfg.Render && c.cfg.Mode == Random && c.cfg.Episodes > 1 {
		bar = progressbar.New(c.out, 40, c.cfg.Episodes)
		bar.Display()
	}

	totalStart := time.Now()
	start := totalStart

	for {
		if c.cfg.Render {
			if err := c.env.Render(c.out, ts, c.prev); err != nil {
				return fmt.Errorf("run: could not render: %v", err)
			}
		}

		if c.rec != nil {
			err := c.rec.Capture(c.sps.Episodes(), c.step,
				ts.Observation.Pixels)
			if err != nil {
				return fmt.Errorf("run: %v", err)
			}
		}

		action, ok, err := c.src.Next(c.env)
		if err != nil {
			return fmt.Errorf("run: could not get action: %v", err)
		}
		if !ok {
			// User abort: end the run without the remaining episodes
			break
		}

		var done bool
		ts, done, err = c.env.Step(action)
		if err != nil {
			return fmt.Errorf("run: %v", err)
		}
		c.step++
		c.prev = environment.StepSummary{
			Action:    action,
			HasAction: true,
			Reward:    ts.Reward,
		}

		if c.env.HasReward() {
			c.reward.Track(ts.Reward)
		}
		if !c.env.EnforcesStepLimit() {
			// The raw backend only reports in-simulation termination;
			// the step budget is imposed here.
			done = done || c.step >= c.cfg.MaxSteps
		}

		if !done {
			continue
		}

		c.report(ts, time.Since(start))
		if bar != nil {
			bar.Increment()
			bar.Display()
		}

		start = time.Now()
		c.step = 0
		c.reward.Reset()

		if c.sps.Episodes() == c.cfg.Episodes {
			break
		}

		ts, err = c.env.Reset()
		if err != nil {
			return fmt.Errorf("run: %v", err)
		}
	}

	if bar != nil {
		bar.Close()
	}

	if c.rec != nil {
		if err := c.rec.Assemble(); err != nil {
			return fmt.Errorf("run: could not assemble replay: %v", err)
		}
		path := c.rec.Path()
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		fmt.Fprintf(c.out, "Saving replay GIF at %v\n", path)
	}

	if err := c.env.Close(); err != nil {
		return fmt.Errorf("run: could not close environment: %v", err)
	}

	fmt.Fprintf(c.out, "%s\n", termenv.String(fmt.Sprintf(
		"Finished after %d episodes and %f seconds. Mean sps: %f",
		c.sps.Episodes(), time.Since(totalStart).Seconds(), c.sps.Mean())).
		Bold())
	return nil
}

// report prints the end-of-episode summary and folds this episode's
// steps-per-second into the cross-episode running mean.
func (c *Controller) report(last timestep.TimeStep, elapsed time.Duration) {
	if c.env.HasReward() {
		fmt.Fprintf(c.out, "Final reward: %v\n", last.Reward)
		if status := last.Info[timestep.EndStatus]; status != "" {
			fmt.Fprintf(c.out, "End status: %v\n", status)
		}
		fmt.Fprintf(c.out, "Mean reward: %v\n", c.reward.Mean())
	}

	sps := float64(c.step) / elapsed.Seconds()
	fmt.Fprintf(c.out, "%s\n", termenv.String(fmt.Sprintf(
		"Episode: %d. Steps: %d. SPS: %f", c.sps.Episodes(), c.step, sps)).
		Bold())

	c.sps.Track(sps)
}

// actionLabels returns the printable labels of the adapter's legal
// actions, for the start-of-run banner.
func (c *Controller) actionLabels() []string {
	actions := c.env.Actions()
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = c.env.ActionLabel(a)
	}
	return labels
}

// Snapshot reports the Controller's position in the run, for failure
// inspection.
type Snapshot struct {
	// Episode is the number of completed episodes
	Episode int

	// Step is the step counter within the current episode
	Step int

	// LastAction is the most recently applied action; HasAction is
	// false before the first action of the run
	LastAction environment.Action
	HasAction  bool

	// LastReward is the reward of the most recent step
	LastReward float64
}

// Snapshot returns the current run position
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Episode:    c.sps.Episodes(),
		Step:       c.step,
		LastAction: c.prev.Action,
		HasAction:  c.prev.HasAction,
		LastReward: c.prev.Reward,
	}
}
