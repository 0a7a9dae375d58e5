// Package environment normalizes the two backend contracts that the
// play loop can drive: a structured backend with a rich
// reset/step/render contract, and a raw backend with a minimal step
// contract and no reward channel. The play loop is written once against
// the Adapter interface and never branches on which variant it holds.
package environment

import (
	"io"

	"github.com/rogueplay/rogueplay/timestep"
)

// Action identifies a single legal action of a backend. For structured
// backends an Action is an index into the backend's declared action
// list; for the raw backend an Action is the key code itself.
type Action int

// RenderMode selects how a structured backend displays itself
type RenderMode string

const (
	RenderHuman RenderMode = "human"
	RenderFull  RenderMode = "full"
	RenderANSI  RenderMode = "ansi"
)

// Structured is the contract of a structured backend. Implementations
// are registered with Register and constructed through New.
//
// Step returns the next observation, the reward, whether the episode
// terminated, whether it was truncated by the backend's own step
// cutoff, and auxiliary info. The truncated flag is carried for
// completeness but the play loop does not consume it.
type Structured interface {
	Reset() (timestep.Observation, timestep.Info, error)
	Step(action int) (timestep.Observation, float64, bool, bool,
		timestep.Info, error)

	// Actions returns the backend's declared action list as key
	// codes. The index of a key within this list is the action id
	// passed to Step.
	Actions() []byte

	Render(w io.Writer) error
	Close() error
}

// Seeder is implemented by structured backends that can be seeded.
// Seeding happens once, after construction and before the first reset.
type Seeder interface {
	Seed(Seed) error
}

// Raw is the contract of the raw backend. Construction leaves the
// backend already reset. There is no reward channel: the adapter
// reports a constant reward of 0, and the play loop imposes the
// episode step budget externally.
type Raw interface {
	Reset() (timestep.Observation, error)
	Step(action int) (timestep.Observation, bool, error)
	Close() error
}

// StepSummary describes the previous step for rendering: the action
// taken and the reward it earned. HasAction is false before the first
// action of a run.
type StepSummary struct {
	Action    Action
	HasAction bool
	Reward    float64
}

// Adapter is the uniform handle the play loop drives. The adapter kind
// is fixed for the lifetime of a run.
type Adapter interface {
	// Reset starts a new episode and returns its first timestep
	Reset() (timestep.TimeStep, error)

	// Step applies an action and returns the resulting timestep and
	// whether the backend reported the episode done. Callers must OR
	// the done flag with their own step budget whenever
	// EnforcesStepLimit reports false.
	Step(a Action) (timestep.TimeStep, bool, error)

	// Actions returns the legal action palette
	Actions() []Action

	// ActionFor maps a pressed key to a legal action. The second
	// return is false when the key maps to no legal action.
	ActionFor(key byte) (Action, bool)

	// ActionLabel returns a printable representation of an action
	ActionLabel(a Action) string

	// Render writes the adapter-specific representation of the
	// current timestep, prefixed with the previous action/reward
	Render(w io.Writer, cur timestep.TimeStep, prev StepSummary) error

	// HasReward reports whether the backend has a meaningful reward
	// channel
	HasReward() bool

	// EnforcesStepLimit reports whether the backend cuts episodes
	// off at its own step limit. When false, the caller owns the
	// per-episode step budget.
	EnforcesStepLimit() bool

	Close() error
}

// Config is the immutable backend construction record. It is supplied
// once at the start of a run and never mutated afterwards.
type Config struct {
	// Name selects the backend: RawName for the raw backend, a
	// registered environment name otherwise
	Name string

	// SaveDir is where the backend persists its native trajectory
	// recordings. Empty disables persistence (the backend falls back
	// to a null sink).
	SaveDir string

	// MaxSteps is the per-episode step budget. Structured backends
	// enforce it natively; for the raw backend the play loop imposes
	// it.
	MaxSteps int

	// Seed configures backend seeding. Nil leaves the backend
	// unseeded.
	Seed *Seed

	RenderMode RenderMode

	// Pixels requests pixel observations, needed when a replay
	// recording is being made. Backends that cannot provide a pixel
	// channel must fail construction when this is set.
	Pixels bool
}
