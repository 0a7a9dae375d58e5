package environment

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rogueplay/rogueplay/timestep"
	"gonum.org/v1/gonum/mat"
)

// KeyMore acknowledges a pending message in the raw backend
const KeyMore = '\r'

// Key codes of the eight compass directions and their long ("travel
// until something interesting") variants.
var (
	compassKeys     = []byte{'k', 'l', 'j', 'h', 'u', 'n', 'b', 'y'}
	compassLongKeys = []byte{'K', 'L', 'J', 'H', 'U', 'N', 'B', 'Y'}
)

// DefaultRawPalette returns the fixed action palette offered to a
// random player of the raw backend: the MORE acknowledgement plus the
// compass directions and their long variants. A human player is not
// limited to this palette; any key is forwarded as-is.
func DefaultRawPalette() []Action {
	palette := []Action{KeyMore}
	for _, k := range compassKeys {
		palette = append(palette, Action(k))
	}
	for _, k := range compassLongKeys {
		palette = append(palette, Action(k))
	}
	return palette
}

// rawAdapter drives a Raw backend. Actions are key codes forwarded
// directly, the reward is a constant 0, and the episode step budget is
// owned by the caller since the backend only reports in-simulation
// termination.
type rawAdapter struct {
	backend Raw
	palette []Action
	steps   int
}

func newRawAdapter(backend Raw) Adapter {
	return &rawAdapter{backend: backend, palette: DefaultRawPalette()}
}

// Reset starts a new episode. The backend is already reset on
// construction, so the first call after construction simply returns
// the backend's fresh state.
func (r *rawAdapter) Reset() (timestep.TimeStep, error) {
	obs, err := r.backend.Reset()
	if err != nil {
		return timestep.TimeStep{}, fmt.Errorf("reset: could not reset "+
			"raw backend: %v", err)
	}

	r.steps = 0
	return timestep.New(timestep.First, 0, obs, 0), nil
}

// Step forwards the key code to the backend. The returned done flag
// covers in-simulation termination only; the caller ORs in the step
// budget.
func (r *rawAdapter) Step(a Action) (timestep.TimeStep, bool, error) {
	obs, done, err := r.backend.Step(int(a))
	if err != nil {
		return timestep.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"raw backend: %v", err)
	}

	r.steps++
	stepType := timestep.Mid
	if done {
		stepType = timestep.Last
	}

	return timestep.New(stepType, 0, obs, r.steps), done, nil
}

// Actions returns the fixed raw action palette
func (r *rawAdapter) Actions() []Action {
	palette := make([]Action, len(r.palette))
	copy(palette, r.palette)
	return palette
}

// ActionFor forwards any key as-is: in the raw backend the key is the
// action.
func (r *rawAdapter) ActionFor(key byte) (Action, bool) {
	return Action(key), true
}

// ActionLabel returns the printable form of a key code
func (r *rawAdapter) ActionLabel(a Action) string {
	return strconv.QuoteRune(rune(a))
}

// Render decodes and prints the message line, the character grid, and
// the status values of the current observation.
func (r *rawAdapter) Render(w io.Writer, cur timestep.TimeStep,
	prev StepSummary) error {
	if prev.HasAction {
		fmt.Fprintf(w, "Previous action: %s\n", r.ActionLabel(prev.Action))
	}

	obs := cur.Observation
	if msg := obs.MessageString(); msg != "" {
		fmt.Fprintln(w, msg)
	}
	for _, line := range obs.Chars {
		fmt.Fprintln(w, string(line))
	}
	if obs.Stats != nil {
		fmt.Fprintf(w, "%v\n", mat.Formatted(obs.Stats.T()))
	}

	return nil
}

func (r *rawAdapter) HasReward() bool { return false }

// EnforcesStepLimit reports false: the raw backend does not know about
// an externally imposed step limit.
func (r *rawAdapter) EnforcesStepLimit() bool { return false }

func (r *rawAdapter) Close() error {
	return r.backend.Close()
}
