package environment

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rogueplay/rogueplay/timestep"
)

// structuredAdapter drives a Structured backend. Actions are indices
// into the backend's declared action list, and the backend's reward
// and info channels flow through to the returned timesteps.
type structuredAdapter struct {
	backend Structured
	keys    []byte
	steps   int
}

func newStructuredAdapter(backend Structured) (Adapter, error) {
	keys := backend.Actions()
	if len(keys) == 0 {
		backend.Close()
		return nil, fmt.Errorf("newStructuredAdapter: backend declares " +
			"an empty action list")
	}

	return &structuredAdapter{backend: backend, keys: keys}, nil
}

// Reset starts a new episode
func (s *structuredAdapter) Reset() (timestep.TimeStep, error) {
	obs, info, err := s.backend.Reset()
	if err != nil {
		return timestep.TimeStep{}, fmt.Errorf("reset: could not reset "+
			"environment: %v", err)
	}

	s.steps = 0
	t := timestep.New(timestep.First, 0, obs, 0)
	t.Info = info
	return t, nil
}

// Step applies the action with the given index to the backend
func (s *structuredAdapter) Step(a Action) (timestep.TimeStep, bool, error) {
	if int(a) < 0 || int(a) >= len(s.keys) {
		return timestep.TimeStep{}, true, fmt.Errorf("step: action %d out "+
			"of range [0, %d)", a, len(s.keys))
	}

	obs, reward, done, _, info, err := s.backend.Step(int(a))
	if err != nil {
		return timestep.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"environment: %v", err)
	}

	s.steps++
	stepType := timestep.Mid
	if done {
		stepType = timestep.Last
	}

	t := timestep.New(stepType, reward, obs, s.steps)
	t.Info = info
	return t, done, nil
}

// Actions returns the action indices accepted by Step
func (s *structuredAdapter) Actions() []Action {
	actions := make([]Action, len(s.keys))
	for i := range s.keys {
		actions[i] = Action(i)
	}
	return actions
}

// ActionFor looks the key up in the backend's declared action list
func (s *structuredAdapter) ActionFor(key byte) (Action, bool) {
	for i, k := range s.keys {
		if k == key {
			return Action(i), true
		}
	}
	return 0, false
}

// ActionLabel returns the key bound to an action index
func (s *structuredAdapter) ActionLabel(a Action) string {
	if int(a) < 0 || int(a) >= len(s.keys) {
		return fmt.Sprintf("<invalid action %d>", a)
	}
	return strconv.QuoteRune(rune(s.keys[a]))
}

// Render prints the previous reward and action, then delegates the
// display of the current state to the backend's own renderer.
func (s *structuredAdapter) Render(w io.Writer, cur timestep.TimeStep,
	prev StepSummary) error {
	fmt.Fprintf(w, "Previous reward: %v\n", prev.Reward)
	if prev.HasAction {
		fmt.Fprintf(w, "Previous action: %s\n", s.ActionLabel(prev.Action))
	}

	return s.backend.Render(w)
}

func (s *structuredAdapter) HasReward() bool { return true }

// EnforcesStepLimit reports true: structured backends truncate their
// own episodes at the configured cutoff.
func (s *structuredAdapter) EnforcesStepLimit() bool { return true }

func (s *structuredAdapter) Close() error {
	return s.backend.Close()
}
