package environment_test

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	env "github.com/rogueplay/rogueplay/environment"
	"github.com/rogueplay/rogueplay/timestep"
)

// fakeStructured is a scripted structured backend. Each step earns a
// reward equal to the step number and the episode terminates after
// doneAfter steps.
type fakeStructured struct {
	doneAfter int
	steps     int
	resets    int
	closed    bool
	failPixel bool
}

func (f *fakeStructured) Reset() (timestep.Observation, timestep.Info,
	error) {
	f.resets++
	f.steps = 0
	return timestep.Observation{Message: []byte("fresh\x00")}, nil, nil
}

func (f *fakeStructured) Step(action int) (timestep.Observation, float64,
	bool, bool, timestep.Info, error) {
	f.steps++
	done := f.steps >= f.doneAfter

	info := timestep.Info{}
	if done {
		info[timestep.EndStatus] = "DEATH"
	}

	return timestep.Observation{}, float64(f.steps), done, false, info, nil
}

func (f *fakeStructured) Actions() []byte { return []byte("abc") }

func (f *fakeStructured) Render(w io.Writer) error {
	fmt.Fprintln(w, "<structured render>")
	return nil
}

func (f *fakeStructured) Close() error {
	f.closed = true
	return nil
}

// fakeSeeder is a fakeStructured that records the seed it was given
type fakeSeeder struct {
	fakeStructured
	seeded *env.Seed
}

func (f *fakeSeeder) Seed(s env.Seed) error {
	f.seeded = &s
	return nil
}

// fakeRaw is a scripted raw backend that never terminates on its own
type fakeRaw struct {
	steps   int
	resets  int
	lastKey int
	closed  bool
}

func (f *fakeRaw) Reset() (timestep.Observation, error) {
	f.resets++
	return timestep.Observation{
		Chars:   [][]byte{[]byte("...@...")},
		Message: []byte("Hello.\x00junk"),
		Stats:   mat.NewVecDense(3, []float64{16, 12, 1}),
	}, nil
}

func (f *fakeRaw) Step(action int) (timestep.Observation, bool, error) {
	f.steps++
	f.lastKey = action
	return timestep.Observation{}, false, nil
}

func (f *fakeRaw) Close() error {
	f.closed = true
	return nil
}

// The registry is global and rejects duplicate names, so every fake is
// registered exactly once. Factories hand out fresh instances and
// remember the last one so tests can inspect backend state.
var (
	lastStructured *fakeStructured
	lastSeeder     *fakeSeeder
	lastUnseedable *fakeStructured
)

func init() {
	env.RegisterRaw(func(env.Config) (env.Raw, error) {
		return &fakeRaw{}, nil
	})

	env.Register("Fake-Structured-v0", func(env.Config) (env.Structured,
		error) {
		lastStructured = &fakeStructured{doneAfter: 2}
		return lastStructured, nil
	})

	env.Register("Fake-Render-v0", func(env.Config) (env.Structured,
		error) {
		return &fakeStructured{doneAfter: 10}, nil
	})

	env.Register("Fake-Seeded-v0", func(env.Config) (env.Structured,
		error) {
		lastSeeder = &fakeSeeder{}
		lastSeeder.doneAfter = 1
		return lastSeeder, nil
	})

	env.Register("Fake-Unseedable-v0", func(env.Config) (env.Structured,
		error) {
		lastUnseedable = &fakeStructured{doneAfter: 1}
		return lastUnseedable, nil
	})
}

func TestNewUnknownEnvironment(t *testing.T) {
	_, err := env.New(env.Config{Name: "No-Such-Env-v0"})
	if err == nil {
		t.Fatal("expected an error for an unregistered environment")
	}
}

func TestStructuredAdapter(t *testing.T) {
	adapter, err := env.New(env.Config{Name: "Fake-Structured-v0"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	backend := lastStructured

	if !adapter.HasReward() {
		t.Error("structured adapter should have a reward channel")
	}
	if !adapter.EnforcesStepLimit() {
		t.Error("structured adapter should enforce its own step limit")
	}

	step, err := adapter.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !step.First() || step.Number != 0 {
		t.Errorf("reset returned %v, want a First step numbered 0", step)
	}
	if backend.resets != 1 {
		t.Errorf("got %v backend resets, want 1", backend.resets)
	}

	// Actions are indices into the declared key list
	actions := adapter.Actions()
	if len(actions) != 3 {
		t.Fatalf("got %v actions, want 3", len(actions))
	}
	if a, ok := adapter.ActionFor('b'); !ok || a != 1 {
		t.Errorf("ActionFor('b') = %v, %v, want 1, true", a, ok)
	}
	if _, ok := adapter.ActionFor('z'); ok {
		t.Error("ActionFor('z') should report an illegal key")
	}
	if label := adapter.ActionLabel(2); label != "'c'" {
		t.Errorf("got label %v, want 'c'", label)
	}

	// Rewards and done flow through from the backend
	step, done, err := adapter.Step(0)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if done || step.Reward != 1 || step.Number != 1 || !step.Mid() {
		t.Errorf("first step: got %v done %v", step, done)
	}

	step, done, err = adapter.Step(1)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !done || step.Reward != 2 || !step.Last() {
		t.Errorf("second step: got %v done %v", step, done)
	}
	if step.Info[timestep.EndStatus] != "DEATH" {
		t.Errorf("got end status %q, want DEATH",
			step.Info[timestep.EndStatus])
	}

	// Out-of-range actions are rejected before reaching the backend
	if _, _, err := adapter.Step(17); err == nil {
		t.Error("expected an error for an out-of-range action")
	}

	if err := adapter.Close(); err != nil || !backend.closed {
		t.Errorf("close: err %v, backend closed %v", err, backend.closed)
	}
}

func TestStructuredAdapterRender(t *testing.T) {
	adapter, err := env.New(env.Config{Name: "Fake-Render-v0"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	step, _ := adapter.Reset()

	var buf bytes.Buffer
	prev := env.StepSummary{Action: 1, HasAction: true, Reward: 0.5}
	if err := adapter.Render(&buf, step, prev); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Previous reward: 0.5",
		"Previous action: 'b'",
		"<structured render>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output %q missing %q", out, want)
		}
	}
}

func TestStructuredSeeding(t *testing.T) {
	seed := &env.Seed{Core: 42}
	_, err := env.New(env.Config{Name: "Fake-Seeded-v0", Seed: seed})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	backend := lastSeeder
	if backend.seeded == nil || backend.seeded.Core != 42 {
		t.Errorf("got seed %v, want core 42", backend.seeded)
	}
	if backend.resets != 0 {
		t.Error("seeding must happen before the first reset")
	}
}

func TestSeedingUnsupported(t *testing.T) {
	_, err := env.New(env.Config{
		Name: "Fake-Unseedable-v0",
		Seed: &env.Seed{Core: 1},
	})
	if err == nil {
		t.Fatal("expected an error when seeding an unseedable backend")
	}
	if !lastUnseedable.closed {
		t.Error("backend should be closed when construction fails")
	}
}

func TestRawAdapter(t *testing.T) {
	adapter, err := env.New(env.Config{Name: env.RawName, MaxSteps: 10})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if adapter.HasReward() {
		t.Error("raw adapter has no reward channel")
	}
	if adapter.EnforcesStepLimit() {
		t.Error("raw adapter must leave the step budget to the caller")
	}

	// The palette is MORE plus 8 compass keys and 8 long variants
	if got := len(adapter.Actions()); got != 17 {
		t.Errorf("got %v palette actions, want 17", got)
	}

	// In the raw backend the key is the action
	if a, ok := adapter.ActionFor('Q'); !ok || a != 'Q' {
		t.Errorf("ActionFor('Q') = %v, %v, want 'Q', true", a, ok)
	}

	if _, err := adapter.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	step, done, err := adapter.Step('j')
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if done {
		t.Error("backend never terminates, done should be false")
	}
	if step.Reward != 0 {
		t.Errorf("raw reward is a constant placeholder, got %v", step.Reward)
	}
	if step.Number != 1 {
		t.Errorf("got step number %v, want 1", step.Number)
	}
}

func TestRawAdapterRender(t *testing.T) {
	adapter, err := env.New(env.Config{Name: env.RawName})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	step, err := adapter.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	var buf bytes.Buffer
	prev := env.StepSummary{Action: 'j', HasAction: true}
	if err := adapter.Render(&buf, step, prev); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Previous action: 'j'",
		"Hello.", // message trimmed at the NUL
		"...@...",
		"16", // status values
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "junk") {
		t.Error("message should be trimmed at the first NUL")
	}
}
