package input

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/rogueplay/rogueplay/environment"
)

// Random is a Source drawing actions uniformly from the adapter's
// legal action palette.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates and returns a new Random source using the given
// seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Next draws one action uniformly from the adapter's action palette
func (r *Random) Next(env environment.Adapter) (environment.Action, bool,
	error) {
	actions := env.Actions()
	if len(actions) == 0 {
		return 0, false, fmt.Errorf("next: adapter has an empty action " +
			"palette")
	}

	return actions[r.rng.Intn(len(actions))], true, nil
}
