// Package input implements the action sources of the play loop: a
// uniform random policy over the legal action palette, and a human
// player reading single keystrokes from a raw-mode terminal.
package input

import (
	"github.com/rogueplay/rogueplay/environment"
)

// Source produces the next action to apply to an adapter.
//
// The second return value is false when the user requested an abort.
// An abort is a normal, clean termination of the run, not an error.
type Source interface {
	Next(env environment.Adapter) (environment.Action, bool, error)
}
