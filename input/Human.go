package input

import (
	"fmt"
	"io"

	"github.com/rogueplay/rogueplay/environment"
)

// AbortKey is the control-C code. Receiving it during human input
// cleanly terminates the run.
const AbortKey byte = 'c' & 0x1f

// Human is a Source reading single keystrokes. Each read happens with
// the terminal in raw mode so a keystroke arrives immediately, without
// requiring Enter.
//
// A key that maps to no legal action prints a corrective message and
// retries. The retry loop has no bound: it blocks until the user
// presses a legal key or the abort key. Tests inject a scripted reader
// and a no-op Terminal instead of real terminal input.
type Human struct {
	in   io.Reader
	out  io.Writer
	term Terminal
}

// NewHuman creates and returns a new Human source reading keys from in
// and writing prompts to out, scoping raw mode through t.
func NewHuman(in io.Reader, out io.Writer, t Terminal) *Human {
	return &Human{in: in, out: out, term: t}
}

// Next blocks until a key mapping to a legal action is pressed and
// returns that action. It returns ok = false on the abort key.
func (h *Human) Next(env environment.Adapter) (environment.Action, bool,
	error) {
	for {
		key, err := h.readKey()
		if err != nil {
			return 0, false, fmt.Errorf("next: could not read key: %v", err)
		}

		if key == AbortKey {
			fmt.Fprintf(h.out, "Received exit code %d. Aborting.\n", key)
			return 0, false, nil
		}

		if a, ok := env.ActionFor(key); ok {
			return a, true, nil
		}

		fmt.Fprintf(h.out, "Selected action %q is not in action list. "+
			"Please try again.\n", key)
	}
}

// readKey reads exactly one byte with the terminal in raw mode. The
// previous terminal settings are restored on every exit path,
// including errors and panics in the read.
func (h *Human) readKey() (key byte, err error) {
	restore, err := h.term.Raw()
	if err != nil {
		return 0, err
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	var buf [1]byte
	if _, err := io.ReadFull(h.in, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
