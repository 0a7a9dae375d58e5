package input

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal scopes mutation of the controlling terminal's driver
// settings. Raw switches the terminal into raw mode (no echo, no line
// buffering) and returns the function restoring the previous settings.
//
// The terminal is a shared, process-wide resource: every Raw call must
// be paired with a call to the returned restore function on every exit
// path, so that a surrounding shell is never left in raw mode.
type Terminal interface {
	Raw() (restore func() error, err error)
}

// tty is the Terminal of the process's standard input
type tty struct {
	fd int
}

// NewTTY returns the Terminal wrapping standard input
func NewTTY() Terminal {
	return tty{fd: int(os.Stdin.Fd())}
}

func (t tty) Raw() (func() error, error) {
	prev, err := term.MakeRaw(t.fd)
	if err != nil {
		return nil, fmt.Errorf("raw: could not enter raw mode: %v", err)
	}

	return func() error {
		return term.Restore(t.fd, prev)
	}, nil
}
