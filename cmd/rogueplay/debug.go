package main

import (
	"bufio"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/rogueplay/rogueplay/play"
)

// inspect drops into a small interactive inspection prompt after a
// propagated backend failure, instead of exiting immediately. It is an
// explicit operator aid enabled with --debug; normal runs propagate
// the failure to the top level unchanged.
func inspect(runErr error, snap play.Snapshot, in io.Reader, out io.Writer) {
	fmt.Fprintf(out, "run failed: %v\n", runErr)
	fmt.Fprintln(out, "entering inspection prompt; commands: "+
		"error, state, stack, quit")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "(inspect) ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		switch scanner.Text() {
		case "error":
			fmt.Fprintf(out, "%v\n", runErr)

		case "state":
			fmt.Fprintf(out, "episode: %d\n", snap.Episode)
			fmt.Fprintf(out, "step: %d\n", snap.Step)
			if snap.HasAction {
				fmt.Fprintf(out, "last action: %d\n", snap.LastAction)
				fmt.Fprintf(out, "last reward: %v\n", snap.LastReward)
			} else {
				fmt.Fprintln(out, "no action taken yet")
			}

		case "stack":
			out.Write(debug.Stack())

		case "quit", "q", "exit":
			return

		case "":

		default:
			fmt.Fprintf(out, "unknown command %q; commands: error, "+
				"state, stack, quit\n", scanner.Text())
		}
	}
}
