package timestep

import (
	"bytes"
	"image"

	"gonum.org/v1/gonum/mat"
)

// Observation is the normalized view of a single backend observation.
// Both backend variants are mapped onto this type: structured backends
// fill whichever channels they expose, raw backends fill the character
// grid, message, and status channels only.
//
// Pixels is nil whenever the backend provides no pixel channel.
type Observation struct {
	// Chars is the character grid of the current screen, one row per
	// entry
	Chars [][]byte

	// Message is the NUL-terminated message line
	Message []byte

	// Stats holds the status-line values (hit points, gold, depth, ...)
	Stats *mat.VecDense

	// Pixels is the rendered pixel view of the current state
	Pixels image.Image
}

// MessageString returns the message line up to, but not including, the
// first NUL byte. If no NUL is present the whole message is returned.
func (o Observation) MessageString() string {
	if i := bytes.IndexByte(o.Message, 0); i >= 0 {
		return string(o.Message[:i])
	}
	return string(o.Message)
}

// Empty returns whether the observation carries no data on any channel
func (o Observation) Empty() bool {
	return len(o.Chars) == 0 && len(o.Message) == 0 && o.Stats == nil &&
		o.Pixels == nil
}
