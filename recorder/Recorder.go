// Package recorder captures one rendered frame per step into a
// temporary store and assembles the captured frames into a single
// animated GIF when the run ends.
package recorder

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
)

// frame is one captured frame. Frames are assembled in capture order,
// which coincides with (episode, step) order since frames are written
// strictly sequentially by the single play-loop goroutine. The
// explicit list avoids depending on filesystem timestamp granularity.
type frame struct {
	episode int
	step    int
	path    string
}

// Recorder captures per-step frames as PNG files in a temporary
// directory. Assemble consumes every captured frame exactly once and
// removes the temporary directory afterwards.
type Recorder struct {
	dir      string
	path     string
	perFrame time.Duration
	frames   []frame
}

// New creates a Recorder that will write the assembled GIF to path,
// displaying each frame for perFrame.
func New(path string, perFrame time.Duration) (*Recorder, error) {
	if perFrame <= 0 {
		return nil, fmt.Errorf("new: per-frame duration must be positive, "+
			"got %v", perFrame)
	}

	dir, err := os.MkdirTemp("", "rogueplay-frames-")
	if err != nil {
		return nil, fmt.Errorf("new: could not create frame store: %v", err)
	}

	return &Recorder{dir: dir, path: path, perFrame: perFrame}, nil
}

// Capture stores the pixel observation of one step, tagged with its
// episode and step index.
func (r *Recorder) Capture(episode, step int, im image.Image) error {
	if im == nil {
		return fmt.Errorf("capture: no pixel observation for episode %d "+
			"step %d", episode, step)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("e_%d_s_%d.png", episode, step))
	if err := gg.SavePNG(path, im); err != nil {
		return fmt.Errorf("capture: could not save frame: %v", err)
	}

	r.frames = append(r.frames, frame{episode: episode, step: step,
		path: path})
	return nil
}

// Len returns the number of frames captured so far
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Path returns where the assembled GIF will be written
func (r *Recorder) Path() string {
	return r.path
}

// Assemble encodes all captured frames, in capture order, into one
// animated GIF with infinite looping, then removes the temporary frame
// store. Assemble must be called at most once.
func (r *Recorder) Assemble() error {
	if len(r.frames) == 0 {
		r.Discard()
		return fmt.Errorf("assemble: no frames were captured")
	}

	out := &gif.GIF{LoopCount: 0}
	delay := int(r.perFrame.Milliseconds() / 10) // GIF delays are 10ms units

	for _, f := range r.frames {
		im, err := loadPNG(f.path)
		if err != nil {
			return fmt.Errorf("assemble: could not load frame e_%d_s_%d: %v",
				f.episode, f.step, err)
		}

		bounds := im.Bounds()
		paletted := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, bounds, im, bounds.Min)

		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, delay)
	}

	file, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("assemble: could not create %v: %v", r.path, err)
	}
	defer file.Close()

	if err := gif.EncodeAll(file, out); err != nil {
		return fmt.Errorf("assemble: could not encode GIF: %v", err)
	}

	return r.Discard()
}

// Discard removes the temporary frame store without assembling
// anything. It is safe to call after Assemble.
func (r *Recorder) Discard() error {
	r.frames = nil
	if err := os.RemoveAll(r.dir); err != nil {
		return fmt.Errorf("discard: could not remove frame store: %v", err)
	}
	return nil
}

func loadPNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return png.Decode(file)
}
