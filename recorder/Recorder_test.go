package recorder

import (
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func uniformFrame(c color.RGBA) image.Image {
	im := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			im.SetRGBA(x, y, c)
		}
	}
	return im
}

// TestAssemble records 2 episodes of 3 steps each and checks that the
// assembled GIF holds all 6 frames in (episode, step) order, loops
// forever, and that the temporary frame store is gone afterwards.
func TestAssemble(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.gif")
	rec, err := New(path, 300*time.Millisecond)
	require.NoError(t, err)

	dir := rec.dir
	require.DirExists(t, dir)

	// Episode 0 frames are black, episode 1 frames are white, so the
	// decoded frame colors reveal the assembly order.
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	for episode := 0; episode < 2; episode++ {
		c := black
		if episode == 1 {
			c = white
		}
		for step := 0; step < 3; step++ {
			require.NoError(t, rec.Capture(episode, step, uniformFrame(c)))
		}
	}
	require.Equal(t, 6, rec.Len())

	require.NoError(t, rec.Assemble())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	decoded, err := gif.DecodeAll(file)
	require.NoError(t, err)

	require.Len(t, decoded.Image, 6)
	require.Equal(t, 0, decoded.LoopCount, "replay must loop forever")
	for _, delay := range decoded.Delay {
		require.Equal(t, 30, delay, "300ms per frame in 10ms GIF units")
	}

	for i, frame := range decoded.Image {
		r, g, b, _ := frame.At(0, 0).RGBA()
		if i < 3 {
			require.Zero(t, r+g+b, "frame %d should be episode 0 (black)", i)
		} else {
			require.NotZero(t, r+g+b,
				"frame %d should be episode 1 (white)", i)
		}
	}

	require.NoDirExists(t, dir,
		"temporary frame store must be removed after assembly")
}

func TestCaptureWithoutPixels(t *testing.T) {
	rec, err := New(filepath.Join(t.TempDir(), "replay.gif"),
		100*time.Millisecond)
	require.NoError(t, err)
	defer rec.Discard()

	require.Error(t, rec.Capture(0, 0, nil))
}

func TestAssembleWithoutFrames(t *testing.T) {
	rec, err := New(filepath.Join(t.TempDir(), "replay.gif"),
		100*time.Millisecond)
	require.NoError(t, err)

	require.Error(t, rec.Assemble())
	require.NoDirExists(t, rec.dir)
}

func TestDiscard(t *testing.T) {
	rec, err := New(filepath.Join(t.TempDir(), "replay.gif"),
		100*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, rec.Capture(0, 0, uniformFrame(color.RGBA{A: 255})))
	require.NoError(t, rec.Discard())
	require.NoDirExists(t, rec.dir)
	require.Zero(t, rec.Len())
}

func TestNewRejectsNonPositiveDuration(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "replay.gif"), 0)
	require.Error(t, err)
}
