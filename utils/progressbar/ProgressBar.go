// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressBar prints the progress of a run as a fixed-width bar. The
// bar is redrawn in place on each Display call; it must be manually
// managed: call Increment after each completed unit of work and
// Display whenever an updated bar should be printed.
//
// ProgressBar does not use concurrency and writes to an arbitrary
// io.Writer, so it can be tested against a buffer.
type ProgressBar struct {
	w               io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	startTime       time.Time
}

// New returns a new ProgressBar that is width characters wide and
// reaches 100% after max Increment calls.
func New(w io.Writer, width, max int) *ProgressBar {
	return &ProgressBar{
		w:           w,
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
	}
}

// Increment increments the internal progress counter. Each time a unit
// of work is completed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Display redraws the progress bar in place
func (p *ProgressBar) Display() {
	var bar strings.Builder
	bar.WriteString("|")

	filled := p.currentProgress / p.maxProgress * p.width
	for i := 0.0; i < filled; i++ {
		bar.WriteString("█")
	}
	for i := filled; i < p.width; i++ {
		bar.WriteString(" ")
	}

	elapsed := time.Since(p.startTime).Round(time.Second)
	bar.WriteString(fmt.Sprintf("| [%.2f%% | elapsed: %v]",
		p.currentProgress/p.maxProgress*100, elapsed))

	fmt.Fprintf(p.w, "\r\033[K%v", bar.String())
}

// Close finishes the bar, jumping to the next line after the last
// Display.
func (p *ProgressBar) Close() {
	fmt.Fprintln(p.w)
}
