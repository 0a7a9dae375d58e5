// Package trackers implements the running statistics kept by the play
// loop. All trackers use incremental (streaming) mean updates and never
// store per-step or per-episode histories.
package trackers

// MeanReward tracks the running mean reward within a single episode.
// The estimate is updated incrementally on every step:
//
//	mean += (reward - mean) / steps
//
// which equals the arithmetic mean of all rewards tracked since the
// last Reset, at every prefix.
//
// MeanReward must be Reset at each episode boundary; it deliberately
// does not persist across episodes.
type MeanReward struct {
	mean  float64
	count int
}

// NewMeanReward creates and returns a new MeanReward tracker
func NewMeanReward() *MeanReward {
	return &MeanReward{}
}

// Track folds one step's reward into the running mean
func (m *MeanReward) Track(reward float64) {
	m.count++
	m.mean += (reward - m.mean) / float64(m.count)
}

// Mean returns the mean reward of the current episode so far. It is 0
// before any reward has been tracked.
func (m *MeanReward) Mean() float64 {
	return m.mean
}

// Count returns the number of rewards tracked since the last Reset
func (m *MeanReward) Count() int {
	return m.count
}

// Reset clears the tracker for a new episode
func (m *MeanReward) Reset() {
	m.mean = 0
	m.count = 0
}
