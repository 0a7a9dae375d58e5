package trackers

// MeanSPS tracks the running mean steps-per-second across episodes,
// along with a monotonic episode counter. Unlike MeanReward it is
// never reset: it lives for the whole run and folds in one SPS value
// per completed episode.
type MeanSPS struct {
	mean     float64
	episodes int
}

// NewMeanSPS creates and returns a new MeanSPS tracker
func NewMeanSPS() *MeanSPS {
	return &MeanSPS{}
}

// Track folds one completed episode's steps-per-second value into the
// running mean and increments the episode counter.
func (m *MeanSPS) Track(sps float64) {
	m.episodes++
	m.mean += (sps - m.mean) / float64(m.episodes)
}

// Mean returns the mean steps-per-second over all completed episodes
func (m *MeanSPS) Mean() float64 {
	return m.mean
}

// Episodes returns the number of completed episodes
func (m *MeanSPS) Episodes() int {
	return m.episodes
}
