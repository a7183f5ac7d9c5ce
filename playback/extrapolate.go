package playback

import "math"

// EstimatePosition projects a snapshot's position forward to nowMs, assuming
// playback kept advancing at the reported speed since the sample was taken.
// Paused media and media with no known duration are returned untouched.
// nowMs must be on the same monotonic clock as PositionSampleMs.
func EstimatePosition(s Snapshot, nowMs int64) int64 {
	if !s.InferredPlaying || s.DurationMs <= 0 {
		return s.PositionMs
	}
	elapsed := nowMs - s.PositionSampleMs
	advance := int64(math.Round(float64(elapsed) * float64(s.PlaybackSpeed)))
	if advance < 0 {
		advance = 0
	}
	adjusted := s.PositionMs + advance
	if adjusted < 0 {
		adjusted = 0
	}
	if adjusted > s.DurationMs {
		adjusted = s.DurationMs
	}
	return adjusted
}
