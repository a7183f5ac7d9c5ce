package playback

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is the latest raw observation of the device's active media
// session. It is replaced wholesale on every listener event; nothing mutates
// one in place after it has been stored.
type Snapshot struct {
	PackageID        string  `json:"package_id"`
	Detected         bool    `json:"detected"`
	Title            string  `json:"title"`
	Artist           string  `json:"artist"`
	DurationMs       int64   `json:"duration_ms"`
	PositionMs       int64   `json:"position_ms"`
	PositionSampleMs int64   `json:"position_sample_ms"` // monotonic, never wall-clock
	PlaybackSpeed    float32 `json:"playback_speed"`
	ReportedPlaying  bool    `json:"reported_playing"`

	// InferredPlaying is written by the store's motion heuristic when the
	// snapshot is absorbed. It's the only play/pause signal downstream
	// consumers are allowed to read because ReportedPlaying flickers
	// during seeks and skips on some players.
	InferredPlaying bool `json:"inferred_playing"`
}

// Thresholds are the tuning knobs for the motion heuristic and the
// notification-removed debounce. The defaults are empirical; they depend on
// how often third party players bother updating their position, so they stay
// configurable rather than baked in.
type Thresholds struct {
	// Position must advance at least this much between samples to be
	// confidently called "playing".
	AdvanceMs int64
	// Position drift at or below this counts as stationary...
	StationaryMs int64
	// ...provided at least this much time passed between the samples.
	StationaryWindowMs int64
	// How long to sit on a "notification removed" event before clearing,
	// in case the player brings it straight back.
	ClearDebounce time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		AdvanceMs:          250,
		StationaryMs:       60,
		StationaryWindowMs: 1400,
		ClearDebounce:      6 * time.Second,
	}
}

// SnapshotID is a deterministic identity for whatever media a snapshot
// describes. Two snapshots of the same track hash the same no matter how far
// playback has advanced, which is what the debug surface wants for spotting
// track changes.
func SnapshotID(s Snapshot) string {
	if !s.Detected {
		return ""
	}
	hashString := fmt.Sprintf("%s-%s-%s-%d", s.PackageID, s.Title, s.Artist, s.DurationMs)
	return fmt.Sprintf("%s:%d", s.PackageID, xxhash.Sum64String(hashString))
}

var epoch = time.Now()

// NowMs is the daemon's monotonic millisecond clock. Snapshot sample times
// are restamped onto this clock at ingest so position extrapolation and the
// motion heuristic share one time basis that can't jump around the way
// wall-clock can.
func NowMs() int64 {
	return time.Since(epoch).Milliseconds()
}
