package playback

import (
	"log/slog"
	"sync"
	"time"
)

// Store owns the current Snapshot. One writer (the listener webhook), many
// readers (the three producer loops), so reads hand out copies under an
// RWMutex rather than sharing anything mutable.
type Store struct {
	mu         sync.RWMutex
	snap       Snapshot
	connected  bool
	thresholds Thresholds

	clearTimer *time.Timer
	clearPkg   string
}

func NewStore(thresholds Thresholds) *Store {
	return &Store{thresholds: thresholds}
}

// Update absorbs a fresh snapshot, running the motion heuristic against the
// previously stored one before the replacement happens. A pending debounced
// clear for the same package is cancelled since the player evidently still
// has an active session.
func (s *Store) Update(next Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if next.PositionMs < 0 {
		next.PositionMs = 0
	}
	if next.DurationMs < 0 {
		next.DurationMs = 0
	}
	if next.PositionMs > next.DurationMs {
		next.PositionMs = next.DurationMs
	}

	next.InferredPlaying = inferPlaying(s.snap, next, s.thresholds)
	s.snap = next

	if s.clearTimer != nil && s.clearPkg == next.PackageID {
		s.clearTimer.Stop()
		s.clearTimer = nil
		s.clearPkg = ""
	}
}

// inferPlaying decides whether media is actually advancing. Rules are
// evaluated in order and the first match wins. When the evidence is
// ambiguous we keep whatever the source claims rather than fighting it.
func inferPlaying(prev, next Snapshot, t Thresholds) bool {
	if !next.Detected {
		return false
	}
	if next.PositionSampleMs <= 0 {
		return next.ReportedPlaying
	}
	samePkg := next.PackageID != "" && prev.PackageID == next.PackageID
	if !samePkg || prev.PositionSampleMs <= 0 {
		// No usable history to compare motion against
		return next.ReportedPlaying
	}
	dt := next.PositionSampleMs - prev.PositionSampleMs
	if dt <= 0 {
		// Clock anomaly, trust the source over a garbage delta
		return next.ReportedPlaying
	}
	dp := next.PositionMs - prev.PositionMs
	if dp < 0 {
		dp = -dp
	}
	if next.PlaybackSpeed == 0 {
		return false
	}
	if dp >= t.AdvanceMs {
		return true
	}
	if dp <= t.StationaryMs && dt >= t.StationaryWindowMs {
		return false
	}
	return next.ReportedPlaying
}

// SetConnected only touches the listener connectivity flag, independent of
// whatever snapshot is stored.
func (s *Store) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
}

func (s *Store) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// ScheduleClear arms a debounced ClearIfSource for the given package. A
// fresh Update for the same package disarms it. Rescheduling replaces any
// previously armed clear.
func (s *Store) ScheduleClear(packageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}
	s.clearPkg = packageID
	s.clearTimer = time.AfterFunc(s.thresholds.ClearDebounce, func() {
		s.ClearIfSource(packageID)
	})
}

// ClearIfSource wipes the snapshot if it still belongs to the named package.
// The connectivity flag survives a clear.
func (s *Store) ClearIfSource(packageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.PackageID != packageID {
		return
	}
	slog.With(slog.String("package_id", packageID)).Debug("Clearing media snapshot for departed source")
	s.snap = Snapshot{}
	s.clearTimer = nil
	s.clearPkg = ""
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
