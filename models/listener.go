package models

// SnapshotPayload is what the companion listener posts whenever the platform
// reports a media session change. Field values it doesn't know default to
// zero and the daemon degrades gracefully to "nothing detected".
type SnapshotPayload struct {
	PackageID        string  `json:"package_id"`
	Detected         bool    `json:"detected"`
	Title            string  `json:"title"`
	Artist           string  `json:"artist"`
	DurationMs       int64   `json:"duration_ms"`
	PositionMs       int64   `json:"position_ms"`
	PositionSampleMs int64   `json:"position_sample_ms"`
	PlaybackSpeed    float32 `json:"playback_speed"`
	ReportedPlaying  bool    `json:"reported_playing"`
}

// ListenerStatePayload signals listener connect/disconnect events.
type ListenerStatePayload struct {
	Connected bool `json:"connected"`
}

// NotificationRemovedPayload arrives when a player drops its media
// notification. The clear is debounced on our side because some players do
// this transiently when the device screen turns off.
type NotificationRemovedPayload struct {
	PackageID string `json:"package_id"`
}
