package models

import "github.com/tobyns/heliograph/shared"

// AfkConfig drives the top-priority "I'm away" line. The broadcast interval
// is fixed rather than user configurable, see shared.AFK_INTERVAL_SECONDS.
type AfkConfig struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text"`
}

// CycleConfig holds the rotating set of user supplied lines. The rotation
// cursor itself belongs to the producer loop, not the config, so that
// editing lines mid-run doesn't teleport the rotation.
type CycleConfig struct {
	Enabled         bool     `json:"enabled"`
	Lines           []string `json:"lines"`
	IntervalSeconds int      `json:"interval_seconds"`
}

type NowPlayingConfig struct {
	Enabled                bool `json:"enabled"`
	DemoMode               bool `json:"demo_mode"`
	PresetID               int  `json:"preset_id"`
	RefreshIntervalSeconds int  `json:"refresh_interval_seconds"`
}

func DefaultAfkConfig() AfkConfig {
	return AfkConfig{Enabled: false, Text: "AFK"}
}

func DefaultCycleConfig() CycleConfig {
	return CycleConfig{Enabled: false, IntervalSeconds: 3}
}

func DefaultNowPlayingConfig() NowPlayingConfig {
	return NowPlayingConfig{Enabled: false, PresetID: 1, RefreshIntervalSeconds: 2}
}

// Normalize clamps rather than rejects. A user typing 0 into an interval box
// should end up with the floor value, not an error dialog.
func (c *CycleConfig) Normalize() {
	if c.IntervalSeconds < shared.MIN_LOOP_SECONDS {
		c.IntervalSeconds = shared.MIN_LOOP_SECONDS
	}
	if len(c.Lines) > shared.MAX_CYCLE_LINES {
		c.Lines = c.Lines[:shared.MAX_CYCLE_LINES]
	}
}

func (c *NowPlayingConfig) Normalize() {
	if c.PresetID < 1 || c.PresetID > 5 {
		c.PresetID = 1
	}
	if c.RefreshIntervalSeconds < shared.MIN_LOOP_SECONDS {
		c.RefreshIntervalSeconds = shared.MIN_LOOP_SECONDS
	}
}
