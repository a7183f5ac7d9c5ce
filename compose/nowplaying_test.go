package compose

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/tobyns/heliograph/models"
	"github.com/tobyns/heliograph/playback"
)

func npConfig() models.NowPlayingConfig {
	cfg := models.DefaultNowPlayingConfig()
	cfg.Enabled = true
	return cfg
}

func playingSnap() playback.Snapshot {
	return playback.Snapshot{
		PackageID:        "com.spotify.music",
		Detected:         true,
		Title:            "Teardrop",
		Artist:           "Massive Attack",
		DurationMs:       330000,
		PositionMs:       60000,
		PositionSampleMs: 0,
		PlaybackSpeed:    1.0,
		InferredPlaying:  true,
	}
}

func TestNowPlayingLines_Playing(t *testing.T) {
	lines := NowPlayingLines(npConfig(), playingSnap(), 0)

	assert.Len(t, lines, 2)
	assert.Equal(t, "Massive Attack — Teardrop", lines[0])
	assert.Contains(t, lines[1], "1:00/5:30")
	assert.NotContains(t, lines[1], "⏸")
}

func TestNowPlayingLines_ExtrapolatesFreshEachCall(t *testing.T) {
	cfg := npConfig()
	snap := playingSnap()

	early := NowPlayingLines(cfg, snap, 0)
	later := NowPlayingLines(cfg, snap, 30000)

	assert.Contains(t, early[1], "1:00/5:30")
	assert.Contains(t, later[1], "1:30/5:30")
}

func TestNowPlayingLines_PausedTag(t *testing.T) {
	snap := playingSnap()
	snap.InferredPlaying = false

	lines := NowPlayingLines(npConfig(), snap, 0)

	assert.Contains(t, lines[1], "⏸")
	// Paused media doesn't extrapolate
	assert.Contains(t, lines[1], "1:00/5:30")
}

func TestNowPlayingLines_Disabled(t *testing.T) {
	cfg := npConfig()
	cfg.Enabled = false

	assert.Nil(t, NowPlayingLines(cfg, playingSnap(), 0))
}

func TestNowPlayingLines_NothingDetected(t *testing.T) {
	assert.Nil(t, NowPlayingLines(npConfig(), playback.Snapshot{}, 0))
}

func TestNowPlayingLines_DemoMode(t *testing.T) {
	cfg := npConfig()
	cfg.DemoMode = true

	lines := NowPlayingLines(cfg, playback.Snapshot{}, 0)

	assert.Len(t, lines, 2)
	assert.Equal(t, "Golden Earring — Radar Love", lines[0])
	assert.Contains(t, lines[1], "1:37/5:02")
	assert.NotContains(t, lines[1], "⏸")
}

func TestNowPlayingLines_DemoModeIgnoredWhileDetected(t *testing.T) {
	cfg := npConfig()
	cfg.DemoMode = true

	lines := NowPlayingLines(cfg, playingSnap(), 0)

	assert.Equal(t, "Massive Attack — Teardrop", lines[0])
}

func TestNowPlayingLines_HeaderTruncation(t *testing.T) {
	snap := playingSnap()
	snap.Artist = "Godspeed You! Black Emperor"
	snap.Title = "The Dead Flag Blues (Intro) [Live at Thee Olde Grind]"

	lines := NowPlayingLines(npConfig(), snap, 0)

	assert.LessOrEqual(t, utf8.RuneCountInString(lines[0]), 42)
	assert.True(t, strings.HasSuffix(lines[0], "…"))
}

func TestNowPlayingLines_MissingArtist(t *testing.T) {
	snap := playingSnap()
	snap.Artist = ""

	lines := NowPlayingLines(npConfig(), snap, 0)

	assert.Equal(t, "Teardrop", lines[0])
}

func TestNowPlayingLines_MissingMetadataStillRendersProgress(t *testing.T) {
	snap := playingSnap()
	snap.Artist = ""
	snap.Title = ""

	lines := NowPlayingLines(npConfig(), snap, 0)

	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "1:00/5:30")
}
