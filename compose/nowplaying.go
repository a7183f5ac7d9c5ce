package compose

import (
	"strings"

	"github.com/tobyns/heliograph/models"
	"github.com/tobyns/heliograph/playback"
	"github.com/tobyns/heliograph/render"
	"github.com/tobyns/heliograph/shared"
)

// Demo substitutes a fixed track so preset previews have something to show
// while nothing real is playing.
const (
	demoTitle      = "Radar Love"
	demoArtist     = "Golden Earring"
	demoDurationMs = 302000
	demoPositionMs = 97000
)

// NowPlayingLines builds the 0-2 now playing lines: an "artist — title"
// header and a progress line with bar, elapsed/total clock and a pause tag.
// Returns nil when the module has nothing to contribute.
func NowPlayingLines(cfg models.NowPlayingConfig, snap playback.Snapshot, nowMs int64) []string {
	if !cfg.Enabled {
		return nil
	}

	title := snap.Title
	artist := snap.Artist
	durationMs := snap.DurationMs
	positionMs := snap.PositionMs
	playing := snap.InferredPlaying

	if snap.Detected {
		positionMs = playback.EstimatePosition(snap, nowMs)
	} else {
		if !cfg.DemoMode {
			return nil
		}
		title = demoTitle
		artist = demoArtist
		durationMs = demoDurationMs
		positionMs = demoPositionMs
		playing = true
	}

	header := title
	if artist != "" {
		header = artist + " — " + title
	}
	header = truncateRunes(header, shared.TRACK_HEADER_BUDGET)

	progress := render.Bar(cfg.PresetID, positionMs, durationMs) + " " +
		render.Clock(positionMs) + "/" + render.Clock(durationMs)
	if !playing {
		progress += " ⏸"
	}

	lines := make([]string, 0, 2)
	if strings.TrimSpace(header) != "" {
		lines = append(lines, header)
	}
	lines = append(lines, progress)
	return lines
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + shared.ELLIPSIS
}
