package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Heliograph.BindAddress)
	assert.Equal(t, 9000, c.Display.Port)
	assert.Equal(t, slog.LevelInfo, c.GetLogLevel())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DISPLAY_HOST", "10.0.0.5")
	t.Setenv("DISPLAY_PORT", "9001")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", c.Display.Host)
	assert.Equal(t, 9001, c.Display.Port)
	assert.Equal(t, slog.LevelDebug, c.GetLogLevel())
}

func TestThresholds(t *testing.T) {
	c := Config{}
	c.Heuristic.AdvanceMs = 300
	c.Heuristic.ClearDebounceSeconds = 10

	got := c.Thresholds()
	assert.Equal(t, int64(300), got.AdvanceMs)
	assert.Equal(t, 10*time.Second, got.ClearDebounce)
	// Unset knobs keep their defaults instead of collapsing to zero
	assert.Equal(t, int64(60), got.StationaryMs)
	assert.Equal(t, int64(1400), got.StationaryWindowMs)
}

func TestGetLogLevel_Garbage(t *testing.T) {
	c := Config{}
	c.Heliograph.LogLevel = "shouty"

	assert.Equal(t, slog.LevelInfo, c.GetLogLevel())
}
