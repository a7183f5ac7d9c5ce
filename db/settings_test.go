package db

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobyns/heliograph/migrations"
	"github.com/tobyns/heliograph/models"
)

func setupTestStore(t *testing.T) *SqliteStore {
	conn, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
	})

	s := &SqliteStore{DB: conn}
	require.NoError(t, s.ApplyMigrations(migrations.GetMigrations()))
	return s
}

func TestSettings_DefaultsWhenEmpty(t *testing.T) {
	s := setupTestStore(t)

	afk := LoadAfkConfig(s)
	assert.Equal(t, models.DefaultAfkConfig(), afk)

	cycle := LoadCycleConfig(s)
	assert.False(t, cycle.Enabled)
	assert.Equal(t, 3, cycle.IntervalSeconds)

	np := LoadNowPlayingConfig(s)
	assert.Equal(t, 1, np.PresetID)
	assert.Equal(t, 2, np.RefreshIntervalSeconds)
}

func TestSettings_RoundTrip(t *testing.T) {
	s := setupTestStore(t)

	afk := models.AfkConfig{Enabled: true, Text: "gone fishing"}
	require.NoError(t, SaveAfkConfig(s, afk))
	assert.Equal(t, afk, LoadAfkConfig(s))

	cycle := models.CycleConfig{Enabled: true, Lines: []string{"one", "two"}, IntervalSeconds: 5}
	require.NoError(t, SaveCycleConfig(s, cycle))
	assert.Equal(t, cycle, LoadCycleConfig(s))

	np := models.NowPlayingConfig{Enabled: true, DemoMode: true, PresetID: 4, RefreshIntervalSeconds: 10}
	require.NoError(t, SaveNowPlayingConfig(s, np))
	assert.Equal(t, np, LoadNowPlayingConfig(s))
}

func TestSettings_UpsertOverwrites(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, SaveAfkConfig(s, models.AfkConfig{Enabled: true, Text: "v1"}))
	require.NoError(t, SaveAfkConfig(s, models.AfkConfig{Enabled: false, Text: "v2"}))

	got := LoadAfkConfig(s)
	assert.False(t, got.Enabled)
	assert.Equal(t, "v2", got.Text)
}

func TestSettings_LoadNormalizesGarbageIntervals(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.UpsertSetting("status:cycle", `{"enabled":true,"lines":["x"],"interval_seconds":0}`))
	require.NoError(t, s.UpsertSetting("status:nowplaying", `{"enabled":true,"preset_id":42,"refresh_interval_seconds":-3}`))

	cycle := LoadCycleConfig(s)
	assert.Equal(t, 2, cycle.IntervalSeconds)

	np := LoadNowPlayingConfig(s)
	assert.Equal(t, 1, np.PresetID)
	assert.Equal(t, 2, np.RefreshIntervalSeconds)
}

func TestSettings_UnparseableBlobFallsBackToDefaults(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.UpsertSetting("status:afk", `{definitely not json`))

	assert.Equal(t, models.DefaultAfkConfig(), LoadAfkConfig(s))
}
