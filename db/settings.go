package db

import (
	"encoding/json"
	"log/slog"

	"github.com/tobyns/heliograph/models"
)

// Config blobs get one JSON document per module. Missing or unparseable
// blobs quietly become defaults; a half-corrupted settings table should
// never stop the daemon from booting.
const (
	settingAfk        = "status:afk"
	settingCycle      = "status:cycle"
	settingNowPlaying = "status:nowplaying"
)

func LoadAfkConfig(store Store) models.AfkConfig {
	cfg := models.DefaultAfkConfig()
	loadInto(store, settingAfk, &cfg)
	return cfg
}

func SaveAfkConfig(store Store, cfg models.AfkConfig) error {
	return save(store, settingAfk, cfg)
}

func LoadCycleConfig(store Store) models.CycleConfig {
	cfg := models.DefaultCycleConfig()
	loadInto(store, settingCycle, &cfg)
	cfg.Normalize()
	return cfg
}

func SaveCycleConfig(store Store, cfg models.CycleConfig) error {
	return save(store, settingCycle, cfg)
}

func LoadNowPlayingConfig(store Store) models.NowPlayingConfig {
	cfg := models.DefaultNowPlayingConfig()
	loadInto(store, settingNowPlaying, &cfg)
	cfg.Normalize()
	return cfg
}

func SaveNowPlayingConfig(store Store, cfg models.NowPlayingConfig) error {
	return save(store, settingNowPlaying, cfg)
}

func loadInto(store Store, id string, target interface{}) {
	raw := store.GetSetting(id)
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		slog.With(slog.String("setting", id), slog.Any("error", err)).Warn("Ignoring unparseable persisted config")
	}
}

func save(store Store, id string, cfg interface{}) error {
	blob, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return store.UpsertSetting(id, string(blob))
}
