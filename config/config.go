package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"

	"github.com/tobyns/heliograph/playback"
)

type Config struct {
	Heliograph HeliographConfig
	Display    DisplayConfig
	Listener   ListenerConfig
	Heuristic  HeuristicConfig
	Pushover   PushoverConfig
}

type HeliographConfig struct {
	BindAddress string `env:"BIND_ADDRESS"`
	DbPath      string `env:"DB_PATH"`
	LogLevel    string `env:"LOG_LEVEL"`
}

type DisplayConfig struct {
	Host string `env:"DISPLAY_HOST"`
	Port int    `env:"DISPLAY_PORT"`
}

type ListenerConfig struct {
	WebhookSecret string `env:"LISTENER_WEBHOOK_SECRET"`
}

// HeuristicConfig exposes the motion heuristic tuning knobs. The defaults
// suit the players seen so far but notification cadence varies wildly
// between apps, so they're overridable without a rebuild.
type HeuristicConfig struct {
	AdvanceMs            int64 `env:"HEURISTIC_ADVANCE_MS"`
	StationaryMs         int64 `env:"HEURISTIC_STATIONARY_MS"`
	StationaryWindowMs   int64 `env:"HEURISTIC_STATIONARY_WINDOW_MS"`
	ClearDebounceSeconds int   `env:"LISTENER_CLEAR_DEBOUNCE_SECONDS"`
}

type PushoverConfig struct {
	Token     string `env:"PUSHOVER_TOKEN"`
	Recipient string `env:"PUSHOVER_RECIPIENT"`
}

// Load builds the runtime config: defaults first, then whatever the
// environment overrides.
func Load() (Config, error) {
	defaults := playback.DefaultThresholds()
	c := Config{
		Heliograph: HeliographConfig{
			BindAddress: ":8080",
			DbPath:      "heliograph.db",
			LogLevel:    "info",
		},
		Display: DisplayConfig{
			Host: "127.0.0.1",
			Port: 9000,
		},
		Heuristic: HeuristicConfig{
			AdvanceMs:            defaults.AdvanceMs,
			StationaryMs:         defaults.StationaryMs,
			StationaryWindowMs:   defaults.StationaryWindowMs,
			ClearDebounceSeconds: int(defaults.ClearDebounce / time.Second),
		},
	}

	err := config.New().AddFeeder(feeder.Env{}).AddStruct(&c).Feed()
	return c, err
}

// Thresholds converts the heuristic knobs into what the playback store
// wants, refusing values that would make the heuristic nonsensical.
func (c *Config) Thresholds() playback.Thresholds {
	t := playback.DefaultThresholds()
	if c.Heuristic.AdvanceMs > 0 {
		t.AdvanceMs = c.Heuristic.AdvanceMs
	}
	if c.Heuristic.StationaryMs > 0 {
		t.StationaryMs = c.Heuristic.StationaryMs
	}
	if c.Heuristic.StationaryWindowMs > 0 {
		t.StationaryWindowMs = c.Heuristic.StationaryWindowMs
	}
	if c.Heuristic.ClearDebounceSeconds > 0 {
		t.ClearDebounce = time.Duration(c.Heuristic.ClearDebounceSeconds) * time.Second
	}
	return t
}

func (c *Config) GetLogLevel() slog.Leveler {
	logLevel := strings.ToLower(c.Heliograph.LogLevel)
	if logLevel == "error" {
		return slog.LevelError
	}
	if logLevel == "warning" {
		return slog.LevelWarn
	}
	if logLevel == "info" {
		return slog.LevelInfo
	}
	if logLevel == "debug" {
		return slog.LevelDebug
	}
	// default to info if unknown
	slog.With(slog.String("log_level", logLevel)).Info("Received invalid log level. Defaulting to INFO.")
	return slog.LevelInfo
}
