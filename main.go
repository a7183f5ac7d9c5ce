package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tobyns/heliograph/alerts"
	"github.com/tobyns/heliograph/compose"
	"github.com/tobyns/heliograph/config"
	"github.com/tobyns/heliograph/db"
	"github.com/tobyns/heliograph/events"
	"github.com/tobyns/heliograph/gate"
	"github.com/tobyns/heliograph/migrations"
	"github.com/tobyns/heliograph/playback"
	"github.com/tobyns/heliograph/producers"
	"github.com/tobyns/heliograph/routes"
	"github.com/tobyns/heliograph/shared"
	"github.com/tobyns/heliograph/transport"
	"github.com/tobyns/heliograph/utils"
)

func main() {

	if err := godotenv.Load(); err != nil {
		fmt.Println(err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.GetLogLevel(),
	})))

	if utils.GetEnv("RESET_DB", "0") == "1" {
		if err := os.Remove(cfg.Heliograph.DbPath); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	settings, err := db.NewSqliteStore(cfg.Heliograph.DbPath)
	if err != nil {
		panic(err)
	}

	if err := settings.ApplyMigrations(migrations.GetMigrations()); err != nil {
		panic(err)
	}

	store := playback.NewStore(cfg.Thresholds())
	sendGate := gate.NewSendGate(shared.MIN_SEND_INTERVAL_MS * time.Millisecond)
	composer := compose.NewComposer()
	sender := transport.NewOscClient(cfg.Display.Host, cfg.Display.Port)

	manager := producers.NewManager(store, sendGate, composer, sender)
	manager.SetAfk(db.LoadAfkConfig(settings))
	manager.SetCycle(db.LoadCycleConfig(settings))
	manager.SetNowPlaying(db.LoadNowPlayingConfig(settings))

	notifier := alerts.NewNotifier(cfg.Pushover.Token, cfg.Pushover.Recipient)
	if notifier.Enabled() {
		go notifier.WatchListener(store, 10*time.Minute, time.Minute)
	}

	events.Init()

	router := routes.RegisterRoutes(http.NewServeMux(), routes.Deps{
		Store:         store,
		Manager:       manager,
		Settings:      settings,
		WebhookSecret: cfg.Listener.WebhookSecret,
	})

	server := &http.Server{
		Addr:    cfg.Heliograph.BindAddress,
		Handler: router,
	}

	go func() {
		slog.With(slog.String("addr", cfg.Heliograph.BindAddress)).Info("Heliograph is running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.With(slog.Any("error", err)).Error("HTTP server fell over")
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Gracefully shutting down...")

	// One last blank so the display doesn't show a stale status forever
	manager.StopAll(true)
	server.Close()
}
