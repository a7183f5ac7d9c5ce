package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	hmacext "github.com/alexellis/hmac/v2"
	"github.com/rs/cors"

	"github.com/tobyns/heliograph/compose"
	"github.com/tobyns/heliograph/db"
	"github.com/tobyns/heliograph/events"
	"github.com/tobyns/heliograph/models"
	"github.com/tobyns/heliograph/playback"
	"github.com/tobyns/heliograph/producers"
)

// Deps is everything the HTTP surface needs a handle on. The routes are the
// glue between the outside world (listener webhooks, the settings UI) and
// the composition core; none of the interesting logic lives here.
type Deps struct {
	Store         *playback.Store
	Manager       *producers.Manager
	Settings      db.Store
	WebhookSecret string
}

type statusResponse struct {
	Debug      compose.Debug        `json:"debug"`
	Snapshot   playback.Snapshot    `json:"snapshot"`
	SnapshotID string               `json:"snapshot_id"`
	Connected  bool                 `json:"listener_connected"`
	Loops      producers.LoopStatus `json:"loops"`
}

func renderJSONMessage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	res := map[string]string{"message": message}
	json.NewEncoder(w).Encode(res)
}

func renderJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// readSignedBody verifies the listener webhook signature before handing the
// body over. Snapshots drive what ends up on the display so we don't accept
// them from just anyone on the network.
func readSignedBody(w http.ResponseWriter, r *http.Request, secret string) ([]byte, bool) {
	if secret == "" {
		renderJSONError(w, http.StatusServiceUnavailable, "this endpoint is not properly configured")
		return nil, false
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		renderJSONError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	signature := r.Header.Get("X-Heliograph-Signature")
	if err := hmacext.Validate(body, fmt.Sprintf("sha256=%s", signature), secret); err != nil {
		slog.With(slog.Any("error", err)).Error("Failed signature validation")
		renderJSONError(w, http.StatusUnauthorized, "signature failed validation")
		return nil, false
	}
	return body, true
}

func RegisterRoutes(mux *http.ServeMux, deps Deps) http.Handler {

	events.Server.CreateStream(events.StreamDebug)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "Welcome to Heliograph, a tiny lighthouse for your status.\nYou can find the source code on <a href=\"https://github.com/tobyns/heliograph\">Github</a>\n")
	})

	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		renderJSONMessage(w, "This is the base of Heliograph's API")
	})

	mux.HandleFunc("/api/v1/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		snap := deps.Store.Snapshot()
		json.NewEncoder(w).Encode(statusResponse{
			Debug:      deps.Manager.Debug(),
			Snapshot:   snap,
			SnapshotID: playback.SnapshotID(snap),
			Connected:  deps.Store.Connected(),
			Loops:      deps.Manager.Status(),
		})
	})

	mux.HandleFunc("/api/v1/listener/snapshot", func(w http.ResponseWriter, r *http.Request) {
		body, ok := readSignedBody(w, r, deps.WebhookSecret)
		if !ok {
			return
		}

		var payload models.SnapshotPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			renderJSONError(w, http.StatusBadRequest, "failed to unmarshal request body")
			return
		}

		snap := playback.Snapshot{
			PackageID:        payload.PackageID,
			Detected:         payload.Detected,
			Title:            payload.Title,
			Artist:           payload.Artist,
			DurationMs:       payload.DurationMs,
			PositionMs:       payload.PositionMs,
			PositionSampleMs: payload.PositionSampleMs,
			PlaybackSpeed:    payload.PlaybackSpeed,
			ReportedPlaying:  payload.ReportedPlaying,
		}
		// Restamp onto our monotonic clock so inference and extrapolation
		// share one time basis with the loops that read the snapshot. A
		// non-positive sample time means "no position sample" and stays 0.
		if snap.PositionSampleMs > 0 {
			snap.PositionSampleMs = playback.NowMs()
		}
		deps.Store.Update(snap)
		renderJSONMessage(w, "snapshot accepted")
	})

	mux.HandleFunc("/api/v1/listener/state", func(w http.ResponseWriter, r *http.Request) {
		body, ok := readSignedBody(w, r, deps.WebhookSecret)
		if !ok {
			return
		}
		var payload models.ListenerStatePayload
		if err := json.Unmarshal(body, &payload); err != nil {
			renderJSONError(w, http.StatusBadRequest, "failed to unmarshal request body")
			return
		}
		deps.Store.SetConnected(payload.Connected)
		renderJSONMessage(w, "listener state updated")
	})

	mux.HandleFunc("/api/v1/listener/removed", func(w http.ResponseWriter, r *http.Request) {
		body, ok := readSignedBody(w, r, deps.WebhookSecret)
		if !ok {
			return
		}
		var payload models.NotificationRemovedPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			renderJSONError(w, http.StatusBadRequest, "failed to unmarshal request body")
			return
		}
		deps.Store.ScheduleClear(payload.PackageID)
		renderJSONMessage(w, "clear scheduled")
	})

	mux.HandleFunc("/api/v1/afk", func(w http.ResponseWriter, r *http.Request) {
		var cfg models.AfkConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			renderJSONError(w, http.StatusBadRequest, "failed to unmarshal request body")
			return
		}
		if err := db.SaveAfkConfig(deps.Settings, cfg); err != nil {
			slog.With(slog.Any("error", err)).Error("Failed to persist AFK config")
		}
		deps.Manager.SetAfk(cfg)
		renderJSONMessage(w, "afk config updated")
	})

	mux.HandleFunc("/api/v1/cycle", func(w http.ResponseWriter, r *http.Request) {
		var cfg models.CycleConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			renderJSONError(w, http.StatusBadRequest, "failed to unmarshal request body")
			return
		}
		cfg.Normalize()
		if err := db.SaveCycleConfig(deps.Settings, cfg); err != nil {
			slog.With(slog.Any("error", err)).Error("Failed to persist cycle config")
		}
		deps.Manager.SetCycle(cfg)
		renderJSONMessage(w, "cycle config updated")
	})

	mux.HandleFunc("/api/v1/nowplaying", func(w http.ResponseWriter, r *http.Request) {
		var cfg models.NowPlayingConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			renderJSONError(w, http.StatusBadRequest, "failed to unmarshal request body")
			return
		}
		cfg.Normalize()
		if err := db.SaveNowPlayingConfig(deps.Settings, cfg); err != nil {
			slog.With(slog.Any("error", err)).Error("Failed to persist now playing config")
		}
		deps.Manager.SetNowPlaying(cfg)
		renderJSONMessage(w, "now playing config updated")
	})

	mux.HandleFunc("/api/v1/send", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Line string `json:"line"`
		}
		// An empty body is fine, it's just "send whatever is current"
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && err != io.EOF {
			renderJSONError(w, http.StatusBadRequest, "failed to unmarshal request body")
			return
		}
		deps.Manager.SendOnce(payload.Line)
		renderJSONMessage(w, "send attempted")
	})

	mux.HandleFunc("/api/v1/stop", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Clear bool `json:"clear"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && err != io.EOF {
			renderJSONError(w, http.StatusBadRequest, "failed to unmarshal request body")
			return
		}
		deps.Manager.StopAll(payload.Clear)
		renderJSONMessage(w, "all loops stopped")
	})

	mux.HandleFunc("/events", events.Server.ServeHTTP)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:1313", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Origin, Content-Type, Accept, X-Heliograph-Signature"},
	})

	return c.Handler(mux)
}
