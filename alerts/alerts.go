package alerts

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gregdel/pushover"

	"github.com/tobyns/heliograph/playback"
)

// Notifier pushes a heads-up when the companion listener drops off and stays
// gone, since a silently dead listener just looks like "nothing playing"
// forever. Alerts are best effort and entirely optional: without pushover
// credentials the watcher never starts.
type Notifier struct {
	token     string
	recipient string
}

func NewNotifier(token, recipient string) *Notifier {
	return &Notifier{token: token, recipient: recipient}
}

func (n *Notifier) Enabled() bool {
	return n.token != "" && n.recipient != ""
}

func (n *Notifier) notifyOffline(since time.Time) {
	app := pushover.New(n.token)
	recipient := pushover.NewRecipient(n.recipient)
	message := &pushover.Message{
		Title:    "Heliograph listener offline",
		Message:  fmt.Sprintf("The media listener has been disconnected since %s", since.Format(time.Kitchen)),
		Priority: pushover.PriorityNormal,
	}
	if _, err := app.SendMessage(message, recipient); err != nil {
		slog.With(slog.Any("error", err)).Error("Failed to deliver listener offline alert")
	}
}

// WatchListener polls connectivity and fires a single alert per offline
// stretch once it exceeds offlineAfter. Blocks; run it in a goroutine.
func (n *Notifier) WatchListener(store *playback.Store, offlineAfter, pollEvery time.Duration) {
	if !n.Enabled() {
		return
	}

	var offlineSince time.Time
	alerted := false

	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()

	for range ticker.C {
		if store.Connected() {
			offlineSince = time.Time{}
			alerted = false
			continue
		}
		if offlineSince.IsZero() {
			offlineSince = time.Now()
			continue
		}
		if !alerted && time.Since(offlineSince) >= offlineAfter {
			n.notifyOffline(offlineSince)
			alerted = true
		}
	}
}
