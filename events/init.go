package events

import "github.com/r3labs/sse/v2"

// StreamDebug carries a Debug payload after every rebuild so a UI can show
// a live preview of what would hit the display.
const StreamDebug = "debug"

var Server *sse.Server

func Init() {
	server := sse.New()
	server.AutoReplay = false
	Server = server
}

// PublishDebug pushes a rebuilt debug payload to any connected clients.
// Safe to call before Init during tests; it just does nothing.
func PublishDebug(payload []byte) {
	if Server == nil {
		return
	}
	Server.Publish(StreamDebug, &sse.Event{Data: payload})
}
