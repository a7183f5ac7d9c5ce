package gate

import (
	"sync"
	"time"

	"github.com/tobyns/heliograph/shared"
)

// SendGate is the single rate limiter shared by every producer. Whichever
// loop ticks first consumes the global budget; everyone else drops their
// payload and tries again on their own next tick. No queueing, no retries.
type SendGate struct {
	mu          sync.Mutex
	lastSendAt  time.Time
	minInterval time.Duration
}

// NewSendGate builds a gate with the given minimum interval. Anything below
// the receiver's documented floor is bumped up to it.
func NewSendGate(minInterval time.Duration) *SendGate {
	floor := shared.MIN_SEND_INTERVAL_MS * time.Millisecond
	if minInterval < floor {
		minInterval = floor
	}
	return &SendGate{minInterval: minInterval}
}

// TryConsume decides whether a composed payload may be transmitted at `now`
// and, if so, consumes the budget. The check and the set share one critical
// section so two racing loops can't both slip through the interval check.
//
// A blank payload is only sendable as an explicit clear request. force=false
// is a compose-only call used for live previews and never transmits.
func (g *SendGate) TryConsume(combined string, force, clear bool, now time.Time) bool {
	if combined == "" && !clear {
		return false
	}
	if !force {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.lastSendAt.IsZero() && now.Sub(g.lastSendAt) < g.minInterval {
		return false
	}
	g.lastSendAt = now
	return true
}

// LastSendAt reports when the budget was last consumed.
func (g *SendGate) LastSendAt() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastSendAt
}
