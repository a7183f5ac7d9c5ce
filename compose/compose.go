package compose

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tobyns/heliograph/shared"
)

// Debug is the read-only diagnostic view of the last composition: every
// per-source line is recorded whether or not it survived the budget cut, so
// the UI can show what each module would have contributed.
type Debug struct {
	AfkLine         string    `json:"afk_line"`
	CycleLine       string    `json:"cycle_line"`
	NowPlayingLine1 string    `json:"now_playing_line_1"`
	NowPlayingLine2 string    `json:"now_playing_line_2"`
	Combined        string    `json:"combined"`
	LastSentAt      time.Time `json:"last_sent_at"`
	LastSendID      string    `json:"last_send_id"`
}

// Composer deterministically assembles the outgoing payload from up to four
// logical lines. It holds no scheduling state of its own; producers feed it
// whatever their tick decided the lines should be.
type Composer struct {
	mu    sync.RWMutex
	debug Debug
}

func NewComposer() *Composer {
	return &Composer{}
}

// Compose joins the non-blank lines in priority order (AFK, cycle, now
// playing) under the display's rune budget. A line that would blow the
// budget is cut to fit with an ellipsis and everything after it is dropped.
// All-blank input composes to the empty string, which downstream treats as
// "clear the display".
func (c *Composer) Compose(afkLine, cycleLine string, nowPlayingLines []string) string {
	ordered := make([]string, 0, 4)
	if afkLine != "" {
		ordered = append(ordered, afkLine)
	}
	if cycleLine != "" {
		ordered = append(ordered, cycleLine)
	}
	for _, line := range nowPlayingLines {
		if line != "" {
			ordered = append(ordered, line)
		}
	}

	combined := joinWithinBudget(ordered, shared.MESSAGE_RUNE_BUDGET)

	npLine1, npLine2 := "", ""
	if len(nowPlayingLines) > 0 {
		npLine1 = nowPlayingLines[0]
	}
	if len(nowPlayingLines) > 1 {
		npLine2 = nowPlayingLines[1]
	}

	c.mu.Lock()
	c.debug.AfkLine = afkLine
	c.debug.CycleLine = cycleLine
	c.debug.NowPlayingLine1 = npLine1
	c.debug.NowPlayingLine2 = npLine2
	c.debug.Combined = combined
	c.mu.Unlock()

	return combined
}

func joinWithinBudget(lines []string, budget int) string {
	var b strings.Builder
	used := 0
	for i, line := range lines {
		sep := 0
		if i > 0 {
			sep = 1
		}
		length := len([]rune(line))
		if used+sep+length <= budget {
			if sep == 1 {
				b.WriteString("\n")
			}
			b.WriteString(line)
			used += sep + length
			continue
		}
		// Not enough room left: cut this line down to what remains and
		// drop everything after it
		remaining := budget - used - sep
		if remaining >= 2 {
			if sep == 1 {
				b.WriteString("\n")
			}
			b.WriteString(string([]rune(line)[:remaining-1]))
			b.WriteString(shared.ELLIPSIS)
		}
		break
	}
	return b.String()
}

// MarkSent records that the composed payload actually went out on the wire.
func (c *Composer) MarkSent(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debug.LastSentAt = at
	c.debug.LastSendID = uuid.NewString()
}

// Debug returns a copy of the last composition's diagnostic view.
func (c *Composer) Debug() Debug {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.debug
}
