package shared

const (
	// The remote display starts dropping glyphs past this point so there is
	// no value in sending anything longer.
	MESSAGE_RUNE_BUDGET = 144

	// The artist/title header gets its own tighter squeeze so the progress
	// line underneath it never gets pushed out by a long track name.
	TRACK_HEADER_BUDGET = 42

	AFK_INTERVAL_SECONDS = 8
	MIN_LOOP_SECONDS     = 2
	MAX_CYCLE_LINES      = 10

	// Sends closer together than this get quietly dropped by the receiver
	// so the gate refuses to go any lower, regardless of user config.
	MIN_SEND_INTERVAL_MS = 2000

	ELLIPSIS = "…"
)
