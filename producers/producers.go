package producers

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/tobyns/heliograph/compose"
	"github.com/tobyns/heliograph/events"
	"github.com/tobyns/heliograph/gate"
	"github.com/tobyns/heliograph/models"
	"github.com/tobyns/heliograph/playback"
	"github.com/tobyns/heliograph/shared"
	"github.com/tobyns/heliograph/transport"
)

// Manager runs the three status producers. Each producer gets its own
// scheduler so stopping one is a hard stop of that scheduler with no
// dangling ticks, and no loop ever waits on another. The only coordination
// between them is the shared SendGate.
type Manager struct {
	store    *playback.Store
	gate     *gate.SendGate
	composer *compose.Composer
	sender   transport.Sender

	mu            sync.Mutex
	afk           models.AfkConfig
	cycle         models.CycleConfig
	nowPlaying    models.NowPlayingConfig
	cursor        int
	lastCycleLine string

	afkSched        *gocron.Scheduler
	cycleSched      *gocron.Scheduler
	nowPlayingSched *gocron.Scheduler
}

// LoopStatus is the debug view of which loops are currently running.
type LoopStatus struct {
	AfkRunning        bool `json:"afk_running"`
	CycleRunning      bool `json:"cycle_running"`
	NowPlayingRunning bool `json:"now_playing_running"`
}

func NewManager(store *playback.Store, g *gate.SendGate, composer *compose.Composer, sender transport.Sender) *Manager {
	return &Manager{
		store:      store,
		gate:       g,
		composer:   composer,
		sender:     sender,
		afk:        models.DefaultAfkConfig(),
		cycle:      models.DefaultCycleConfig(),
		nowPlaying: models.DefaultNowPlayingConfig(),
	}
}

// SetAfk swaps in a new AFK config and restarts the loop to match. The loop
// only runs while the module is enabled.
func (m *Manager) SetAfk(cfg models.AfkConfig) {
	m.StopAfk(false)
	m.mu.Lock()
	m.afk = cfg
	m.mu.Unlock()
	if cfg.Enabled {
		m.StartAfk()
	}
}

func (m *Manager) SetCycle(cfg models.CycleConfig) {
	cfg.Normalize()
	m.StopCycle()
	m.mu.Lock()
	m.cycle = cfg
	m.mu.Unlock()
	if cfg.Enabled && len(cfg.Lines) > 0 {
		m.StartCycle()
	}
}

func (m *Manager) SetNowPlaying(cfg models.NowPlayingConfig) {
	cfg.Normalize()
	m.StopNowPlaying()
	m.mu.Lock()
	m.nowPlaying = cfg
	m.mu.Unlock()
	if cfg.Enabled {
		m.StartNowPlaying()
	}
}

// StartAfk fires one broadcast immediately, then keeps broadcasting on the
// fixed AFK cadence. Starting an already running loop is a no-op.
func (m *Manager) StartAfk() {
	m.mu.Lock()
	if m.afkSched != nil || !m.afk.Enabled {
		m.mu.Unlock()
		return
	}
	s := gocron.NewScheduler(time.UTC)
	s.Every(shared.AFK_INTERVAL_SECONDS).Seconds().Do(m.afkTick)
	m.afkSched = s
	m.mu.Unlock()

	s.StartAsync()
	m.afkTick()
	slog.Info("AFK loop started")
}

// StopAfk halts the loop. When clear is requested, one final rebuild runs
// with the AFK line treated as gone so the display blanks if no other
// module has anything to say.
func (m *Manager) StopAfk(clear bool) {
	m.mu.Lock()
	s := m.afkSched
	m.afkSched = nil
	m.mu.Unlock()

	if s != nil {
		s.Stop()
		slog.Info("AFK loop stopped")
	}
	if clear {
		m.rebuild(rebuildOpts{force: true, clear: true, afkCleared: true})
	}
}

func (m *Manager) afkTick() {
	m.rebuild(rebuildOpts{force: true})
}

// StartCycle begins the rotation from the top of the list. Requires the
// module enabled with at least one line.
func (m *Manager) StartCycle() {
	m.mu.Lock()
	if m.cycleSched != nil || !m.cycle.Enabled || len(m.cycle.Lines) == 0 {
		m.mu.Unlock()
		return
	}
	m.cursor = 0
	m.lastCycleLine = ""
	interval := m.cycle.IntervalSeconds
	if interval < shared.MIN_LOOP_SECONDS {
		interval = shared.MIN_LOOP_SECONDS
	}
	s := gocron.NewScheduler(time.UTC)
	s.Every(interval).Seconds().Do(m.cycleTick)
	m.cycleSched = s
	m.mu.Unlock()

	s.StartAsync()
	slog.With(slog.Int("interval_seconds", interval)).Info("Cycle loop started")
}

func (m *Manager) StopCycle() {
	m.mu.Lock()
	s := m.cycleSched
	m.cycleSched = nil
	m.lastCycleLine = ""
	m.mu.Unlock()

	if s != nil {
		s.Stop()
		slog.Info("Cycle loop stopped")
	}
}

func (m *Manager) cycleTick() {
	m.mu.Lock()
	if len(m.cycle.Lines) == 0 {
		m.mu.Unlock()
		return
	}
	line := m.cycle.Lines[m.cursor%len(m.cycle.Lines)]
	m.cursor = (m.cursor + 1) % len(m.cycle.Lines)
	m.lastCycleLine = line
	m.mu.Unlock()

	m.rebuild(rebuildOpts{force: true, cycleOverride: line})
}

func (m *Manager) StartNowPlaying() {
	m.mu.Lock()
	if m.nowPlayingSched != nil || !m.nowPlaying.Enabled {
		m.mu.Unlock()
		return
	}
	interval := m.nowPlaying.RefreshIntervalSeconds
	if interval < shared.MIN_LOOP_SECONDS {
		interval = shared.MIN_LOOP_SECONDS
	}
	s := gocron.NewScheduler(time.UTC)
	s.Every(interval).Seconds().Do(m.nowPlayingTick)
	m.nowPlayingSched = s
	m.mu.Unlock()

	s.StartAsync()
	slog.With(slog.Int("interval_seconds", interval)).Info("Now playing loop started")
}

func (m *Manager) StopNowPlaying() {
	m.mu.Lock()
	s := m.nowPlayingSched
	m.nowPlayingSched = nil
	m.mu.Unlock()

	if s != nil {
		s.Stop()
		slog.Info("Now playing loop stopped")
	}
}

func (m *Manager) nowPlayingTick() {
	m.rebuild(rebuildOpts{force: true})
}

// SendOnce rebuilds and transmits right now, outside any loop's schedule but
// still behind the shared gate. An optional cycle line override rides along
// for a single send without touching the rotation cursor.
func (m *Manager) SendOnce(cycleOverride string) {
	m.rebuild(rebuildOpts{force: true, cycleOverride: cycleOverride})
}

// StopAll cancels every loop, then performs exactly one rebuild with a
// forced clear if requested.
func (m *Manager) StopAll(clear bool) {
	m.StopAfk(false)
	m.StopCycle()
	m.StopNowPlaying()
	if clear {
		m.rebuild(rebuildOpts{force: true, clear: true, allCleared: true})
	}
}

func (m *Manager) Status() LoopStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return LoopStatus{
		AfkRunning:        m.afkSched != nil,
		CycleRunning:      m.cycleSched != nil,
		NowPlayingRunning: m.nowPlayingSched != nil,
	}
}

func (m *Manager) Debug() compose.Debug {
	return m.composer.Debug()
}

type rebuildOpts struct {
	// force actually transmits; without it the rebuild is compose-only
	// and exists to refresh the debug surface.
	force bool
	// clear lets a blank payload through the gate to wipe the display.
	clear bool
	// cycleOverride carries this tick's cycle line (or a one-off line).
	cycleOverride string
	// afkCleared pretends the AFK module has nothing, for its farewell send.
	afkCleared bool
	// allCleared blanks every source, for a global forced clear.
	allCleared bool
}

// rebuild is the single funnel every producer tick goes through: gather
// lines, compose, ask the gate, maybe transmit. It never blocks on anything
// other than the UDP write and swallows transport errors; the next tick will
// retry with fresher content anyway.
func (m *Manager) rebuild(opts rebuildOpts) {
	m.mu.Lock()
	afkLine := ""
	if m.afk.Enabled && m.afkSched != nil && !opts.afkCleared && !opts.allCleared {
		afkLine = m.afk.Text
	}
	cycleLine := opts.cycleOverride
	if cycleLine == "" && m.cycleSched != nil && !opts.allCleared {
		cycleLine = m.lastCycleLine
	}
	npCfg := m.nowPlaying
	m.mu.Unlock()

	var npLines []string
	if !opts.allCleared {
		npLines = compose.NowPlayingLines(npCfg, m.store.Snapshot(), playback.NowMs())
	}

	combined := m.composer.Compose(afkLine, cycleLine, npLines)

	now := time.Now()
	if m.gate.TryConsume(combined, opts.force, opts.clear, now) {
		if err := m.sender.Send(combined, true, false); err != nil {
			slog.With(slog.Any("error", err)).Error("Failed to deliver status payload")
		} else {
			m.composer.MarkSent(now)
		}
	}

	m.publishDebug()
}

func (m *Manager) publishDebug() {
	payload, err := json.Marshal(m.composer.Debug())
	if err != nil {
		return
	}
	events.PublishDebug(payload)
}
