package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"pokerclock/internal/core"
	"pokerclock/internal/domain"
	"pokerclock/internal/logging"
)

// CommandType names an operation a host can send to the clock.
type CommandType string

const (
	CommandStart        CommandType = "start"
	CommandPause        CommandType = "pause"
	CommandResume       CommandType = "resume"
	CommandReset        CommandType = "reset"
	CommandNextLevel    CommandType = "next"
	CommandPrevLevel    CommandType = "previous"
	CommandJump         CommandType = "jump"
	CommandStartBreak   CommandType = "break-start"
	CommandEndBreak     CommandType = "break-end"
	CommandMute         CommandType = "mute"
	CommandUnmute       CommandType = "unmute"
	CommandUpdateConfig CommandType = "update-config"
)

// Command is an input to the session loop. Level is used by CommandJump and
// Config by CommandUpdateConfig.
type Command struct {
	Type   CommandType
	Level  int
	Config domain.TournamentConfig
}

// EventType defines the type of session event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventTimerEnded  EventType = "timer_ended"
)

// Event is delivered to subscribers after every transition.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Snapshot is a consistent view of the clock for display.
type Snapshot struct {
	State          domain.TimerState
	Status         domain.Status
	Config         domain.TournamentConfig
	Current        *domain.BlindLevel
	Next           *domain.BlindLevel
	Warning        domain.Warning
	BreakAvailable bool
	Ended          bool
	Muted          bool
}

// Hooks are optional host callbacks. They run in order on a goroutine of their
// own, after the transition that caused them has settled, so a hook may call
// Dispatch. A hook must not call Close.
type Hooks struct {
	OnLevelChange func(level int)
	OnTimerEnd    func()
}

// Options tune a Session. The zero value uses the real clock and one-second ticks.
type Options struct {
	Clock        clockwork.Clock
	TickInterval time.Duration
	Hooks        Hooks
}

// Session drives a core.Machine in real time. All transitions, whether from the
// ticker or from callers, run on one goroutine, so the machine has a single writer.
type Session struct {
	repo     domain.TournamentRepository
	player   domain.SoundPlayer
	clock    clockwork.Clock
	interval time.Duration
	hooks    Hooks

	// owned by the loop goroutine
	machine *core.Machine
	muted   bool
	ticker  clockwork.Ticker

	mu       sync.RWMutex
	snapshot Snapshot
	events   []chan Event

	cmdCh   chan commandRequest
	done    chan struct{}
	cancel  context.CancelFunc
	started bool

	hookMu    sync.Mutex
	hookQueue []func()
	hookWake  chan struct{}
	hooksDone chan struct{}
}

type commandRequest struct {
	cmd      Command
	resultCh chan error
}

// NewSession prepares a session for config. Call Start to begin processing.
func NewSession(config domain.TournamentConfig, repo domain.TournamentRepository, player domain.SoundPlayer, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	s := &Session{
		repo:      repo,
		player:    player,
		clock:     opts.Clock,
		interval:  opts.TickInterval,
		hooks:     opts.Hooks,
		machine:   core.NewMachine(config),
		cmdCh:     make(chan commandRequest),
		done:      make(chan struct{}),
		hookWake:  make(chan struct{}, 1),
		hooksDone: make(chan struct{}),
	}
	s.snapshot = s.buildSnapshot()
	return s
}

// Start launches the event loop until ctx is cancelled or Close is called.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	go s.loop(ctx)
	go s.runHooks()
}

// Close stops the loop, releases the ticker and closes subscriber channels.
func (s *Session) Close() {
	s.mu.Lock()
	cancel := s.cancel
	started := s.started
	s.mu.Unlock()

	if !started {
		return
	}
	cancel()
	<-s.done
	<-s.hooksDone
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than stall the clock.
func (s *Session) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	s.mu.Lock()
	s.events = append(s.events, ch)
	s.mu.Unlock()
	return ch
}

// Snapshot returns the state as of the last transition.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Dispatch sends cmd to the loop and waits until it has been applied. It
// returns ErrSessionNotStarted before Start and ErrSessionClosed after Close.
func (s *Session) Dispatch(cmd Command) error {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return domain.ErrSessionNotStarted
	}

	req := commandRequest{cmd: cmd, resultCh: make(chan error, 1)}
	select {
	case s.cmdCh <- req:
	case <-s.done:
		return domain.ErrSessionClosed
	}
	select {
	case err := <-req.resultCh:
		return err
	case <-s.done:
		return domain.ErrSessionClosed
	}
}

func (s *Session) StartClock() error    { return s.Dispatch(Command{Type: CommandStart}) }
func (s *Session) Pause() error         { return s.Dispatch(Command{Type: CommandPause}) }
func (s *Session) Resume() error        { return s.Dispatch(Command{Type: CommandResume}) }
func (s *Session) Reset() error         { return s.Dispatch(Command{Type: CommandReset}) }
func (s *Session) NextLevel() error     { return s.Dispatch(Command{Type: CommandNextLevel}) }
func (s *Session) PreviousLevel() error { return s.Dispatch(Command{Type: CommandPrevLevel}) }
func (s *Session) SetLevel(level int) error {
	return s.Dispatch(Command{Type: CommandJump, Level: level})
}
func (s *Session) StartBreak() error { return s.Dispatch(Command{Type: CommandStartBreak}) }
func (s *Session) EndBreak() error   { return s.Dispatch(Command{Type: CommandEndBreak}) }

// SetMuted silences alerts for this session without touching the saved config.
func (s *Session) SetMuted(muted bool) error {
	if muted {
		return s.Dispatch(Command{Type: CommandMute})
	}
	return s.Dispatch(Command{Type: CommandUnmute})
}

// UpdateConfig hands the session a config the host has already validated and saved.
func (s *Session) UpdateConfig(config domain.TournamentConfig) error {
	return s.Dispatch(Command{Type: CommandUpdateConfig, Config: config})
}

func (s *Session) loop(ctx context.Context) {
	defer s.shutdown()

	for {
		var tickCh <-chan time.Time
		if s.ticker != nil {
			tickCh = s.ticker.Chan()
		}

		select {
		case <-ctx.Done():
			return
		case req := <-s.cmdCh:
			before := s.machine.State()
			err := s.apply(req.cmd)
			s.syncTicker(before)
			s.settle(EventStateChange)
			req.resultCh <- err
		case <-tickCh:
			s.onTick()
			s.syncTicker(s.machine.State())
			s.settle(EventTick)
		}
	}
}

func (s *Session) apply(cmd Command) error {
	m := s.machine
	switch cmd.Type {
	case CommandStart:
		if !m.Configured() {
			return domain.ErrNoBlindLevels
		}
		m.Start()
	case CommandPause:
		m.Pause()
	case CommandResume:
		m.Resume()
	case CommandReset:
		m.Reset()
	case CommandNextLevel:
		m.NextLevel()
	case CommandPrevLevel:
		m.PreviousLevel()
	case CommandJump:
		return m.SetLevel(cmd.Level)
	case CommandStartBreak:
		return m.StartBreak()
	case CommandEndBreak:
		m.EndBreak()
	case CommandMute:
		s.muted = true
	case CommandUnmute:
		s.muted = false
	case CommandUpdateConfig:
		m.UpdateConfig(cmd.Config)
	default:
		return &UnknownCommandError{Type: cmd.Type}
	}
	return nil
}

// onTick routes one clock second to whichever countdown is active.
// A level countdown already at zero is advanced instead of ticked.
func (s *Session) onTick() {
	st := s.machine.State()
	switch {
	case st.BreakTicking():
		s.machine.BreakTick()
	case st.Ticking() && st.TimeRemaining == 0:
		s.machine.Advance()
	case st.Ticking():
		s.machine.Tick()
	}
}

// syncTicker keeps the ticker alive exactly while a countdown is active. A
// command that moved the countdown restarts it so no tick meant for the old
// level is ever applied.
func (s *Session) syncTicker(before domain.TimerState) {
	after := s.machine.State()
	active := after.Ticking() || after.BreakTicking()

	if !active {
		s.stopTicker()
		return
	}
	moved := before.CurrentLevel != after.CurrentLevel ||
		before.TimeRemaining != after.TimeRemaining ||
		before.IsBreakActive != after.IsBreakActive ||
		before.Ticking() != after.Ticking()
	if s.ticker != nil && moved {
		s.stopTicker()
	}
	if s.ticker == nil {
		s.ticker = s.clock.NewTicker(s.interval)
		logging.Tracef("ticker armed (%s)", s.interval)
	}
}

// stopTicker stops the ticker and drains a pending tick so it cannot leak into
// the next countdown.
func (s *Session) stopTicker() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	select {
	case <-s.ticker.Chan():
	default:
	}
	s.ticker = nil
	logging.Tracef("ticker stopped")
}

// settle executes recorded effects, publishes the new snapshot and notifies observers.
func (s *Session) settle(eventType EventType) {
	ended := s.executeEffects(s.machine.Drain())

	snap := s.buildSnapshot()
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	now := s.clock.Now()
	s.emit(Event{Type: eventType, Snapshot: snap, At: now})
	if ended {
		s.emit(Event{Type: EventTimerEnded, Snapshot: snap, At: now})
	}
}

// executeEffects performs side effects at the boundary. Failures are logged and
// never fed back into the machine.
func (s *Session) executeEffects(effects []core.Effect) (ended bool) {
	for _, eff := range effects {
		switch eff.Type {
		case core.EffectLevelChanged:
			if s.repo != nil {
				if err := s.repo.SaveCurrent(s.machine.Config()); err != nil {
					logging.Warnf("persist level %d: %v", eff.Level+1, err)
				}
			}
			logging.Infof("level %d", eff.Level+1)
			if fn := s.hooks.OnLevelChange; fn != nil {
				level := eff.Level
				s.queueHook(func() { fn(level) })
			}
		case core.EffectPlaySound:
			if s.player != nil && s.machine.Config().SoundAlertsEnabled && !s.muted {
				s.player.Play(eff.Sound)
			}
		case core.EffectTimerEnded:
			ended = true
			logging.Infof("tournament clock ended at level %d", eff.Level+1)
			if s.hooks.OnTimerEnd != nil {
				s.queueHook(s.hooks.OnTimerEnd)
			}
		}
	}
	return ended
}

func (s *Session) queueHook(fn func()) {
	s.hookMu.Lock()
	s.hookQueue = append(s.hookQueue, fn)
	s.hookMu.Unlock()
	select {
	case s.hookWake <- struct{}{}:
	default:
	}
}

// runHooks invokes queued hooks off the loop goroutine. Hooks queued before
// shutdown still run.
func (s *Session) runHooks() {
	defer close(s.hooksDone)
	for {
		select {
		case <-s.hookWake:
			s.flushHooks()
		case <-s.done:
			s.flushHooks()
			return
		}
	}
}

func (s *Session) flushHooks() {
	s.hookMu.Lock()
	queue := s.hookQueue
	s.hookQueue = nil
	s.hookMu.Unlock()
	for _, fn := range queue {
		fn()
	}
}

func (s *Session) buildSnapshot() Snapshot {
	m := s.machine
	st := m.State()
	cfg := m.Config()
	snap := Snapshot{
		State:          st,
		Status:         st.Status(),
		Config:         cfg,
		Warning:        domain.WarningState(st.TimeRemaining),
		BreakAvailable: domain.ShouldBreakAtLevel(cfg, st.CurrentLevel),
		Ended:          m.Ended(),
		Muted:          s.muted,
	}
	if st.IsBreakActive {
		snap.Warning = domain.WarningState(st.BreakTimeRemaining)
	}
	if cur, ok := domain.CurrentLevel(cfg, st.CurrentLevel); ok {
		snap.Current = &cur
	}
	if next, ok := domain.NextLevel(cfg, st.CurrentLevel); ok {
		snap.Next = &next
	}
	return snap
}

func (s *Session) emit(event Event) {
	s.mu.RLock()
	events := append([]chan Event(nil), s.events...)
	s.mu.RUnlock()
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (s *Session) shutdown() {
	s.stopTicker()

	s.mu.Lock()
	events := s.events
	s.events = nil
	s.mu.Unlock()
	for _, ch := range events {
		close(ch)
	}
	close(s.done)
}

// UnknownCommandError is returned by Dispatch for an unrecognized command type.
type UnknownCommandError struct {
	Type CommandType
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", string(e.Type))
}
