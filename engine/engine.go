// Package engine ties the session clock, the mode scheduler, and the
// audio arbitration layer into one serialized core. Every mutation
// (the one-second session tick, the four-second media poll, and user
// actions) goes through a single mutex, so components never see each
// other mid-update. Snapshots are published to the EventSink only
// after the lock is released.
package engine

import (
	"sync"
	"time"

	"tomo/audio"
	"tomo/chime"
	"tomo/config"
	"tomo/log"
	"tomo/media"
	"tomo/noise"
	"tomo/notify"
	"tomo/session"
)

const (
	tickInterval = time.Second
	pollInterval = 4 * time.Second

	defaultCountdownMinutes = 5
)

type Engine struct {
	mu sync.Mutex

	settings  session.Settings
	clock     *session.Clock
	countdown *session.Countdown
	arbiter   *Arbiter
	notifier  *Notifier
	store     *config.Store
	stats     config.Stats
	sink      EventSink

	stop     chan struct{}
	done     chan struct{}
	started  bool
	stopOnce sync.Once
}

// New wires an engine from its collaborators. Settings and today's
// stats are loaded from the store; the clock starts paused in work
// mode.
func New(ctx audio.Context, bridge media.Bridge, platform notify.Platform, store *config.Store, sink EventSink) *Engine {
	settings := store.LoadSettings()
	e := &Engine{
		settings:  settings,
		clock:     session.NewClock(settings),
		countdown: session.NewCountdown(defaultCountdownMinutes),
		arbiter:   NewArbiter(ctx, bridge),
		store:     store,
		stats:     store.LoadStats(config.Today()),
		sink:      sink,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	e.notifier = NewNotifier(platform, chime.New(ctx), sink)
	e.arbiter.local.OnDone(func() {
		e.mu.Lock()
		e.arbiter.LocalDone()
		st := e.arbiter.State()
		e.mu.Unlock()
		e.sink.AudioChanged(st)
	})
	return e
}

// Run starts the tick and poll loops. It returns immediately; call
// Shutdown to stop them.
func (e *Engine) Run() {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	e.mu.Unlock()
	go func() {
		defer close(e.done)
		tick := time.NewTicker(tickInterval)
		defer tick.Stop()
		poll := time.NewTicker(pollInterval)
		defer poll.Stop()
		e.poll()
		for {
			select {
			case <-e.stop:
				return
			case <-tick.C:
				e.TickOnce()
			case <-poll.C:
				e.poll()
			}
		}
	}()
}

// Shutdown stops the loops, releases audio resources, and persists
// settings and stats. Safe to call more than once.
func (e *Engine) Shutdown() {
	e.stopOnce.Do(func() {
		close(e.stop)
		e.mu.Lock()
		started := e.started
		e.mu.Unlock()
		// If Run was never called nothing closes done; don't wait on it.
		if started {
			<-e.done
		}

		e.mu.Lock()
		e.arbiter.Teardown()
		completed := e.clock.State().TotalSessionsCompleted
		if err := e.store.SaveSettings(e.settings); err != nil {
			log.Errorf("save settings on shutdown: %v", err)
		}
		if err := e.store.SaveStats(e.stats); err != nil {
			log.Errorf("save stats on shutdown: %v", err)
		}
		e.mu.Unlock()
		log.SessionEnd(completed)
	})
}

// TickOnce advances both timers by one second and handles any
// completion. The run loop calls it every second; tests call it
// directly to step virtual time.
func (e *Engine) TickOnce() {
	e.mu.Lock()
	completed, fired := e.clock.Tick()
	if fired {
		e.handleCompletion(completed)
	}
	countdownFired := e.countdown.Tick()
	settings := e.settings
	st := e.clock.State()
	audioSt := e.arbiter.State()
	cd := *e.countdown
	stats := e.stats
	e.mu.Unlock()

	e.sink.SessionChanged(st)
	e.sink.CountdownChanged(cd)
	if fired {
		e.sink.AudioChanged(audioSt)
		e.sink.StatsChanged(stats)
		e.notifier.SessionCompleted(completed, settings)
	}
	if countdownFired {
		e.notifier.CountdownDone(settings)
	}
}

// handleCompletion is called under the lock when the clock fires. It
// books the finished session into the daily stats, advances the clock
// to the scheduled next mode (left paused), and applies the arbiter's
// break policy.
func (e *Engine) handleCompletion(completed session.Mode) {
	elapsed := e.clock.State().TotalSeconds

	if e.stats.Date != config.Today() {
		e.stats = e.store.LoadStats(config.Today())
	}
	switch completed {
	case session.Work:
		e.stats.Pomodoros++
		e.stats.FocusSeconds += elapsed
	case session.ShortBreak:
		e.stats.ShortBreaks++
		e.stats.BreakSeconds += elapsed
	case session.LongBreak:
		e.stats.LongBreaks++
		e.stats.BreakSeconds += elapsed
	}
	if err := e.store.SaveStats(e.stats); err != nil {
		log.Errorf("save stats: %v", err)
	}

	e.clock.CompleteSession(completed, e.settings)
	next := e.clock.State().Mode
	e.arbiter.OnModeTransition(completed, next, e.settings)

	st := e.clock.State()
	log.SessionComplete(completed.String(), st.CycleWorkSessions, st.TotalWorkSessions)
}

// poll refreshes the external media snapshot on its own cadence.
func (e *Engine) poll() {
	e.mu.Lock()
	e.arbiter.Poll()
	snap := e.arbiter.Snapshot()
	audioSt := e.arbiter.State()
	e.mu.Unlock()
	e.sink.MediaChanged(snap)
	e.sink.AudioChanged(audioSt)
}

// PollOnce runs one media poll immediately. Tests use it in place of
// the four-second ticker.
func (e *Engine) PollOnce() { e.poll() }

// StartSession begins (or resumes) the current mode's countdown.
func (e *Engine) StartSession() {
	e.mu.Lock()
	e.clock.Start()
	st := e.clock.State()
	minutes := e.settings.Minutes(st.Mode)
	e.mu.Unlock()
	log.SessionStart(st.Mode.String(), minutes)
	e.sink.SessionChanged(st)
}

// PauseSession freezes the countdown.
func (e *Engine) PauseSession() {
	e.mu.Lock()
	e.clock.Pause()
	st := e.clock.State()
	e.mu.Unlock()
	e.sink.SessionChanged(st)
}

// ToggleSession starts a paused clock and pauses a running one. The
// global hotkey binds here.
func (e *Engine) ToggleSession() {
	e.mu.Lock()
	if e.clock.State().Running {
		e.clock.Pause()
	} else {
		e.clock.Start()
	}
	st := e.clock.State()
	e.mu.Unlock()
	e.sink.SessionChanged(st)
}

// ResetSession stops the clock and reloads the full duration for the
// current mode.
func (e *Engine) ResetSession() {
	e.mu.Lock()
	e.clock.Reset(e.settings)
	st := e.clock.State()
	e.mu.Unlock()
	e.sink.SessionChanged(st)
}

// SetMode switches the clock to mode manually. Manual switches never
// touch the cycle or completion counters; the arbiter still sees the
// transition so the break policy applies.
func (e *Engine) SetMode(mode session.Mode) {
	e.mu.Lock()
	prev := e.clock.State().Mode
	e.clock.SetMode(mode, e.settings)
	if prev != mode {
		e.arbiter.OnModeTransition(prev, mode, e.settings)
	}
	st := e.clock.State()
	audioSt := e.arbiter.State()
	e.mu.Unlock()
	e.sink.SessionChanged(st)
	e.sink.AudioChanged(audioSt)
}

// StartBreak manually switches into a short break and starts it
// immediately, without crediting a completed work session.
func (e *Engine) StartBreak() {
	e.mu.Lock()
	prev := e.clock.State().Mode
	if !prev.IsBreak() {
		e.clock.SetMode(session.ShortBreak, e.settings)
		e.arbiter.OnModeTransition(prev, session.ShortBreak, e.settings)
	}
	e.clock.Start()
	st := e.clock.State()
	audioSt := e.arbiter.State()
	e.mu.Unlock()
	e.sink.SessionChanged(st)
	e.sink.AudioChanged(audioSt)
}

// SkipBreak abandons the current break and returns to a paused work
// session, without crediting the break as completed.
func (e *Engine) SkipBreak() {
	e.mu.Lock()
	prev := e.clock.State().Mode
	if prev.IsBreak() {
		e.clock.Pause()
		e.clock.SetMode(session.Work, e.settings)
		e.arbiter.OnModeTransition(prev, session.Work, e.settings)
	}
	st := e.clock.State()
	audioSt := e.arbiter.State()
	e.mu.Unlock()
	e.sink.SessionChanged(st)
	e.sink.AudioChanged(audioSt)
}

// UpdateSettings merges a partial settings update. Invalid fields are
// dropped in favor of the previous values; a change re-derives the
// current mode's duration and persists the settings. Reports whether
// anything changed.
func (e *Engine) UpdateSettings(p session.Patch) bool {
	e.mu.Lock()
	changed := e.settings.Apply(p)
	if changed {
		e.clock.ApplySettings(e.settings)
		if err := e.store.SaveSettings(e.settings); err != nil {
			log.Errorf("save settings: %v", err)
		}
	}
	st := e.clock.State()
	e.mu.Unlock()
	if changed {
		e.sink.SessionChanged(st)
	}
	return changed
}

// ApplyPreset applies a named duration preset through the same
// sanitizing path as any other settings update.
func (e *Engine) ApplyPreset(name string) bool {
	preset, ok := session.PresetByName(name)
	if !ok {
		return false
	}
	return e.UpdateSettings(preset.Patch())
}

// Settings returns a copy of the current settings.
func (e *Engine) Settings() session.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// SessionState returns a copy of the current session state.
func (e *Engine) SessionState() session.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.State()
}

// AudioSnapshot returns a copy of the current audio state.
func (e *Engine) AudioSnapshot() AudioState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.arbiter.State()
}

// MediaSnapshot returns the last polled external media snapshot.
func (e *Engine) MediaSnapshot() media.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.arbiter.Snapshot()
}

// Countdown returns a copy of the quick countdown state.
func (e *Engine) Countdown() session.Countdown {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.countdown
}

// Stats returns a copy of today's stats record.
func (e *Engine) Stats() config.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// SetFocusSound selects the ambient noise color, or Off to silence it.
// Failures degrade to silence and are logged, never surfaced.
func (e *Engine) SetFocusSound(color noise.Color) {
	e.mu.Lock()
	if err := e.arbiter.PlayNoise(color); err != nil {
		log.Errorf("focus sound: %v", err)
	}
	st := e.arbiter.State()
	e.mu.Unlock()
	e.sink.AudioChanged(st)
}

// LoadLocalFile decodes a WAV or FLAC file into the local player.
func (e *Engine) LoadLocalFile(path string) error {
	e.mu.Lock()
	err := e.arbiter.LoadLocal(path)
	st := e.arbiter.State()
	e.mu.Unlock()
	e.sink.AudioChanged(st)
	return err
}

// PlayLocal starts or resumes the loaded file.
func (e *Engine) PlayLocal() {
	e.mu.Lock()
	if err := e.arbiter.PlayLocal(); err != nil {
		log.Warnf("local playback: %v", err)
	}
	st := e.arbiter.State()
	e.mu.Unlock()
	e.sink.AudioChanged(st)
}

// PauseLocal pauses the loaded file, keeping its position.
func (e *Engine) PauseLocal() {
	e.mu.Lock()
	e.arbiter.PauseLocal()
	st := e.arbiter.State()
	e.mu.Unlock()
	e.sink.AudioChanged(st)
}

// StopLocal stops the loaded file and rewinds it.
func (e *Engine) StopLocal() {
	e.mu.Lock()
	e.arbiter.StopLocal()
	st := e.arbiter.State()
	e.mu.Unlock()
	e.sink.AudioChanged(st)
}

// SendSystemMediaCommand forwards a transport command to the external
// player.
func (e *Engine) SendSystemMediaCommand(cmd media.Command) {
	e.mu.Lock()
	e.arbiter.SendCommand(cmd)
	st := e.arbiter.State()
	snap := e.arbiter.Snapshot()
	e.mu.Unlock()
	e.sink.AudioChanged(st)
	e.sink.MediaChanged(snap)
}

// SetVolume sets the gain for both in-process sources, clamped to [0,1].
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	e.arbiter.SetVolume(v)
	st := e.arbiter.State()
	e.mu.Unlock()
	e.sink.AudioChanged(st)
}

// StartCountdown starts the quick countdown.
func (e *Engine) StartCountdown() {
	e.mu.Lock()
	e.countdown.Start()
	cd := *e.countdown
	e.mu.Unlock()
	e.sink.CountdownChanged(cd)
}

// PauseCountdown freezes the quick countdown.
func (e *Engine) PauseCountdown() {
	e.mu.Lock()
	e.countdown.Pause()
	cd := *e.countdown
	e.mu.Unlock()
	e.sink.CountdownChanged(cd)
}

// ResetCountdown reloads the quick countdown to its full duration.
func (e *Engine) ResetCountdown() {
	e.mu.Lock()
	e.countdown.Reset()
	cd := *e.countdown
	e.mu.Unlock()
	e.sink.CountdownChanged(cd)
}

// SetCountdownMinutes changes the quick countdown duration. Invalid
// input keeps the previous duration.
func (e *Engine) SetCountdownMinutes(minutes int) {
	e.mu.Lock()
	e.countdown.SetDuration(minutes)
	cd := *e.countdown
	e.mu.Unlock()
	e.sink.CountdownChanged(cd)
}
