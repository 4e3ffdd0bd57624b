package session

// Clock is the single ticking countdown for the focus cycle. It holds
// no timer of its own: the owner calls Tick once per second while the
// clock is running. All methods must be called from one goroutine.
type Clock struct {
	state State
}

// NewClock returns a paused work-mode clock loaded from settings.
func NewClock(settings Settings) *Clock {
	total := settings.Seconds(Work)
	return &Clock{state: State{
		Mode:             Work,
		RemainingSeconds: total,
		TotalSeconds:     total,
	}}
}

// State returns a copy of the current clock state.
func (c *Clock) State() State { return c.state }

// Start begins the countdown. Calling it while running is a no-op; a
// clock that already ran to zero is reloaded to the full duration first.
func (c *Clock) Start() {
	if c.state.Running {
		return
	}
	if c.state.RemainingSeconds == 0 {
		c.state.RemainingSeconds = c.state.TotalSeconds
	}
	c.state.Running = true
}

// Pause stops ticking without touching the remaining time.
func (c *Clock) Pause() {
	c.state.Running = false
}

// Reset stops ticking and reloads the full duration for the current mode.
func (c *Clock) Reset(settings Settings) {
	c.state.Running = false
	c.state.TotalSeconds = settings.Seconds(c.state.Mode)
	c.state.RemainingSeconds = c.state.TotalSeconds
}

// SetMode switches the clock to mode and recomputes its duration. A
// paused clock is reloaded; a running one keeps its remaining time,
// clamped down if the new duration is shorter.
func (c *Clock) SetMode(mode Mode, settings Settings) {
	c.state.Mode = mode
	c.state.TotalSeconds = settings.Seconds(mode)
	if !c.state.Running {
		c.state.RemainingSeconds = c.state.TotalSeconds
	} else if c.state.RemainingSeconds > c.state.TotalSeconds {
		c.state.RemainingSeconds = c.state.TotalSeconds
	}
}

// ApplySettings re-derives the current mode's duration after a settings
// change, with the same paused-reload / running-clamp rules as SetMode.
func (c *Clock) ApplySettings(settings Settings) {
	c.SetMode(c.state.Mode, settings)
}

// Tick advances the countdown by one second. When the countdown reaches
// zero it stops the clock and returns the mode that just finished with
// fired=true, exactly once per completion. Ticks while paused are
// ignored, so a tick racing a manual pause or reset cannot double-fire.
func (c *Clock) Tick() (completed Mode, fired bool) {
	if !c.state.Running {
		return 0, false
	}
	if c.state.RemainingSeconds > 0 {
		c.state.RemainingSeconds--
	}
	if c.state.RemainingSeconds == 0 {
		c.state.Running = false
		return c.state.Mode, true
	}
	return 0, false
}

// CompleteSession records a finished session in the counters and loads
// the next mode computed by the scheduler. The clock is left paused.
func (c *Clock) CompleteSession(completed Mode, settings Settings) {
	c.state.TotalSessionsCompleted++
	if completed == Work {
		c.state.TotalWorkSessions++
	}
	next, cycle := NextMode(completed, c.state.CycleWorkSessions, settings)
	c.state.CycleWorkSessions = cycle
	c.SetMode(next, settings)
}
