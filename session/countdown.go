package session

// Countdown is a one-shot minute timer independent of the focus cycle.
// Like Clock it is tick-driven by its owner.
type Countdown struct {
	DurationMinutes  int
	RemainingSeconds int
	Running          bool
}

// NewCountdown returns a paused countdown of the given duration.
// Durations below one minute are clamped up.
func NewCountdown(minutes int) *Countdown {
	if minutes < 1 {
		minutes = 1
	}
	return &Countdown{
		DurationMinutes:  minutes,
		RemainingSeconds: minutes * 60,
	}
}

func (c *Countdown) Start() {
	if c.Running {
		return
	}
	if c.RemainingSeconds == 0 {
		c.RemainingSeconds = c.DurationMinutes * 60
	}
	c.Running = true
}

func (c *Countdown) Pause() {
	c.Running = false
}

func (c *Countdown) Reset() {
	c.Running = false
	c.RemainingSeconds = c.DurationMinutes * 60
}

// SetDuration changes the countdown length and stops it. Invalid
// input keeps the previous duration.
func (c *Countdown) SetDuration(minutes int) {
	if minutes < 1 {
		return
	}
	c.DurationMinutes = minutes
	c.RemainingSeconds = minutes * 60
	c.Running = false
}

// Tick advances by one second and reports completion exactly once.
func (c *Countdown) Tick() bool {
	if !c.Running {
		return false
	}
	if c.RemainingSeconds > 0 {
		c.RemainingSeconds--
	}
	if c.RemainingSeconds == 0 {
		c.Running = false
		return true
	}
	return false
}
